package mapping

import (
	"piano-ledmap/internal/allocate"
	"piano-ledmap/internal/config"
	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/overlap"
	"piano-ledmap/internal/strip"
)

// Compute derives the canonical mapping from one calibration snapshot.
// It is a pure function of the snapshot: no I/O, no shared state, safe
// to call concurrently.
func Compute(cal config.Calibration) (*Result, error) {
	if err := cal.Validate(); err != nil {
		return nil, err
	}

	spec, _ := keyboard.GetSpec(cal.KeyCount)
	keys := keyboard.BuildGeometry(spec, cal.KeyGapMM)
	cfg := cal.StripConfig()

	// The strip runs flush along the keys, so the window's first and
	// last LED centers sit one strip offset in from either keyboard end.
	span := spec.TotalWidthMM(cal.KeyGapMM) - 2*cfg.OffsetMM()
	pitch := strip.CalibratePitch(cfg, span)

	placements := strip.Placements(cfg, pitch.CalibratedPitchMM)
	alloc := allocate.Allocate(cal.Strategy(), keys, placements, cal.LEDWidthMM)
	final := applyOffsets(alloc.Keys, cal, pitch.CalibratedPitchMM)

	assignments := make([]overlap.Assignment, len(keys))
	for i, key := range keys {
		leds := make([]strip.Placement, len(final[i]))
		for j, id := range final[i] {
			leds[j] = strip.PlacementForIndex(cfg, pitch.CalibratedPitchMM, id)
		}
		assignments[i] = overlap.Analyze(key, leds, cal.LEDWidthMM, pitch.CalibratedPitchMM)
	}

	return &Result{
		Generation:  cal.Generation,
		Assignments: assignments,
		Quality:     aggregate(assignments, alloc.Warnings),
		Pitch:       pitch,
	}, nil
}
