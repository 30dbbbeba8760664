// Package mapping derives the canonical key-to-LED mapping from a
// calibration snapshot: geometry, pitch calibration, allocation, and the
// offset cascade in one pass.
package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"piano-ledmap/internal/overlap"
	"piano-ledmap/internal/strip"
)

// Result is the engine's output: one assignment per key index, aggregate
// quality, and the pitch calibration outcome. Results are recomputed from
// the snapshot on demand and never persisted.
type Result struct {
	Generation  uint64                 `json:"generation"`
	Assignments []overlap.Assignment   `json:"assignments"`
	Quality     QualityMetrics         `json:"quality"`
	Pitch       strip.PitchCalibration `json:"pitch_calibration"`
}

// QualityMetrics aggregates per-key scores across the whole mapping.
type QualityMetrics struct {
	AvgSymmetry    float64              `json:"avg_symmetry"`
	AvgConsistency float64              `json:"avg_consistency"`
	TotalLEDsUsed  int                  `json:"total_leds_used"`
	KeysByLEDCount map[int]int          `json:"keys_by_led_count"`
	OverallGrade   overlap.QualityLabel `json:"overall_grade"`
	Warnings       []string             `json:"warnings,omitempty"`
}

// LEDsForKey returns the LED indices assigned to a key, nil when the key
// is out of range or unmapped.
func (r *Result) LEDsForKey(key int) []int {
	if key < 0 || key >= len(r.Assignments) {
		return nil
	}
	return r.Assignments[key].LEDIndices
}

// KeyForLED returns the lowest key index owning the LED, or -1 when no
// key claims it. Boundary LEDs shared between neighbors report the lower
// key.
func (r *Result) KeyForLED(absoluteIndex int) int {
	for key, a := range r.Assignments {
		for _, id := range a.LEDIndices {
			if id == absoluteIndex {
				return key
			}
		}
	}
	return -1
}

// FormatRuns renders LED indices compactly, collapsing consecutive runs:
// [4 5 6 7 12] becomes "4-7,12". Indices must be in ascending order.
func FormatRuns(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	var parts []string
	runStart, prev := ids[0], ids[0]
	flush := func() {
		if runStart == prev {
			parts = append(parts, strconv.Itoa(runStart))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", runStart, prev))
		}
	}
	for _, id := range ids[1:] {
		if id == prev+1 {
			prev = id
			continue
		}
		flush()
		runStart, prev = id, id
	}
	flush()
	return strings.Join(parts, ",")
}

func aggregate(assignments []overlap.Assignment, warnings []string) QualityMetrics {
	m := QualityMetrics{
		KeysByLEDCount: make(map[int]int),
		Warnings:       warnings,
	}
	if len(assignments) == 0 {
		return m
	}

	used := make(map[int]bool)
	syms := make([]float64, len(assignments))
	cons := make([]float64, len(assignments))
	for i, a := range assignments {
		syms[i] = a.SymmetryScore
		cons[i] = a.ConsistencyScore
		m.KeysByLEDCount[len(a.LEDIndices)]++
		for _, id := range a.LEDIndices {
			used[id] = true
		}
	}

	m.AvgSymmetry = stat.Mean(syms, nil)
	m.AvgConsistency = stat.Mean(cons, nil)
	m.TotalLEDsUsed = len(used)
	m.OverallGrade = overlap.LabelForScore((m.AvgSymmetry + m.AvgConsistency) / 2)
	return m
}
