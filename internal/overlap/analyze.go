// Package overlap intersects key geometry with LED placements and scores
// how well each key's LEDs cover its playable surface.
package overlap

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/strip"
	"piano-ledmap/pkg/geometry"
)

// Options tunes candidate admission.
type Options struct {
	// OverhangLimitMM rejects a candidate LED whose footprint extends past
	// either exposed key edge by more than this amount. Zero disables the
	// filter.
	OverhangLimitMM float64
}

// CandidatesForKey returns every LED whose footprint overlaps the key's
// exposed surface, in ascending index order.
//
// With a positive overhang limit, candidates hanging too far past either
// edge are rejected. Raising the limit can only admit more candidates,
// never fewer.
func CandidatesForKey(key keyboard.KeyGeometry, placements []strip.Placement, ledWidthMM float64, opts Options) []strip.Placement {
	var out []strip.Placement
	for _, p := range placements {
		fp := p.Footprint(ledWidthMM)
		if !fp.Intersects(key.Exposed) {
			continue
		}
		if opts.OverhangLimitMM > 0 {
			left := key.Exposed.Start - fp.Start
			right := fp.End - key.Exposed.End
			if left > opts.OverhangLimitMM || right > opts.OverhangLimitMM {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Assignment describes the LEDs serving one key and how well they cover
// its exposed surface. OverhangLeftMM/OverhangRightMM are the uncovered
// distances between each exposed edge and the nearest covered point.
type Assignment struct {
	LEDIndices       []int        `json:"led_indices"`
	CoverageMM       float64      `json:"coverage_mm"`
	OverhangLeftMM   float64      `json:"overhang_left_mm"`
	OverhangRightMM  float64      `json:"overhang_right_mm"`
	SymmetryScore    float64      `json:"symmetry_score"`
	ConsistencyScore float64      `json:"consistency_score"`
	Quality          QualityLabel `json:"quality"`
}

// Analyze scores a key's LED list. leds must be in ascending index order;
// pitchMM is the calibrated pitch, used as the ideal spacing between
// consecutive assigned centers.
func Analyze(key keyboard.KeyGeometry, leds []strip.Placement, ledWidthMM, pitchMM float64) Assignment {
	a := Assignment{LEDIndices: make([]int, len(leds))}
	for i, p := range leds {
		a.LEDIndices[i] = p.AbsoluteIndex
	}

	keyWidth := key.Exposed.Length()
	if len(leds) == 0 {
		a.OverhangLeftMM = keyWidth
		a.OverhangRightMM = keyWidth
		a.Quality = QualityPoor
		return a
	}

	// Union of footprint coverage inside the exposed surface
	covered := make([]geometry.Span, 0, len(leds))
	for _, p := range leds {
		c := p.Footprint(ledWidthMM).Intersect(key.Exposed)
		if !c.Empty() {
			covered = append(covered, c)
		}
	}
	if len(covered) == 0 {
		// Assigned LEDs sit entirely off the key, nothing to score.
		a.OverhangLeftMM = keyWidth
		a.OverhangRightMM = keyWidth
		a.Quality = QualityPoor
		return a
	}

	sort.Slice(covered, func(i, j int) bool { return covered[i].Start < covered[j].Start })
	cur := covered[0]
	total := 0.0
	for _, c := range covered[1:] {
		if c.Start <= cur.End {
			if c.End > cur.End {
				cur.End = c.End
			}
			continue
		}
		total += cur.Length()
		cur = c
	}
	total += cur.Length()

	a.CoverageMM = total
	a.OverhangLeftMM = covered[0].Start - key.Exposed.Start
	a.OverhangRightMM = key.Exposed.End - cur.End

	a.SymmetryScore = clamp01(1 - math.Abs(a.OverhangLeftMM-a.OverhangRightMM)/keyWidth)
	a.ConsistencyScore = consistency(leds, pitchMM)
	a.Quality = LabelForScore((a.SymmetryScore + a.ConsistencyScore) / 2)
	return a
}

// consistency rates the uniformity of spacing between consecutive assigned
// LED centers against the ideal pitch. A single LED cannot be inconsistent.
func consistency(leds []strip.Placement, pitchMM float64) float64 {
	if len(leds) < 2 || pitchMM <= 0 {
		return 1.0
	}
	sq := make([]float64, len(leds)-1)
	for i := 1; i < len(leds); i++ {
		d := (leds[i].CenterMM - leds[i-1].CenterMM) - pitchMM
		sq[i-1] = d * d
	}
	rms := math.Sqrt(stat.Mean(sq, nil))
	return clamp01(1 - rms/pitchMM)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
