package mapping

import (
	"math"
	"sort"

	"piano-ledmap/internal/config"
	"piano-ledmap/internal/strip"
)

// applyOffsets runs the offset cascade over the base allocation in a
// fixed order per LED index: key offset, then weld compensation, then
// the global offset, then a clamp to the window. Manual overrides replace
// whole keys after the clamp, and any LED an override displaces is handed
// to an index-adjacent key. With no offsets, welds, or overrides
// configured the cascade returns the base allocation unchanged.
func applyOffsets(base [][]int, cal config.Calibration, pitchMM float64) [][]int {
	welds := cal.WeldIndices()

	out := make([][]int, len(base))
	for key, ids := range base {
		if len(ids) == 0 {
			continue
		}
		shifted := make([]int, 0, len(ids))
		for _, id := range ids {
			idx := id + cal.KeyOffsets[key]
			idx += weldDelta(welds, cal.WeldOffsets, idx, pitchMM)
			idx += cal.GlobalOffset
			if idx < cal.StartLED {
				idx = cal.StartLED
			}
			if idx > cal.EndLED {
				idx = cal.EndLED
			}
			shifted = append(shifted, idx)
		}
		out[key] = dedupeSorted(shifted)
	}

	applyOverrides(out, cal, pitchMM)
	return out
}

// weldDelta sums the LED-count shifts of every weld strictly below idx.
// Each weld contributes its millimeter offset rounded to whole pitches.
func weldDelta(welds []int, offsets map[int]float64, idx int, pitchMM float64) int {
	delta := 0
	for _, w := range welds {
		if w >= idx {
			break
		}
		delta += int(math.Round(offsets[w] / pitchMM))
	}
	return delta
}

// applyOverrides swaps in manual LED selections and reassigns the LEDs
// they displaced. A displaced LED goes to whichever of the owner's two
// index-adjacent keys has the physically nearer assigned edge, ties to
// the lower key; a neighbor that is itself overridden keeps its manual
// list untouched, so a displaced LED between two overridden keys stays
// unassigned.
func applyOverrides(keys [][]int, cal config.Calibration, pitchMM float64) {
	if len(cal.Overrides) == 0 {
		return
	}
	cfg := cal.StripConfig()

	displaced := make(map[int][]int, len(cal.Overrides))
	for key, leds := range cal.Overrides {
		if key < 0 || key >= len(keys) {
			continue
		}
		displaced[key] = keys[key]
		keys[key] = append([]int(nil), leds...)
	}

	claimed := make(map[int]bool)
	for _, ids := range keys {
		for _, id := range ids {
			claimed[id] = true
		}
	}

	touched := make(map[int]bool)
	for owner, ids := range displaced {
		for _, id := range ids {
			if claimed[id] {
				continue
			}
			winner := nearestNeighbor(keys, cal, owner, id, cfg, pitchMM)
			if winner < 0 {
				continue
			}
			keys[winner] = append(keys[winner], id)
			claimed[id] = true
			touched[winner] = true
		}
	}
	for k := range touched {
		sort.Ints(keys[k])
	}
}

// nearestNeighbor picks which of the owner's adjacent keys claims a
// displaced LED. The lower neighbor is tried first, so it wins distance
// ties.
func nearestNeighbor(keys [][]int, cal config.Calibration, owner, id int, cfg strip.Config, pitchMM float64) int {
	center := strip.PlacementForIndex(cfg, pitchMM, id).CenterMM

	best := -1
	bestDist := math.MaxFloat64
	for _, k := range []int{owner - 1, owner + 1} {
		if k < 0 || k >= len(keys) || len(keys[k]) == 0 {
			continue
		}
		if _, overridden := cal.Overrides[k]; overridden {
			continue
		}
		if d := edgeDistance(keys[k], center, cfg, pitchMM); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// edgeDistance measures from an LED center to the nearest footprint edge
// of a key's assigned range, 0 when the center falls inside it.
func edgeDistance(ids []int, centerMM float64, cfg strip.Config, pitchMM float64) float64 {
	lo := strip.PlacementForIndex(cfg, pitchMM, ids[0]).CenterMM - cfg.LEDWidthMM/2
	hi := strip.PlacementForIndex(cfg, pitchMM, ids[len(ids)-1]).CenterMM + cfg.LEDWidthMM/2
	switch {
	case centerMM < lo:
		return lo - centerMM
	case centerMM > hi:
		return centerMM - hi
	}
	return 0
}

func dedupeSorted(ids []int) []int {
	sort.Ints(ids)
	out := ids[:0]
	for _, id := range ids {
		if len(out) == 0 || id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
