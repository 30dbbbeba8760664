package allocate

import (
	"sort"

	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/overlap"
	"piano-ledmap/internal/strip"
)

// physicsBased assigns each key the LEDs whose footprints physically
// overlap its exposed span, then rescues window LEDs that no key claimed.
// A footprint straddling two keys lands in both candidate sets.
func physicsBased(limitMM float64, keys []keyboard.KeyGeometry, placements []strip.Placement, ledWidthMM float64) Allocation {
	alloc := Allocation{Keys: make([][]int, len(keys))}
	opts := overlap.Options{OverhangLimitMM: limitMM}
	for i, key := range keys {
		cands := overlap.CandidatesForKey(key, placements, ledWidthMM, opts)
		ids := make([]int, len(cands))
		for j, c := range cands {
			ids[j] = c.AbsoluteIndex
		}
		alloc.Keys[i] = ids
	}
	rescueOrphans(alloc.Keys, placements, ledWidthMM)
	return alloc
}

// rescueOrphans hands every unclaimed window LED that sits strictly
// between two assigned keys to the nearer of the two. Distance runs from
// the orphan's center to the neighbor's closest assigned footprint edge;
// ties go to the lower key index. Orphans before the first assignment or
// after the last stay unassigned. All decisions are made against the
// state before any rescue, so rescue order cannot influence the outcome.
func rescueOrphans(keys [][]int, placements []strip.Placement, ledWidthMM float64) int {
	claimed := make(map[int]bool)
	for _, ids := range keys {
		for _, id := range ids {
			claimed[id] = true
		}
	}

	centers := make(map[int]float64, len(placements))
	for _, p := range placements {
		centers[p.AbsoluteIndex] = p.CenterMM
	}

	added := make(map[int][]int)
	for _, p := range placements {
		if claimed[p.AbsoluteIndex] {
			continue
		}

		lowerKey, upperKey := -1, -1
		var lowerMax, upperMin int
		for k, ids := range keys {
			if len(ids) == 0 {
				continue
			}
			if max := ids[len(ids)-1]; max < p.AbsoluteIndex {
				lowerKey, lowerMax = k, max
			}
			if min := ids[0]; min > p.AbsoluteIndex && upperKey < 0 {
				upperKey, upperMin = k, min
			}
		}
		if lowerKey < 0 || upperKey < 0 {
			continue
		}

		dLower := p.CenterMM - (centers[lowerMax] + ledWidthMM/2)
		dUpper := (centers[upperMin] - ledWidthMM/2) - p.CenterMM
		winner := upperKey
		if dLower <= dUpper {
			winner = lowerKey
		}
		added[winner] = append(added[winner], p.AbsoluteIndex)
	}

	rescued := 0
	for k, ids := range added {
		keys[k] = append(keys[k], ids...)
		sort.Ints(keys[k])
		rescued += len(ids)
	}
	return rescued
}
