package allocate

import (
	"math"

	"piano-ledmap/internal/strip"
)

// fixedCount gives every key exactly n consecutive LEDs, the block
// centered on the key's proportional share of the window. Blocks that
// would start before the window are shifted right to its first LED;
// blocks that would run past the window end leave the key unmapped,
// which the caller reports as under-provisioning.
func fixedCount(n, keyCount int, placements []strip.Placement) Allocation {
	alloc := Allocation{Keys: make([][]int, keyCount)}
	total := len(placements)
	if total == 0 || keyCount == 0 || n <= 0 {
		return alloc
	}

	for k := 0; k < keyCount; k++ {
		center := (float64(k) + 0.5) * float64(total) / float64(keyCount)
		start := int(math.Round(center - float64(n)/2))
		if start < 0 {
			start = 0
		}
		if start+n > total {
			continue
		}
		ids := make([]int, n)
		for i := 0; i < n; i++ {
			ids[i] = placements[start+i].AbsoluteIndex
		}
		alloc.Keys[k] = ids
	}
	return alloc
}
