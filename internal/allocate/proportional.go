package allocate

import "piano-ledmap/internal/strip"

// proportional divides the window across keys in index order. Every key
// takes floor(n/keys) LEDs and the first n%keys keys take one extra, so
// the blocks tile the window exactly with no gaps and no overlaps. With
// shared boundaries enabled each key except the last additionally claims
// the first LED of the following block.
func proportional(keyCount int, placements []strip.Placement, shared bool) Allocation {
	alloc := Allocation{Keys: make([][]int, keyCount)}
	n := len(placements)
	if n == 0 || keyCount == 0 {
		return alloc
	}

	base := n / keyCount
	extra := n % keyCount

	pos := 0
	for k := 0; k < keyCount; k++ {
		take := base
		if k < extra {
			take++
		}
		if take == 0 {
			continue
		}
		ids := make([]int, 0, take+1)
		for i := 0; i < take; i++ {
			ids = append(ids, placements[pos+i].AbsoluteIndex)
		}
		pos += take
		if shared && k < keyCount-1 && pos < n {
			ids = append(ids, placements[pos].AbsoluteIndex)
		}
		alloc.Keys[k] = ids
	}
	return alloc
}
