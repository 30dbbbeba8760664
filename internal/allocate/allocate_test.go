package allocate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/strip"
)

func windowPlacements(t *testing.T, start, end int) []strip.Placement {
	t.Helper()
	cfg := strip.Config{LEDsPerMeter: 144, LEDWidthMM: 5.0, StartLED: start, EndLED: end}
	return strip.Placements(cfg, cfg.NominalPitchMM())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Proportional", Proportional.String())
	assert.Equal(t, "FixedCount", FixedCount.String())
	assert.Equal(t, "PhysicsBased", PhysicsBased.String())
	assert.Equal(t, "Unknown", Mode(99).String())
}

func TestProportionalTilesWindow(t *testing.T) {
	spec, ok := keyboard.GetSpec(88)
	require.True(t, ok)
	keys := keyboard.BuildGeometry(spec, keyboard.DefaultKeyGapMM)
	pl := windowPlacements(t, 4, 249)

	alloc := Allocate(Strategy{Mode: Proportional}, keys, pl, 5.0)
	require.Len(t, alloc.Keys, 88)
	assert.Empty(t, alloc.Warnings)

	// Blocks cover the window exactly once and in key order.
	seen := make(map[int]int)
	prev := -1
	for k, ids := range alloc.Keys {
		require.NotEmpty(t, ids, "key %d", k)
		for _, id := range ids {
			assert.Greater(t, id, prev)
			prev = id
			seen[id]++
		}
	}
	assert.Len(t, seen, len(pl))
	for _, p := range pl {
		assert.Equal(t, 1, seen[p.AbsoluteIndex], "LED %d", p.AbsoluteIndex)
	}
}

func TestProportionalRemainderSpread(t *testing.T) {
	keys := make([]keyboard.KeyGeometry, 4)
	pl := windowPlacements(t, 0, 9)

	alloc := Allocate(Strategy{Mode: Proportional}, keys, pl, 5.0)

	// 10 LEDs over 4 keys: the first two keys absorb the remainder.
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7}, {8, 9}}, alloc.Keys)
}

func TestProportionalSharedBoundaries(t *testing.T) {
	spec, ok := keyboard.GetSpec(88)
	require.True(t, ok)
	keys := keyboard.BuildGeometry(spec, keyboard.DefaultKeyGapMM)
	pl := windowPlacements(t, 4, 249)

	alloc := Allocate(Strategy{Mode: Proportional, SharedBoundaries: true}, keys, pl, 5.0)

	assert.Equal(t, []int{4, 5, 6, 7}, alloc.Keys[0])
	assert.Equal(t, []int{248, 249}, alloc.Keys[87])

	// Every key except the last ends on the first LED of the next block.
	for k := 0; k < 87; k++ {
		ids := alloc.Keys[k]
		next := alloc.Keys[k+1]
		require.NotEmpty(t, ids)
		require.NotEmpty(t, next)
		assert.Equal(t, next[0], ids[len(ids)-1], "key %d", k)
	}
}

func TestProportionalUnderProvisioned(t *testing.T) {
	keys := make([]keyboard.KeyGeometry, 8)
	pl := windowPlacements(t, 0, 4)

	alloc := Allocate(Strategy{Mode: Proportional}, keys, pl, 5.0)

	for k := 0; k < 5; k++ {
		assert.Equal(t, []int{k}, alloc.Keys[k])
	}
	for k := 5; k < 8; k++ {
		assert.Empty(t, alloc.Keys[k])
	}
	require.Len(t, alloc.Warnings, 1)
	assert.Contains(t, alloc.Warnings[0], "3 of 8 keys")
	assert.Contains(t, alloc.Warnings[0], "key 5")
}

func TestFixedCountBlocks(t *testing.T) {
	keys := make([]keyboard.KeyGeometry, 88)
	pl := windowPlacements(t, 4, 249)

	alloc := Allocate(Strategy{Mode: FixedCount, FixedCount: 2}, keys, pl, 5.0)
	require.Len(t, alloc.Keys, 88)
	assert.Empty(t, alloc.Warnings)

	for k, ids := range alloc.Keys {
		require.Len(t, ids, 2, "key %d", k)
		assert.Equal(t, ids[0]+1, ids[1], "key %d block must be consecutive", k)
		assert.GreaterOrEqual(t, ids[0], 4)
		assert.LessOrEqual(t, ids[1], 249)
	}
	assert.Equal(t, []int{248, 249}, alloc.Keys[87])
}

func TestFixedCountOverflowLeavesKeyUnmapped(t *testing.T) {
	keys := make([]keyboard.KeyGeometry, 88)
	pl := windowPlacements(t, 4, 249)

	alloc := Allocate(Strategy{Mode: FixedCount, FixedCount: 5}, keys, pl, 5.0)

	assert.Empty(t, alloc.Keys[87])
	require.Len(t, alloc.Warnings, 1)
	assert.Contains(t, alloc.Warnings[0], "1 of 88 keys")
	assert.Contains(t, alloc.Warnings[0], "key 87")
}

func TestFixedCountClampsToWindowStart(t *testing.T) {
	keys := make([]keyboard.KeyGeometry, 10)
	pl := windowPlacements(t, 20, 59)

	alloc := Allocate(Strategy{Mode: FixedCount, FixedCount: 6}, keys, pl, 5.0)

	// Key 0's centered block would start before the window.
	assert.Equal(t, []int{20, 21, 22, 23, 24, 25}, alloc.Keys[0])
}

func TestAllocateEmptyWindow(t *testing.T) {
	keys := make([]keyboard.KeyGeometry, 4)
	for _, mode := range []Mode{Proportional, FixedCount, PhysicsBased} {
		t.Run(fmt.Sprintf("mode_%s", mode), func(t *testing.T) {
			alloc := Allocate(Strategy{Mode: mode, FixedCount: 1}, keys, nil, 5.0)
			require.Len(t, alloc.Keys, 4)
			for _, ids := range alloc.Keys {
				assert.Empty(t, ids)
			}
			assert.NotEmpty(t, alloc.Warnings)
		})
	}
}
