// Package allocate turns key geometry and LED placements into a base
// key-to-LED assignment under one of three distribution strategies.
package allocate

import (
	"fmt"

	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/strip"
)

// Mode selects the distribution strategy.
type Mode int

const (
	Proportional Mode = iota // even index partition of the window
	FixedCount               // n consecutive LEDs per key
	PhysicsBased             // candidates by physical overlap, plus rescue
)

func (m Mode) String() string {
	switch m {
	case Proportional:
		return "Proportional"
	case FixedCount:
		return "FixedCount"
	case PhysicsBased:
		return "PhysicsBased"
	default:
		return "Unknown"
	}
}

// Strategy carries the distribution mode and its parameters.
type Strategy struct {
	Mode Mode `json:"mode"`

	// FixedCount is the block size per key under FixedCount mode.
	FixedCount int `json:"fixed_count,omitempty"`

	// OverhangLimitMM gates candidate admission under PhysicsBased mode.
	OverhangLimitMM float64 `json:"overhang_limit_mm,omitempty"`

	// SharedBoundaries lets adjacent keys share a boundary LED under
	// Proportional mode: every key except the last also takes the first
	// LED of the next key's block.
	SharedBoundaries bool `json:"shared_boundaries,omitempty"`
}

// Allocation is a base mapping: one ascending LED index list per key.
type Allocation struct {
	Keys     [][]int
	Warnings []string
}

// Allocate computes the base assignment for every key.
func Allocate(strategy Strategy, keys []keyboard.KeyGeometry, placements []strip.Placement, ledWidthMM float64) Allocation {
	var alloc Allocation
	switch strategy.Mode {
	case FixedCount:
		alloc = fixedCount(strategy.FixedCount, len(keys), placements)
	case PhysicsBased:
		alloc = physicsBased(strategy.OverhangLimitMM, keys, placements, ledWidthMM)
	default:
		alloc = proportional(len(keys), placements, strategy.SharedBoundaries)
	}

	empty := 0
	first := -1
	for k, ids := range alloc.Keys {
		if len(ids) == 0 {
			empty++
			if first < 0 {
				first = k
			}
		}
	}
	if empty > 0 {
		alloc.Warnings = append(alloc.Warnings, fmt.Sprintf(
			"%d of %d keys have no LEDs (first: key %d); widen the window, increase strip density, or switch distribution mode",
			empty, len(alloc.Keys), first))
	}
	return alloc
}
