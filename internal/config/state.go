// Package config holds the mutable strip calibration: the LED window,
// distribution mode, offsets, welds, and manual overrides, persisted
// through a settings store and mutated only through validated setters.
package config

import (
	"sort"

	"piano-ledmap/internal/allocate"
	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/strip"
)

// Calibration is one immutable snapshot of the strip configuration. The
// manager hands out deep copies, so a caller may keep reading a snapshot
// while another caller mutates the live state.
type Calibration struct {
	KeyCount int `json:"key_count"`

	// StartLED and EndLED bound the active window, inclusive.
	StartLED int `json:"start_led"`
	EndLED   int `json:"end_led"`

	Mode             allocate.Mode `json:"distribution_mode"`
	FixedCount       int           `json:"fixed_count,omitempty"`
	OverhangLimitMM  float64       `json:"overhang_limit_mm,omitempty"`
	SharedBoundaries bool          `json:"shared_boundaries,omitempty"`

	LEDsPerMeter int     `json:"leds_per_meter"`
	LEDWidthMM   float64 `json:"led_width_mm"`
	KeyGapMM     float64 `json:"key_gap_mm"`

	// StripOffsetMM positions the first LED's center; 0 means half the
	// LED width.
	StripOffsetMM float64 `json:"strip_offset_mm,omitempty"`

	GlobalOffset int             `json:"global_offset"`
	KeyOffsets   map[int]int     `json:"key_offsets,omitempty"`
	WeldOffsets  map[int]float64 `json:"weld_offsets,omitempty"`
	Overrides    map[int][]int   `json:"led_selection_overrides,omitempty"`

	// Generation counts successful mutations since load. Not persisted.
	Generation uint64 `json:"-"`
}

// DefaultCalibration spans a full 88-key keyboard with a 144 LED/m strip.
func DefaultCalibration() Calibration {
	return Calibration{
		KeyCount:        88,
		StartLED:        0,
		EndLED:          183,
		Mode:            allocate.Proportional,
		FixedCount:      2,
		OverhangLimitMM: 2.0,
		LEDsPerMeter:    144,
		LEDWidthMM:      5.0,
		KeyGapMM:        keyboard.DefaultKeyGapMM,
	}
}

// Clone returns a deep copy: the maps and override slices are duplicated.
func (c Calibration) Clone() Calibration {
	out := c
	if c.KeyOffsets != nil {
		out.KeyOffsets = make(map[int]int, len(c.KeyOffsets))
		for k, v := range c.KeyOffsets {
			out.KeyOffsets[k] = v
		}
	}
	if c.WeldOffsets != nil {
		out.WeldOffsets = make(map[int]float64, len(c.WeldOffsets))
		for k, v := range c.WeldOffsets {
			out.WeldOffsets[k] = v
		}
	}
	if c.Overrides != nil {
		out.Overrides = make(map[int][]int, len(c.Overrides))
		for k, v := range c.Overrides {
			out.Overrides[k] = append([]int(nil), v...)
		}
	}
	return out
}

// StripConfig projects the snapshot onto the placement modeler's input.
func (c Calibration) StripConfig() strip.Config {
	return strip.Config{
		LEDsPerMeter:  c.LEDsPerMeter,
		LEDWidthMM:    c.LEDWidthMM,
		StartLED:      c.StartLED,
		EndLED:        c.EndLED,
		StripOffsetMM: c.StripOffsetMM,
	}
}

// Strategy projects the snapshot onto the allocator's input.
func (c Calibration) Strategy() allocate.Strategy {
	return allocate.Strategy{
		Mode:             c.Mode,
		FixedCount:       c.FixedCount,
		OverhangLimitMM:  c.OverhangLimitMM,
		SharedBoundaries: c.SharedBoundaries,
	}
}

// Validate checks the whole snapshot. It runs as a backstop on every
// commit, so a mutation that would leave the snapshot inconsistent (for
// example shrinking the keyboard below an existing key offset) is
// rejected as a unit.
func (c Calibration) Validate() error {
	if _, ok := keyboard.GetSpec(c.KeyCount); !ok {
		return validationErrorf("key_count", "no keyboard specification for %d keys (have %v)", c.KeyCount, keyboard.ListSizes())
	}
	if c.StartLED < 0 || c.EndLED >= StripCapacityLEDs {
		return validationErrorf("window", "[%d, %d] outside strip capacity [0, %d)", c.StartLED, c.EndLED, StripCapacityLEDs)
	}
	if c.EndLED < c.StartLED {
		return validationErrorf("window", "end_led %d precedes start_led %d", c.EndLED, c.StartLED)
	}
	if c.LEDsPerMeter <= 0 {
		return validationErrorf("leds_per_meter", "must be positive, got %d", c.LEDsPerMeter)
	}
	if c.LEDWidthMM <= 0 {
		return validationErrorf("led_width_mm", "must be positive, got %g", c.LEDWidthMM)
	}
	if c.KeyGapMM < 0 {
		return validationErrorf("key_gap_mm", "must not be negative, got %g", c.KeyGapMM)
	}
	if c.StripOffsetMM < 0 {
		return validationErrorf("strip_offset_mm", "must not be negative, got %g", c.StripOffsetMM)
	}
	if c.Mode == allocate.FixedCount && c.FixedCount < 1 {
		return validationErrorf("fixed_count", "must be at least 1, got %d", c.FixedCount)
	}
	if c.Mode == allocate.PhysicsBased {
		if c.OverhangLimitMM < MinOverhangLimitMM || c.OverhangLimitMM > MaxOverhangLimitMM {
			return validationErrorf("overhang_limit_mm", "%.2fmm outside [%.1f, %.1f]mm", c.OverhangLimitMM, MinOverhangLimitMM, MaxOverhangLimitMM)
		}
	}
	for key, offset := range c.KeyOffsets {
		if err := ValidateKeyOffset(c.KeyCount, key, offset); err != nil {
			return err
		}
	}
	for index, offsetMM := range c.WeldOffsets {
		if err := ValidateWeld(index, offsetMM); err != nil {
			return err
		}
	}
	for key, leds := range c.Overrides {
		if err := ValidateOverride(c.KeyCount, key, leds); err != nil {
			return err
		}
	}
	return nil
}

// WeldIndices returns the configured weld positions in ascending order.
func (c Calibration) WeldIndices() []int {
	out := make([]int, 0, len(c.WeldOffsets))
	for index := range c.WeldOffsets {
		out = append(out, index)
	}
	sort.Ints(out)
	return out
}

// OverriddenKeys returns the keys with a manual selection, ascending.
func (c Calibration) OverriddenKeys() []int {
	out := make([]int, 0, len(c.Overrides))
	for key := range c.Overrides {
		out = append(out, key)
	}
	sort.Ints(out)
	return out
}
