package config

import (
	"fmt"
	"math"
)

// StripCapacityLEDs is the largest addressable LED index plus one. Welds,
// windows, and overrides are validated against it rather than the current
// calibration window, since they may legitimately point past the window.
const StripCapacityLEDs = 512

// MaxWeldOffsetMM bounds a single weld compensation in either direction.
const MaxWeldOffsetMM = 10.0

// Overhang limits accepted under the physics-based distribution mode.
const (
	MinOverhangLimitMM = 0.5
	MaxOverhangLimitMM = 5.0
)

// ValidationError reports a rejected calibration value. Mutations are
// all-or-nothing: a validation failure leaves the stored state untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidateWeld checks a weld position and its millimeter offset.
func ValidateWeld(index int, offsetMM float64) error {
	if index < 0 || index >= StripCapacityLEDs {
		return validationErrorf("weld_offsets", "LED index %d outside strip capacity [0, %d)", index, StripCapacityLEDs)
	}
	if math.Abs(offsetMM) > MaxWeldOffsetMM {
		return validationErrorf("weld_offsets", "offset %.2fmm outside ±%.1fmm", offsetMM, MaxWeldOffsetMM)
	}
	return nil
}

// ValidateKeyOffset checks that the key index exists on the keyboard.
func ValidateKeyOffset(keyCount, key, offset int) error {
	if key < 0 || key >= keyCount {
		return validationErrorf("key_offsets", "key %d outside keyboard range [0, %d)", key, keyCount)
	}
	return nil
}

// ValidateOverride checks a manual LED selection for one key. The list may
// be non-contiguous but every index must be addressable and appear once.
func ValidateOverride(keyCount, key int, leds []int) error {
	if key < 0 || key >= keyCount {
		return validationErrorf("led_selection_overrides", "key %d outside keyboard range [0, %d)", key, keyCount)
	}
	seen := make(map[int]bool, len(leds))
	for _, led := range leds {
		if led < 0 || led >= StripCapacityLEDs {
			return validationErrorf("led_selection_overrides", "LED index %d outside strip capacity [0, %d)", led, StripCapacityLEDs)
		}
		if seen[led] {
			return validationErrorf("led_selection_overrides", "LED index %d listed twice for key %d", led, key)
		}
		seen[led] = true
	}
	return nil
}
