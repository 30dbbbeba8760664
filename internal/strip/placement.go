// Package strip models LED strip placement along the keyboard axis.
package strip

import (
	"fmt"

	"piano-ledmap/pkg/geometry"
)

// Config describes the LED strip and the active calibration window.
// Window indices are absolute positions on the physical strip, inclusive
// on both ends.
type Config struct {
	LEDsPerMeter  int     `json:"leds_per_meter"`
	LEDWidthMM    float64 `json:"led_width_mm"`
	StartLED      int     `json:"start_led"`
	EndLED        int     `json:"end_led"`
	StripOffsetMM float64 `json:"strip_offset_mm,omitempty"` // 0 means half the LED width
}

// Count returns the number of LEDs in the window.
func (c Config) Count() int {
	return c.EndLED - c.StartLED + 1
}

// NominalPitchMM returns the center-to-center spacing implied by the
// strip density.
func (c Config) NominalPitchMM() float64 {
	return 1000.0 / float64(c.LEDsPerMeter)
}

// OffsetMM returns the physical position of the first LED's center,
// defaulting to half the LED width so the first LED's edge sits at the
// window origin.
func (c Config) OffsetMM() float64 {
	if c.StripOffsetMM != 0 {
		return c.StripOffsetMM
	}
	return c.LEDWidthMM / 2
}

// Validate checks the config for internal consistency.
func (c Config) Validate() error {
	if c.LEDsPerMeter <= 0 {
		return fmt.Errorf("strip density must be positive, got %d LEDs/m", c.LEDsPerMeter)
	}
	if c.LEDWidthMM <= 0 {
		return fmt.Errorf("LED width must be positive, got %.2fmm", c.LEDWidthMM)
	}
	if c.StartLED < 0 {
		return fmt.Errorf("window start %d is negative", c.StartLED)
	}
	if c.EndLED < c.StartLED {
		return fmt.Errorf("window end %d before start %d", c.EndLED, c.StartLED)
	}
	return nil
}

// Placement locates one LED inside the calibration window.
type Placement struct {
	AbsoluteIndex int     `json:"absolute_index"`
	RelativeIndex int     `json:"relative_index"`
	CenterMM      float64 `json:"center_mm"`
}

// Footprint returns the physical span covered by the LED.
func (p Placement) Footprint(ledWidthMM float64) geometry.Span {
	half := ledWidthMM / 2
	return geometry.NewSpan(p.CenterMM-half, p.CenterMM+half)
}

// Placements computes the physical center of every LED in the window.
//
// All spacing math runs on relative indices (0 at the window start), then
// translates back to absolute indices for output. Using absolute indices
// here would shift every center by StartLED*pitch whenever the window does
// not begin at LED 0.
//
// pitchMM is the calibrated pitch (see CalibratePitch). Panics on a
// malformed config; configs are expected to be validated upstream.
func Placements(cfg Config, pitchMM float64) []Placement {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("strip: %v", err))
	}
	if pitchMM <= 0 {
		panic(fmt.Sprintf("strip: pitch must be positive, got %.3fmm", pitchMM))
	}

	offset := cfg.OffsetMM()
	out := make([]Placement, cfg.Count())
	for i := range out {
		out[i] = Placement{
			AbsoluteIndex: cfg.StartLED + i,
			RelativeIndex: i,
			CenterMM:      offset + float64(i)*pitchMM,
		}
	}
	return out
}

// PlacementForIndex locates an arbitrary absolute index against the window,
// extrapolating past its ends along the same spacing.
func PlacementForIndex(cfg Config, pitchMM float64, absoluteIndex int) Placement {
	rel := absoluteIndex - cfg.StartLED
	return Placement{
		AbsoluteIndex: absoluteIndex,
		RelativeIndex: rel,
		CenterMM:      cfg.OffsetMM() + float64(rel)*pitchMM,
	}
}
