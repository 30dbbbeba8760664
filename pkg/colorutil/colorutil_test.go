package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToHSVPrimaries(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"red", 255, 0, 0, 0, 1, 1},
		{"green", 0, 255, 0, 120, 1, 1},
		{"blue", 0, 0, 255, 240, 1, 1},
		{"white", 255, 255, 255, 0, 0, 1},
		{"black", 0, 0, 0, 0, 0, 0},
		{"gray", 128, 128, 128, 0, 0, 128.0 / 255.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tc.r, tc.g, tc.b)
			assert.InDelta(t, tc.h, h, 1e-9)
			assert.InDelta(t, tc.s, s, 1e-9)
			assert.InDelta(t, tc.v, v, 1e-9)
		})
	}
}

func TestHSVRoundtrip(t *testing.T) {
	for _, rgb := range [][3]float64{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {200, 150, 40}, {12, 90, 230}} {
		h, s, v := RGBToHSV(rgb[0], rgb[1], rgb[2])
		r, g, b := HSVToRGB(h, s, v)
		assert.InDelta(t, rgb[0], r, 1e-6)
		assert.InDelta(t, rgb[1], g, 1e-6)
		assert.InDelta(t, rgb[2], b, 1e-6)
	}
}

func TestScoreHexRamp(t *testing.T) {
	assert.Equal(t, "#e62222", ScoreHex(0))
	assert.Equal(t, "#e6e622", ScoreHex(0.5))
	assert.Equal(t, "#22e622", ScoreHex(1))

	// Out-of-range scores clamp to the ramp ends.
	assert.Equal(t, ScoreHex(0), ScoreHex(-3))
	assert.Equal(t, ScoreHex(1), ScoreHex(7))
}
