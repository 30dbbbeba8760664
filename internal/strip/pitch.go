package strip

import (
	"fmt"
	"math"
)

// pitchEpsilonMM is the threshold below which the nominal pitch is kept.
const pitchEpsilonMM = 0.01

// PitchCalibration records the outcome of the pitch auto-calibration pass.
type PitchCalibration struct {
	WasAdjusted        bool    `json:"was_adjusted"`
	TheoreticalPitchMM float64 `json:"theoretical_pitch_mm"`
	CalibratedPitchMM  float64 `json:"calibrated_pitch_mm"`
	DifferenceMM       float64 `json:"difference_mm"`
	Reason             string  `json:"reason,omitempty"`
}

// CalibratePitch compares the density-derived pitch against the pitch
// implied by the measured distance between the first and last LED centers
// in the window. When the two disagree by more than a small epsilon, the
// measured pitch wins for all downstream placement math.
//
// The pass is a pure function of its inputs: re-running it against the
// same bounds reproduces the same calibrated pitch.
func CalibratePitch(cfg Config, measuredSpanMM float64) PitchCalibration {
	theoretical := cfg.NominalPitchMM()
	cal := PitchCalibration{
		TheoreticalPitchMM: theoretical,
		CalibratedPitchMM:  theoretical,
	}

	if cfg.Count() < 2 || measuredSpanMM <= 0 {
		return cal
	}

	actual := measuredSpanMM / float64(cfg.Count()-1)
	cal.DifferenceMM = math.Abs(actual - theoretical)
	if cal.DifferenceMM <= pitchEpsilonMM {
		return cal
	}

	cal.WasAdjusted = true
	cal.CalibratedPitchMM = actual
	cal.Reason = fmt.Sprintf("actual LED range spans %.1fmm across %d LEDs, requiring pitch adjustment from %.3fmm to %.3fmm",
		measuredSpanMM, cfg.Count(), theoretical, actual)
	return cal
}
