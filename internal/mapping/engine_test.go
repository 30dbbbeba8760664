package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"piano-ledmap/internal/allocate"
	"piano-ledmap/internal/config"
	"piano-ledmap/internal/keyboard"
	"piano-ledmap/internal/overlap"
	"piano-ledmap/internal/strip"
)

// goldenCal is the 246-LED reference setup: an 88-key keyboard with the
// window at LEDs 4 through 249 and boundary sharing enabled.
func goldenCal() config.Calibration {
	cal := config.DefaultCalibration()
	cal.StartLED = 4
	cal.EndLED = 249
	cal.LEDsPerMeter = 200
	cal.SharedBoundaries = true
	return cal
}

func TestComputeGoldenScenario(t *testing.T) {
	res, err := Compute(goldenCal())
	require.NoError(t, err)

	assert.Equal(t, []int{4, 5, 6, 7}, res.LEDsForKey(0))
	assert.Equal(t, []int{248, 249}, res.LEDsForKey(87))
}

func TestComputeCoversEveryKey(t *testing.T) {
	for _, mode := range []allocate.Mode{allocate.Proportional, allocate.FixedCount, allocate.PhysicsBased} {
		t.Run(mode.String(), func(t *testing.T) {
			cal := config.DefaultCalibration()
			cal.Mode = mode

			res, err := Compute(cal)
			require.NoError(t, err)
			require.Len(t, res.Assignments, 88)

			for key, a := range res.Assignments {
				for i := 1; i < len(a.LEDIndices); i++ {
					assert.Greater(t, a.LEDIndices[i], a.LEDIndices[i-1], "key %d", key)
				}
			}
		})
	}
}

// With no offsets, welds, or overrides the cascade is a no-op: the final
// mapping equals the bare allocation.
func TestComputeIdentityMatchesBaseAllocation(t *testing.T) {
	cal := goldenCal()

	res, err := Compute(cal)
	require.NoError(t, err)

	spec, ok := keyboard.GetSpec(cal.KeyCount)
	require.True(t, ok)
	keys := keyboard.BuildGeometry(spec, cal.KeyGapMM)
	placements := strip.Placements(cal.StripConfig(), res.Pitch.CalibratedPitchMM)
	base := allocate.Allocate(cal.Strategy(), keys, placements, cal.LEDWidthMM)

	require.Len(t, base.Keys, 88)
	for key := range base.Keys {
		assert.Equal(t, base.Keys[key], res.LEDsForKey(key), "key %d", key)
	}
}

func TestComputeWeldShiftsDownstreamKeys(t *testing.T) {
	cal := goldenCal()
	before, err := Compute(cal)
	require.NoError(t, err)

	cal.WeldOffsets = map[int]float64{100: before.Pitch.CalibratedPitchMM}
	after, err := Compute(cal)
	require.NoError(t, err)

	// Clamping at the window end may collapse neighboring indices, so
	// compare through membership rather than position.
	for key := range before.Assignments {
		got := after.LEDsForKey(key)
		for _, id := range before.LEDsForKey(key) {
			want := id
			if id > 100 {
				want++
			}
			if want > cal.EndLED {
				want = cal.EndLED
			}
			assert.Contains(t, got, want, "key %d LED %d", key, id)
		}
	}
}

func TestComputeMonotonicOverhangThreshold(t *testing.T) {
	prev := -1
	for _, limit := range []float64{0.5, 1.0, 2.0, 3.5, 5.0} {
		cal := config.DefaultCalibration()
		cal.Mode = allocate.PhysicsBased
		cal.OverhangLimitMM = limit

		res, err := Compute(cal)
		require.NoError(t, err)

		total := 0
		for _, a := range res.Assignments {
			total += len(a.LEDIndices)
		}
		assert.GreaterOrEqual(t, total, prev, "limit %.1f", limit)
		prev = total
	}
}

func TestComputeReportsPitchCalibration(t *testing.T) {
	cal := goldenCal()

	res, err := Compute(cal)
	require.NoError(t, err)

	// 246 LEDs at a nominal 5mm pitch cannot span the keyboard exactly,
	// so the calibrated pitch takes over.
	assert.True(t, res.Pitch.WasAdjusted)
	assert.InDelta(t, 5.0, res.Pitch.TheoreticalPitchMM, 1e-9)
	assert.Greater(t, res.Pitch.CalibratedPitchMM, res.Pitch.TheoreticalPitchMM)
	assert.NotEmpty(t, res.Pitch.Reason)

	again, err := Compute(cal)
	require.NoError(t, err)
	assert.InDelta(t, res.Pitch.CalibratedPitchMM, again.Pitch.CalibratedPitchMM, 1e-6)
}

func TestComputeDeterministic(t *testing.T) {
	cal := goldenCal()
	cal.KeyOffsets = map[int]int{10: 1}
	cal.WeldOffsets = map[int]float64{60: 5.2}
	cal.Overrides = map[int][]int{40: {110, 111}}

	a, err := Compute(cal)
	require.NoError(t, err)
	b, err := Compute(cal)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeUnderProvisionWarning(t *testing.T) {
	cal := config.DefaultCalibration()
	cal.Mode = allocate.FixedCount
	cal.FixedCount = 5
	cal.EndLED = 100

	res, err := Compute(cal)
	require.NoError(t, err)

	require.NotEmpty(t, res.Quality.Warnings)
	assert.Contains(t, res.Quality.Warnings[0], "keys have no LEDs")
	assert.Greater(t, res.Quality.KeysByLEDCount[0], 0)
}

func TestComputeRejectsInvalidSnapshot(t *testing.T) {
	cal := config.DefaultCalibration()
	cal.KeyCount = 3

	_, err := Compute(cal)
	require.Error(t, err)
	var verr *config.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestComputeQualityAggregates(t *testing.T) {
	res, err := Compute(config.DefaultCalibration())
	require.NoError(t, err)

	q := res.Quality
	assert.GreaterOrEqual(t, q.AvgSymmetry, 0.0)
	assert.LessOrEqual(t, q.AvgSymmetry, 1.0)
	assert.GreaterOrEqual(t, q.AvgConsistency, 0.0)
	assert.LessOrEqual(t, q.AvgConsistency, 1.0)
	assert.Greater(t, q.TotalLEDsUsed, 0)
	assert.LessOrEqual(t, q.TotalLEDsUsed, 184)

	keys := 0
	for _, n := range q.KeysByLEDCount {
		keys += n
	}
	assert.Equal(t, 88, keys)

	assert.GreaterOrEqual(t, q.OverallGrade, overlap.QualityPoor)
	assert.LessOrEqual(t, q.OverallGrade, overlap.QualityExcellent)
}

func TestKeyForLED(t *testing.T) {
	res, err := Compute(config.DefaultCalibration())
	require.NoError(t, err)

	leds := res.LEDsForKey(40)
	require.NotEmpty(t, leds)
	assert.Equal(t, 40, res.KeyForLED(leds[0]))
	assert.Equal(t, -1, res.KeyForLED(400))
	assert.Nil(t, res.LEDsForKey(-1))
	assert.Nil(t, res.LEDsForKey(88))
}
