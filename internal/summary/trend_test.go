package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gurnoor/vitalcall/internal/database"
)

func trendWindow(n int, mutate func(i int, v *database.VitalReading)) []*database.VitalReading {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	window := make([]*database.VitalReading, n)
	for i := 0; i < n; i++ {
		v := &database.VitalReading{
			PatientID:       "PATIENT_001",
			Timestamp:       start.Add(time.Duration(i) * time.Minute),
			HeartRate:       75,
			RespiratoryRate: 16,
			BodyTemperature: 36.8,
			SpO2:            98,
			SystolicBP:      120,
			DiastolicBP:     80,
			Age:             64,
			Gender:          "Male",
		}
		if mutate != nil {
			mutate(i, v)
		}
		window[i] = v
	}
	return window
}

func TestDetectTrendDeterioratingHeartRate(t *testing.T) {
	window := trendWindow(20, func(i int, v *database.VitalReading) {
		v.HeartRate = 70 + float64(i)*2
	})

	assert.Equal(t, TrendDeteriorating, DetectTrend(window))
}

func TestDetectTrendImprovingHeartRate(t *testing.T) {
	window := trendWindow(20, func(i int, v *database.VitalReading) {
		v.HeartRate = 108 - float64(i)*2
	})

	assert.Equal(t, TrendImproving, DetectTrend(window))
}

func TestDetectTrendFallingSpO2(t *testing.T) {
	window := trendWindow(20, func(i int, v *database.VitalReading) {
		v.SpO2 = 99 - float64(i)*0.25
	})

	assert.Equal(t, TrendDeteriorating, DetectTrend(window))
}

func TestDetectTrendRisingSystolic(t *testing.T) {
	window := trendWindow(20, func(i int, v *database.VitalReading) {
		v.SystolicBP = 115 + i
	})

	assert.Equal(t, TrendDeteriorating, DetectTrend(window))
}

func TestDetectTrendStable(t *testing.T) {
	assert.Equal(t, TrendStable, DetectTrend(trendWindow(20, nil)))
}

func TestDetectTrendEmptyWindow(t *testing.T) {
	assert.Equal(t, TrendStable, DetectTrend(nil))
}

func TestDetectTrendSmallWindow(t *testing.T) {
	// Under 4 readings the quartile size clamps to 1 and the segments can
	// overlap; the comparison still runs on single readings.
	window := trendWindow(2, func(i int, v *database.VitalReading) {
		v.HeartRate = 70 + float64(i)*15
	})

	assert.Equal(t, TrendDeteriorating, DetectTrend(window))
}

func TestDetectTrendSingleReading(t *testing.T) {
	assert.Equal(t, TrendStable, DetectTrend(trendWindow(1, nil)))
}
