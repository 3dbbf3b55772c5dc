package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurnoor/vitalcall/internal/database"
	"github.com/gurnoor/vitalcall/internal/risk"
)

func TestFormatVitalsEmptyWindow(t *testing.T) {
	_, err := formatVitals(nil, &risk.Assessment{})

	assert.ErrorIs(t, err, ErrEmptyVitals)
}

func TestFormatVitals(t *testing.T) {
	window := trendWindow(10, func(i int, v *database.VitalReading) {
		v.HeartRate = 100 + float64(i)
	})
	assessment := risk.Analyze(window)

	data, err := formatVitals(window, assessment)
	require.NoError(t, err)

	assert.Equal(t, "10:00", data.StartTime)
	assert.Equal(t, "10:09", data.EndTime)
	assert.Equal(t, 10, data.NumReadings)
	assert.InDelta(t, 104.5, data.HRAvg, 1e-9)
	assert.InDelta(t, 100.0, data.HRMin, 1e-9)
	assert.InDelta(t, 109.0, data.HRMax, 1e-9)
	assert.Equal(t, 64, data.Age)
	assert.Equal(t, "Male", data.Gender)
	assert.Equal(t, assessment.RiskLevel, data.RiskLevel)
}

func TestBuildPrompts(t *testing.T) {
	data := &promptData{
		StartTime:   "10:00",
		EndTime:     "12:00",
		NumReadings: 120,
		HRAvg:       112.4, HRMin: 98, HRMax: 131,
		SpO2Avg: 93.1, SpO2Min: 91, SpO2Max: 96,
		SysAvg: 152, SysMin: 140, SysMax: 168,
		DiaAvg: 94, DiaMin: 85, DiaMax: 102,
		RRAvg: 21.5, RRMin: 17, RRMax: 26,
		TempAvg: 37.8, TempMin: 37.1, TempMax: 38.4,
		Trend:     TrendDeteriorating,
		Age:       64,
		Gender:    "Male",
		RiskLevel: risk.RiskHigh,
		Signals: []string{
			"elevated heart rate detected (avg: 112.4 bpm)",
			"low oxygen saturation detected (avg: 93.1%)",
		},
	}

	system, user := buildPrompts("PATIENT_001", data)

	assert.Contains(t, system, "NOT a doctor")
	assert.Contains(t, system, "maximum 200 words")

	assert.Contains(t, user, "generate a summary for patient PATIENT_001")
	assert.Contains(t, user, "time window: last 2 hours (10:00 to 12:00)")
	assert.Contains(t, user, "total readings: 120")
	assert.Contains(t, user, "heart rate: avg 112.4 bpm (range: 98.0-131.0)")
	assert.Contains(t, user, "blood pressure: avg 152/94 mmhg (systolic range: 140-168)")
	assert.Contains(t, user, "overall trend: deteriorating")
	assert.Contains(t, user, "risk assessment: high")
	assert.Contains(t, user, "concerning patterns detected:")
	assert.Contains(t, user, "- elevated heart rate detected (avg: 112.4 bpm)")
	assert.Contains(t, user, "- low oxygen saturation detected (avg: 93.1%)")
	assert.Contains(t, user, "patient context: 64 year old Male")
	assert.Contains(t, user, "max 200 words")
}

func TestBuildPromptsWithoutSignals(t *testing.T) {
	data := &promptData{
		StartTime: "10:00", EndTime: "12:00", NumReadings: 60,
		Trend: TrendStable, Age: 40, Gender: "Female", RiskLevel: risk.RiskLow,
	}

	_, user := buildPrompts("PATIENT_002", data)

	assert.NotContains(t, user, "concerning patterns detected")
	assert.Contains(t, user, "risk assessment: low")
}

func TestBuildPromptsIsDeterministic(t *testing.T) {
	data := &promptData{
		StartTime: "10:00", EndTime: "12:00", NumReadings: 60,
		Trend: TrendStable, Age: 40, Gender: "Female", RiskLevel: risk.RiskLow,
	}

	system1, user1 := buildPrompts("PATIENT_002", data)
	system2, user2 := buildPrompts("PATIENT_002", data)

	assert.Equal(t, system1, system2)
	assert.Equal(t, user1, user2)
}
