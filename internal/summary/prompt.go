package summary

import (
	"fmt"
	"strings"

	"github.com/gurnoor/vitalcall/internal/database"
	"github.com/gurnoor/vitalcall/internal/risk"
)

// promptData carries the formatted statistics and metadata rendered into
// the summarization request.
type promptData struct {
	StartTime   string
	EndTime     string
	NumReadings int

	HRAvg, HRMin, HRMax       float64
	SpO2Avg, SpO2Min, SpO2Max float64
	SysAvg, SysMin, SysMax    float64
	DiaAvg, DiaMin, DiaMax    float64
	RRAvg, RRMin, RRMax       float64
	TempAvg, TempMin, TempMax float64

	Trend     string
	Age       int
	Gender    string
	RiskLevel string
	Signals   []string
}

// formatVitals extracts prompt inputs from the window and its risk
// assessment: time bounds, per-channel statistics, trend, and patient
// context taken from the first reading.
func formatVitals(window []*database.VitalReading, assessment *risk.Assessment) (*promptData, error) {
	if len(window) == 0 {
		return nil, ErrEmptyVitals
	}

	stats := assessment.VitalsSummary

	return &promptData{
		StartTime:   window[0].Timestamp.Format("15:04"),
		EndTime:     window[len(window)-1].Timestamp.Format("15:04"),
		NumReadings: len(window),

		HRAvg: stats["heart_rate_avg"], HRMin: stats["heart_rate_min"], HRMax: stats["heart_rate_max"],
		SpO2Avg: stats["spo2_avg"], SpO2Min: stats["spo2_min"], SpO2Max: stats["spo2_max"],
		SysAvg: stats["systolic_bp_avg"], SysMin: stats["systolic_bp_min"], SysMax: stats["systolic_bp_max"],
		DiaAvg: stats["diastolic_bp_avg"], DiaMin: stats["diastolic_bp_min"], DiaMax: stats["diastolic_bp_max"],
		RRAvg: stats["respiratory_rate_avg"], RRMin: stats["respiratory_rate_min"], RRMax: stats["respiratory_rate_max"],
		TempAvg: stats["temperature_avg"], TempMin: stats["temperature_min"], TempMax: stats["temperature_max"],

		Trend:     DetectTrend(window),
		Age:       window[0].Age,
		Gender:    window[0].Gender,
		RiskLevel: assessment.RiskLevel,
		Signals:   assessment.Signals,
	}, nil
}

const systemPrompt = `you are a medical data summarization assistant for an automated patient monitoring system.

your role:
- summarize vital signs data in clear, neutral language
- highlight concerning trends objectively
- use terminology appropriate for healthcare professionals

critical constraints:
- you are NOT a doctor and must NOT provide diagnoses
- you must NOT recommend treatments or interventions
- only describe what the data shows, not what it means clinically
- use phrases like "data shows" or "vitals indicate" not "patient has" or "diagnosis of"

output requirements:
- maximum 200 words
- 2-3 short paragraphs
- professional medical terminology
- neutral, objective tone
- suitable for text-to-speech phone delivery`

// buildPrompts renders the system and user prompts for the summarization
// model. Rendering is deterministic given the same inputs.
func buildPrompts(patientID string, d *promptData) (string, string) {
	var signalsText string
	if len(d.Signals) > 0 {
		var b strings.Builder
		b.WriteString("\n\nconcerning patterns detected:\n")
		for i, signal := range d.Signals {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- " + signal)
		}
		signalsText = b.String()
	}

	userPrompt := fmt.Sprintf(`generate a summary for patient %s based on the following data:

time window: last 2 hours (%s to %s)
total readings: %d

vital signs summary:
- heart rate: avg %.1f bpm (range: %.1f-%.1f)
- oxygen saturation: avg %.1f%% (range: %.1f-%.1f%%)
- blood pressure: avg %.0f/%.0f mmhg (systolic range: %.0f-%.0f)
- respiratory rate: avg %.1f breaths/min (range: %.1f-%.1f)
- temperature: avg %.1f°c (range: %.1f-%.1f)

overall trend: %s
risk assessment: %s%s

patient context: %d year old %s

generate a concise summary (max %d words) suitable for a phone call to a healthcare provider.
include: time window, overall trend, key vital statistics, and any concerning patterns.`,
		patientID,
		d.StartTime, d.EndTime,
		d.NumReadings,
		d.HRAvg, d.HRMin, d.HRMax,
		d.SpO2Avg, d.SpO2Min, d.SpO2Max,
		d.SysAvg, d.DiaAvg, d.SysMin, d.SysMax,
		d.RRAvg, d.RRMin, d.RRMax,
		d.TempAvg, d.TempMin, d.TempMax,
		d.Trend,
		d.RiskLevel, signalsText,
		d.Age, d.Gender,
		maxSummaryWords,
	)

	return systemPrompt, userPrompt
}
