package risk

import (
	"github.com/gurnoor/vitalcall/internal/database"
)

// Overall risk levels.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// Assessment is the rule-based risk classification for one vitals window.
// It is recomputed per request and never persisted. Signals carry the
// finding descriptions in channel evaluation order.
type Assessment struct {
	RiskLevel     string             `json:"risk_level"`
	Signals       []string           `json:"signals"`
	VitalsSummary map[string]float64 `json:"vitals_summary"`
}

// Analyze performs rule-based analysis of a patient's vitals window and
// returns a risk level with supporting signals. It reports statistically
// derived deviations from reference ranges only, never a diagnosis or
// treatment recommendation. An empty window yields the defined default:
// low risk, no signals, empty statistics.
func Analyze(window []*database.VitalReading) *Assessment {
	if len(window) == 0 {
		return &Assessment{
			RiskLevel:     RiskLow,
			Signals:       []string{},
			VitalsSummary: map[string]float64{},
		}
	}

	var findings []*Finding
	for _, spec := range channels {
		if f := analyzeChannel(spec, window); f != nil {
			findings = append(findings, f)
		}
	}

	signals := make([]string, 0, len(findings))
	for _, f := range findings {
		signals = append(signals, f.Description)
	}

	return &Assessment{
		RiskLevel:     aggregate(findings),
		Signals:       signals,
		VitalsSummary: computeSummary(window),
	}
}

// aggregate combines per-channel findings into one risk level: any extreme
// finding wins outright, then any mild, else low. Order-independent.
func aggregate(findings []*Finding) string {
	for _, f := range findings {
		if f.Severity == SeverityExtreme {
			return RiskHigh
		}
	}
	for _, f := range findings {
		if f.Severity == SeverityMild {
			return RiskModerate
		}
	}
	return RiskLow
}

// computeSummary returns avg/min/max per channel over the window.
func computeSummary(window []*database.VitalReading) map[string]float64 {
	if len(window) == 0 {
		return map[string]float64{}
	}

	series := map[string]func(*database.VitalReading) float64{
		"heart_rate":       func(v *database.VitalReading) float64 { return v.HeartRate },
		"spo2":             func(v *database.VitalReading) float64 { return v.SpO2 },
		"systolic_bp":      func(v *database.VitalReading) float64 { return float64(v.SystolicBP) },
		"diastolic_bp":     func(v *database.VitalReading) float64 { return float64(v.DiastolicBP) },
		"respiratory_rate": func(v *database.VitalReading) float64 { return v.RespiratoryRate },
		"temperature":      func(v *database.VitalReading) float64 { return v.BodyTemperature },
	}

	summary := make(map[string]float64, len(series)*3)
	values := make([]float64, len(window))
	for name, extract := range series {
		for i, v := range window {
			values[i] = extract(v)
		}
		summary[name+"_avg"] = mean(values)
		summary[name+"_min"] = minOf(values)
		summary[name+"_max"] = maxOf(values)
	}

	return summary
}
