package summary

import (
	"github.com/gurnoor/vitalcall/internal/database"
)

// Trajectory labels for a vitals window.
const (
	TrendDeteriorating = "deteriorating"
	TrendImproving     = "improving"
	TrendStable        = "stable"
)

// DetectTrend classifies the overall trajectory of a window by comparing
// the leading and trailing quartile means of heart rate, SpO2 and systolic
// pressure. This is a heuristic label with fixed thresholds, not a
// statistical test. For windows under 4 readings the quartiles overlap at
// the boundary; that behavior is deliberate and kept.
func DetectTrend(window []*database.VitalReading) string {
	if len(window) == 0 {
		return TrendStable
	}

	q := len(window) / 4
	if q < 1 {
		q = 1
	}
	first := window[:q]
	last := window[len(window)-q:]

	hrChange := segmentMean(last, heartRate) - segmentMean(first, heartRate)
	spo2Change := segmentMean(last, spo2) - segmentMean(first, spo2)
	sysChange := segmentMean(last, systolic) - segmentMean(first, systolic)

	switch {
	case hrChange > 10 || spo2Change < -2 || sysChange > 10:
		return TrendDeteriorating
	case hrChange < -10 || spo2Change > 2 || sysChange < -10:
		return TrendImproving
	default:
		return TrendStable
	}
}

func heartRate(v *database.VitalReading) float64 { return v.HeartRate }
func spo2(v *database.VitalReading) float64      { return v.SpO2 }
func systolic(v *database.VitalReading) float64  { return float64(v.SystolicBP) }

func segmentMean(segment []*database.VitalReading, extract func(*database.VitalReading) float64) float64 {
	var sum float64
	for _, v := range segment {
		sum += extract(v)
	}
	return sum / float64(len(segment))
}
