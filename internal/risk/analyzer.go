package risk

import (
	"fmt"
	"strconv"

	"github.com/gurnoor/vitalcall/internal/database"
)

// Severity tier of a channel finding. Extreme dominates mild in aggregation.
type Severity string

const (
	SeverityMild    Severity = "mild"
	SeverityExtreme Severity = "extreme"
)

// Finding is one abnormal pattern detected on a vital channel. At most one
// finding is emitted per channel per window.
type Finding struct {
	Severity    Severity
	Vital       string
	Description string
}

// analyzeChannel runs a channel's sub-metrics in order and returns the first
// finding, or nil if the channel is silent.
func analyzeChannel(spec channelSpec, window []*database.VitalReading) *Finding {
	for _, m := range spec.metrics {
		if f := analyzeMetric(spec.name, m, window); f != nil {
			return f
		}
	}
	return nil
}

// analyzeMetric applies the four-step tier check to one sub-metric:
// extreme-high, extreme-low, mild-high, mild-low, first match wins. The
// mild checks are guarded by the mean staying inside the extreme bound so a
// value already classified extreme is never double-counted as mild.
func analyzeMetric(channel string, m metricSpec, window []*database.VitalReading) *Finding {
	if len(window) == 0 {
		return nil
	}

	values := make([]float64, len(window))
	for i, v := range window {
		values[i] = m.extract(v)
	}

	avg := mean(values)

	if m.extremeHigh != nil {
		if ok, pct := isSustained(values, *m.extremeHigh, above); ok {
			return &Finding{
				Severity: SeverityExtreme,
				Vital:    channel,
				Description: fmt.Sprintf("elevated %s%s (avg: %s%s, max: %s%s, %.0f%% of readings > %s%s)",
					m.label, detectedSuffix(m),
					m.fmtValue(avg), m.unit,
					m.fmtValue(maxOf(values)), m.unit,
					pct*100, fmtThreshold(*m.extremeHigh), m.unit),
			}
		}
	}

	if m.extremeLow != nil {
		if ok, pct := isSustained(values, *m.extremeLow, below); ok {
			return &Finding{
				Severity: SeverityExtreme,
				Vital:    channel,
				Description: fmt.Sprintf("low %s%s (avg: %s%s, min: %s%s, %.0f%% of readings < %s%s)",
					m.label, detectedSuffix(m),
					m.fmtValue(avg), m.unit,
					m.fmtValue(minOf(values)), m.unit,
					pct*100, fmtThreshold(*m.extremeLow), m.unit),
			}
		}
	}

	if m.normalMax != nil {
		if ok, pct := isSustained(values, *m.normalMax, above); ok && (m.extremeHigh == nil || avg < *m.extremeHigh) {
			return &Finding{
				Severity: SeverityMild,
				Vital:    channel,
				Description: fmt.Sprintf("mildly elevated %s (avg: %s%s, %.0f%% of readings > %s%s)",
					m.label,
					m.fmtValue(avg), m.unit,
					pct*100, fmtThreshold(*m.normalMax), m.unit),
			}
		}
	}

	if m.normalMin != nil {
		if ok, pct := isSustained(values, *m.normalMin, below); ok && (m.extremeLow == nil || avg > *m.extremeLow) {
			return &Finding{
				Severity: SeverityMild,
				Vital:    channel,
				Description: fmt.Sprintf("mildly low %s (avg: %s%s, %.0f%% of readings < %s%s)",
					m.label,
					m.fmtValue(avg), m.unit,
					pct*100, fmtThreshold(*m.normalMin), m.unit),
			}
		}
	}

	return nil
}

func (m metricSpec) fmtValue(v float64) string {
	return strconv.FormatFloat(v, 'f', m.decimals, 64)
}

func fmtThreshold(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

func detectedSuffix(m metricSpec) string {
	if m.detected {
		return " detected"
	}
	return ""
}
