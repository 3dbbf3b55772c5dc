package risk

import (
	"github.com/gurnoor/vitalcall/internal/database"
)

// Two-tier physiological reference bounds per vital channel. Mild findings
// come from the normal-range bounds, extreme findings from the outer bounds.
const (
	hrNormalMin   = 60.0
	hrNormalMax   = 100.0
	hrExtremeLow  = 50.0
	hrExtremeHigh = 120.0

	spo2NormalMin  = 95.0
	spo2ExtremeMin = 92.0

	sysNormalMin   = 90.0
	sysNormalMax   = 140.0
	sysExtremeLow  = 85.0
	sysExtremeHigh = 160.0

	diaNormalMin   = 60.0
	diaNormalMax   = 90.0
	diaExtremeLow  = 50.0
	diaExtremeHigh = 100.0

	rrNormalMin   = 12.0
	rrNormalMax   = 20.0
	rrExtremeLow  = 10.0
	rrExtremeHigh = 24.0

	tempNormalMin   = 36.1
	tempNormalMax   = 37.2
	tempExtremeLow  = 35.5
	tempExtremeHigh = 38.0

	// Minimum fraction of individual readings that must cross a threshold
	// for a deviation to count as sustained.
	sustainedRatio = 0.4
)

// metricSpec configures one numeric sub-metric of a channel: where its
// values come from, its tier bounds, and how its statistics are rendered.
// A nil bound disables the corresponding check (SpO2 has no high tiers).
type metricSpec struct {
	label       string // as it appears in finding descriptions
	unit        string // includes any leading space, e.g. " bpm" vs "%"
	decimals    int    // statistic precision: 1 for continuous, 0 for BP
	detected    bool   // extreme descriptions end with "detected"
	extract     func(*database.VitalReading) float64
	extremeHigh *float64
	extremeLow  *float64
	normalMax   *float64
	normalMin   *float64
}

// channelSpec is one vital channel: an ordered list of sub-metrics, each
// evaluated by the same analyzer, first triggering sub-metric wins.
type channelSpec struct {
	name    string
	metrics []metricSpec
}

func bound(v float64) *float64 { return &v }

// channels lists all vital channels in evaluation order.
var channels = []channelSpec{
	{
		name: "heart_rate",
		metrics: []metricSpec{{
			label:       "heart rate",
			unit:        " bpm",
			decimals:    1,
			detected:    true,
			extract:     func(v *database.VitalReading) float64 { return v.HeartRate },
			extremeHigh: bound(hrExtremeHigh),
			extremeLow:  bound(hrExtremeLow),
			normalMax:   bound(hrNormalMax),
			normalMin:   bound(hrNormalMin),
		}},
	},
	{
		name: "spo2",
		metrics: []metricSpec{{
			label:      "oxygen saturation",
			unit:       "%",
			decimals:   1,
			detected:   true,
			extract:    func(v *database.VitalReading) float64 { return v.SpO2 },
			extremeLow: bound(spo2ExtremeMin),
			normalMin:  bound(spo2NormalMin),
		}},
	},
	{
		name: "blood_pressure",
		metrics: []metricSpec{
			{
				label:       "systolic blood pressure",
				unit:        " mmhg",
				decimals:    0,
				extract:     func(v *database.VitalReading) float64 { return float64(v.SystolicBP) },
				extremeHigh: bound(sysExtremeHigh),
				extremeLow:  bound(sysExtremeLow),
				normalMax:   bound(sysNormalMax),
				normalMin:   bound(sysNormalMin),
			},
			{
				label:       "diastolic blood pressure",
				unit:        " mmhg",
				decimals:    0,
				extract:     func(v *database.VitalReading) float64 { return float64(v.DiastolicBP) },
				extremeHigh: bound(diaExtremeHigh),
				extremeLow:  bound(diaExtremeLow),
				normalMax:   bound(diaNormalMax),
				normalMin:   bound(diaNormalMin),
			},
		},
	},
	{
		name: "respiratory_rate",
		metrics: []metricSpec{{
			label:       "respiratory rate",
			unit:        " breaths/min",
			decimals:    1,
			detected:    true,
			extract:     func(v *database.VitalReading) float64 { return v.RespiratoryRate },
			extremeHigh: bound(rrExtremeHigh),
			extremeLow:  bound(rrExtremeLow),
			normalMax:   bound(rrNormalMax),
			normalMin:   bound(rrNormalMin),
		}},
	},
	{
		name: "temperature",
		metrics: []metricSpec{{
			label:       "body temperature",
			unit:        "°c",
			decimals:    1,
			detected:    true,
			extract:     func(v *database.VitalReading) float64 { return v.BodyTemperature },
			extremeHigh: bound(tempExtremeHigh),
			extremeLow:  bound(tempExtremeLow),
			normalMax:   bound(tempNormalMax),
			normalMin:   bound(tempNormalMin),
		}},
	},
}
