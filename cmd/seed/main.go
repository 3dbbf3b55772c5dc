// Command seed generates a synthetic deteriorating vitals time series for
// one patient and publishes it to the raw readings topic, where the ingest
// service picks it up. Useful for exercising the pipeline end to end
// without real monitor data.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/internal/protocol"
	"github.com/gurnoor/vitalcall/internal/queue"
	"github.com/gurnoor/vitalcall/pkg/config"
	"github.com/gurnoor/vitalcall/pkg/logger"
)

// Baseline values for a stable adult patient.
const (
	baseHeartRate       = 78.0
	baseRespiratoryRate = 16.0
	baseTemperature     = 36.8
	baseSpO2            = 98.0
	baseSystolic        = 122.0
	baseDiastolic       = 78.0
	patientAge          = 64
	patientGender       = "Male"
)

// Per-minute deterioration trends: rising heart rate and blood pressure,
// falling oxygen saturation.
const (
	heartRateTrend = 0.15
	spo2Trend      = -0.03
	systolicTrend  = 0.08
	tempTrend      = 0.002
)

func main() {
	patientID := flag.String("patient", "PATIENT_001", "patient identifier")
	numRecords := flag.Int("records", 150, "number of readings to generate, one per minute")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "vitalcall-seed")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	producer := queue.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicVitals)
	defer producer.Close()

	messages := generateSeries(*patientID, *numRecords)

	ctx := context.Background()
	published := 0
	for _, msg := range messages {
		payload, err := protocol.EncodeVitalMessage(msg)
		if err != nil {
			zlog.Error("failed to encode reading", zap.Error(err))
			continue
		}
		if err := producer.Publish(ctx, msg.PatientID, payload); err != nil {
			zlog.Error("failed to publish reading", zap.Error(err))
			continue
		}
		published++
	}

	zlog.Info("seed complete",
		zap.String("patient_id", *patientID),
		zap.Int("published", published),
		zap.Int("generated", len(messages)),
	)
}

// generateSeries produces a random walk over the baseline with a gradual
// deterioration trend, one reading per minute ending now.
func generateSeries(patientID string, numRecords int) []*protocol.VitalMessage {
	start := time.Now().UTC().Add(-time.Duration(numRecords) * time.Minute)

	hr := baseHeartRate
	rr := baseRespiratoryRate
	temp := baseTemperature
	spo2 := baseSpO2
	systolic := baseSystolic
	diastolic := baseDiastolic

	messages := make([]*protocol.VitalMessage, 0, numRecords)
	for i := 0; i < numRecords; i++ {
		hr = clamp(hr+gauss(heartRateTrend, 2.5), 45, 180)
		rr = clamp(rr+gauss(0, 1.0), 8, 30)
		temp = clamp(temp+gauss(tempTrend, 0.15), 35.0, 41.0)
		spo2 = clamp(spo2+gauss(spo2Trend, 0.5), 70, 100)
		systolic = clamp(systolic+gauss(systolicTrend, 3.0), 80, 200)
		diastolic = clamp(diastolic+gauss(0.02, 2.0), 50, 130)

		if systolic <= diastolic {
			systolic = diastolic + 20
		}

		sys := int(math.Round(systolic))
		dia := int(math.Round(diastolic))
		pulsePressure := float64(sys - dia)
		meanArterial := float64(dia) + pulsePressure/3

		messages = append(messages, &protocol.VitalMessage{
			PatientID:            patientID,
			Timestamp:            start.Add(time.Duration(i) * time.Minute),
			HeartRate:            round1(hr),
			RespiratoryRate:      round1(rr),
			BodyTemperature:      round2(temp),
			SpO2:                 round2(spo2),
			SystolicBP:           sys,
			DiastolicBP:          dia,
			Age:                  patientAge,
			Gender:               patientGender,
			PulsePressure:        &pulsePressure,
			MeanArterialPressure: &meanArterial,
			ReceivedAt:           time.Now().UTC(),
		})
	}

	return messages
}

func gauss(mean, stddev float64) float64 {
	return mean + rand.NormFloat64()*stddev
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
