package database

import (
	"time"
)

// VitalReading represents a single vital-signs measurement for a patient
// at a specific time. Pulse pressure and mean arterial pressure are derived
// metrics that may be precomputed by the ingestion pipeline.
type VitalReading struct {
	ID                   int64     `json:"id"`
	PatientID            string    `json:"patient_id"`
	Timestamp            time.Time `json:"timestamp"`
	HeartRate            float64   `json:"heart_rate"`
	RespiratoryRate      float64   `json:"respiratory_rate"`
	BodyTemperature      float64   `json:"body_temperature"`
	SpO2                 float64   `json:"spo2"`
	SystolicBP           int       `json:"systolic_bp"`
	DiastolicBP          int       `json:"diastolic_bp"`
	Age                  int       `json:"age"`
	Gender               string    `json:"gender"`
	PulsePressure        *float64  `json:"pulse_pressure"`
	MeanArterialPressure *float64  `json:"mean_arterial_pressure"`
}
