package protocol

import (
	"encoding/json"
	"time"

	"github.com/gurnoor/vitalcall/internal/database"
)

// VitalMessage is the internal Kafka message format for one vital-signs
// reading on its way into the store.
type VitalMessage struct {
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
	PulsePressure        *float64  `json:"pulse_pressure,omitempty"`
	MeanArterialPressure *float64  `json:"mean_arterial_pressure,omitempty"`
	ReceivedAt           time.Time `json:"received_at"`
}

// ToReading converts the message into a storable reading, computing the
// derived pressure metrics when the producer did not supply them.
func (m *VitalMessage) ToReading() *database.VitalReading {
	reading := &database.VitalReading{
		PatientID:            m.PatientID,
		Timestamp:            m.Timestamp,
		HeartRate:            m.HeartRate,
		RespiratoryRate:      m.RespiratoryRate,
		BodyTemperature:      m.BodyTemperature,
		SpO2:                 m.SpO2,
		SystolicBP:           m.SystolicBP,
		DiastolicBP:          m.DiastolicBP,
		Age:                  m.Age,
		Gender:               m.Gender,
		PulsePressure:        m.PulsePressure,
		MeanArterialPressure: m.MeanArterialPressure,
	}

	if reading.PulsePressure == nil {
		pp := float64(m.SystolicBP - m.DiastolicBP)
		reading.PulsePressure = &pp
	}
	if reading.MeanArterialPressure == nil {
		mapValue := float64(m.DiastolicBP) + *reading.PulsePressure/3
		reading.MeanArterialPressure = &mapValue
	}

	return reading
}

// EncodeVitalMessage encodes a VitalMessage to JSON
func EncodeVitalMessage(msg *VitalMessage) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeVitalMessage decodes JSON to VitalMessage
func DecodeVitalMessage(data []byte) (*VitalMessage, error) {
	var msg VitalMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
