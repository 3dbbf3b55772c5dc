package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToReadingComputesDerivedMetrics(t *testing.T) {
	msg := &VitalMessage{
		PatientID:   "PATIENT_001",
		Timestamp:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		HeartRate:   82,
		SystolicBP:  124,
		DiastolicBP: 80,
	}

	reading := msg.ToReading()

	require.NotNil(t, reading.PulsePressure)
	require.NotNil(t, reading.MeanArterialPressure)
	assert.InDelta(t, 44.0, *reading.PulsePressure, 1e-9)
	assert.InDelta(t, 80.0+44.0/3, *reading.MeanArterialPressure, 1e-9)
}

func TestToReadingKeepsProvidedDerivedMetrics(t *testing.T) {
	pp := 40.0
	mapValue := 93.0
	msg := &VitalMessage{
		PatientID:            "PATIENT_001",
		SystolicBP:           124,
		DiastolicBP:          80,
		PulsePressure:        &pp,
		MeanArterialPressure: &mapValue,
	}

	reading := msg.ToReading()

	assert.Equal(t, 40.0, *reading.PulsePressure)
	assert.Equal(t, 93.0, *reading.MeanArterialPressure)
}

func TestEncodeDecodeVitalMessage(t *testing.T) {
	msg := &VitalMessage{
		PatientID:   "PATIENT_001",
		Timestamp:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		HeartRate:   82.5,
		SpO2:        97.2,
		SystolicBP:  124,
		DiastolicBP: 80,
		Gender:      "Male",
	}

	data, err := EncodeVitalMessage(msg)
	require.NoError(t, err)

	decoded, err := DecodeVitalMessage(data)
	require.NoError(t, err)
	assert.Equal(t, msg.PatientID, decoded.PatientID)
	assert.Equal(t, msg.HeartRate, decoded.HeartRate)
	assert.True(t, msg.Timestamp.Equal(decoded.Timestamp))
}

func TestDecodeVitalMessageInvalidJSON(t *testing.T) {
	_, err := DecodeVitalMessage([]byte("{not json"))
	assert.Error(t, err)
}
