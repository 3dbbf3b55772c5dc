package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &DB{conn}, mock
}

var vitalRowColumns = []string{
	"id", "patient_id", "timestamp", "heart_rate", "respiratory_rate",
	"body_temperature", "spo2", "systolic_bp", "diastolic_bp", "age", "gender",
	"pulse_pressure", "mean_arterial_pressure",
}

func TestInsertVital(t *testing.T) {
	db, mock := newMockDB(t)

	pp := 44.0
	mapValue := 94.67
	reading := &VitalReading{
		PatientID:            "PATIENT_001",
		Timestamp:            time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		HeartRate:            82.5,
		RespiratoryRate:      17.0,
		BodyTemperature:      36.9,
		SpO2:                 97.2,
		SystolicBP:           124,
		DiastolicBP:          80,
		Age:                  64,
		Gender:               "Male",
		PulsePressure:        &pp,
		MeanArterialPressure: &mapValue,
	}

	mock.ExpectQuery("INSERT INTO vitals").
		WithArgs(
			reading.PatientID, reading.Timestamp, reading.HeartRate,
			reading.RespiratoryRate, reading.BodyTemperature, reading.SpO2,
			reading.SystolicBP, reading.DiastolicBP, reading.Age, reading.Gender,
			reading.PulsePressure, reading.MeanArterialPressure,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	require.NoError(t, db.InsertVital(reading))
	assert.Equal(t, int64(7), reading.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentVitals(t *testing.T) {
	db, mock := newMockDB(t)

	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(vitalRowColumns).
		AddRow(int64(1), "PATIENT_001", ts, 82.5, 17.0, 36.9, 97.2, 124, 80, 64, "Male", 44.0, 94.67).
		AddRow(int64(2), "PATIENT_001", ts.Add(time.Minute), 84.0, 16.5, 36.8, 97.0, 126, 81, 64, "Male", 45.0, 96.0)

	mock.ExpectQuery("SELECT (.+) FROM vitals").
		WithArgs("PATIENT_001", sqlmock.AnyArg()).
		WillReturnRows(rows)

	vitals, err := db.GetRecentVitals("PATIENT_001", 2)
	require.NoError(t, err)

	require.Len(t, vitals, 2)
	assert.Equal(t, int64(1), vitals[0].ID)
	assert.Equal(t, 82.5, vitals[0].HeartRate)
	assert.Equal(t, 126, vitals[1].SystolicBP)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentVitalsEmpty(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM vitals").
		WithArgs("PATIENT_404", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(vitalRowColumns))

	vitals, err := db.GetRecentVitals("PATIENT_404", 2)

	require.NoError(t, err)
	assert.Empty(t, vitals)
}

func TestGetLatestVitalNoRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM vitals").
		WithArgs("PATIENT_404").
		WillReturnRows(sqlmock.NewRows(vitalRowColumns))

	reading, err := db.GetLatestVital("PATIENT_404")

	require.NoError(t, err)
	assert.Nil(t, reading)
}

func TestCountVitals(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("PATIENT_001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(150))

	count, err := db.CountVitals("PATIENT_001")

	require.NoError(t, err)
	assert.Equal(t, 150, count)
}
