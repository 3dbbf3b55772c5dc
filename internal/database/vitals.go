package database

import (
	"database/sql"
	"fmt"
	"time"
)

const vitalColumns = `id, patient_id, timestamp, heart_rate, respiratory_rate,
	       body_temperature, spo2, systolic_bp, diastolic_bp, age, gender,
	       pulse_pressure, mean_arterial_pressure`

// InsertVital inserts a single vital-signs reading
func (db *DB) InsertVital(v *VitalReading) error {
	query := `
		INSERT INTO vitals (
			patient_id, timestamp, heart_rate, respiratory_rate, body_temperature,
			spo2, systolic_bp, diastolic_bp, age, gender,
			pulse_pressure, mean_arterial_pressure
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	return db.QueryRow(
		query,
		v.PatientID,
		v.Timestamp,
		v.HeartRate,
		v.RespiratoryRate,
		v.BodyTemperature,
		v.SpO2,
		v.SystolicBP,
		v.DiastolicBP,
		v.Age,
		v.Gender,
		v.PulsePressure,
		v.MeanArterialPressure,
	).Scan(&v.ID)
}

// GetRecentVitals fetches readings for the trailing window, ordered by
// timestamp ascending (oldest first)
func (db *DB) GetRecentVitals(patientID string, windowHours int) ([]*VitalReading, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)

	query := fmt.Sprintf(`
		SELECT %s
		FROM vitals
		WHERE patient_id = $1 AND timestamp >= $2
		ORDER BY timestamp ASC
	`, vitalColumns)

	rows, err := db.Query(query, patientID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVitals(rows)
}

// GetAllVitals fetches every reading stored for a patient, oldest first
func (db *DB) GetAllVitals(patientID string) ([]*VitalReading, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM vitals
		WHERE patient_id = $1
		ORDER BY timestamp ASC
	`, vitalColumns)

	rows, err := db.Query(query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVitals(rows)
}

// GetLatestVital fetches the most recent reading for a patient, or nil if
// the patient has no data
func (db *DB) GetLatestVital(patientID string) (*VitalReading, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM vitals
		WHERE patient_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`, vitalColumns)

	var v VitalReading
	err := db.QueryRow(query, patientID).Scan(
		&v.ID,
		&v.PatientID,
		&v.Timestamp,
		&v.HeartRate,
		&v.RespiratoryRate,
		&v.BodyTemperature,
		&v.SpO2,
		&v.SystolicBP,
		&v.DiastolicBP,
		&v.Age,
		&v.Gender,
		&v.PulsePressure,
		&v.MeanArterialPressure,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// CountVitals counts the total readings stored for a patient
func (db *DB) CountVitals(patientID string) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM vitals WHERE patient_id = $1`, patientID).Scan(&count)
	return count, err
}

func scanVitals(rows *sql.Rows) ([]*VitalReading, error) {
	var vitals []*VitalReading
	for rows.Next() {
		var v VitalReading
		if err := rows.Scan(
			&v.ID,
			&v.PatientID,
			&v.Timestamp,
			&v.HeartRate,
			&v.RespiratoryRate,
			&v.BodyTemperature,
			&v.SpO2,
			&v.SystolicBP,
			&v.DiastolicBP,
			&v.Age,
			&v.Gender,
			&v.PulsePressure,
			&v.MeanArterialPressure,
		); err != nil {
			return nil, err
		}
		vitals = append(vitals, &v)
	}

	return vitals, rows.Err()
}
