package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// appointments.doctor_id and medical_records.doctor_id have no foreign key:
// deleting a doctor leaves its appointments and records in place.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(80)  NOT NULL UNIQUE,
		password_hash VARCHAR(200) NOT NULL,
		role          VARCHAR(20)  NOT NULL,
		name          VARCHAR(100) NOT NULL,
		email         VARCHAR(120) NOT NULL UNIQUE,
		phone         VARCHAR(15)  NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id               BIGSERIAL PRIMARY KEY,
		user_id          BIGINT NOT NULL UNIQUE REFERENCES users(id),
		specialization   VARCHAR(100) NOT NULL,
		experience_years INTEGER NOT NULL DEFAULT 0,
		fee              DOUBLE PRECISION NOT NULL DEFAULT 0,
		availability     VARCHAR(200) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL UNIQUE REFERENCES users(id),
		date_of_birth DATE,
		gender        VARCHAR(10) NOT NULL DEFAULT '',
		blood_group   VARCHAR(5)  NOT NULL DEFAULT '',
		address       TEXT        NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id         BIGSERIAL PRIMARY KEY,
		patient_id BIGINT NOT NULL REFERENCES patients(id),
		doctor_id  BIGINT NOT NULL,
		date       DATE NOT NULL,
		time       VARCHAR(20) NOT NULL,
		status     VARCHAR(20) NOT NULL DEFAULT 'pending',
		notes      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_doctor_id ON appointments(doctor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments(patient_id)`,
	`CREATE TABLE IF NOT EXISTS medical_records (
		id           BIGSERIAL PRIMARY KEY,
		patient_id   BIGINT NOT NULL REFERENCES patients(id),
		doctor_id    BIGINT NOT NULL,
		date         DATE NOT NULL DEFAULT CURRENT_DATE,
		diagnosis    TEXT NOT NULL DEFAULT '',
		prescription TEXT NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_medical_records_patient_id ON medical_records(patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_medical_records_doctor_id ON medical_records(doctor_id)`,
}

// Migrate creates the tables if they do not exist yet. It is safe to run on
// every start-up.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
