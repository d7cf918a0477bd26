package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/ehospital/internal/model"
)

type medicalRecordRepository struct {
	q queryer
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (patient_id, doctor_id, date, diagnosis, prescription, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.q.QueryRowxContext(ctx, query,
		record.PatientID,
		record.DoctorID,
		record.Date,
		record.Diagnosis,
		record.Prescription,
		record.Notes,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to create medical record: %w", mapError(err))
	}
	return nil
}

func (r *medicalRecordRepository) List(ctx context.Context, filters *model.MedicalRecordFilters) ([]*model.MedicalRecordDetail, error) {
	query := `
		SELECT m.id, m.patient_id, m.doctor_id, m.date, m.diagnosis, m.prescription, m.notes,
			   COALESCE(pu.name, '') AS patient_name,
			   COALESCE(du.name, '') AS doctor_name
		FROM medical_records m
		LEFT JOIN patients p ON p.id = m.patient_id
		LEFT JOIN users pu ON pu.id = p.user_id
		LEFT JOIN doctors d ON d.id = m.doctor_id
		LEFT JOIN users du ON du.id = d.user_id
		WHERE 1 = 1
	`
	var args []interface{}
	argCount := 1

	if filters != nil && filters.PatientID != 0 {
		query += fmt.Sprintf(" AND m.patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}

	if filters != nil && filters.DoctorID != 0 {
		query += fmt.Sprintf(" AND m.doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}

	query += " ORDER BY m.date DESC, m.id DESC"

	var records []*model.MedicalRecordDetail
	if err := r.q.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", mapError(err))
	}
	return records, nil
}
