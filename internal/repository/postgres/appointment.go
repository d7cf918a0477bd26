package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/ehospital/internal/model"
)

type appointmentRepository struct {
	q queryer
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, doctor_id, date, time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.q.QueryRowxContext(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.Notes,
	).Scan(&appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", mapError(err))
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, date, time, status, notes
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.q.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", mapError(err))
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	res, err := r.q.ExecContext(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", mapError(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return nil
}

// List joins patient and doctor names. The doctor join is a LEFT JOIN so
// appointments of deleted doctors still show up.
func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.id, a.patient_id, a.doctor_id, a.date, a.time, a.status, a.notes,
			   COALESCE(pu.name, '') AS patient_name,
			   COALESCE(du.name, '') AS doctor_name
		FROM appointments a
		LEFT JOIN patients p ON p.id = a.patient_id
		LEFT JOIN users pu ON pu.id = p.user_id
		LEFT JOIN doctors d ON d.id = a.doctor_id
		LEFT JOIN users du ON du.id = d.user_id
		WHERE 1 = 1
	`
	var args []interface{}
	argCount := 1

	if filters != nil && filters.PatientID != 0 {
		query += fmt.Sprintf(" AND a.patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}

	if filters != nil && filters.DoctorID != 0 {
		query += fmt.Sprintf(" AND a.doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}

	query += " ORDER BY a.id ASC"

	var appointments []*model.AppointmentDetail
	if err := r.q.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", mapError(err))
	}
	return appointments, nil
}
