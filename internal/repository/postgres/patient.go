package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/ehospital/internal/model"
)

type patientRepository struct {
	q queryer
}

const patientProfileQuery = `
	SELECT p.id, p.user_id, p.date_of_birth, p.gender, p.blood_group, p.address,
		   u.id AS "user.id", u.username AS "user.username", u.password_hash AS "user.password_hash",
		   u.role AS "user.role", u.name AS "user.name", u.email AS "user.email",
		   u.phone AS "user.phone", u.created_at AS "user.created_at"
	FROM patients p
	JOIN users u ON u.id = p.user_id
`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (user_id, date_of_birth, gender, blood_group, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.q.QueryRowxContext(ctx, query,
		patient.UserID,
		patient.DateOfBirth,
		patient.Gender,
		patient.BloodGroup,
		patient.Address,
	).Scan(&patient.ID)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", mapError(err))
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.PatientProfile, error) {
	var patient model.PatientProfile
	if err := r.q.GetContext(ctx, &patient, patientProfileQuery+` WHERE p.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", mapError(err))
	}
	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID int64) (*model.PatientProfile, error) {
	var patient model.PatientProfile
	if err := r.q.GetContext(ctx, &patient, patientProfileQuery+` WHERE p.user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", mapError(err))
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET date_of_birth = $1, gender = $2, blood_group = $3, address = $4
		WHERE id = $5
	`
	res, err := r.q.ExecContext(ctx, query,
		patient.DateOfBirth,
		patient.Gender,
		patient.BloodGroup,
		patient.Address,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", mapError(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.PatientProfile, error) {
	var patients []*model.PatientProfile
	if err := r.q.SelectContext(ctx, &patients, patientProfileQuery+` ORDER BY p.id`); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", mapError(err))
	}
	return patients, nil
}

func (r *patientRepository) ListByIDs(ctx context.Context, ids []int64) ([]*model.PatientProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(patientProfileQuery+` WHERE p.id IN (?) ORDER BY p.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build patient query: %w", err)
	}
	var patients []*model.PatientProfile
	if err := r.q.SelectContext(ctx, &patients, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", mapError(err))
	}
	return patients, nil
}
