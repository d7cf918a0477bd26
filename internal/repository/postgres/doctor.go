package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/ehospital/internal/model"
)

type doctorRepository struct {
	q queryer
}

const doctorProfileQuery = `
	SELECT d.id, d.user_id, d.specialization, d.experience_years, d.fee, d.availability,
		   u.id AS "user.id", u.username AS "user.username", u.password_hash AS "user.password_hash",
		   u.role AS "user.role", u.name AS "user.name", u.email AS "user.email",
		   u.phone AS "user.phone", u.created_at AS "user.created_at"
	FROM doctors d
	JOIN users u ON u.id = d.user_id
`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (user_id, specialization, experience_years, fee, availability)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.q.QueryRowxContext(ctx, query,
		doctor.UserID,
		doctor.Specialization,
		doctor.ExperienceYears,
		doctor.Fee,
		doctor.Availability,
	).Scan(&doctor.ID)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", mapError(err))
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.DoctorProfile, error) {
	var doctor model.DoctorProfile
	if err := r.q.GetContext(ctx, &doctor, doctorProfileQuery+` WHERE d.id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", mapError(err))
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID int64) (*model.DoctorProfile, error) {
	var doctor model.DoctorProfile
	if err := r.q.GetContext(ctx, &doctor, doctorProfileQuery+` WHERE d.user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", mapError(err))
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET specialization = $1, experience_years = $2, fee = $3, availability = $4
		WHERE id = $5
	`
	res, err := r.q.ExecContext(ctx, query,
		doctor.Specialization,
		doctor.ExperienceYears,
		doctor.Fee,
		doctor.Availability,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", mapError(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", mapError(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.DoctorProfile, error) {
	var doctors []*model.DoctorProfile
	if err := r.q.SelectContext(ctx, &doctors, doctorProfileQuery+` ORDER BY d.id`); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", mapError(err))
	}
	return doctors, nil
}
