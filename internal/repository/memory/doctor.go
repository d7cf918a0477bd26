package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
)

type doctorRepository struct {
	s *Store
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.users[doctor.UserID]; !ok {
		return fmt.Errorf("failed to create doctor: user %d: %w", doctor.UserID, repository.ErrNotFound)
	}
	for _, d := range r.s.data.doctors {
		if d.UserID == doctor.UserID {
			return fmt.Errorf("failed to create doctor: %w", repository.ErrDuplicate)
		}
	}
	doctor.ID = r.s.data.next("doctors")
	r.s.data.doctors[doctor.ID] = *doctor
	return nil
}

// profile must be called with the read lock held.
func (r *doctorRepository) profile(d model.Doctor) *model.DoctorProfile {
	return &model.DoctorProfile{Doctor: d, User: r.s.data.users[d.UserID]}
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.DoctorProfile, error) {
	r.s.rlock()
	defer r.s.runlock()

	d, ok := r.s.data.doctors[id]
	if !ok {
		return nil, fmt.Errorf("failed to get doctor: %w", repository.ErrNotFound)
	}
	return r.profile(d), nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID int64) (*model.DoctorProfile, error) {
	r.s.rlock()
	defer r.s.runlock()

	for _, d := range r.s.data.doctors {
		if d.UserID == userID {
			return r.profile(d), nil
		}
	}
	return nil, fmt.Errorf("failed to get doctor: %w", repository.ErrNotFound)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	r.s.lock()
	defer r.s.unlock()

	d, ok := r.s.data.doctors[doctor.ID]
	if !ok {
		return fmt.Errorf("failed to update doctor: %w", repository.ErrNotFound)
	}
	d.Specialization = doctor.Specialization
	d.ExperienceYears = doctor.ExperienceYears
	d.Fee = doctor.Fee
	d.Availability = doctor.Availability
	r.s.data.doctors[d.ID] = d
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.doctors[id]; !ok {
		return fmt.Errorf("failed to delete doctor: %w", repository.ErrNotFound)
	}
	delete(r.s.data.doctors, id)
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.DoctorProfile, error) {
	r.s.rlock()
	defer r.s.runlock()

	doctors := make([]*model.DoctorProfile, 0, len(r.s.data.doctors))
	for _, d := range r.s.data.doctors {
		doctors = append(doctors, r.profile(d))
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID < doctors[j].ID })
	return doctors, nil
}
