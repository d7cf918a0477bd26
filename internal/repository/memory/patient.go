package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
)

type patientRepository struct {
	s *Store
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.users[patient.UserID]; !ok {
		return fmt.Errorf("failed to create patient: user %d: %w", patient.UserID, repository.ErrNotFound)
	}
	for _, p := range r.s.data.patients {
		if p.UserID == patient.UserID {
			return fmt.Errorf("failed to create patient: %w", repository.ErrDuplicate)
		}
	}
	patient.ID = r.s.data.next("patients")
	r.s.data.patients[patient.ID] = *patient
	return nil
}

// profile must be called with the read lock held.
func (r *patientRepository) profile(p model.Patient) *model.PatientProfile {
	return &model.PatientProfile{Patient: p, User: r.s.data.users[p.UserID]}
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.PatientProfile, error) {
	r.s.rlock()
	defer r.s.runlock()

	p, ok := r.s.data.patients[id]
	if !ok {
		return nil, fmt.Errorf("failed to get patient: %w", repository.ErrNotFound)
	}
	return r.profile(p), nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID int64) (*model.PatientProfile, error) {
	r.s.rlock()
	defer r.s.runlock()

	for _, p := range r.s.data.patients {
		if p.UserID == userID {
			return r.profile(p), nil
		}
	}
	return nil, fmt.Errorf("failed to get patient: %w", repository.ErrNotFound)
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	r.s.lock()
	defer r.s.unlock()

	p, ok := r.s.data.patients[patient.ID]
	if !ok {
		return fmt.Errorf("failed to update patient: %w", repository.ErrNotFound)
	}
	p.DateOfBirth = patient.DateOfBirth
	p.Gender = patient.Gender
	p.BloodGroup = patient.BloodGroup
	p.Address = patient.Address
	r.s.data.patients[p.ID] = p
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.PatientProfile, error) {
	r.s.rlock()
	defer r.s.runlock()

	patients := make([]*model.PatientProfile, 0, len(r.s.data.patients))
	for _, p := range r.s.data.patients {
		patients = append(patients, r.profile(p))
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return patients, nil
}

func (r *patientRepository) ListByIDs(ctx context.Context, ids []int64) ([]*model.PatientProfile, error) {
	r.s.rlock()
	defer r.s.runlock()

	var patients []*model.PatientProfile
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		p, ok := r.s.data.patients[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		patients = append(patients, r.profile(p))
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return patients, nil
}
