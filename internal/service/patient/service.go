package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id int64) (*model.PatientProfile, error) {
	p, err := s.store.Patients().Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID int64) (*model.PatientProfile, error) {
	p, err := s.store.Patients().GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*model.PatientProfile, error) {
	return s.store.Patients().List(ctx)
}

// ListForDoctor returns the distinct patients that have at least one
// appointment with the doctor, whatever its status.
func (s *Service) ListForDoctor(ctx context.Context, doctorID int64) ([]*model.PatientProfile, error) {
	appts, err := s.store.Appointments().List(ctx, &model.AppointmentFilters{DoctorID: doctorID})
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(appts))
	ids := make([]int64, 0, len(appts))
	for _, a := range appts {
		if _, ok := seen[a.PatientID]; ok {
			continue
		}
		seen[a.PatientID] = struct{}{}
		ids = append(ids, a.PatientID)
	}
	if len(ids) == 0 {
		return []*model.PatientProfile{}, nil
	}

	return s.store.Patients().ListByIDs(ctx, ids)
}

// UpdateOwnProfile applies the patient's profile form. The date of birth is
// only replaced when one is given; email and username never change here.
func (s *Service) UpdateOwnProfile(ctx context.Context, userID int64, req *model.UpdatePatientRequest) (*model.PatientProfile, error) {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dob := strings.TrimSpace(req.DOB); dob != "" {
		t, err := model.ParseDate(dob)
		if err != nil {
			return nil, apperrors.BadRequest("Invalid date of birth, expected YYYY-MM-DD", err)
		}
		p.DateOfBirth = &t
	}
	p.User.Name = req.Name
	p.User.Phone = req.Phone
	p.Gender = req.Gender
	p.BloodGroup = req.BloodGroup
	p.Address = req.Address

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		upd := model.UserUpdate{Name: p.User.Name, Email: p.User.Email, Phone: p.User.Phone}
		if err := tx.Users().Update(ctx, p.UserID, upd); err != nil {
			return err
		}
		return tx.Patients().Update(ctx, &p.Patient)
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().Int64("patient_id", p.ID).Msg("patient profile updated")
	return p, nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("patient", err)
	}
	return err
}
