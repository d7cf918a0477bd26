package doctor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
	"github.com/jwalitptl/ehospital/internal/service/user"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

type Service struct {
	store   repository.Store
	userSvc *user.Service
}

func NewService(store repository.Store, userSvc *user.Service) *Service {
	return &Service{
		store:   store,
		userSvc: userSvc,
	}
}

// Create adds a doctor account and its profile atomically.
func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.DoctorProfile, error) {
	exp, fee, err := parseNumbers(req.Experience, req.Fee)
	if err != nil {
		return nil, err
	}

	if err := s.userSvc.EnsureAvailable(ctx, s.store.Users(), req.Username, req.Email); err != nil {
		return nil, err
	}

	var profile *model.DoctorProfile
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		u, err := s.userSvc.Create(ctx, tx.Users(), user.NewAccount{
			Username: req.Username,
			Password: req.Password,
			Role:     model.RoleDoctor,
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
		})
		if err != nil {
			return err
		}

		d := &model.Doctor{
			UserID:          u.ID,
			Specialization:  req.Specialization,
			ExperienceYears: exp,
			Fee:             fee,
			Availability:    req.Availability,
		}
		if err := tx.Doctors().Create(ctx, d); err != nil {
			return fmt.Errorf("failed to create doctor profile: %w", err)
		}

		profile = &model.DoctorProfile{Doctor: *d, User: *u}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int64("doctor_id", profile.ID).Str("username", profile.User.Username).Msg("doctor added")
	return profile, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.DoctorProfile, error) {
	d, err := s.store.Doctors().Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

// GetByUserID resolves the profile behind a session. A doctor account
// created through registration has no profile and gets ErrNotFound.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*model.DoctorProfile, error) {
	d, err := s.store.Doctors().GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]*model.DoctorProfile, error) {
	return s.store.Doctors().List(ctx)
}

// Update applies the admin edit form to the account and the profile.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.DoctorProfile, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, d, req, req.Email)
}

// UpdateOwnProfile applies the doctor's own profile form. The email is not
// editable there and is kept as is.
func (s *Service) UpdateOwnProfile(ctx context.Context, userID int64, req *model.UpdateDoctorRequest) (*model.DoctorProfile, error) {
	d, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, d, req, d.User.Email)
}

func (s *Service) apply(ctx context.Context, d *model.DoctorProfile, req *model.UpdateDoctorRequest, email string) (*model.DoctorProfile, error) {
	exp, fee, err := parseNumbers(req.Experience, req.Fee)
	if err != nil {
		return nil, err
	}

	d.User.Name = req.Name
	d.User.Email = email
	d.User.Phone = req.Phone
	d.Specialization = req.Specialization
	d.ExperienceYears = exp
	d.Fee = fee
	d.Availability = req.Availability

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		upd := model.UserUpdate{Name: d.User.Name, Email: d.User.Email, Phone: d.User.Phone}
		if err := tx.Users().Update(ctx, d.UserID, upd); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return user.ErrEmailTaken
			}
			return err
		}
		return tx.Doctors().Update(ctx, &d.Doctor)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the profile and its account. Appointments and records that
// reference the doctor stay in place.
func (s *Service) Delete(ctx context.Context, id int64) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Doctors().Delete(ctx, d.ID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, d.UserID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete doctor %d: %w", id, err)
	}

	log.Ctx(ctx).Info().Int64("doctor_id", d.ID).Int64("user_id", d.UserID).Msg("doctor deleted")
	return nil
}

// parseNumbers reads the optional experience and fee fields; empty means 0.
func parseNumbers(experience, fee string) (int, float64, error) {
	var (
		exp int
		f   float64
		err error
	)
	if experience = strings.TrimSpace(experience); experience != "" {
		if exp, err = strconv.Atoi(experience); err != nil {
			return 0, 0, apperrors.BadRequest("Experience must be a whole number", err)
		}
	}
	if fee = strings.TrimSpace(fee); fee != "" {
		if f, err = strconv.ParseFloat(fee, 64); err != nil {
			return 0, 0, apperrors.BadRequest("Fee must be a number", err)
		}
	}
	return exp, f, nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("doctor", err)
	}
	return err
}
