package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
	"github.com/jwalitptl/ehospital/internal/service/user"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
	"github.com/jwalitptl/ehospital/pkg/security"
)

var (
	ErrInvalidCredentials = apperrors.Unauthorized(errors.New("invalid credentials"))
	ErrInvalidRole        = apperrors.BadRequest("Invalid role", nil)
)

// Seeded administrator account.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
	adminName     = "Administrator"
	adminEmail    = "admin@ehospital.com"
	adminPhone    = "1234567890"
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

// Register creates an account. Patients get their profile in the same
// transaction. Nothing is written when any check fails.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	var dob *time.Time
	if role == model.RolePatient && req.DOB != "" {
		d, err := model.ParseDate(req.DOB)
		if err != nil {
			return nil, apperrors.BadRequest("Invalid date of birth", err)
		}
		dob = &d
	}

	if err := s.userSvc.EnsureAvailable(ctx, s.store.Users(), req.Username, req.Email); err != nil {
		return nil, err
	}

	var created *model.User
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		u, err := s.userSvc.Create(ctx, tx.Users(), user.NewAccount{
			Username: req.Username,
			Password: req.Password,
			Role:     role,
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
		})
		if err != nil {
			return err
		}

		if role == model.RolePatient {
			p := &model.Patient{
				UserID:      u.ID,
				DateOfBirth: dob,
				Gender:      req.Gender,
				BloodGroup:  req.BloodGroup,
				Address:     req.Address,
			}
			if err := tx.Patients().Create(ctx, p); err != nil {
				return fmt.Errorf("failed to create patient profile: %w", err)
			}
		}

		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Str("role", created.Role.String()).
		Msg("user registered")

	return created, nil
}

// Login checks the password against the stored hash.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.userSvc.Authenticate(ctx, s.store.Users(), username, password)
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, security.ErrPasswordInvalid):
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
}

// SeedAdmin creates the built-in administrator if no "admin" user exists.
// It reports whether an account was created.
func (s *Service) SeedAdmin(ctx context.Context) (bool, error) {
	_, err := s.store.Users().GetByUsername(ctx, AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}

	_, err = s.userSvc.Create(ctx, s.store.Users(), user.NewAccount{
		Username: AdminUsername,
		Password: AdminPassword,
		Role:     model.RoleAdmin,
		Name:     adminName,
		Email:    adminEmail,
		Phone:    adminPhone,
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed admin: %w", err)
	}
	return true, nil
}
