package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
	"github.com/jwalitptl/ehospital/pkg/security"
)

var (
	ErrUsernameTaken = apperrors.Conflict("Username already exists", nil)
	ErrEmailTaken    = apperrors.Conflict("Email already exists", nil)
	ErrAccountTaken  = apperrors.Conflict("Username or email already exists", nil)
)

// NewAccount describes a user row about to be created.
type NewAccount struct {
	Username string
	Password string
	Role     model.Role
	Name     string
	Email    string
	Phone    string
}

// Service owns account creation shared by registration and the admin
// "add doctor" flow.
type Service struct {
	hasher security.PasswordHasher
}

func NewService(hasher security.PasswordHasher) *Service {
	return &Service{hasher: hasher}
}

// EnsureAvailable rejects a username or email that is already in use.
func (s *Service) EnsureAvailable(ctx context.Context, users repository.UserRepository, username, email string) error {
	if _, err := users.GetByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if _, err := users.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	return nil
}

// Create hashes the password and inserts the user through users, which may
// be bound to a transaction.
func (s *Service) Create(ctx context.Context, users repository.UserRepository, acc NewAccount) (*model.User, error) {
	hash, err := s.hasher.Hash(acc.Password)
	switch {
	case errors.Is(err, security.ErrEmptyPassword):
		return nil, apperrors.BadRequest("Password is required", err)
	case errors.Is(err, security.ErrPasswordTooLong):
		return nil, apperrors.BadRequest("Password is too long", err)
	case err != nil:
		return nil, err
	}

	u := &model.User{
		Username:     acc.Username,
		PasswordHash: hash,
		Role:         acc.Role,
		Name:         acc.Name,
		Email:        acc.Email,
		Phone:        acc.Phone,
	}
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user iff username exists and password matches.
func (s *Service) Authenticate(ctx context.Context, users repository.UserRepository, username, password string) (*model.User, error) {
	u, err := users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, err
	}
	return u, nil
}
