package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	r.s.lock()
	defer r.s.unlock()

	for _, u := range r.s.data.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("failed to create user: %w", repository.ErrDuplicate)
		}
	}
	user.ID = r.s.data.next("users")
	user.CreatedAt = time.Now()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	r.s.rlock()
	defer r.s.runlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, fmt.Errorf("failed to get user: %w", repository.ErrNotFound)
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Username == username })
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *userRepository) find(match func(model.User) bool) (*model.User, error) {
	r.s.rlock()
	defer r.s.runlock()

	for _, u := range r.s.data.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("failed to get user: %w", repository.ErrNotFound)
}

func (r *userRepository) Update(ctx context.Context, id int64, upd model.UserUpdate) error {
	r.s.lock()
	defer r.s.unlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return fmt.Errorf("failed to update user: %w", repository.ErrNotFound)
	}
	for _, other := range r.s.data.users {
		if other.ID != id && other.Email == upd.Email {
			return fmt.Errorf("failed to update user: %w", repository.ErrDuplicate)
		}
	}
	u.Name = upd.Name
	u.Email = upd.Email
	u.Phone = upd.Phone
	r.s.data.users[id] = u
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.users[id]; !ok {
		return fmt.Errorf("failed to delete user: %w", repository.ErrNotFound)
	}
	delete(r.s.data.users, id)
	return nil
}
