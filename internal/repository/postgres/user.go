package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/ehospital/internal/model"
)

type userRepository struct {
	q queryer
}

const userColumns = `id, username, password_hash, role, name, email, phone, created_at`

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	user.CreatedAt = time.Now()

	err := r.q.QueryRowxContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Name,
		user.Email,
		user.Phone,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) getBy(ctx context.Context, column string, value interface{}) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)
	var user model.User
	if err := r.q.GetContext(ctx, &user, query, value); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", mapError(err))
	}
	return &user, nil
}

// Update never touches role or username.
func (r *userRepository) Update(ctx context.Context, id int64, upd model.UserUpdate) error {
	query := `UPDATE users SET name = $1, email = $2, phone = $3 WHERE id = $4`
	res, err := r.q.ExecContext(ctx, query, upd.Name, upd.Email, upd.Phone, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", mapError(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", mapError(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
