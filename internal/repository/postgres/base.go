package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/ehospital/internal/repository"
)

// PostgreSQL SQLSTATEs mapped to repository sentinels.
const (
	uniqueViolation   = "23505"
	stringDataTooLong = "22001"
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx so every repository can
// run inside or outside a transaction.
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return repository.ErrDuplicate
		case stringDataTooLong:
			return fmt.Errorf("%w: %s", repository.ErrTooLong, pqErr.Message)
		}
	}
	return err
}

// mustAffect turns a zero-row write into ErrNotFound.
func mustAffect(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
