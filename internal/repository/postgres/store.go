package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/ehospital/internal/repository"
)

// Store is the PostgreSQL implementation of repository.Store
type Store struct {
	db *sqlx.DB
	q  queryer
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{q: s.q}
}

func (s *Store) Doctors() repository.DoctorRepository {
	return &doctorRepository{q: s.q}
}

func (s *Store) Patients() repository.PatientRepository {
	return &patientRepository{q: s.q}
}

func (s *Store) Appointments() repository.AppointmentRepository {
	return &appointmentRepository{q: s.q}
}

func (s *Store) MedicalRecords() repository.MedicalRecordRepository {
	return &medicalRecordRepository{q: s.q}
}

// WithTx executes a function within a transaction
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if _, inTx := s.q.(*sqlx.Tx); inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
