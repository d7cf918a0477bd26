package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/ehospital/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique column would be violated.
	ErrDuplicate = errors.New("duplicate value")
	// ErrTooLong is returned when a value exceeds its column length.
	ErrTooLong = errors.New("value too long")
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, id int64, upd model.UserUpdate) error
		Delete(ctx context.Context, id int64) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.DoctorProfile, error)
		GetByUserID(ctx context.Context, userID int64) (*model.DoctorProfile, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.DoctorProfile, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.PatientProfile, error)
		GetByUserID(ctx context.Context, userID int64) (*model.PatientProfile, error)
		Update(ctx context.Context, patient *model.Patient) error
		List(ctx context.Context) ([]*model.PatientProfile, error)
		ListByIDs(ctx context.Context, ids []int64) ([]*model.PatientProfile, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error)
	}

	MedicalRecordRepository interface {
		Create(ctx context.Context, record *model.MedicalRecord) error
		List(ctx context.Context, filters *model.MedicalRecordFilters) ([]*model.MedicalRecordDetail, error)
	}

	// Store groups the repositories and runs multi-step writes atomically.
	// The Store passed to fn is bound to the transaction.
	Store interface {
		Users() UserRepository
		Doctors() DoctorRepository
		Patients() PatientRepository
		Appointments() AppointmentRepository
		MedicalRecords() MedicalRecordRepository
		WithTx(ctx context.Context, fn func(Store) error) error
		Ping(ctx context.Context) error
		Close() error
	}
)
