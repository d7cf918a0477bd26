// Package memory keeps every table in process memory. It backs local runs
// without PostgreSQL and the HTTP tests.
package memory

import (
	"context"
	"sync"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
)

type tables struct {
	users        map[int64]model.User
	doctors      map[int64]model.Doctor
	patients     map[int64]model.Patient
	appointments map[int64]model.Appointment
	records      map[int64]model.MedicalRecord
	seq          map[string]int64
}

func newTables() *tables {
	return &tables{
		users:        make(map[int64]model.User),
		doctors:      make(map[int64]model.Doctor),
		patients:     make(map[int64]model.Patient),
		appointments: make(map[int64]model.Appointment),
		records:      make(map[int64]model.MedicalRecord),
		seq:          make(map[string]int64),
	}
}

func (t *tables) next(table string) int64 {
	t.seq[table]++
	return t.seq[table]
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.doctors {
		c.doctors[k] = v
	}
	for k, v := range t.patients {
		c.patients[k] = v
	}
	for k, v := range t.appointments {
		c.appointments[k] = v
	}
	for k, v := range t.records {
		c.records[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	return c
}

// Store is an in-memory repository.Store
type Store struct {
	mu   sync.RWMutex
	data *tables
	// inTx marks the view handed to a WithTx callback. Its caller already
	// holds mu for writing, so the repositories skip locking.
	inTx bool
}

func (s *Store) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

func (s *Store) rlock() {
	if !s.inTx {
		s.mu.RLock()
	}
}

func (s *Store) runlock() {
	if !s.inTx {
		s.mu.RUnlock()
	}
}

func NewStore() *Store {
	return &Store{data: newTables()}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{s: s}
}

func (s *Store) Doctors() repository.DoctorRepository {
	return &doctorRepository{s: s}
}

func (s *Store) Patients() repository.PatientRepository {
	return &patientRepository{s: s}
}

func (s *Store) Appointments() repository.AppointmentRepository {
	return &appointmentRepository{s: s}
}

func (s *Store) MedicalRecords() repository.MedicalRecordRepository {
	return &medicalRecordRepository{s: s}
}

// WithTx holds the write lock for the whole of fn, so other requests wait
// rather than interleave, and restores a snapshot when fn fails. Nested
// calls join the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&Store{data: s.data, inTx: true}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}
