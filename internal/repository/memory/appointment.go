package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
)

type appointmentRepository struct {
	s *Store
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.patients[appointment.PatientID]; !ok {
		return fmt.Errorf("failed to create appointment: patient %d: %w", appointment.PatientID, repository.ErrNotFound)
	}
	appointment.ID = r.s.data.next("appointments")
	r.s.data.appointments[appointment.ID] = *appointment
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	r.s.rlock()
	defer r.s.runlock()

	a, ok := r.s.data.appointments[id]
	if !ok {
		return nil, fmt.Errorf("failed to get appointment: %w", repository.ErrNotFound)
	}
	return &a, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	r.s.lock()
	defer r.s.unlock()

	a, ok := r.s.data.appointments[id]
	if !ok {
		return fmt.Errorf("failed to update appointment: %w", repository.ErrNotFound)
	}
	a.Status = status
	r.s.data.appointments[id] = a
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	r.s.rlock()
	defer r.s.runlock()

	var appointments []*model.AppointmentDetail
	for _, a := range r.s.data.appointments {
		if filters != nil && filters.PatientID != 0 && a.PatientID != filters.PatientID {
			continue
		}
		if filters != nil && filters.DoctorID != 0 && a.DoctorID != filters.DoctorID {
			continue
		}
		appointments = append(appointments, &model.AppointmentDetail{
			Appointment: a,
			PatientName: r.s.data.patientName(a.PatientID),
			DoctorName:  r.s.data.doctorName(a.DoctorID),
		})
	}
	sort.Slice(appointments, func(i, j int) bool { return appointments[i].ID < appointments[j].ID })
	return appointments, nil
}

func (t *tables) patientName(id int64) string {
	p, ok := t.patients[id]
	if !ok {
		return ""
	}
	return t.users[p.UserID].Name
}

func (t *tables) doctorName(id int64) string {
	d, ok := t.doctors[id]
	if !ok {
		return ""
	}
	return t.users[d.UserID].Name
}
