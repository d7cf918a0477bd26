package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

// Recorder is notified of every status an appointment enters.
type Recorder interface {
	AppointmentStatus(status string)
}

type Service struct {
	store    repository.Store
	recorder Recorder
}

func NewService(store repository.Store, recorder Recorder) *Service {
	return &Service{
		store:    store,
		recorder: recorder,
	}
}

// Book creates a pending appointment for the patient profile behind
// patientUserID. The submitted status, if any, is never consulted.
func (s *Service) Book(ctx context.Context, patientUserID, doctorID int64, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.store.Patients().GetByUserID(ctx, patientUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, err
	}

	if _, err := s.store.Doctors().Get(ctx, doctorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, err
	}

	date, err := model.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, apperrors.BadRequest("Invalid date, expected YYYY-MM-DD", err)
	}

	appt := &model.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      req.Time,
		Status:    model.AppointmentStatusPending,
		Notes:     req.Notes,
	}
	if err := s.store.Appointments().Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.record(appt.Status)
	log.Ctx(ctx).Info().
		Int64("appointment_id", appt.ID).
		Int64("patient_id", appt.PatientID).
		Int64("doctor_id", appt.DoctorID).
		Msg("appointment booked")
	return appt, nil
}

// SetStatus moves any appointment to status. Callers are not checked for
// ownership of the appointment.
func (s *Service) SetStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.Appointment, error) {
	appt, err := s.store.Appointments().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, err
	}

	from := appt.Status
	if err := appt.Transition(status); err != nil {
		return nil, apperrors.BadRequest("Invalid appointment status", err)
	}
	if err := s.store.Appointments().UpdateStatus(ctx, id, appt.Status); err != nil {
		return nil, fmt.Errorf("failed to update appointment %d: %w", id, err)
	}

	s.record(appt.Status)
	log.Ctx(ctx).Info().
		Int64("appointment_id", id).
		Str("from", string(from)).
		Str("to", string(appt.Status)).
		Msg("appointment status changed")
	return appt, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*model.AppointmentDetail, error) {
	return s.store.Appointments().List(ctx, &model.AppointmentFilters{})
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID int64) ([]*model.AppointmentDetail, error) {
	return s.store.Appointments().List(ctx, &model.AppointmentFilters{DoctorID: doctorID})
}

func (s *Service) ListForPatient(ctx context.Context, patientID int64) ([]*model.AppointmentDetail, error) {
	return s.store.Appointments().List(ctx, &model.AppointmentFilters{PatientID: patientID})
}

func (s *Service) record(status model.AppointmentStatus) {
	if s.recorder != nil {
		s.recorder.AppointmentStatus(string(status))
	}
}
