package medical

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
)

type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

// Add writes a record dated today for patientID on behalf of doctorID.
func (s *Service) Add(ctx context.Context, doctorID, patientID int64, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	if _, err := s.store.Patients().Get(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, err
	}

	rec := &model.MedicalRecord{
		PatientID:    patientID,
		DoctorID:     doctorID,
		Date:         model.Today(),
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
	}
	if err := s.store.MedicalRecords().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}

	log.Ctx(ctx).Info().
		Int64("record_id", rec.ID).
		Int64("patient_id", patientID).
		Int64("doctor_id", doctorID).
		Msg("medical record added")
	return rec, nil
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID int64) ([]*model.MedicalRecordDetail, error) {
	return s.store.MedicalRecords().List(ctx, &model.MedicalRecordFilters{DoctorID: doctorID})
}

func (s *Service) ListForPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecordDetail, error) {
	return s.store.MedicalRecords().List(ctx, &model.MedicalRecordFilters{PatientID: patientID})
}
