package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
)

type medicalRecordRepository struct {
	s *Store
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.patients[record.PatientID]; !ok {
		return fmt.Errorf("failed to create medical record: patient %d: %w", record.PatientID, repository.ErrNotFound)
	}
	record.ID = r.s.data.next("medical_records")
	r.s.data.records[record.ID] = *record
	return nil
}

func (r *medicalRecordRepository) List(ctx context.Context, filters *model.MedicalRecordFilters) ([]*model.MedicalRecordDetail, error) {
	r.s.rlock()
	defer r.s.runlock()

	var records []*model.MedicalRecordDetail
	for _, m := range r.s.data.records {
		if filters != nil && filters.PatientID != 0 && m.PatientID != filters.PatientID {
			continue
		}
		if filters != nil && filters.DoctorID != 0 && m.DoctorID != filters.DoctorID {
			continue
		}
		records = append(records, &model.MedicalRecordDetail{
			MedicalRecord: m,
			PatientName:   r.s.data.patientName(m.PatientID),
			DoctorName:    r.s.data.doctorName(m.DoctorID),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}
