package model

import (
	"time"
)

// MedicalRecord is a diagnosis entry written by a doctor for a patient.
type MedicalRecord struct {
	ID           int64     `db:"id" json:"id"`
	PatientID    int64     `db:"patient_id" json:"patient_id"`
	DoctorID     int64     `db:"doctor_id" json:"doctor_id"`
	Date         time.Time `db:"date" json:"date"`
	Diagnosis    string    `db:"diagnosis" json:"diagnosis"`
	Prescription string    `db:"prescription" json:"prescription"`
	Notes        string    `db:"notes" json:"notes"`
}

type MedicalRecordDetail struct {
	MedicalRecord
	PatientName string `db:"patient_name" json:"patient_name"`
	DoctorName  string `db:"doctor_name" json:"doctor_name"`
}

type CreateMedicalRecordRequest struct {
	Diagnosis    string `form:"diagnosis"`
	Prescription string `form:"prescription"`
	Notes        string `form:"notes"`
}

type MedicalRecordFilters struct {
	PatientID int64
	DoctorID  int64
}
