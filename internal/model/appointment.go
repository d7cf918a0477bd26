package model

import (
	"fmt"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusApproved,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID        int64             `db:"id" json:"id"`
	PatientID int64             `db:"patient_id" json:"patient_id"`
	DoctorID  int64             `db:"doctor_id" json:"doctor_id"`
	Date      time.Time         `db:"date" json:"date"`
	Time      string            `db:"time" json:"time"`
	Status    AppointmentStatus `db:"status" json:"status"`
	Notes     string            `db:"notes" json:"notes,omitempty"`
}

// Transition moves the appointment to the target status. Every status is
// reachable from every other one; only unknown targets are refused.
func (a *Appointment) Transition(to AppointmentStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown appointment status %q", to)
	}
	a.Status = to
	return nil
}

// AppointmentDetail is an appointment with the names needed for listing.
// DoctorName is empty when the doctor has been deleted.
type AppointmentDetail struct {
	Appointment
	PatientName string `db:"patient_name" json:"patient_name"`
	DoctorName  string `db:"doctor_name" json:"doctor_name"`
}

type BookAppointmentRequest struct {
	Date  string `form:"date" binding:"required"`
	Time  string `form:"time" binding:"required,max=20"`
	Notes string `form:"notes"`
}

type AppointmentFilters struct {
	PatientID int64
	DoctorID  int64
}
