package model

import (
	"time"
)

// Patient is the patient profile owned by a user account
type Patient struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender      string     `json:"gender" db:"gender"`
	BloodGroup  string     `json:"blood_group" db:"blood_group"`
	Address     string     `json:"address" db:"address"`
}

// PatientProfile joins a patient with its owning account.
type PatientProfile struct {
	Patient
	User User `json:"user" db:"user"`
}

// UpdatePatientRequest is the patient's own profile form.
type UpdatePatientRequest struct {
	Name       string `form:"name" binding:"required,max=100"`
	Phone      string `form:"phone" binding:"max=15"`
	Gender     string `form:"gender" binding:"max=10"`
	BloodGroup string `form:"blood_group" binding:"max=5"`
	Address    string `form:"address"`
	DOB        string `form:"dob"`
}
