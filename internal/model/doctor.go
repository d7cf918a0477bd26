package model

// Doctor is the doctor profile owned by a user account
type Doctor struct {
	ID              int64   `json:"id" db:"id"`
	UserID          int64   `json:"user_id" db:"user_id"`
	Specialization  string  `json:"specialization" db:"specialization"`
	ExperienceYears int     `json:"experience_years" db:"experience_years"`
	Fee             float64 `json:"fee" db:"fee"`
	Availability    string  `json:"availability" db:"availability"`
}

// DoctorProfile joins a doctor with its owning account.
type DoctorProfile struct {
	Doctor
	User User `json:"user" db:"user"`
}

// CreateDoctorRequest is the admin "add doctor" form.
type CreateDoctorRequest struct {
	Username       string `form:"username" binding:"required,max=80"`
	Password       string `form:"password" binding:"required,max=72"`
	Name           string `form:"name" binding:"required,max=100"`
	Email          string `form:"email" binding:"required,email,max=120"`
	Phone          string `form:"phone" binding:"max=15"`
	Specialization string `form:"specialization" binding:"required,max=100"`
	Experience     string `form:"experience"`
	Fee            string `form:"fee"`
	Availability   string `form:"availability" binding:"max=200"`
}

// UpdateDoctorRequest is shared by the admin edit form and the doctor's own
// profile form. The own-profile form does not carry an email.
type UpdateDoctorRequest struct {
	Name           string `form:"name" binding:"required,max=100"`
	Email          string `form:"email" binding:"omitempty,email,max=120"`
	Phone          string `form:"phone" binding:"max=15"`
	Specialization string `form:"specialization" binding:"max=100"`
	Experience     string `form:"experience"`
	Fee            string `form:"fee"`
	Availability   string `form:"availability" binding:"max=200"`
}
