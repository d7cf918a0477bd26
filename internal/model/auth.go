package model

// LoginRequest is the login form
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterRequest is the public registration form. Profile fields are only
// used when the role is patient. Length limits follow the table columns.
type RegisterRequest struct {
	Username   string `form:"username" binding:"required,max=80"`
	Password   string `form:"password" binding:"required,max=72"`
	Name       string `form:"name" binding:"required,max=100"`
	Email      string `form:"email" binding:"required,email,max=120"`
	Phone      string `form:"phone" binding:"max=15"`
	Role       string `form:"role" binding:"omitempty,oneof=admin doctor patient"`
	DOB        string `form:"dob"`
	Gender     string `form:"gender" binding:"max=10"`
	BloodGroup string `form:"blood_group" binding:"max=5"`
	Address    string `form:"address"`
}

// Session is what the signed session cookie carries.
type Session struct {
	UserID   int64  `json:"uid"`
	Username string `json:"un"`
	Role     Role   `json:"rl"`
	Name     string `json:"nm"`
}
