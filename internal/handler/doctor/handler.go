package doctor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ehospital/internal/handler"
	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/repository"
	"github.com/jwalitptl/ehospital/internal/service/appointment"
	"github.com/jwalitptl/ehospital/internal/service/doctor"
	"github.com/jwalitptl/ehospital/internal/service/medical"
	"github.com/jwalitptl/ehospital/internal/service/patient"
)

type Handler struct {
	doctors      *doctor.Service
	patients     *patient.Service
	appointments *appointment.Service
	records      *medical.Service
}

func NewHandler(doctors *doctor.Service, patients *patient.Service, appointments *appointment.Service, records *medical.Service) *Handler {
	return &Handler{
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		records:      records,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Dashboard)
	r.GET("/apts", h.ListAppointments)
	r.GET("/apt/:id/approve", h.setStatus(model.AppointmentStatusApproved, "Appointment approved"))
	r.GET("/apt/:id/complete", h.setStatus(model.AppointmentStatusCompleted, "Appointment completed"))
	r.GET("/apt/:id/cancel", h.setStatus(model.AppointmentStatusCancelled, "Appointment cancelled"))
	r.GET("/recs", h.ListRecords)
	r.GET("/rec/add/:pid", h.AddRecordPage)
	r.POST("/rec/add/:pid", h.AddRecord)
	r.GET("/pats", h.ListPatients)
	r.GET("/profile", h.ProfilePage)
	r.POST("/profile", h.UpdateProfile)
}

// profile returns the doctor profile of the session user, or nil for a
// doctor account without one.
func (h *Handler) profile(c *gin.Context) (*model.DoctorProfile, error) {
	d, err := h.doctors.GetByUserID(c.Request.Context(), handler.CurrentSession(c).UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return d, err
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	apts := []*model.AppointmentDetail{}
	if d != nil {
		if apts, err = h.appointments.ListForDoctor(c.Request.Context(), d.ID); err != nil {
			handler.RenderError(c, err)
			return
		}
	}

	handler.Render(c, http.StatusOK, "doctor/dash.html", gin.H{
		"Title":        "Doctor",
		"Doctor":       d,
		"Appointments": apts,
	})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	d, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	apts := []*model.AppointmentDetail{}
	if d != nil {
		if apts, err = h.appointments.ListForDoctor(c.Request.Context(), d.ID); err != nil {
			handler.RenderError(c, err)
			return
		}
	}
	handler.Render(c, http.StatusOK, "doctor/apts.html", gin.H{"Title": "Appointments", "Appointments": apts})
}

// setStatus acts on any appointment id; ownership is not checked.
func (h *Handler) setStatus(status model.AppointmentStatus, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			handler.RenderError(c, err)
			return
		}

		if _, err := h.appointments.SetStatus(c.Request.Context(), id, status); err != nil {
			handler.RenderError(c, err)
			return
		}
		handler.Redirect(c, "/doctor/apts", handler.FlashSuccess, message)
	}
}

func (h *Handler) ListRecords(c *gin.Context) {
	d, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	recs := []*model.MedicalRecordDetail{}
	if d != nil {
		if recs, err = h.records.ListForDoctor(c.Request.Context(), d.ID); err != nil {
			handler.RenderError(c, err)
			return
		}
	}
	handler.Render(c, http.StatusOK, "doctor/recs.html", gin.H{"Title": "Records", "Records": recs})
}

func (h *Handler) AddRecordPage(c *gin.Context) {
	pid, err := handler.ParamID(c, "pid")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	p, err := h.patients.Get(c.Request.Context(), pid)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "doctor/rec_form.html", gin.H{"Title": "New record", "Patient": p})
}

func (h *Handler) AddRecord(c *gin.Context) {
	pid, err := handler.ParamID(c, "pid")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	var req model.CreateMedicalRecordRequest
	if err := handler.Bind(c, &req); err != nil {
		handler.RenderError(c, err)
		return
	}

	ctx := c.Request.Context()
	d, err := h.doctors.GetByUserID(ctx, handler.CurrentSession(c).UserID)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	if _, err := h.records.Add(ctx, d.ID, pid, &req); err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Redirect(c, "/doctor/recs", handler.FlashSuccess, "Medical record added")
}

func (h *Handler) ListPatients(c *gin.Context) {
	d, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	pats := []*model.PatientProfile{}
	if d != nil {
		if pats, err = h.patients.ListForDoctor(c.Request.Context(), d.ID); err != nil {
			handler.RenderError(c, err)
			return
		}
	}
	handler.Render(c, http.StatusOK, "doctor/pats.html", gin.H{"Title": "Patients", "Patients": pats})
}

func (h *Handler) ProfilePage(c *gin.Context) {
	d, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "doctor/profile.html", gin.H{"Title": "Profile", "Doctor": d})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateDoctorRequest
	if err := handler.Bind(c, &req); err != nil {
		handler.RenderError(c, err)
		return
	}

	if _, err := h.doctors.UpdateOwnProfile(c.Request.Context(), handler.CurrentSession(c).UserID, &req); err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Redirect(c, "/doctor/profile", handler.FlashSuccess, "Profile updated")
}
