package patient

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
	patients     *patient.Service
	doctors      *doctor.Service
	appointments *appointment.Service
	records      *medical.Service
}

func NewHandler(patients *patient.Service, doctors *doctor.Service, appointments *appointment.Service, records *medical.Service) *Handler {
	return &Handler{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		records:      records,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Dashboard)
	r.GET("/docs", h.ListDoctors)
	r.GET("/apt/book/:did", h.BookPage)
	r.POST("/apt/book/:did", h.Book)
	r.GET("/apts", h.ListAppointments)
	r.GET("/apt/cancel/:id", h.Cancel)
	r.GET("/recs", h.ListRecords)
	r.GET("/profile", h.ProfilePage)
	r.POST("/profile", h.UpdateProfile)
}

// profile returns the patient profile of the session user, or nil when the
// account has none.
func (h *Handler) profile(c *gin.Context) (*model.PatientProfile, error) {
	p, err := h.patients.GetByUserID(c.Request.Context(), handler.CurrentSession(c).UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (h *Handler) Dashboard(c *gin.Context) {
	p, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	ctx := c.Request.Context()
	apts := []*model.AppointmentDetail{}
	recs := []*model.MedicalRecordDetail{}
	if p != nil {
		if apts, err = h.appointments.ListForPatient(ctx, p.ID); err != nil {
			handler.RenderError(c, err)
			return
		}
		if recs, err = h.records.ListForPatient(ctx, p.ID); err != nil {
			handler.RenderError(c, err)
			return
		}
	}

	handler.Render(c, http.StatusOK, "patient/dash.html", gin.H{
		"Title":        "Patient",
		"Patient":      p,
		"Appointments": apts,
		"Records":      recs,
	})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	docs, err := h.doctors.List(c.Request.Context())
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "patient/docs.html", gin.H{"Title": "Doctors", "Doctors": docs})
}

func (h *Handler) BookPage(c *gin.Context) {
	did, err := handler.ParamID(c, "did")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	d, err := h.doctors.Get(c.Request.Context(), did)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "patient/apt_form.html", gin.H{"Title": "Book appointment", "Doctor": d})
}

func (h *Handler) Book(c *gin.Context) {
	did, err := handler.ParamID(c, "did")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	var req model.BookAppointmentRequest
	if err := handler.Bind(c, &req); err != nil {
		handler.RenderError(c, err)
		return
	}

	if _, err := h.appointments.Book(c.Request.Context(), handler.CurrentSession(c).UserID, did, &req); err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Redirect(c, "/patient/apts", handler.FlashSuccess, "Appointment booked successfully")
}

func (h *Handler) ListAppointments(c *gin.Context) {
	p, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	apts := []*model.AppointmentDetail{}
	if p != nil {
		if apts, err = h.appointments.ListForPatient(c.Request.Context(), p.ID); err != nil {
			handler.RenderError(c, err)
			return
		}
	}
	handler.Render(c, http.StatusOK, "patient/apts.html", gin.H{"Title": "Appointments", "Appointments": apts})
}

// Cancel acts on any appointment id regardless of its current status.
func (h *Handler) Cancel(c *gin.Context) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	if _, err := h.appointments.SetStatus(c.Request.Context(), id, model.AppointmentStatusCancelled); err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Redirect(c, "/patient/apts", handler.FlashSuccess, "Appointment cancelled")
}

func (h *Handler) ListRecords(c *gin.Context) {
	p, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	recs := []*model.MedicalRecordDetail{}
	if p != nil {
		if recs, err = h.records.ListForPatient(c.Request.Context(), p.ID); err != nil {
			handler.RenderError(c, err)
			return
		}
	}
	handler.Render(c, http.StatusOK, "patient/recs.html", gin.H{"Title": "Records", "Records": recs})
}

func (h *Handler) ProfilePage(c *gin.Context) {
	p, err := h.profile(c)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "patient/profile.html", gin.H{"Title": "Profile", "Patient": p})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdatePatientRequest
	if err := handler.Bind(c, &req); err != nil {
		handler.RenderError(c, err)
		return
	}

	if _, err := h.patients.UpdateOwnProfile(c.Request.Context(), handler.CurrentSession(c).UserID, &req); err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Redirect(c, "/patient/profile", handler.FlashSuccess, "Profile updated")
}
