package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ehospital/internal/handler"
	"github.com/jwalitptl/ehospital/internal/model"
	"github.com/jwalitptl/ehospital/internal/service/appointment"
	"github.com/jwalitptl/ehospital/internal/service/doctor"
	"github.com/jwalitptl/ehospital/internal/service/medical"
	"github.com/jwalitptl/ehospital/internal/service/patient"
	apperrors "github.com/jwalitptl/ehospital/pkg/errors"
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
	r.GET("/docs", h.ListDoctors)
	r.GET("/doc/add", h.AddDoctorPage)
	r.POST("/doc/add", h.AddDoctor)
	r.GET("/doc/edit/:id", h.EditDoctorPage)
	r.POST("/doc/edit/:id", h.EditDoctor)
	r.GET("/doc/delete/:id", h.DeleteDoctor)
	r.GET("/pats", h.ListPatients)
	r.GET("/pat/view/:id", h.ViewPatient)
	r.GET("/apts", h.ListAppointments)
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	docs, err := h.doctors.List(ctx)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	pats, err := h.patients.List(ctx)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	apts, err := h.appointments.ListAll(ctx)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	handler.Render(c, http.StatusOK, "admin/dash.html", gin.H{
		"Title":        "Admin",
		"Doctors":      docs,
		"Patients":     pats,
		"Appointments": apts,
	})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	docs, err := h.doctors.List(c.Request.Context())
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "admin/docs.html", gin.H{"Title": "Doctors", "Doctors": docs})
}

func (h *Handler) AddDoctorPage(c *gin.Context) {
	handler.Render(c, http.StatusOK, "admin/doc_form.html", gin.H{"Title": "Add doctor"})
}

func (h *Handler) AddDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := handler.Bind(c, &req); err != nil {
		handler.RenderError(c, err)
		return
	}

	if _, err := h.doctors.Create(c.Request.Context(), &req); err != nil {
		if apperrors.StatusOf(err) == http.StatusConflict {
			handler.Redirect(c, "/admin/doc/add", handler.FlashError, apperrors.MessageOf(err))
			return
		}
		handler.RenderError(c, err)
		return
	}

	handler.Redirect(c, "/admin/docs", handler.FlashSuccess, "Doctor added successfully")
}

func (h *Handler) EditDoctorPage(c *gin.Context) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	d, err := h.doctors.Get(c.Request.Context(), id)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "admin/doc_form.html", gin.H{"Title": "Edit doctor", "Doctor": d})
}

func (h *Handler) EditDoctor(c *gin.Context) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	var req model.UpdateDoctorRequest
	if err := handler.Bind(c, &req); err != nil {
		handler.RenderError(c, err)
		return
	}
	if req.Email == "" {
		handler.RenderError(c, apperrors.BadRequest("email is required", nil))
		return
	}

	if _, err := h.doctors.Update(c.Request.Context(), id, &req); err != nil {
		if apperrors.StatusOf(err) == http.StatusConflict {
			handler.Redirect(c, "/admin/doc/edit/"+strconv.FormatInt(id, 10), handler.FlashError, apperrors.MessageOf(err))
			return
		}
		handler.RenderError(c, err)
		return
	}

	handler.Redirect(c, "/admin/docs", handler.FlashSuccess, "Doctor updated successfully")
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	if err := h.doctors.Delete(c.Request.Context(), id); err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Redirect(c, "/admin/docs", handler.FlashSuccess, "Doctor deleted successfully")
}

func (h *Handler) ListPatients(c *gin.Context) {
	pats, err := h.patients.List(c.Request.Context())
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "admin/pats.html", gin.H{"Title": "Patients", "Patients": pats})
}

func (h *Handler) ViewPatient(c *gin.Context) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	ctx := c.Request.Context()
	p, err := h.patients.Get(ctx, id)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	apts, err := h.appointments.ListForPatient(ctx, p.ID)
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	recs, err := h.records.ListForPatient(ctx, p.ID)
	if err != nil {
		handler.RenderError(c, err)
		return
	}

	handler.Render(c, http.StatusOK, "admin/pat_view.html", gin.H{
		"Title":        p.User.Name,
		"Patient":      p,
		"Appointments": apts,
		"Records":      recs,
	})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	apts, err := h.appointments.ListAll(c.Request.Context())
	if err != nil {
		handler.RenderError(c, err)
		return
	}
	handler.Render(c, http.StatusOK, "admin/apts.html", gin.H{"Title": "Appointments", "Appointments": apts})
}
