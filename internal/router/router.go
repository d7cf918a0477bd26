package router

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/ehospital/internal/middleware"
	"github.com/jwalitptl/ehospital/internal/web"
	"github.com/jwalitptl/ehospital/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	sessions *middleware.SessionMiddleware
	health   Handler
	authH    Handler
	adminH   Handler
	doctorH  Handler
	patientH Handler
}

type RouterConfig struct {
	Mode       string
	SecureOnly bool
	// MaxBodySize caps request bodies; zero means DefaultMaxBodySize.
	MaxBodySize int64
	Metrics     *metrics.Metrics
}

func NewRouter(
	sessions *middleware.SessionMiddleware,
	health Handler,
	authH Handler,
	adminH Handler,
	doctorH Handler,
	patientH Handler,
	config RouterConfig,
) (*Router, error) {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	if err := middleware.RegisterFormValidation(); err != nil {
		return nil, fmt.Errorf("failed to register validation: %w", err)
	}

	maxBody := config.MaxBodySize
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxBodySize
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.Recovery(),
	)
	if config.Metrics != nil {
		engine.Use(middleware.Metrics(config.Metrics))
	}
	engine.Use(
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig(config.SecureOnly)),
		middleware.SizeLimit(maxBody),
		sessions.Load(),
	)

	return &Router{
		engine:   engine,
		sessions: sessions,
		health:   health,
		authH:    authH,
		adminH:   adminH,
		doctorH:  doctorH,
		patientH: patientH,
	}, nil
}

func (r *Router) Setup() {
	root := r.engine.Group("")

	r.health.RegisterRoutes(root)
	r.authH.RegisterRoutes(root)

	admin := root.Group("/admin", r.sessions.RequireAdmin())
	r.adminH.RegisterRoutes(admin)

	doctor := root.Group("/doctor", r.sessions.RequireDoctor())
	r.doctorH.RegisterRoutes(doctor)

	patient := root.Group("/patient", r.sessions.RequirePatient())
	r.patientH.RegisterRoutes(patient)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
