// Package app assembles the store, services, handlers and router.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/ehospital/internal/config"
	"github.com/jwalitptl/ehospital/internal/handler"
	adminHandler "github.com/jwalitptl/ehospital/internal/handler/admin"
	authHandler "github.com/jwalitptl/ehospital/internal/handler/auth"
	doctorHandler "github.com/jwalitptl/ehospital/internal/handler/doctor"
	"github.com/jwalitptl/ehospital/internal/handler/health"
	patientHandler "github.com/jwalitptl/ehospital/internal/handler/patient"
	"github.com/jwalitptl/ehospital/internal/middleware"
	"github.com/jwalitptl/ehospital/internal/repository"
	"github.com/jwalitptl/ehospital/internal/repository/memory"
	"github.com/jwalitptl/ehospital/internal/repository/postgres"
	"github.com/jwalitptl/ehospital/internal/router"
	appointmentService "github.com/jwalitptl/ehospital/internal/service/appointment"
	authService "github.com/jwalitptl/ehospital/internal/service/auth"
	doctorService "github.com/jwalitptl/ehospital/internal/service/doctor"
	medicalService "github.com/jwalitptl/ehospital/internal/service/medical"
	patientService "github.com/jwalitptl/ehospital/internal/service/patient"
	userService "github.com/jwalitptl/ehospital/internal/service/user"
	"github.com/jwalitptl/ehospital/pkg/auth"
	"github.com/jwalitptl/ehospital/pkg/metrics"
	"github.com/jwalitptl/ehospital/pkg/security"
)

const metricsNamespace = "ehospital"

type App struct {
	Config   *config.Config
	Store    repository.Store
	Metrics  *metrics.Metrics
	Auth     *authService.Service
	Sessions *auth.SessionManager
	Router   *router.Router
}

// OpenStore connects the configured store. PostgreSQL schemas are migrated
// before the store is returned.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return postgres.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func New(cfg *config.Config, store repository.Store) (*App, error) {
	m := metrics.New(metricsNamespace)
	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL, auth.NewRevocationList(10*time.Minute))
	cookie := handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
		TTL:    cfg.Session.TTL,
	}

	// Services
	userSvc := userService.NewService(security.NewBcryptHasher(cfg.Session.BcryptCost))
	authSvc := authService.NewService(store, userSvc)
	doctorSvc := doctorService.NewService(store, userSvc)
	patientSvc := patientService.NewService(store)
	appointmentSvc := appointmentService.NewService(store, m)
	medicalSvc := medicalService.NewService(store)

	r, err := router.NewRouter(
		middleware.NewSessionMiddleware(sessions, cookie),
		health.NewHandler(store, m.Handler()),
		authHandler.NewHandler(authSvc, sessions, cookie, m),
		adminHandler.NewHandler(doctorSvc, patientSvc, appointmentSvc, medicalSvc),
		doctorHandler.NewHandler(doctorSvc, patientSvc, appointmentSvc, medicalSvc),
		patientHandler.NewHandler(patientSvc, doctorSvc, appointmentSvc, medicalSvc),
		router.RouterConfig{
			Mode:        cfg.Server.Mode,
			SecureOnly:  cfg.Session.Secure,
			MaxBodySize: cfg.Server.MaxBodySize,
			Metrics:     m,
		},
	)
	if err != nil {
		return nil, err
	}
	r.Setup()

	return &App{
		Config:   cfg,
		Store:    store,
		Metrics:  m,
		Auth:     authSvc,
		Sessions: sessions,
		Router:   r,
	}, nil
}
