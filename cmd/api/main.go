package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/ehospital/internal/app"
	"github.com/jwalitptl/ehospital/internal/config"
	"github.com/jwalitptl/ehospital/internal/repository/postgres"
	authService "github.com/jwalitptl/ehospital/internal/service/auth"
	userService "github.com/jwalitptl/ehospital/internal/service/user"
	"github.com/jwalitptl/ehospital/pkg/logger"
	"github.com/jwalitptl/ehospital/pkg/security"
)

func main() {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "ehospital",
		Short:         "eHospital management web application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger.Setup(logger.Config{Level: c.Log.Level, Format: c.Log.Format})
			cfg = c
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cfg)
		},
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the web server (migrates and seeds the admin first)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServer(cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the database tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Create the built-in admin account if missing",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSeed(cmd.Context(), cfg)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func runServer(cfg *config.Config) error {
	ctx := context.Background()

	store, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	a, err := app.New(cfg, store)
	if err != nil {
		return err
	}

	created, err := a.Auth.SeedAdmin(ctx)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("username", authService.AdminUsername).Msg("seeded admin account")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Int("port", cfg.Server.Port).
			Str("driver", cfg.Database.Driver).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}

func runMigrate(ctx context.Context, cfg *config.Config) error {
	if cfg.Database.Driver != config.DriverPostgres {
		log.Info().Str("driver", cfg.Database.Driver).Msg("nothing to migrate")
		return nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("migrations applied")
	return nil
}

func runSeed(ctx context.Context, cfg *config.Config) error {
	store, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := authService.NewService(store, userService.NewService(security.NewBcryptHasher(cfg.Session.BcryptCost)))
	created, err := svc.SeedAdmin(ctx)
	if err != nil {
		return err
	}

	log.Info().Bool("created", created).Str("username", authService.AdminUsername).Msg("admin seed finished")
	return nil
}
