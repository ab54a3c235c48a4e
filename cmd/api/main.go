// @title Vet Medication Reference API
// @version 1.0
// @description Catálogo de medicamentos veterinarios, cálculo de dosis por peso y mapeo de códigos de barras.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vet-medication-reference/internal/adapters/auth/odin"
	"vet-medication-reference/internal/adapters/storage/postgres"
	"vet-medication-reference/internal/middleware"
	"vet-medication-reference/internal/platform/config"
	"vet-medication-reference/internal/platform/logger"
	"vet-medication-reference/internal/platform/metrics"
	"vet-medication-reference/internal/ports/auth"
	"vet-medication-reference/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.Database.Enabled() {
		db, err = postgres.Open(cfg.Database.ConnString())
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer db.Close()

		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info("schema migrated", nil)
		}
	} else {
		log.Warn("DB not configured, using in-memory repositories", nil)
	}

	// sin Odin queda el modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.Odin.Enabled() {
		client, err := odin.NewClient(odin.Config{
			BaseURL: cfg.Odin.BaseURL,
			APIKey:  cfg.Odin.APIKey,
			Timeout: cfg.Odin.Timeout,
		})
		if err != nil {
			return err
		}
		verifier = odin.NewVerifier(client, log.With(map[string]any{"component": "odin"}))
	}

	srv := &http.Server{
		Addr: cfg.Server.Address(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			DB:           db,
			Logger:       log,
			Metrics:      metrics.NewCollector("vetmed"),
			Version:      cfg.App.Version,
			RateLimiter:  middleware.NewLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":    srv.Addr,
			"env":     cfg.App.Environment,
			"version": cfg.App.Version,
			"storage": storageName(db),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func storageName(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
