// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/schoolscout/docs" // registers the OpenAPI document served at /swagger
	"github.com/tomtom215/schoolscout/internal/api"
	"github.com/tomtom215/schoolscout/internal/auth"
	"github.com/tomtom215/schoolscout/internal/config"
	"github.com/tomtom215/schoolscout/internal/dataset"
	"github.com/tomtom215/schoolscout/internal/geocode"
	"github.com/tomtom215/schoolscout/internal/logging"
	"github.com/tomtom215/schoolscout/internal/recommend"
	"github.com/tomtom215/schoolscout/internal/store"
	"github.com/tomtom215/schoolscout/internal/supervisor"
	"github.com/tomtom215/schoolscout/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("dataset", cfg.Dataset.BaseURL).
		Bool("persistent_store", cfg.Store.Path != "").
		Msg("Starting Schoolscout")

	catalog, err := dataset.NewFromConfig(cfg.Dataset)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize dataset client")
	}
	defer catalog.Close()

	resolver := geocode.NewFromConfig(cfg.Geocode)
	defer resolver.Close()

	engine, err := recommend.NewEngine(recommend.FromConfig(cfg.Recommend), catalog, catalog, resolver)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid recommendation settings")
	}

	prefStore, err := store.OpenFromConfig(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("Failed to open preference store")
	}
	defer func() {
		if err := prefStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing preference store")
		}
	}()

	identifier := newIdentifier(cfg.Security)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED")
	}

	handler := api.NewHandler(catalog, engine, prefStore)
	router := api.NewRouter(handler, identifier,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)),
		api.RouterOptions{
			RequestTimeout: cfg.Server.RequestTimeout,
			SlowRequest:    time.Second,
		})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(prefStore)
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Load the catalog early so readiness flips without waiting for the
	// first request.
	go warmCatalog(ctx, catalog)

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Schoolscout stopped")
}

// newIdentifier returns nil when no secret is configured, leaving every
// caller anonymous.
func newIdentifier(cfg config.SecurityConfig) *auth.Identifier {
	manager, err := auth.NewJWTManager(cfg)
	if errors.Is(err, auth.ErrNoSecret) {
		logging.Warn().Msg("JWT_SECRET is not set; stored preferences are disabled and every caller is anonymous")
		return nil
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	return auth.NewIdentifier(manager)
}

func warmCatalog(ctx context.Context, catalog *dataset.Catalog) {
	start := time.Now()
	n := catalog.Count(ctx)
	if ctx.Err() != nil {
		return
	}
	ev := logging.Info()
	if n == 0 {
		ev = logging.Warn()
	}
	ev.Int("schools", n).Dur("elapsed", time.Since(start)).Msg("School catalog warmed")
}
