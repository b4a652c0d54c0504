// Trafficwatch - Traffic Monitoring Backend and Congestion Estimation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trafficwatch

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/trafficwatch/docs" // Import generated swagger docs
	"github.com/tomtom215/trafficwatch/internal/api"
	"github.com/tomtom215/trafficwatch/internal/config"
	"github.com/tomtom215/trafficwatch/internal/datasets"
	"github.com/tomtom215/trafficwatch/internal/logging"
	"github.com/tomtom215/trafficwatch/internal/supervisor"
	"github.com/tomtom215/trafficwatch/internal/supervisor/services"
	"github.com/tomtom215/trafficwatch/internal/uploads"
	"github.com/tomtom215/trafficwatch/internal/upstream"
)

const (
	datasetCheckInterval = time.Minute
	idleTimeout          = 60 * time.Second
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
		Version:   api.Version,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("data_dir", cfg.Data.Dir).
		Str("uploads_dir", cfg.Uploads.Dir).
		Bool("directions_configured", cfg.Directions.Configured()).
		Msg("Starting Trafficwatch")

	logSecurityWarnings(cfg)

	reader := datasets.NewReader(cfg.Data.Dir, cfg.Data.Files())
	if missing := reader.Check(); len(missing) > 0 {
		logging.Warn().Strs("missing", missing).Msg("Some datasets are not present; their endpoints will return 404")
	}

	fetcher := upstream.NewFetcher(upstream.OptionsFromConfig(&cfg.Upstream))

	store, err := uploads.New(cfg.Uploads.Dir, cfg.Uploads.MaxBytes, cfg.Uploads.AllowedTypes, cfg.Uploads.PublicBaseURL)
	if err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.Uploads.Dir).Msg("Failed to initialize upload store")
	}
	logging.Info().Str("dir", store.Dir()).Dur("timeout", cfg.Uploads.Timeout).Msg("Upload store ready")

	handler := api.NewHandler(cfg, api.Dependencies{
		Datasets:   reader,
		Proxy:      upstream.NewProxy(fetcher),
		Directions: upstream.NewDirections(fetcher, &cfg.Directions),
		Uploads:    store,
		Upstream:   fetcher,
	})
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       idleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddDataService(services.NewDatasetMonitorService(reader, datasetCheckInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	unstopped, err := tree.Run(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Trafficwatch stopped")
	if len(unstopped) > 0 {
		os.Exit(1)
	}
}

func logSecurityWarnings(cfg *config.Config) {
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*) in production; set explicit origins")
	}
	if !cfg.Directions.Configured() {
		logging.Warn().Msg("DIRECTIONS_API_KEY not set; /directions and /estimate/route will return 500")
		return
	}
	logging.Info().
		Str("base_url", cfg.Directions.BaseURL).
		Str("api_key", logging.SanitizeToken(cfg.Directions.APIKey)).
		Msg("Directions provider configured")
}
