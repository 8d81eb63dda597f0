// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

// Motorgraph serves car recommendations over HTTP.
//
// On startup the server loads a car catalog from CSV, builds the
// scoring engine and exposes the API under /api/v1. Configuration
// comes from config.yaml and MOTORGRAPH_* environment variables:
//
//	MOTORGRAPH_CATALOG_PATH=/data/cars.csv \
//	MOTORGRAPH_SERVER_PORT=8080 \
//	motorgraph-server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/motorgraph/internal/api"
	"github.com/tomtom215/motorgraph/internal/catalog"
	"github.com/tomtom215/motorgraph/internal/config"
	"github.com/tomtom215/motorgraph/internal/logging"
	"github.com/tomtom215/motorgraph/internal/metrics"
	"github.com/tomtom215/motorgraph/internal/recommend"
	"github.com/tomtom215/motorgraph/internal/supervisor"
	"github.com/tomtom215/motorgraph/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("catalog_path", cfg.Catalog.Path).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Motorgraph")

	// Load the catalog before accepting traffic; a bad catalog is fatal.
	loadStart := time.Now()
	loader := catalog.NewLoader(logging.Logger())
	cat, err := loader.Load(context.Background(), cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
	}
	metrics.ObserveCatalogLoad(cat.Len(), time.Since(loadStart))
	logging.Info().
		Int("cars", cat.Len()).
		Dur("elapsed", time.Since(loadStart)).
		Msg("Catalog loaded")

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	router := api.NewRouter(cfg, api.NewHandler(engine, cat))
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
