// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Command server runs the PlateScout recommendation service.
//
// Startup order: environment file, configuration, logging, dataset store,
// initial snapshot, HTTP router, supervisor tree. The initial snapshot
// comes from the store when it has a persisted dataset, otherwise from the
// configured dataset file.
//
// Docker:
//
//	docker run -d \
//	  -e RESTAURANTS_FILE=/data/restaurants.json \
//	  -e STORE_PATH=/data/platescout \
//	  -p 8080:8080 \
//	  ghcr.io/platescout/platescout
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

	"github.com/joho/godotenv"

	"github.com/platescout/platescout/internal/api"
	"github.com/platescout/platescout/internal/config"
	"github.com/platescout/platescout/internal/dataset"
	"github.com/platescout/platescout/internal/ingest"
	"github.com/platescout/platescout/internal/logging"
	"github.com/platescout/platescout/internal/metrics"
	"github.com/platescout/platescout/internal/store"
	"github.com/platescout/platescout/internal/supervisor"
	"github.com/platescout/platescout/internal/supervisor/services"
)

func main() {
	// Best-effort .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("dataset", cfg.Dataset.Path).
		Str("store", storePath(cfg)).
		Str("environment", cfg.Server.Environment).
		Msg("Starting PlateScout")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === DATASET STORE ===

	st, err := store.Open(storePath(cfg))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open dataset store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close dataset store")
		}
	}()

	// === INITIAL SNAPSHOT ===

	handle := dataset.NewHandle()
	pipeline := ingest.NewPipeline(st, handle)

	if err := publishInitialSnapshot(st, handle, pipeline, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load initial dataset")
	}
	logging.Info().Int("restaurants", handle.Load().Size()).Msg("Initial snapshot published")

	// === HTTP ROUTER ===

	handler := api.NewHandler(st, handle, pipeline, cfg)
	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Security))
	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	// === SUPERVISOR TREE ===

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	if cfg.Dataset.WatchEnabled {
		tree.AddDataService(ingest.NewWatcher(pipeline, cfg.Dataset.Path))
		logging.Info().Str("path", cfg.Dataset.Path).Msg("Dataset watcher service added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === RUN ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
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

	logging.Info().Msg("Application stopped gracefully")
}

// storePath returns the Badger path, or "" for an in-memory store.
func storePath(cfg *config.Config) string {
	if cfg.Store.InMemory {
		return ""
	}
	return cfg.Store.Path
}

// publishInitialSnapshot serves a persisted dataset if the store has one,
// otherwise ingests the configured dataset file. A missing file with an
// empty store is fatal: the service would have nothing to recommend.
func publishInitialSnapshot(st *store.Store, handle *dataset.Handle, pipeline *ingest.Pipeline, cfg *config.Config) error {
	restaurants, err := st.LoadAll()
	if err != nil {
		return fmt.Errorf("load persisted dataset: %w", err)
	}

	if len(restaurants) > 0 {
		handle.Publish(restaurants)
		metrics.DatasetSize.Set(float64(len(restaurants)))
		logging.Info().Int("restaurants", len(restaurants)).Msg("Serving persisted dataset")
		return nil
	}

	logging.Info().Str("path", cfg.Dataset.Path).Msg("Store empty, ingesting dataset file")
	if _, err := pipeline.Run(cfg.Dataset.Path); err != nil {
		return err
	}
	return nil
}
