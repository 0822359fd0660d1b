// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Command loader validates a restaurant dataset file and persists it to
// the dataset store, so a later server start serves it immediately.
//
// Usage:
//
//	loader [dataset-file]
//
// The dataset file defaults to the configured dataset path. Exit codes:
//
//	0 - every record loaded
//	1 - completed, but some records were skipped
//	2 - fatal error, nothing was persisted
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/platescout/platescout/internal/config"
	"github.com/platescout/platescout/internal/ingest"
	"github.com/platescout/platescout/internal/logging"
	"github.com/platescout/platescout/internal/store"
)

const (
	exitOK       = 0
	exitWarnings = 1
	exitFatal    = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return exitFatal
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	path := cfg.Dataset.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	records, err := ingest.ReadFile(path)
	if err != nil {
		logging.Error().Err(err).Str("path", path).Msg("Failed to read dataset file")
		return exitFatal
	}

	report := ingest.Load(records)

	st, err := store.Open(storePath(cfg))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open dataset store")
		return exitFatal
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close dataset store")
		}
	}()

	if err := st.ReplaceAll(report.Loaded); err != nil {
		logging.Error().Err(err).Msg("Failed to persist dataset")
		return exitFatal
	}

	for _, s := range report.Skipped {
		logging.Warn().
			Int("index", s.Index).
			Str("name", s.Name).
			Str("reason", string(s.Reason)).
			Msg(s.Detail)
	}

	logging.Info().
		Str("path", path).
		Int("loaded", len(report.Loaded)).
		Int("skipped", len(report.Skipped)).
		Msg("Dataset persisted")

	if report.Outcome() == ingest.OutcomeWarnings {
		return exitWarnings
	}
	return exitOK
}

// storePath returns the Badger path, or "" for an in-memory store. An
// in-memory store makes the loader a pure validation run.
func storePath(cfg *config.Config) string {
	if cfg.Store.InMemory {
		return ""
	}
	return cfg.Store.Path
}
