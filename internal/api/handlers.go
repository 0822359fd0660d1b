// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package api provides the HTTP surface: the recommendation endpoint,
// health probes, dataset reload, and Prometheus metrics.
package api

import (
	"time"

	"github.com/platescout/platescout/internal/config"
	"github.com/platescout/platescout/internal/dataset"
	"github.com/platescout/platescout/internal/ingest"
	"github.com/platescout/platescout/internal/store"
)

// Version is the service version reported by the info endpoint.
const Version = "1.0.0"

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	store     *store.Store
	data      *dataset.Handle
	pipeline  *ingest.Pipeline
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates a handler with its dependencies. The store may be nil
// when persistence is disabled; the readiness probe then only checks the
// snapshot.
func NewHandler(s *store.Store, data *dataset.Handle, pipeline *ingest.Pipeline, cfg *config.Config) *Handler {
	return &Handler{
		store:     s,
		data:      data,
		pipeline:  pipeline,
		cfg:       cfg,
		startTime: time.Now(),
	}
}
