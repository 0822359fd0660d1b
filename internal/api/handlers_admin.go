// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package api

import (
	"net/http"

	"github.com/platescout/platescout/internal/logging"
)

// InfoResponse describes the service to a client hitting the root path.
type InfoResponse struct {
	Service    string            `json:"service"`
	Version    string            `json:"version"`
	Endpoints  map[string]string `json:"endpoints"`
	QueryRules []string          `json:"queryRules"`
	Examples   []string          `json:"examples"`
}

// Info handles GET /.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &InfoResponse{
		Service: "platescout",
		Version: Version,
		Endpoints: map[string]string{
			"recommendation": "/rest?query=...",
			"health":         "/health",
			"metrics":        "/metrics",
		},
		QueryRules: []string{
			"styles: italian, asian, steakhouse, mediterranean",
			"'vegetarian' filters to vegetarian restaurants",
			"'opens at HH:MM', 'closes at HH:MM', 'between HH:MM and HH:MM'",
			"without a time phrase, restaurants open right now are returned",
		},
		Examples: []string{
			"vegetarian italian place",
			"steakhouse that opens at 17:00",
			"asian between 12:00 and 14:00",
		},
	})
}

// ReloadResponse summarizes a reload triggered over the API.
type ReloadResponse struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Reload handles POST /api/v1/reload: it re-runs the ingestion pipeline
// against the configured dataset file. A fatal ingest error leaves the
// previous snapshot serving and reports 502.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	report, err := h.pipeline.Run(h.cfg.Dataset.Path)
	if err != nil {
		respondError(w, http.StatusBadGateway, "dataset reload failed", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("loaded", len(report.Loaded)).
		Int("skipped", len(report.Skipped)).
		Msg("Dataset reloaded via API")

	respondJSON(w, http.StatusOK, &ReloadResponse{
		Loaded:  len(report.Loaded),
		Skipped: len(report.Skipped),
	})
}
