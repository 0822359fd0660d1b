// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package api

import (
	"net/http"
	"time"
)

// HealthResponse is the body of the aggregate health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Uptime      string    `json:"uptime"`
	Restaurants int       `json:"restaurants"`
	Timestamp   time.Time `json:"timestamp"`
}

// Health handles GET /health. Degraded means the service is up but the
// store is not answering; queries still serve from the live snapshot, and
// the endpoint reports 503 so external checks notice.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, code, &HealthResponse{
		Status:      status,
		Version:     Version,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Restaurants: h.data.Load().Size(),
		Timestamp:   time.Now().UTC(),
	})
}

// HealthLive handles GET /health/live. Liveness only proves the process
// answers; it must not depend on the store or the dataset.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady handles GET /health/ready. Ready means the store answers and
// a snapshot has been published.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			respondError(w, http.StatusServiceUnavailable, "store not ready", err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
