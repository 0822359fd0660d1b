// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/platescout/platescout/internal/logging"
	"github.com/platescout/platescout/internal/match"
	"github.com/platescout/platescout/internal/metrics"
	"github.com/platescout/platescout/internal/query"
	"github.com/platescout/platescout/internal/timeparse"
)

// RecommendationResponse is the wire shape of the query endpoint. The
// restaurantRecommendation field carries either the matching restaurants or
// a message string explaining why there are none.
type RecommendationResponse struct {
	RestaurantRecommendation interface{} `json:"restaurantRecommendation"`
}

const noResultsMessage = "There are no results."

// Recommend handles GET /rest. Every query outcome is a 200 with the
// recommendation shape; unparseable queries report the parse message in
// place of results rather than an HTTP error.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	text := r.URL.Query().Get("query")

	q, err := query.Parse(text)
	if err != nil {
		outcome, message := classifyParseError(err)
		metrics.RecordQuery(outcome, time.Since(start), 0)
		logging.Ctx(r.Context()).Info().
			Str("query", sanitizeLogValue(text)).
			Str("outcome", outcome).
			Msg("Query rejected")
		respondJSON(w, http.StatusOK, &RecommendationResponse{RestaurantRecommendation: message})
		return
	}

	snapshot := h.data.Load()
	results := match.Match(q, snapshot.Restaurants)

	if len(results) == 0 {
		metrics.RecordQuery("no_results", time.Since(start), 0)
		logging.Ctx(r.Context()).Info().
			Str("query", sanitizeLogValue(text)).
			Msg("Query matched nothing")
		respondJSON(w, http.StatusOK, &RecommendationResponse{RestaurantRecommendation: noResultsMessage})
		return
	}

	metrics.RecordQuery("results", time.Since(start), len(results))
	logging.Ctx(r.Context()).Info().
		Str("query", sanitizeLogValue(text)).
		Int("results", len(results)).
		Msg("Query matched")
	respondJSON(w, http.StatusOK, &RecommendationResponse{RestaurantRecommendation: results})
}

// classifyParseError maps a parse failure to its metrics outcome and its
// user-facing message.
func classifyParseError(err error) (outcome, message string) {
	var formatErr *timeparse.FormatError
	var crossingErr *timeparse.MidnightCrossingError

	switch {
	case errors.Is(err, query.ErrEmptyQuery):
		return "empty_query", err.Error()
	case errors.As(err, &formatErr):
		return "time_format", formatErr.Error()
	case errors.As(err, &crossingErr):
		return "midnight_crossing", crossingErr.Error()
	default:
		return "parse_error", err.Error()
	}
}
