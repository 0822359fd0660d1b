// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/platescout/platescout/internal/config"
	"github.com/platescout/platescout/internal/dataset"
	"github.com/platescout/platescout/internal/ingest"
	"github.com/platescout/platescout/internal/logging"
	"github.com/platescout/platescout/internal/restaurant"
	"github.com/platescout/platescout/internal/store"
)

func testConfig(datasetPath string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Dataset: config.DatasetConfig{Path: datasetPath},
		Security: config.SecurityConfig{
			RateLimitDisabled: true,
		},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}
}

func newTestServer(t *testing.T, restaurants []restaurant.Restaurant, datasetPath string) http.Handler {
	t.Helper()

	s, err := store.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	handle := dataset.NewHandle()
	handle.Publish(restaurants)

	cfg := testConfig(datasetPath)
	pipeline := ingest.NewPipeline(s, handle)
	handler := NewHandler(s, handle, pipeline, cfg)
	router := NewRouter(handler, NewChiMiddleware(NewChiMiddlewareConfig(cfg.Security)))
	return router.SetupChi()
}

var fixtures = []restaurant.Restaurant{
	{Name: "La Pergola", Style: "Italian", Address: "12 Via Roma", Vegetarian: false, OpenHour: 570, CloseHour: 1350},
	{Name: "Green Bowl", Style: "Asian", Address: "3 Lotus Ave", Vegetarian: true, OpenHour: 660, CloseHour: 1260},
}

func getRecommendation(t *testing.T, srv http.Handler, queryText string) (int, RecommendationResponse) {
	t.Helper()

	target := "/rest"
	if queryText != "" {
		target += "?query=" + url.QueryEscape(queryText)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var body RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestRecommendReturnsMatches(t *testing.T) {
	srv := newTestServer(t, fixtures, "")

	code, body := getRecommendation(t, srv, "italian that opens at 10:00")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}

	results, ok := body.RestaurantRecommendation.([]interface{})
	if !ok {
		t.Fatalf("restaurantRecommendation = %T, want array", body.RestaurantRecommendation)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}

	first, ok := results[0].(map[string]interface{})
	if !ok {
		t.Fatalf("result element = %T, want object", results[0])
	}
	if first["name"] != "La Pergola" {
		t.Errorf("name = %v, want La Pergola", first["name"])
	}
	if first["openHour"] != "09:30" || first["closeHour"] != "22:30" {
		t.Errorf("hours = %v/%v, want 09:30/22:30", first["openHour"], first["closeHour"])
	}
	if first["vegetarian"] != "no" {
		t.Errorf("vegetarian = %v, want no", first["vegetarian"])
	}
}

func TestRecommendMessageOutcomes(t *testing.T) {
	srv := newTestServer(t, fixtures, "")

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"empty query", "", "query is empty"},
		{"whitespace query", "   ", "query is empty"},
		{"no results", "steakhouse that opens at 10:00", "There are no results."},
		{"bad time literal", "opens at 25:99", "Invalid time format: 25:99"},
		{"midnight crossing", "between 22:00 and 02:00", "Time ranges crossing midnight are not supported: 22:00 to 02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := getRecommendation(t, srv, tt.query)
			if code != http.StatusOK {
				t.Fatalf("status = %d, want 200", code)
			}
			msg, ok := body.RestaurantRecommendation.(string)
			if !ok {
				t.Fatalf("restaurantRecommendation = %T, want string", body.RestaurantRecommendation)
			}
			if msg != tt.want {
				t.Errorf("message = %q, want %q", msg, tt.want)
			}
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, fixtures, "")

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var health HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("status = %q, want healthy", health.Status)
	}
	if health.Restaurants != len(fixtures) {
		t.Errorf("restaurants = %d, want %d", health.Restaurants, len(fixtures))
	}
}

func TestRecommendLoggedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	srv := newTestServer(t, fixtures, "")

	getRecommendation(t, srv, "italian that opens at 10:00")
	getRecommendation(t, srv, "steakhouse that opens at 10:00")
	getRecommendation(t, srv, "opens at 25:99")

	out := buf.String()
	for _, msg := range []string{"Query matched", "Query matched nothing", "Query rejected"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log output missing %q:\n%s", msg, out)
		}
	}
	if strings.Count(out, `"level":"info"`) < 3 {
		t.Errorf("query outcomes not logged at info level:\n%s", out)
	}
}

func TestHealthDegradedStore(t *testing.T) {
	s, err := store.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	handle := dataset.NewHandle()
	handle.Publish(fixtures)
	handler := NewHandler(s, handle, ingest.NewPipeline(s, handle), testConfig(""))

	// A closed store fails Ping while the snapshot keeps serving.
	s.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /health status = %d, want 503", rec.Code)
	}
	var health HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "degraded" {
		t.Errorf("status = %q, want degraded", health.Status)
	}

	rec = httptest.NewRecorder()
	handler.HealthReady(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /health/ready status = %d, want 503", rec.Code)
	}
}

func TestInfoEndpoint(t *testing.T) {
	srv := newTestServer(t, fixtures, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info InfoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if info.Service != "platescout" {
		t.Errorf("service = %q, want platescout", info.Service)
	}
}

func TestReloadEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurants.json")
	content := `[
		{"name": "Olive Tree", "style": "Mediterranean", "address": "5 Harbor Rd",
		 "openHour": "09:00", "closeHour": "22:00", "vegetarian": "no"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	srv := newTestServer(t, fixtures, path)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var reload ReloadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &reload); err != nil {
		t.Fatalf("decode reload: %v", err)
	}
	if reload.Loaded != 1 || reload.Skipped != 0 {
		t.Errorf("reload = %+v, want 1 loaded, 0 skipped", reload)
	}

	// The new snapshot should now serve.
	code, body := getRecommendation(t, srv, "mediterranean that opens at 10:00")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if _, ok := body.RestaurantRecommendation.([]interface{}); !ok {
		t.Errorf("restaurantRecommendation = %v, want results array", body.RestaurantRecommendation)
	}
}

func TestReloadFatalError(t *testing.T) {
	srv := newTestServer(t, fixtures, filepath.Join(t.TempDir(), "missing.json"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	// Previous snapshot keeps serving.
	_, body := getRecommendation(t, srv, "italian that opens at 10:00")
	if _, ok := body.RestaurantRecommendation.([]interface{}); !ok {
		t.Errorf("previous snapshot not serving after failed reload")
	}
}

func TestClientRequestIDAccepted(t *testing.T) {
	srv := newTestServer(t, fixtures, "")

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "test-request-id")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
