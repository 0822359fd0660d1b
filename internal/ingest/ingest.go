// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package ingest loads restaurant datasets from JSON files into the store
// and the live snapshot. A run is all-or-nothing at the file level (an
// unreadable or non-array file changes nothing) and best-effort at the
// record level (invalid records are skipped and reported, valid ones load).
package ingest

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/platescout/platescout/internal/dataset"
	"github.com/platescout/platescout/internal/logging"
	"github.com/platescout/platescout/internal/metrics"
	"github.com/platescout/platescout/internal/restaurant"
	"github.com/platescout/platescout/internal/store"
)

// Outcome classifies a completed run. Fatal failures are reported as
// errors, not outcomes.
type Outcome string

const (
	// OutcomeSuccess means every record loaded.
	OutcomeSuccess Outcome = "success"

	// OutcomeWarnings means the run completed but skipped records.
	OutcomeWarnings Outcome = "warnings"
)

// SkippedRecord identifies one rejected record and why it was rejected.
// Index is the record's position in the source array.
type SkippedRecord struct {
	Index  int
	Name   string
	Reason restaurant.Reason
	Detail string
}

// Report summarizes one run. Loaded preserves source-file order.
type Report struct {
	Loaded  []restaurant.Restaurant
	Skipped []SkippedRecord
}

// Outcome returns the run classification.
func (r *Report) Outcome() Outcome {
	if len(r.Skipped) > 0 {
		return OutcomeWarnings
	}
	return OutcomeSuccess
}

// SkippedByReason aggregates skip counts for metrics.
func (r *Report) SkippedByReason() map[string]int {
	if len(r.Skipped) == 0 {
		return nil
	}
	out := make(map[string]int)
	for _, s := range r.Skipped {
		out[string(s.Reason)]++
	}
	return out
}

// ReadFile reads and decodes a dataset file. The top-level value must be a
// JSON array; anything else is fatal for the whole run. Array elements that
// are not JSON objects come back as nil records, which validation rejects as
// malformed, so one bad element never sinks the batch.
func ReadFile(path string) ([]restaurant.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("decode dataset file %s: %w", path, err)
	}

	records := make([]restaurant.RawRecord, len(elems))
	for i, elem := range elems {
		var rec restaurant.RawRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			continue
		}
		records[i] = rec
	}
	return records, nil
}

// Load validates raw records in order. Records failing validation are
// skipped; a record whose (name, address) pair repeats an earlier accepted
// record is skipped as a duplicate, first occurrence wins.
func Load(raw []restaurant.RawRecord) *Report {
	report := &Report{}
	seen := make(map[string]struct{}, len(raw))

	for i, rec := range raw {
		r, verr := restaurant.Validate(rec)
		if verr != nil {
			report.Skipped = append(report.Skipped, SkippedRecord{
				Index:  i,
				Name:   rawName(rec),
				Reason: verr.Reason,
				Detail: verr.Error(),
			})
			continue
		}

		key := r.Key()
		if _, dup := seen[key]; dup {
			report.Skipped = append(report.Skipped, SkippedRecord{
				Index:  i,
				Name:   r.Name,
				Reason: restaurant.ReasonDuplicateKey,
				Detail: fmt.Sprintf("duplicate restaurant %q at %q", r.Name, r.Address),
			})
			continue
		}
		seen[key] = struct{}{}

		report.Loaded = append(report.Loaded, *r)
	}
	return report
}

func rawName(rec restaurant.RawRecord) string {
	if rec == nil {
		return ""
	}
	if name, ok := rec["name"].(string); ok {
		return name
	}
	return ""
}

// Pipeline runs ingestion end to end: read file, validate, persist,
// publish.
type Pipeline struct {
	store *store.Store
	data  *dataset.Handle
}

// NewPipeline wires a pipeline to its store and snapshot handle. The store
// may be nil when persistence is disabled.
func NewPipeline(s *store.Store, data *dataset.Handle) *Pipeline {
	return &Pipeline{store: s, data: data}
}

// Run ingests the file at path. On a fatal error (unreadable file, not a
// JSON array, store failure) nothing is published and the previous snapshot
// keeps serving.
func (p *Pipeline) Run(path string) (*Report, error) {
	start := time.Now()

	records, err := ReadFile(path)
	if err != nil {
		metrics.RecordIngest("failure", time.Since(start), nil)
		return nil, err
	}

	report := Load(records)

	if p.store != nil {
		if err := p.store.ReplaceAll(report.Loaded); err != nil {
			metrics.RecordIngest("failure", time.Since(start), nil)
			return nil, fmt.Errorf("persist dataset: %w", err)
		}
	}

	p.data.Publish(report.Loaded)
	metrics.DatasetSize.Set(float64(len(report.Loaded)))
	metrics.RecordIngest(string(report.Outcome()), time.Since(start), report.SkippedByReason())

	logEvent := logging.Info().
		Str("path", path).
		Int("loaded", len(report.Loaded)).
		Int("skipped", len(report.Skipped))
	for _, s := range report.Skipped {
		logging.Warn().
			Int("index", s.Index).
			Str("name", s.Name).
			Str("reason", string(s.Reason)).
			Msg(s.Detail)
	}
	logEvent.Msg("Dataset ingested")

	return report, nil
}
