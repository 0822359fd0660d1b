// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/platescout/platescout/internal/logging"
)

// defaultDebounce coalesces the burst of events editors and atomic writers
// emit for a single save.
const defaultDebounce = 500 * time.Millisecond

// Watcher re-runs the pipeline whenever the dataset file changes. It
// watches the file's directory rather than the file itself, because atomic
// writers replace the file and break a direct watch.
type Watcher struct {
	pipeline *Pipeline
	path     string
	debounce time.Duration
	logger   zerolog.Logger
}

// NewWatcher returns a watcher for the dataset file at path.
func NewWatcher(pipeline *Pipeline, path string) *Watcher {
	return &Watcher{
		pipeline: pipeline,
		path:     filepath.Clean(path),
		debounce: defaultDebounce,
		logger:   logging.With().Str("component", "dataset-watcher").Logger(),
	}
}

// String names the watcher in supervisor logs.
func (w *Watcher) String() string {
	return "dataset-watcher"
}

// Serve watches the dataset file until ctx is cancelled. A reload failure
// is logged and the previous snapshot keeps serving; the watcher itself
// only fails on watch setup or watcher channel loss, letting the
// supervisor restart it.
func (w *Watcher) Serve(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create dataset watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch dataset directory %s: %w", dir, err)
	}

	w.logger.Info().Str("path", w.path).Msg("Dataset watcher started")

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("dataset watcher event channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if _, err := w.pipeline.Run(w.path); err != nil {
				w.logger.Err(err).Str("path", w.path).Msg("Dataset reload failed, keeping previous snapshot")
			}

		case werr, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("dataset watcher error channel closed")
			}
			w.logger.Err(werr).Msg("Dataset watcher error")
		}
	}
}
