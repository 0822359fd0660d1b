// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package dataset holds the in-memory restaurant snapshot served to
// queries. A snapshot is immutable once published; reloads build a new
// snapshot and swap the pointer, so readers never observe a partially
// loaded dataset.
package dataset

import (
	"sync/atomic"

	"github.com/platescout/platescout/internal/restaurant"
)

// Snapshot is one immutable generation of the dataset. The slice must not
// be mutated after Publish.
type Snapshot struct {
	Restaurants []restaurant.Restaurant
}

// Size returns the number of restaurants in the snapshot.
func (s *Snapshot) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Restaurants)
}

// Handle is the shared access point for the current snapshot. The zero
// value holds an empty snapshot.
type Handle struct {
	current atomic.Pointer[Snapshot]
}

// NewHandle returns a handle primed with an empty snapshot so Load never
// returns nil.
func NewHandle() *Handle {
	h := &Handle{}
	h.current.Store(&Snapshot{})
	return h
}

// Load returns the current snapshot.
func (h *Handle) Load() *Snapshot {
	if s := h.current.Load(); s != nil {
		return s
	}
	return &Snapshot{}
}

// Publish atomically replaces the current snapshot. In-flight queries keep
// the generation they loaded.
func (h *Handle) Publish(restaurants []restaurant.Restaurant) {
	h.current.Store(&Snapshot{Restaurants: restaurants})
}
