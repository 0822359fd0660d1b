// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package store

import (
	"reflect"
	"testing"

	"github.com/platescout/platescout/internal/restaurant"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open("")
	if err != nil {
		t.Fatalf("Open in-memory store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

var testRestaurants = []restaurant.Restaurant{
	{Name: "La Pergola", Style: "Italian", Address: "12 Via Roma", Vegetarian: false, OpenHour: 570, CloseHour: 1350},
	{Name: "Green Bowl", Style: "Asian", Address: "3 Lotus Ave", Vegetarian: true, OpenHour: 660, CloseHour: 1260},
	{Name: "Arnold's", Style: "Steakhouse", Address: "77 Butcher St", Vegetarian: false, OpenHour: 1020, CloseHour: 1410},
}

func TestReplaceAllAndLoadAll(t *testing.T) {
	s := openTestStore(t)

	if err := s.ReplaceAll(testRestaurants); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if !reflect.DeepEqual(got, testRestaurants) {
		t.Errorf("LoadAll() = %+v, want %+v", got, testRestaurants)
	}
}

func TestReplaceAllDropsPreviousGeneration(t *testing.T) {
	s := openTestStore(t)

	if err := s.ReplaceAll(testRestaurants); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	smaller := testRestaurants[:1]
	if err := s.ReplaceAll(smaller); err != nil {
		t.Fatalf("ReplaceAll second generation: %v", err)
	}

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 1 || got[0].Name != "La Pergola" {
		t.Errorf("LoadAll() after shrink = %+v, want only La Pergola", got)
	}
}

func TestLoadAllEmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadAll() on empty store = %+v, want empty", got)
	}
}

func TestCount(t *testing.T) {
	s := openTestStore(t)

	if err := s.ReplaceAll(testRestaurants); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != len(testRestaurants) {
		t.Errorf("Count() = %d, want %d", n, len(testRestaurants))
	}
}

func TestPing(t *testing.T) {
	s := openTestStore(t)

	if err := s.Ping(); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
