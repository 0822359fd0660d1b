// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package restaurant

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestRestaurant_MarshalJSON_WireShape(t *testing.T) {
	r := Restaurant{
		Name:       "Green Garden",
		Style:      "Mediterranean",
		Address:    "4 Olive Way",
		Vegetarian: true,
		OpenHour:   570,
		CloseHour:  1350,
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var wire map[string]string
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	want := map[string]string{
		"name":       "Green Garden",
		"style":      "Mediterranean",
		"address":    "4 Olive Way",
		"vegetarian": "yes",
		"openHour":   "09:30",
		"closeHour":  "22:30",
	}
	if len(wire) != len(want) {
		t.Fatalf("wire record has %d fields, want %d: %v", len(wire), len(want), wire)
	}
	for k, v := range want {
		if wire[k] != v {
			t.Errorf("wire[%q] = %q, want %q", k, wire[k], v)
		}
	}
}

func TestRestaurant_JSONRoundTrip(t *testing.T) {
	orig := Restaurant{
		Name:       "Butcher Block",
		Style:      "Steakhouse",
		Address:    "9 Grill Ave",
		Vegetarian: false,
		OpenHour:   0,
		CloseHour:  1439,
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var got Restaurant
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got != orig {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestRestaurant_UnmarshalJSON_BadHours(t *testing.T) {
	data := []byte(`{"name":"x","style":"Asian","address":"y","vegetarian":"no","openHour":"26:00","closeHour":"23:00"}`)
	var r Restaurant
	if err := json.Unmarshal(data, &r); err == nil {
		t.Error("Unmarshal() = nil, want error for invalid stored hour")
	}
}
