// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package restaurant defines the restaurant entity and the schema validator
// that admits raw records into the dataset.
package restaurant

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/platescout/platescout/internal/timeparse"
)

// Restaurant is one immutable dataset entry. Hours are stored as minutes
// since midnight; the wire encoding (see wireRestaurant) uses the external
// "HH:MM" and "yes"/"no" forms.
type Restaurant struct {
	Name       string
	Style      string
	Address    string
	Vegetarian bool
	OpenHour   int
	CloseHour  int
}

// Key returns the uniqueness key (name, address). Records sharing a key are
// duplicates regardless of the remaining fields.
func (r Restaurant) Key() string {
	return r.Name + "\x1f" + r.Address
}

// wireRestaurant is the external JSON shape: exactly the six attributes,
// hours as "HH:MM" literals, vegetarian as "yes"/"no".
type wireRestaurant struct {
	Name       string `json:"name"`
	Style      string `json:"style"`
	Address    string `json:"address"`
	Vegetarian string `json:"vegetarian"`
	OpenHour   string `json:"openHour"`
	CloseHour  string `json:"closeHour"`
}

// MarshalJSON encodes the restaurant in its external form.
func (r Restaurant) MarshalJSON() ([]byte, error) {
	vegetarian := "no"
	if r.Vegetarian {
		vegetarian = "yes"
	}
	return json.Marshal(wireRestaurant{
		Name:       r.Name,
		Style:      r.Style,
		Address:    r.Address,
		Vegetarian: vegetarian,
		OpenHour:   timeparse.FormatMinutes(r.OpenHour),
		CloseHour:  timeparse.FormatMinutes(r.CloseHour),
	})
}

// UnmarshalJSON decodes the external form back into the entity. Used when
// reading records out of the persistent store; values written by
// MarshalJSON always round-trip.
func (r *Restaurant) UnmarshalJSON(data []byte) error {
	var w wireRestaurant
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	open, err := timeparse.ParseClock(w.OpenHour)
	if err != nil {
		return fmt.Errorf("openHour: %w", err)
	}
	closeH, err := timeparse.ParseClock(w.CloseHour)
	if err != nil {
		return fmt.Errorf("closeHour: %w", err)
	}

	r.Name = w.Name
	r.Style = w.Style
	r.Address = w.Address
	r.Vegetarian = w.Vegetarian == "yes"
	r.OpenHour = open
	r.CloseHour = closeH
	return nil
}
