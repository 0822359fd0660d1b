// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package restaurant

import (
	"testing"
)

func validRecord() RawRecord {
	return RawRecord{
		"name":       "La Pergola",
		"style":      "Italian",
		"address":    "12 Via Roma",
		"vegetarian": "no",
		"openHour":   "11:00",
		"closeHour":  "23:00",
	}
}

func TestValidate_Valid(t *testing.T) {
	r, verr := Validate(validRecord())
	if verr != nil {
		t.Fatalf("Validate() error = %v, want nil", verr)
	}
	if r.Name != "La Pergola" || r.Style != "Italian" || r.Address != "12 Via Roma" {
		t.Errorf("unexpected entity: %+v", r)
	}
	if r.Vegetarian {
		t.Error("Vegetarian = true, want false")
	}
	if r.OpenHour != 660 || r.CloseHour != 1380 {
		t.Errorf("hours = (%d, %d), want (660, 1380)", r.OpenHour, r.CloseHour)
	}
}

func TestValidate_NormalizesWhitespaceAndCase(t *testing.T) {
	raw := validRecord()
	raw["name"] = "  La Pergola  "
	raw["vegetarian"] = " YES "

	r, verr := Validate(raw)
	if verr != nil {
		t.Fatalf("Validate() error = %v, want nil", verr)
	}
	if r.Name != "La Pergola" {
		t.Errorf("Name = %q, want trimmed", r.Name)
	}
	if !r.Vegetarian {
		t.Error("Vegetarian = false, want true for YES")
	}
}

func TestValidate_AcceptsBareClockLiterals(t *testing.T) {
	raw := validRecord()
	raw["openHour"] = "0930"
	raw["closeHour"] = "2230"

	r, verr := Validate(raw)
	if verr != nil {
		t.Fatalf("Validate() error = %v, want nil", verr)
	}
	if r.OpenHour != 570 || r.CloseHour != 1350 {
		t.Errorf("hours = (%d, %d), want (570, 1350)", r.OpenHour, r.CloseHour)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(RawRecord) RawRecord
		wantReason Reason
		wantField  string
	}{
		{
			name:       "nil record",
			mutate:     func(RawRecord) RawRecord { return nil },
			wantReason: ReasonMalformedRecord,
		},
		{
			name: "missing field",
			mutate: func(r RawRecord) RawRecord {
				delete(r, "address")
				return r
			},
			wantReason: ReasonMissingField,
			wantField:  "address",
		},
		{
			name: "unknown field",
			mutate: func(r RawRecord) RawRecord {
				r["rating"] = "5"
				return r
			},
			wantReason: ReasonUnknownField,
			wantField:  "rating",
		},
		{
			name: "non-string field",
			mutate: func(r RawRecord) RawRecord {
				r["openHour"] = 11
				return r
			},
			wantReason: ReasonInvalidField,
			wantField:  "openHour",
		},
		{
			name: "empty name",
			mutate: func(r RawRecord) RawRecord {
				r["name"] = "   "
				return r
			},
			wantReason: ReasonInvalidField,
			wantField:  "name",
		},
		{
			name: "truthy vegetarian form rejected",
			mutate: func(r RawRecord) RawRecord {
				r["vegetarian"] = "true"
				return r
			},
			wantReason: ReasonInvalidVegetarian,
		},
		{
			name: "numeric vegetarian form rejected",
			mutate: func(r RawRecord) RawRecord {
				r["vegetarian"] = "1"
				return r
			},
			wantReason: ReasonInvalidVegetarian,
		},
		{
			name: "bad open hour",
			mutate: func(r RawRecord) RawRecord {
				r["openHour"] = "25:00"
				return r
			},
			wantReason: ReasonInvalidTimeFormat,
			wantField:  "openHour",
		},
		{
			name: "bad close hour",
			mutate: func(r RawRecord) RawRecord {
				r["closeHour"] = "9pm"
				return r
			},
			wantReason: ReasonInvalidTimeFormat,
			wantField:  "closeHour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, verr := Validate(tt.mutate(validRecord()))
			if r != nil {
				t.Fatalf("Validate() entity = %+v, want nil", r)
			}
			if verr == nil {
				t.Fatal("Validate() error = nil, want rejection")
			}
			if verr.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", verr.Reason, tt.wantReason)
			}
			if tt.wantField != "" && verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
			if verr.Error() == "" {
				t.Error("Error() is empty")
			}
		})
	}
}

func TestValidate_InvalidTimeCarriesLiteral(t *testing.T) {
	raw := validRecord()
	raw["openHour"] = "25:99"
	_, verr := Validate(raw)
	if verr == nil {
		t.Fatal("want rejection")
	}
	if verr.Literal != "25:99" {
		t.Errorf("Literal = %q, want %q", verr.Literal, "25:99")
	}
}

func TestValidate_IsPure(t *testing.T) {
	raw := validRecord()
	raw["vegetarian"] = "YES"
	if _, verr := Validate(raw); verr != nil {
		t.Fatalf("Validate() error = %v", verr)
	}
	// The input record must not have been mutated.
	if raw["vegetarian"] != "YES" {
		t.Errorf("input record mutated: vegetarian = %v", raw["vegetarian"])
	}
}

func TestRestaurant_Key(t *testing.T) {
	a := Restaurant{Name: "Same", Address: "1 First St"}
	b := Restaurant{Name: "Same", Address: "1 First St", Style: "Asian", Vegetarian: true}
	c := Restaurant{Name: "Same", Address: "2 Second St"}

	if a.Key() != b.Key() {
		t.Error("records differing only outside (name, address) should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("records with different addresses should not share a key")
	}
}
