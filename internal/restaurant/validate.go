// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package restaurant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/platescout/platescout/internal/timeparse"
	"github.com/platescout/platescout/internal/validation"
)

// RawRecord is one undecoded dataset entry, as produced by unmarshaling a
// JSON array element.
type RawRecord map[string]interface{}

// Reason classifies why a raw record was rejected.
type Reason string

// Rejection reasons. DuplicateKey is assigned by the ingestion pipeline, not
// by Validate, since duplicate detection needs batch context.
const (
	ReasonMalformedRecord   Reason = "malformed_record"
	ReasonUnknownField      Reason = "unknown_field"
	ReasonMissingField      Reason = "missing_field"
	ReasonInvalidField      Reason = "invalid_field"
	ReasonInvalidVegetarian Reason = "invalid_vegetarian_value"
	ReasonInvalidTimeFormat Reason = "invalid_time_format"
	ReasonDuplicateKey      Reason = "duplicate_key"
)

// ValidationError is the typed rejection returned for an invalid record.
// It is a value, never panicked, so batch processing continues past it.
type ValidationError struct {
	Reason  Reason
	Field   string
	Literal string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMalformedRecord:
		return "record is not a JSON object"
	case ReasonUnknownField:
		return fmt.Sprintf("unknown field: %s", e.Field)
	case ReasonMissingField:
		return fmt.Sprintf("missing field: %s", e.Field)
	case ReasonInvalidField:
		return fmt.Sprintf("%s: invalid value %q", e.Field, e.Literal)
	case ReasonInvalidVegetarian:
		return fmt.Sprintf("vegetarian must be \"yes\" or \"no\", got %q", e.Literal)
	case ReasonInvalidTimeFormat:
		return fmt.Sprintf("%s: Invalid time format: %s", e.Field, e.Literal)
	case ReasonDuplicateKey:
		return fmt.Sprintf("duplicate (name, address) key: %s", e.Field)
	default:
		return fmt.Sprintf("invalid record (%s)", e.Reason)
	}
}

// requiredFields lists the exact attribute set a record must carry, in
// reporting order.
var requiredFields = []string{"name", "style", "address", "vegetarian", "openHour", "closeHour"}

// fieldConstraints carries the per-field rules checked via
// go-playground/validator once the field set and types are known good.
type fieldConstraints struct {
	Name       string `validate:"required"`
	Address    string `validate:"required"`
	Vegetarian string `validate:"oneof=yes no"`
}

// Validate checks one raw record against the schema and returns the
// well-formed entity or a typed rejection. It is a pure function: no shared
// state is touched and nothing is ever thrown.
//
// Checks in order: the record is an object carrying exactly the six known
// fields with string values; name and address are non-empty; vegetarian is
// literally "yes" or "no"; openHour and closeHour are valid clock literals.
func Validate(raw RawRecord) (*Restaurant, *ValidationError) {
	if raw == nil {
		return nil, &ValidationError{Reason: ReasonMalformedRecord}
	}

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return nil, &ValidationError{Reason: ReasonMissingField, Field: field}
		}
	}
	if len(raw) > len(requiredFields) {
		return nil, &ValidationError{Reason: ReasonUnknownField, Field: firstUnknownField(raw)}
	}

	values := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		s, ok := raw[field].(string)
		if !ok {
			return nil, &ValidationError{
				Reason:  ReasonInvalidField,
				Field:   field,
				Literal: fmt.Sprintf("%v", raw[field]),
			}
		}
		values[field] = strings.TrimSpace(s)
	}

	constraints := fieldConstraints{
		Name:       values["name"],
		Address:    values["address"],
		Vegetarian: strings.ToLower(values["vegetarian"]),
	}
	if err := validation.ValidateStruct(&constraints); err != nil {
		fe := err.Errors()[0]
		switch fe.Field() {
		case "Vegetarian":
			return nil, &ValidationError{Reason: ReasonInvalidVegetarian, Literal: values["vegetarian"]}
		case "Address":
			return nil, &ValidationError{Reason: ReasonInvalidField, Field: "address", Literal: values["address"]}
		default:
			return nil, &ValidationError{Reason: ReasonInvalidField, Field: "name", Literal: values["name"]}
		}
	}

	open, err := timeparse.ParseClock(values["openHour"])
	if err != nil {
		return nil, &ValidationError{Reason: ReasonInvalidTimeFormat, Field: "openHour", Literal: values["openHour"]}
	}
	closeH, err := timeparse.ParseClock(values["closeHour"])
	if err != nil {
		return nil, &ValidationError{Reason: ReasonInvalidTimeFormat, Field: "closeHour", Literal: values["closeHour"]}
	}

	return &Restaurant{
		Name:       values["name"],
		Style:      values["style"],
		Address:    values["address"],
		Vegetarian: constraints.Vegetarian == "yes",
		OpenHour:   open,
		CloseHour:  closeH,
	}, nil
}

// firstUnknownField returns the lexicographically smallest field name not in
// the schema, so rejections are deterministic across map iteration orders.
func firstUnknownField(raw RawRecord) string {
	known := make(map[string]bool, len(requiredFields))
	for _, f := range requiredFields {
		known[f] = true
	}
	var unknown []string
	for field := range raw {
		if !known[field] {
			unknown = append(unknown, field)
		}
	}
	sort.Strings(unknown)
	if len(unknown) == 0 {
		return ""
	}
	return unknown[0]
}
