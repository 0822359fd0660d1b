// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package query parses free-text restaurant queries into structured
// constraint sets.
//
// Parsing is one deterministic pass over the lower-cased input:
//
//  1. Whitespace-only input is ErrEmptyQuery, a sentinel distinct from any
//     constraint set.
//  2. The whole word "vegetarian" anywhere toggles the vegetarian flag.
//     There is no third state: its absence means non-vegetarian only.
//  3. The style filter is the earliest-occurring keyword from the fixed
//     candidate set (italian, asian, steakhouse, mediterranean). First
//     occurrence wins even if a different keyword appears later.
//  4. Time phrases are tried in fixed priority so patterns cannot collide:
//     "between T and T" (also "to" or "-" separators), then "opens at T" /
//     "opening at T", then "closes at T" / "closing at T". If none match,
//     the constraint is Now, resolved at match time rather than parse time.
//
// A time literal or range that fails to resolve aborts the parse: the
// *timeparse.FormatError or *timeparse.MidnightCrossingError is returned
// as the parse error and no partial constraint set is produced.
package query

import (
	"errors"
	"regexp"
	"strings"

	"github.com/platescout/platescout/internal/timeparse"
)

// ErrEmptyQuery is the sentinel returned for whitespace-only input.
// It is an outcome, not a failure; callers map it to their own message.
var ErrEmptyQuery = errors.New("query is empty")

// TimeKind discriminates the time-constraint variants.
type TimeKind int

// Time-constraint variants, in match priority order.
const (
	// TimeNow matches restaurants open at the wall-clock time of the
	// match call.
	TimeNow TimeKind = iota

	// TimeOpenAt matches restaurants open at the given minute of day.
	TimeOpenAt

	// TimeClosesAt matches restaurants closing exactly at the given
	// minute of day.
	TimeClosesAt

	// TimeBetween matches restaurants open for the entire window.
	TimeBetween
)

// String returns the variant name for logging.
func (k TimeKind) String() string {
	switch k {
	case TimeNow:
		return "now"
	case TimeOpenAt:
		return "open_at"
	case TimeClosesAt:
		return "closes_at"
	case TimeBetween:
		return "between"
	default:
		return "unknown"
	}
}

// TimeConstraint is the parsed time filter. At holds the minute of day for
// TimeOpenAt and TimeClosesAt; Start/End hold the window for TimeBetween.
type TimeConstraint struct {
	Kind  TimeKind
	At    int
	Start int
	End   int
}

// ParsedQuery is the structured constraint set for one request. Style is
// empty when no style keyword occurred (no style filter); the vegetarian
// flag always filters.
type ParsedQuery struct {
	Vegetarian bool
	Style      string
	Time       TimeConstraint
}

// styleKeywords is the fixed candidate set. The slice order breaks ties
// between keywords occurring at the same text offset.
var styleKeywords = []string{"italian", "asian", "steakhouse", "mediterranean"}

const clockLiteral = `(\d{1,2}:\d{2}|\d{4})`

var (
	vegetarianWord = regexp.MustCompile(`\bvegetarian\b`)
	betweenPhrase  = regexp.MustCompile(`between\s+` + clockLiteral + `(?:\s+(?:and|to)\s+|\s*-\s*)` + clockLiteral)
	opensPhrase    = regexp.MustCompile(`(?:opens?|opening)\s+(?:at\s+)?` + clockLiteral)
	closesPhrase   = regexp.MustCompile(`(?:closes?|closing)\s+(?:at\s+)?` + clockLiteral)
)

// Parse converts free text into a constraint set. It returns ErrEmptyQuery
// for whitespace-only input, or the time resolver's error when a matched
// time phrase carries an unresolvable literal or range.
func Parse(text string) (*ParsedQuery, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}
	lower := strings.ToLower(trimmed)

	constraint, err := parseTimeConstraint(lower)
	if err != nil {
		return nil, err
	}

	return &ParsedQuery{
		Vegetarian: vegetarianWord.MatchString(lower),
		Style:      firstStyle(lower),
		Time:       constraint,
	}, nil
}

// firstStyle returns the earliest-occurring style keyword, or "" when none
// occurs.
func firstStyle(lower string) string {
	best := -1
	style := ""
	for _, kw := range styleKeywords {
		if idx := strings.Index(lower, kw); idx >= 0 && (best == -1 || idx < best) {
			best = idx
			style = kw
		}
	}
	return style
}

// parseTimeConstraint tries the time phrases in fixed priority. Once a
// phrase matches, its literals are resolved and any resolver error is
// final; no later phrase is tried.
func parseTimeConstraint(lower string) (TimeConstraint, error) {
	if m := betweenPhrase.FindStringSubmatch(lower); m != nil {
		start, end, err := timeparse.ParseRange(m[1], m[2])
		if err != nil {
			return TimeConstraint{}, err
		}
		return TimeConstraint{Kind: TimeBetween, Start: start, End: end}, nil
	}

	if m := opensPhrase.FindStringSubmatch(lower); m != nil {
		at, err := timeparse.ParseClock(m[1])
		if err != nil {
			return TimeConstraint{}, err
		}
		return TimeConstraint{Kind: TimeOpenAt, At: at}, nil
	}

	if m := closesPhrase.FindStringSubmatch(lower); m != nil {
		at, err := timeparse.ParseClock(m[1])
		if err != nil {
			return TimeConstraint{}, err
		}
		return TimeConstraint{Kind: TimeClosesAt, At: at}, nil
	}

	return TimeConstraint{Kind: TimeNow}, nil
}
