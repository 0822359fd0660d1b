// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package match evaluates parsed query constraints against a restaurant
// snapshot. A restaurant is returned only when every constraint in the set
// holds; the result preserves snapshot order.
package match

import (
	"strings"
	"time"

	"github.com/platescout/platescout/internal/query"
	"github.com/platescout/platescout/internal/restaurant"
)

// Match filters restaurants by the constraint set, resolving a "now"
// constraint against the wall clock at call time.
func Match(q *query.ParsedQuery, restaurants []restaurant.Restaurant) []restaurant.Restaurant {
	now := time.Now()
	return MatchAt(q, restaurants, now.Hour()*60+now.Minute())
}

// MatchAt is Match with an explicit current minute of day, so a "now"
// constraint is deterministic for the caller.
func MatchAt(q *query.ParsedQuery, restaurants []restaurant.Restaurant, nowMinutes int) []restaurant.Restaurant {
	var out []restaurant.Restaurant
	for _, r := range restaurants {
		if matches(q, r, nowMinutes) {
			out = append(out, r)
		}
	}
	return out
}

func matches(q *query.ParsedQuery, r restaurant.Restaurant, nowMinutes int) bool {
	if q.Style != "" && !strings.EqualFold(q.Style, r.Style) {
		return false
	}
	if q.Vegetarian != r.Vegetarian {
		return false
	}
	return matchesTime(q.Time, r, nowMinutes)
}

// matchesTime applies the time constraint. "Open at t" is inclusive at both
// ends of the opening window; "closes at t" is exact equality on the closing
// hour; "between" requires the opening window to cover the whole requested
// window.
func matchesTime(tc query.TimeConstraint, r restaurant.Restaurant, nowMinutes int) bool {
	switch tc.Kind {
	case query.TimeNow:
		return openAt(r, nowMinutes)
	case query.TimeOpenAt:
		return openAt(r, tc.At)
	case query.TimeClosesAt:
		return r.CloseHour == tc.At
	case query.TimeBetween:
		return r.OpenHour <= tc.Start && r.CloseHour >= tc.End
	default:
		return false
	}
}

func openAt(r restaurant.Restaurant, minute int) bool {
	return r.OpenHour <= minute && minute <= r.CloseHour
}
