// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

package match

import (
	"reflect"
	"testing"

	"github.com/platescout/platescout/internal/query"
	"github.com/platescout/platescout/internal/restaurant"
)

var sampleSet = []restaurant.Restaurant{
	{Name: "La Pergola", Style: "Italian", Address: "12 Via Roma", Vegetarian: false, OpenHour: 570, CloseHour: 1350},      // 09:30-22:30
	{Name: "Green Bowl", Style: "Asian", Address: "3 Lotus Ave", Vegetarian: true, OpenHour: 660, CloseHour: 1260},         // 11:00-21:00
	{Name: "Prime Cut", Style: "Steakhouse", Address: "77 Butcher St", Vegetarian: false, OpenHour: 1020, CloseHour: 1410}, // 17:00-23:30
	{Name: "Olive Tree", Style: "Mediterranean", Address: "5 Harbor Rd", Vegetarian: true, OpenHour: 540, CloseHour: 1320}, // 09:00-22:00
}

func names(rs []restaurant.Restaurant) []string {
	var out []string
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestMatchAt(t *testing.T) {
	tests := []struct {
		name       string
		q          *query.ParsedQuery
		nowMinutes int
		want       []string
	}{
		{
			name:       "now filters by wall clock",
			q:          &query.ParsedQuery{Time: query.TimeConstraint{Kind: query.TimeNow}},
			nowMinutes: 600, // 10:00
			want:       []string{"La Pergola"},
		},
		{
			name:       "now at boundary is inclusive",
			q:          &query.ParsedQuery{Time: query.TimeConstraint{Kind: query.TimeNow}},
			nowMinutes: 570, // La Pergola opens exactly now
			want:       []string{"La Pergola"},
		},
		{
			name:       "now just before open excludes",
			q:          &query.ParsedQuery{Time: query.TimeConstraint{Kind: query.TimeNow}},
			nowMinutes: 569,
			want:       nil,
		},
		{
			name: "style match is case-insensitive",
			q:    &query.ParsedQuery{Style: "italian", Time: query.TimeConstraint{Kind: query.TimeOpenAt, At: 720}},
			want: []string{"La Pergola"},
		},
		{
			name: "vegetarian query keeps only vegetarian venues",
			q:    &query.ParsedQuery{Vegetarian: true, Time: query.TimeConstraint{Kind: query.TimeOpenAt, At: 720}},
			want: []string{"Green Bowl", "Olive Tree"},
		},
		{
			name: "non-vegetarian query drops vegetarian venues",
			q:    &query.ParsedQuery{Time: query.TimeConstraint{Kind: query.TimeOpenAt, At: 1080}},
			want: []string{"La Pergola", "Prime Cut"},
		},
		{
			name: "open at close boundary is inclusive",
			q:    &query.ParsedQuery{Vegetarian: true, Time: query.TimeConstraint{Kind: query.TimeOpenAt, At: 1260}},
			want: []string{"Green Bowl", "Olive Tree"},
		},
		{
			name: "open at just past close excludes",
			q:    &query.ParsedQuery{Vegetarian: true, Time: query.TimeConstraint{Kind: query.TimeOpenAt, At: 1261}},
			want: []string{"Olive Tree"},
		},
		{
			name: "closes at is exact",
			q:    &query.ParsedQuery{Vegetarian: true, Time: query.TimeConstraint{Kind: query.TimeClosesAt, At: 1320}},
			want: []string{"Olive Tree"},
		},
		{
			name: "closes at matches nothing when no exact close",
			q:    &query.ParsedQuery{Time: query.TimeConstraint{Kind: query.TimeClosesAt, At: 1321}},
			want: nil,
		},
		{
			name: "between requires full containment",
			q:    &query.ParsedQuery{Vegetarian: true, Time: query.TimeConstraint{Kind: query.TimeBetween, Start: 660, End: 1260}},
			want: []string{"Green Bowl", "Olive Tree"},
		},
		{
			name: "between excludes partial overlap",
			q:    &query.ParsedQuery{Vegetarian: true, Time: query.TimeConstraint{Kind: query.TimeBetween, Start: 659, End: 1260}},
			want: []string{"Olive Tree"},
		},
		{
			name: "all constraints combine",
			q:    &query.ParsedQuery{Vegetarian: true, Style: "mediterranean", Time: query.TimeConstraint{Kind: query.TimeOpenAt, At: 600}},
			want: []string{"Olive Tree"},
		},
		{
			name: "no match yields nil",
			q:    &query.ParsedQuery{Style: "steakhouse", Vegetarian: true, Time: query.TimeConstraint{Kind: query.TimeOpenAt, At: 1080}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(MatchAt(tt.q, sampleSet, tt.nowMinutes))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchPreservesOrder(t *testing.T) {
	q := &query.ParsedQuery{Vegetarian: true, Time: query.TimeConstraint{Kind: query.TimeOpenAt, At: 720}}
	got := names(MatchAt(q, sampleSet, 0))
	want := []string{"Green Bowl", "Olive Tree"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchAt() order = %v, want %v", got, want)
	}
}

func TestMatchEmptySnapshot(t *testing.T) {
	q := &query.ParsedQuery{Time: query.TimeConstraint{Kind: query.TimeNow}}
	if got := MatchAt(q, nil, 600); got != nil {
		t.Errorf("MatchAt(nil set) = %v, want nil", got)
	}
}
