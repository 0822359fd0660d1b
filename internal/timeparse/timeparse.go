// PlateScout - Restaurant Recommendation Service
// Copyright 2026 PlateScout Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/platescout/platescout

// Package timeparse resolves clock literals into minutes since midnight.
//
// Two literal forms are accepted: "H:MM"/"HH:MM" and the bare four-digit
// "HHMM". Hours must be 0-23 and minutes 0-59; anything else is a
// *FormatError carrying the offending literal. Ranges additionally require
// start strictly before end: a range that wraps past midnight (or where the
// endpoints coincide) is a *MidnightCrossingError, not wrapped arithmetic.
package timeparse

import (
	"fmt"
	"regexp"
)

// MinutesPerDay is the number of minutes in a day; valid clock values are
// in [0, MinutesPerDay).
const MinutesPerDay = 24 * 60

var (
	colonForm = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	bareForm  = regexp.MustCompile(`^(\d{2})(\d{2})$`)
)

// FormatError reports a literal that does not resolve to a valid clock time.
type FormatError struct {
	Literal string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid time format: %s", e.Literal)
}

// MidnightCrossingError reports a range whose end does not follow its start
// within a single day. Start and End hold the normalized "HH:MM" literals.
type MidnightCrossingError struct {
	Start string
	End   string
}

func (e *MidnightCrossingError) Error() string {
	return fmt.Sprintf("Time ranges crossing midnight are not supported: %s to %s", e.Start, e.End)
}

// ParseClock resolves a clock literal to minutes since midnight.
func ParseClock(literal string) (int, error) {
	var hourStr, minuteStr string
	if m := colonForm.FindStringSubmatch(literal); m != nil {
		hourStr, minuteStr = m[1], m[2]
	} else if m := bareForm.FindStringSubmatch(literal); m != nil {
		hourStr, minuteStr = m[1], m[2]
	} else {
		return 0, &FormatError{Literal: literal}
	}

	hour := atoi2(hourStr)
	minute := atoi2(minuteStr)
	if hour > 23 || minute > 59 {
		return 0, &FormatError{Literal: literal}
	}
	return hour*60 + minute, nil
}

// ParseRange resolves a pair of clock literals to a (start, end) window in
// minutes since midnight. start must be strictly less than end; equality
// counts as midnight crossing.
func ParseRange(startLiteral, endLiteral string) (start, end int, err error) {
	start, err = ParseClock(startLiteral)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(endLiteral)
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, &MidnightCrossingError{
			Start: FormatMinutes(start),
			End:   FormatMinutes(end),
		}
	}
	return start, end, nil
}

// FormatMinutes renders minutes since midnight as a normalized "HH:MM"
// literal. Values outside [0, MinutesPerDay) are reduced modulo one day.
func FormatMinutes(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// atoi2 converts a 1-2 digit decimal string already vetted by the literal
// regexps. It cannot fail on that input.
func atoi2(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
