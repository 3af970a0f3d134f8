// Package core holds the screen-time domain model shared by every surface.
//
// This file contains parsing and formatting helpers for hour amounts as
// entered by users (forms, CLI flags). Values are plain float64 hours;
// the store persists them unchanged.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseHours converts a user-entered decimal string to hours.
//
// Both dot (2.5) and comma (2,5) decimal separators are accepted.
// The result must lie within [0, 24]; anything else is rejected with a
// validation sentinel before it ever reaches storage.
func ParseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidHours
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") {
		return 0, ErrInvalidHours
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidHours
	}
	// ParseFloat accepts "nan", which would poison every aggregate
	if math.IsNaN(h) {
		return 0, ErrInvalidHours
	}
	if h < 0 || h > MaxDailyHours {
		return 0, ErrHoursOutOfRange
	}
	return h, nil
}

// FormatHours renders hours for display with two decimals, e.g. "3.50".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
