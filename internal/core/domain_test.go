package core

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-11-01")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2025-11-01" {
		t.Fatalf("unexpected date: %s", d)
	}

	if _, err := ParseDate(""); err != ErrZeroDate {
		t.Fatalf("expected ErrZeroDate, got %v", err)
	}
	for _, s := range []string{"01/11/2025", "2025-13-01", "yesterday"} {
		if _, err := ParseDate(s); err != ErrMalformedDate {
			t.Fatalf("%q: expected ErrMalformedDate, got %v", s, err)
		}
	}
}

func TestEntryValidate(t *testing.T) {
	good := Entry{
		Date:     NewDate(2025, 11, 1),
		Category: "Study",
		Hours:    3.5,
		Remarks:  "Online classes",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		entry Entry
		want  error
	}{
		{"zero date", Entry{Category: "Study", Hours: 1}, ErrZeroDate},
		{"empty category", Entry{Date: NewDate(2025, 11, 1), Category: "  ", Hours: 1}, ErrEmptyCategory},
		{"category too long", Entry{Date: NewDate(2025, 11, 1), Category: strings.Repeat("x", 51), Hours: 1}, ErrCategoryTooLong},
		{"hours above 24", Entry{Date: NewDate(2025, 11, 1), Category: "Gaming", Hours: 25}, ErrHoursOutOfRange},
		{"negative hours", Entry{Date: NewDate(2025, 11, 1), Category: "Gaming", Hours: -0.5}, ErrHoursOutOfRange},
		{"NaN hours", Entry{Date: NewDate(2025, 11, 1), Category: "Gaming", Hours: math.NaN()}, ErrHoursOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.entry.Validate(); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// Zero hours is a valid entry.
	zero := Entry{Date: NewDate(2025, 11, 1), Category: "Reading", Hours: 0}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero hours should validate, got %v", err)
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ErrHoursOutOfRange) {
		t.Fatalf("expected validation error")
	}
	if IsValidationError(errors.New("disk full")) {
		t.Fatalf("unrelated error misclassified")
	}
	if IsValidationError(nil) {
		t.Fatalf("nil misclassified")
	}
}
