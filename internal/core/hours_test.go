package core

import "testing"

func TestParseHours(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr error
	}{
		{"2.5", 2.5, nil},
		{"2,5", 2.5, nil},
		{" 3.50 ", 3.5, nil},
		{"0", 0, nil},
		{"24", 24, nil},
		{"25", 0, ErrHoursOutOfRange},
		{"-1", 0, ErrHoursOutOfRange},
		{"", 0, ErrInvalidHours},
		{"abc", 0, ErrInvalidHours},
		{"+2", 0, ErrInvalidHours},
		{"2.5.1", 0, ErrInvalidHours},
		{"nan", 0, ErrInvalidHours},
		{"NaN", 0, ErrInvalidHours},
		{"inf", 0, ErrHoursOutOfRange},
		{"-inf", 0, ErrHoursOutOfRange},
	}
	for _, tc := range cases {
		got, err := ParseHours(tc.in)
		if err != tc.wantErr {
			t.Fatalf("ParseHours(%q) err = %v, want %v", tc.in, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseHours(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if s := FormatHours(3.5); s != "3.50" {
		t.Fatalf("unexpected format: %s", s)
	}
	if s := FormatHours(0); s != "0.00" {
		t.Fatalf("unexpected format: %s", s)
	}
}
