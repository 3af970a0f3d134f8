package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

// MaxCategoryLength mirrors the category column width in the schema.
const MaxCategoryLength = 50

// MaxDailyHours is the upper bound for a single entry.
const MaxDailyHours = 24.0

type (
	Date struct {
		time.Time
	}

	// Entry is one logged interval of screen-time usage.
	Entry struct {
		ID        int64
		Date      Date
		Category  string
		Hours     float64
		Remarks   string
		CreatedAt time.Time
	}
)

var (
	ErrZeroDate        = errors.New("date is required")
	ErrMalformedDate   = errors.New("malformed date, expected YYYY-MM-DD")
	ErrEmptyCategory   = errors.New("empty category")
	ErrCategoryTooLong = errors.New("category too long (max 50 characters)")
	ErrInvalidHours    = errors.New("invalid hours")
	ErrHoursOutOfRange = errors.New("hours must be between 0 and 24")
)

// validationErrs enumerates all input-rejection sentinels so callers can
// distinguish bad input from storage failures.
var validationErrs = []error{
	ErrZeroDate,
	ErrMalformedDate,
	ErrEmptyCategory,
	ErrCategoryTooLong,
	ErrInvalidHours,
	ErrHoursOutOfRange,
}

// IsValidationError reports whether err stems from rejected input rather
// than a storage failure.
func IsValidationError(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// NewDate creates a Date at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrZeroDate
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return Date{}, ErrMalformedDate
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar date at UTC midnight.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// String renders the ISO form used in the schema and on the wire.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (e Entry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	if math.IsNaN(e.Hours) || e.Hours < 0 || e.Hours > MaxDailyHours {
		return ErrHoursOutOfRange
	}
	return nil
}
