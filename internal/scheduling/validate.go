package scheduling

import (
	"errors"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrPastDate      = errors.New("cannot schedule appointments in the past")
	ErrWeekend       = errors.New("appointments cannot be scheduled on weekends")
	ErrMalformedTime = errors.New("invalid time format, use HH:MM")
	ErrOutOfHours    = errors.New("appointments must be between 7:00-12:00 or 14:00-18:00")
)

// ParseDate parses a calendar day in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ParseTime parses an "HH:MM" time of day and returns it as minutes
// since midnight (0..1439).
func ParseTime(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, ErrMalformedTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

// StartOfDay strips the time-of-day component.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ValidateAppointmentTime checks a requested date and time against the
// policy. It is a pure function of its inputs and `now`, and surfaces at
// most one error per call:
//
//	ErrInvalidDate   - date does not parse as YYYY-MM-DD
//	ErrPastDate      - date is before today (date-only comparison)
//	ErrWeekend       - date is a Saturday or Sunday
//	ErrMalformedTime - time does not parse as HH:MM
//	ErrOutOfHours    - time is outside every working window
//
// The working-hours check compares total minutes, so 11:59 is accepted
// and 12:00 rejected under the default policy.
func (p Policy) ValidateAppointmentTime(dateStr, timeStr string, now time.Time) error {
	date, err := ParseDate(dateStr)
	if err != nil {
		return err
	}

	if date.Before(StartOfDay(now.UTC())) {
		return ErrPastDate
	}

	if IsWeekend(date) {
		return ErrWeekend
	}

	totalMinutes, err := ParseTime(timeStr)
	if err != nil {
		return err
	}

	if !p.Contains(totalMinutes) {
		return ErrOutOfHours
	}

	return nil
}
