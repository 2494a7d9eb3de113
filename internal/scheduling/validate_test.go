package scheduling

import (
	"errors"
	"testing"
	"time"
)

// Monday 2025-10-13, mid-morning UTC.
var testNow = time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)

func TestValidateAppointmentTime(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		date string
		time string
		want error
	}{
		{"valid morning", "2025-10-14", "09:30", nil},
		{"valid afternoon", "2025-10-14", "15:00", nil},
		{"valid today", "2025-10-13", "10:00", nil},
		{"first slot", "2025-10-14", "07:00", nil},
		{"last slot", "2025-10-14", "17:30", nil},
		{"garbage date", "not-a-date", "09:00", ErrInvalidDate},
		{"swapped date parts", "14-10-2025", "09:00", ErrInvalidDate},
		{"yesterday", "2025-10-12", "09:00", ErrPastDate},
		{"distant past", "2024-01-10", "09:00", ErrPastDate},
		{"saturday", "2025-10-18", "09:00", ErrWeekend},
		{"sunday", "2025-10-19", "09:00", ErrWeekend},
		{"garbage time", "2025-10-14", "nine", ErrMalformedTime},
		{"missing minutes", "2025-10-14", "9", ErrMalformedTime},
		{"hour out of range", "2025-10-14", "25:00", ErrMalformedTime},
		{"before opening", "2025-10-14", "06:30", ErrOutOfHours},
		{"lunch break", "2025-10-14", "13:00", ErrOutOfHours},
		{"after closing", "2025-10-14", "18:00", ErrOutOfHours},
		{"late evening", "2025-10-14", "20:00", ErrOutOfHours},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.ValidateAppointmentTime(tc.date, tc.time, testNow)
			if !errors.Is(got, tc.want) {
				t.Fatalf("ValidateAppointmentTime(%s %s) = %v, want %v", tc.date, tc.time, got, tc.want)
			}
		})
	}
}

func TestValidateAppointmentTime_MinuteBoundaries(t *testing.T) {
	p := DefaultPolicy()

	// Window ends are exclusive down to the minute: 11:59 is inside the
	// morning window, 12:00 is not.
	if err := p.ValidateAppointmentTime("2025-10-14", "11:59", testNow); err != nil {
		t.Errorf("11:59 should be accepted, got %v", err)
	}
	if err := p.ValidateAppointmentTime("2025-10-14", "12:00", testNow); !errors.Is(err, ErrOutOfHours) {
		t.Errorf("12:00 should be out of hours, got %v", err)
	}
	if err := p.ValidateAppointmentTime("2025-10-14", "13:59", testNow); !errors.Is(err, ErrOutOfHours) {
		t.Errorf("13:59 should be out of hours, got %v", err)
	}
	if err := p.ValidateAppointmentTime("2025-10-14", "14:00", testNow); err != nil {
		t.Errorf("14:00 should be accepted, got %v", err)
	}
}

func TestValidateAppointmentTime_ErrorPrecedence(t *testing.T) {
	p := DefaultPolicy()

	// A past weekend reports the past-date error, not the weekend one.
	if err := p.ValidateAppointmentTime("2025-10-11", "09:00", testNow); !errors.Is(err, ErrPastDate) {
		t.Errorf("past saturday = %v, want ErrPastDate", err)
	}
	// A weekend with a malformed time reports the weekend error first.
	if err := p.ValidateAppointmentTime("2025-10-18", "nonsense", testNow); !errors.Is(err, ErrWeekend) {
		t.Errorf("weekend with bad time = %v, want ErrWeekend", err)
	}
}

func TestValidateAppointmentTime_Idempotent(t *testing.T) {
	p := DefaultPolicy()
	for i := 0; i < 3; i++ {
		if err := p.ValidateAppointmentTime("2025-10-14", "09:30", testNow); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"11:59", 719, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseTime(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrMalformedTime) {
				t.Errorf("ParseTime(%q) err = %v, want ErrMalformedTime", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTime(%q): %v", tc.in, err)
			continue
		}
		if got != tc.minutes {
			t.Errorf("ParseTime(%q) = %d, want %d", tc.in, got, tc.minutes)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	if !IsWeekend(saturday) {
		t.Error("saturday should be a weekend")
	}
	if !IsWeekend(saturday.AddDate(0, 0, 1)) {
		t.Error("sunday should be a weekend")
	}
	if IsWeekend(monday) {
		t.Error("monday should not be a weekend")
	}
}
