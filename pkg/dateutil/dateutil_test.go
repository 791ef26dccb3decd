package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2026, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestIsWeekday(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Monday is weekday", Date(2026, 7, 13), true},
		{"Wednesday is weekday", Date(2026, 7, 15), true},
		{"Friday is weekday", Date(2026, 7, 17), true},
		{"Saturday is not weekday", Date(2026, 7, 18), false},
		{"Sunday is not weekday", Date(2026, 7, 19), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsWeekday(tt.input)

			if result != tt.want {
				t.Errorf("IsWeekday(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"), result, tt.want)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Friday is not weekend", Date(2026, 7, 17), false},
		{"Saturday is weekend", Date(2026, 7, 18), true},
		{"Sunday is weekend", Date(2026, 7, 19), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWeekend(tt.input); got != tt.want {
				t.Errorf("IsWeekend(%v) = %v, want %v", tt.input.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestIsWeekendKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Saturday is weekend", "2026-07-18", true},
		{"Sunday is weekend", "2026-07-19", true},
		{"Monday is not weekend", "2026-07-13", false},
		{"Friday is not weekend", "2026-07-17", false},
		{"December tail Saturday", "2025-12-20", true},
		{"Malformed key", "2026-7-18", false},
		{"Impossible date", "2026-02-30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsWeekendKey(tt.input)

			if result != tt.want {
				t.Errorf("IsWeekendKey(%q) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"ISO format YYYY-MM-DD", "2026-01-15", Date(2026, 1, 15), false},
		{"Leap-free February end", "2026-02-28", Date(2026, 2, 28), false},
		{"Not zero padded", "2026-1-15", time.Time{}, true},
		{"Day-first format", "15.01.2026", time.Time{}, true},
		{"With time suffix", "2026-01-15T10:30:00", time.Time{}, true},
		{"Empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	for _, key := range []string{"2025-12-15", "2026-01-01", "2026-12-31"} {
		parsed, err := ParseDate(key)
		if err != nil {
			t.Fatalf("ParseDate(%q) error = %v", key, err)
		}
		if got := FormatDate(parsed); got != key {
			t.Errorf("FormatDate(ParseDate(%q)) = %q", key, got)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2024, time.February, 29},
		{2026, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMondayOffset(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  int
	}{
		{"Monday", Date(2025, 12, 15), 0},
		{"Thursday", Date(2026, 1, 1), 3},
		{"Sunday", Date(2026, 2, 1), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MondayOffset(tt.input); got != tt.want {
				t.Errorf("MondayOffset(%v) = %d, want %d", tt.input.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}
