package utils_test

import (
	"testing"
	"time"

	"freshkeep/utils"
)

func TestDayStart(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*3600)
	in := time.Date(2026, time.March, 15, 23, 45, 12, 0, loc)

	got := utils.DayStart(in)
	want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayStart(%v) = %v, want %v", in, got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", day(10), day(10), 0},
		{"next day", day(10), day(11), 1},
		{"a week out", day(10), day(17), 7},
		{"in the past", day(10), day(7), -3},
		{"ignores time of day", day(10).Add(23 * time.Hour), day(11).Add(time.Minute), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.DaysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := utils.ParseDate("2026-09-14")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := utils.FormatDate(parsed); got != "2026-09-14" {
		t.Errorf("round trip = %q", got)
	}

	if _, err := utils.ParseDate("14/09/2026"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestShortDate(t *testing.T) {
	d := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
	if got := utils.ShortDate(d); got != "Sep 14" {
		t.Errorf("ShortDate = %q", got)
	}
}
