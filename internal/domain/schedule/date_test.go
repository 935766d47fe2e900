package schedule

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

func TestNormalize_CanonicalInstant(t *testing.T) {
	// Noon UTC-3 is always 15:00 UTC; storage relies on this exact rendering.
	instant, err := Normalize(2025, time.March, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := instant.Format("2006-01-02T15:04:05.000Z07:00")
	want := "2025-03-15T15:00:00.000Z"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestNormalize_RejectsImpossibleDates(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month time.Month
		day   int
	}{
		{"February 30th", 2025, time.February, 30},
		{"February 29th off leap year", 2025, time.February, 29},
		{"April 31st", 2025, time.April, 31},
		{"day zero", 2025, time.June, 0},
		{"day 32", 2025, time.January, 32},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.year, tc.month, tc.day)
			if err == nil {
				t.Fatal("expected error for impossible date")
			}
			if !errors.Is(err, domainerror.ErrInvalidDate) {
				t.Errorf("expected ErrInvalidDate, got %v", err)
			}
		})
	}
}

func TestNormalize_AcceptsLeapDay(t *testing.T) {
	if _, err := Normalize(2024, time.February, 29); err != nil {
		t.Errorf("2024-02-29 is a real date, got error: %v", err)
	}
}

func TestDenormalize_RoundTrip(t *testing.T) {
	// Walk every day of a leap year and a common year; the round-trip
	// property must hold for all of them.
	for _, year := range []int{2024, 2025} {
		for month := time.January; month <= time.December; month++ {
			for day := 1; day <= daysIn(year, month); day++ {
				instant, err := Normalize(year, month, day)
				if err != nil {
					t.Fatalf("Normalize(%d, %s, %d) failed: %v", year, month, day, err)
				}

				gy, gm, gd := Denormalize(instant)
				if gy != year || gm != month || gd != day {
					t.Fatalf("round-trip broke: %d-%s-%d became %d-%s-%d",
						year, month, day, gy, gm, gd)
				}
			}
		}
	}
}

func TestDenormalize_SurvivesUTCSerialization(t *testing.T) {
	// A normalized instant that travels through an ISO-8601 UTC string must
	// come back to the same calendar day.
	instant, err := Normalize(2025, time.December, 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := time.Parse(time.RFC3339, instant.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("failed to re-parse instant: %v", err)
	}

	y, m, d := Denormalize(parsed)
	if y != 2025 || m != time.December || d != 31 {
		t.Errorf("expected 2025-12-31, got %d-%s-%d", y, m, d)
	}
}

func TestNormalizeTime_ReanchorsToNoon(t *testing.T) {
	// 01:30 UTC on June 16 is still June 15 in the reference offset.
	late := time.Date(2025, time.June, 16, 1, 30, 0, 0, time.UTC)

	normalized := NormalizeTime(late)

	y, m, d := Denormalize(normalized)
	if y != 2025 || m != time.June || d != 15 {
		t.Errorf("expected 2025-06-15, got %d-%s-%d", y, m, d)
	}
	if normalized.UTC().Hour() != 15 {
		t.Errorf("expected 15:00 UTC, got %02d:00", normalized.UTC().Hour())
	}
}

func TestSameDay(t *testing.T) {
	a, _ := Normalize(2025, time.May, 10)
	b := time.Date(2025, time.May, 10, 20, 0, 0, 0, referenceZone)
	c, _ := Normalize(2025, time.May, 11)

	if !SameDay(a, b) {
		t.Error("expected instants on the same civil day to match")
	}
	if SameDay(a, c) {
		t.Error("expected instants on different days not to match")
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2025, time.February)

	if y, m, d := Denormalize(start); y != 2025 || m != time.February || d != 1 {
		t.Errorf("expected start 2025-02-01, got %d-%s-%d", y, m, d)
	}
	if y, m, d := Denormalize(end); y != 2025 || m != time.February || d != 28 {
		t.Errorf("expected end 2025-02-28, got %d-%s-%d", y, m, d)
	}
}
