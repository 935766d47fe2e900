package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

func mustNormalize(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()
	instant, err := Normalize(year, month, day)
	if err != nil {
		t.Fatalf("Normalize(%d, %s, %d) failed: %v", year, month, day, err)
	}
	return instant
}

func assertDates(t *testing.T, got []time.Time, want [][3]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(got))
	}
	for i, w := range want {
		y, m, d := Denormalize(got[i])
		if y != w[0] || int(m) != w[1] || d != w[2] {
			t.Errorf("occurrence %d: expected %04d-%02d-%02d, got %04d-%02d-%02d",
				i+1, w[0], w[1], w[2], y, int(m), d)
		}
	}
}

func TestExpand_OneTime(t *testing.T) {
	anchor := mustNormalize(t, 2025, time.June, 15)

	for _, cap := range []int{0, 1, 5, 52} {
		dates, err := Expand(entity.FrequencyOneTime, anchor, cap)
		if err != nil {
			t.Fatalf("cap=%d: unexpected error: %v", cap, err)
		}
		assertDates(t, dates, [][3]int{{2025, 6, 15}})
	}
}

func TestExpand_Weekly(t *testing.T) {
	anchor := mustNormalize(t, 2025, time.January, 1)

	dates, err := Expand(entity.FrequencyWeekly, anchor, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDates(t, dates, [][3]int{
		{2025, 1, 1},
		{2025, 1, 8},
		{2025, 1, 15},
	})
}

func TestExpand_Biweekly(t *testing.T) {
	anchor := mustNormalize(t, 2025, time.March, 3)

	dates, err := Expand(entity.FrequencyBiweekly, anchor, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDates(t, dates, [][3]int{
		{2025, 3, 3},
		{2025, 3, 17},
		{2025, 3, 31},
		{2025, 4, 14},
	})
}

func TestExpand_MonthlyClampsWithoutDrift(t *testing.T) {
	// Anchor day 31: February clamps to 28, but March recovers the 31st
	// because the clamp is recomputed from the anchor day each step.
	anchor := mustNormalize(t, 2025, time.January, 31)

	dates, err := Expand(entity.FrequencyMonthly, anchor, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDates(t, dates, [][3]int{
		{2025, 1, 31},
		{2025, 2, 28},
		{2025, 3, 31},
	})
}

func TestExpand_MonthlyCrossesYearBoundary(t *testing.T) {
	anchor := mustNormalize(t, 2025, time.November, 30)

	dates, err := Expand(entity.FrequencyMonthly, anchor, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDates(t, dates, [][3]int{
		{2025, 11, 30},
		{2025, 12, 30},
		{2026, 1, 30},
		{2026, 2, 28},
	})
}

func TestExpand_AnnualLeapDayClamps(t *testing.T) {
	anchor := mustNormalize(t, 2024, time.February, 29)

	dates, err := Expand(entity.FrequencyAnnual, anchor, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDates(t, dates, [][3]int{
		{2024, 2, 29},
		{2025, 2, 28},
		{2026, 2, 28},
		{2027, 2, 28},
		{2028, 2, 29},
	})
}

func TestExpand_YearEndCutoff(t *testing.T) {
	t.Run("December anchor yields a single occurrence", func(t *testing.T) {
		anchor := mustNormalize(t, 2025, time.December, 20)

		dates, err := Expand(entity.FrequencyMonthly, anchor, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, dates, [][3]int{{2025, 12, 20}})
	})

	t.Run("weekly from early January stops at the safety ceiling", func(t *testing.T) {
		anchor := mustNormalize(t, 2025, time.January, 1)

		dates, err := Expand(entity.FrequencyWeekly, anchor, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 52 weekly steps from Jan 1 land on Dec 24; the ceiling binds first.
		if len(dates) != MaxOccurrences {
			t.Fatalf("expected %d occurrences, got %d", MaxOccurrences, len(dates))
		}
		if y, m, d := Denormalize(dates[len(dates)-1]); y != 2025 || m != time.December || d != 24 {
			t.Errorf("expected last occurrence 2025-12-24, got %d-%s-%d", y, m, d)
		}
	})

	t.Run("December 31 itself is included", func(t *testing.T) {
		anchor := mustNormalize(t, 2025, time.December, 31)

		dates, err := Expand(entity.FrequencyWeekly, anchor, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, dates, [][3]int{{2025, 12, 31}})
	})

	t.Run("monthly mid-year runs through December", func(t *testing.T) {
		anchor := mustNormalize(t, 2025, time.August, 10)

		dates, err := Expand(entity.FrequencyMonthly, anchor, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, dates, [][3]int{
			{2025, 8, 10},
			{2025, 9, 10},
			{2025, 10, 10},
			{2025, 11, 10},
			{2025, 12, 10},
		})
	})
}

func TestExpand_CapCeiling(t *testing.T) {
	anchor := mustNormalize(t, 2025, time.January, 1)

	dates, err := Expand(entity.FrequencyWeekly, anchor, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != MaxOccurrences {
		t.Errorf("expected the %d-occurrence ceiling to bind, got %d", MaxOccurrences, len(dates))
	}
}

func TestExpand_InvalidSpec(t *testing.T) {
	anchor := mustNormalize(t, 2025, time.January, 1)

	t.Run("negative cap", func(t *testing.T) {
		_, err := Expand(entity.FrequencyWeekly, anchor, -1)
		if !errors.Is(err, domainerror.ErrInvalidRecurrenceSpec) {
			t.Errorf("expected ErrInvalidRecurrenceSpec, got %v", err)
		}
	})

	t.Run("unknown frequency", func(t *testing.T) {
		_, err := Expand(entity.Frequency("DAILY"), anchor, 3)
		if !errors.Is(err, domainerror.ErrInvalidRecurrenceSpec) {
			t.Errorf("expected ErrInvalidRecurrenceSpec, got %v", err)
		}
	})
}

func TestExpand_SequencesAreIndependent(t *testing.T) {
	anchor := mustNormalize(t, 2025, time.January, 31)

	first, err := Expand(entity.FrequencyMonthly, anchor, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Expand(entity.FrequencyMonthly, anchor, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical sequences, got lengths %d and %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("occurrence %d differs between calls: %v vs %v", i+1, first[i], second[i])
		}
	}
}
