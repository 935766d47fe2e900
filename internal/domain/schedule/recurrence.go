package schedule

import (
	"fmt"
	"time"

	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// MaxOccurrences is the hard safety ceiling on a single expansion,
// independent of the caller-supplied cap.
const MaxOccurrences = 52

// Expand produces the occurrence dates of a recurring entry as normalized
// instants, starting at the anchor. Each call computes an independent,
// finite sequence; there is no cursor to share between callers.
//
// A positive cap bounds the sequence to cap occurrences. A cap of zero means
// "no explicit count": expansion runs through December 31 of the anchor's
// year inclusive. Either way no more than MaxOccurrences dates are produced.
// A negative cap or an unknown frequency is rejected with
// ErrInvalidRecurrenceSpec.
func Expand(frequency entity.Frequency, anchor time.Time, cap int) ([]time.Time, error) {
	if cap < 0 {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidRecurrenceSpec,
			fmt.Sprintf("recurrence cap must not be negative, got %d", cap),
			domainerror.ErrInvalidRecurrenceSpec,
		)
	}

	anchorYear, anchorMonth, anchorDay := Denormalize(anchor)
	first, err := Normalize(anchorYear, anchorMonth, anchorDay)
	if err != nil {
		return nil, err
	}

	if frequency == entity.FrequencyOneTime {
		// Exactly one occurrence regardless of cap.
		return []time.Time{first}, nil
	}

	limit := MaxOccurrences
	if cap > 0 && cap < limit {
		limit = cap
	}

	var next func(step int) time.Time
	switch frequency {
	case entity.FrequencyWeekly:
		next = func(step int) time.Time {
			return addDays(first, 7*step)
		}
	case entity.FrequencyBiweekly:
		next = func(step int) time.Time {
			return addDays(first, 14*step)
		}
	case entity.FrequencyMonthly:
		next = func(step int) time.Time {
			// Clamp from the original anchor day each step so a short month
			// does not permanently drag the day-of-month down.
			return monthStep(anchorYear, anchorMonth, anchorDay, step)
		}
	case entity.FrequencyAnnual:
		next = func(step int) time.Time {
			year := anchorYear + step
			day := anchorDay
			if max := daysIn(year, anchorMonth); day > max {
				day = max // Feb 29 anchors clamp to Feb 28 off leap years
			}
			occ, _ := Normalize(year, anchorMonth, day)
			return occ
		}
	default:
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidRecurrenceSpec,
			fmt.Sprintf("unknown frequency %q", frequency),
			domainerror.ErrInvalidRecurrenceSpec,
		)
	}

	dates := make([]time.Time, 0, limit)
	for step := 0; step < limit; step++ {
		occ := next(step)
		if cap == 0 {
			// Year-end cutoff: stop before the first occurrence past Dec 31
			// of the anchor year.
			if y, _, _ := Denormalize(occ); y > anchorYear {
				break
			}
		}
		dates = append(dates, occ)
	}

	return dates, nil
}

// addDays shifts a normalized instant by whole days, staying on local noon.
func addDays(t time.Time, days int) time.Time {
	y, m, d := Denormalize(t)
	shifted := time.Date(y, m, d+days, noonHour, 0, 0, 0, referenceZone)
	return shifted.UTC()
}

// monthStep returns the occurrence `step` months after the anchor, keeping
// the anchor's day-of-month and clamping to the target month's last day.
func monthStep(anchorYear int, anchorMonth time.Month, anchorDay, step int) time.Time {
	// Let time.Date normalize the month overflow on the first of the month,
	// then clamp the day against the resolved target month.
	firstOfTarget := time.Date(anchorYear, anchorMonth+time.Month(step), 1, noonHour, 0, 0, 0, referenceZone)
	year, month := firstOfTarget.Year(), firstOfTarget.Month()

	day := anchorDay
	if max := daysIn(year, month); day > max {
		day = max
	}

	occ, _ := Normalize(year, month, day)
	return occ
}
