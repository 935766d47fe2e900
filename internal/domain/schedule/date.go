// Package schedule implements the date normalization and recurrence expansion
// rules shared by transaction creation, calendar views and dashboard queries.
// Both halves are pure: the only state is the fixed reference offset.
package schedule

import (
	"fmt"
	"time"

	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// referenceZone is the deployment's fixed civil-calendar offset (UTC-3).
// Every user-supplied calendar date is interpreted in this offset, never in
// the server's local zone, so day-boundary arithmetic is deterministic.
var referenceZone = time.FixedZone("UTC-3", -3*60*60)

// noonHour anchors normalized instants to 12:00 local so that lossy
// round-trips through date-only parsers cannot shift the calendar day.
const noonHour = 12

// Normalize converts a calendar date into its canonical instant: 12:00:00 of
// that day in the reference offset, returned in UTC. The UTC rendering always
// ends in T15:00:00Z, which storage and the API rely on for day comparisons.
func Normalize(year int, month time.Month, day int) (time.Time, error) {
	t := time.Date(year, month, day, noonHour, 0, 0, 0, referenceZone)
	// time.Date silently rolls impossible dates forward (Feb 30 -> Mar 2),
	// so a changed component means the input was not a real date.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidDate,
			fmt.Sprintf("%04d-%02d-%02d is not a valid calendar date", year, int(month), day),
			domainerror.ErrInvalidDate,
		)
	}
	return t.UTC(), nil
}

// Denormalize recovers the calendar date a normalized instant represents.
// It is total: any instant maps to some calendar day under the reference offset.
func Denormalize(t time.Time) (year int, month time.Month, day int) {
	return t.In(referenceZone).Date()
}

// NormalizeTime re-anchors an arbitrary instant to the canonical noon of the
// calendar day it falls on. Used when callers hand in a parsed timestamp
// rather than explicit (y, m, d) components.
func NormalizeTime(t time.Time) time.Time {
	y, m, d := Denormalize(t)
	normalized, _ := Normalize(y, m, d)
	return normalized
}

// SameDay reports whether two instants fall on the same calendar day under
// the reference offset.
func SameDay(a, b time.Time) bool {
	ay, am, ad := Denormalize(a)
	by, bm, bd := Denormalize(b)
	return ay == by && am == bm && ad == bd
}

// MonthBounds returns the normalized first and last instants of the given
// month, for calendar and dashboard range queries.
func MonthBounds(year int, month time.Month) (start, end time.Time) {
	start, _ = Normalize(year, month, 1)
	end, _ = Normalize(year, month, daysIn(year, month))
	return start, end
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
