package dates

import (
	"math"
	"time"
)

// Normalize strips the time-of-day component, keeping the location.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the current date in the local calendar, no time component.
// All same-day comparisons go through this so they agree across a request.
func Today() time.Time { return Normalize(time.Now()) }

// AddMonths advances d by n calendar months. Day-of-month overflow rolls
// into the next month (Jan 31 + 1 month = Mar 2/3), matching time.AddDate.
func AddMonths(d time.Time, n int) time.Time { return Normalize(d.AddDate(0, n, 0)) }

func AddDays(d time.Time, n int) time.Time { return Normalize(d.AddDate(0, 0, n)) }

func AddWeeks(d time.Time, n int) time.Time { return AddDays(d, n*7) }

// DaysBetween returns the whole days from a to b at date granularity,
// never negative. Rounded so DST transitions don't shave off a day.
func DaysBetween(a, b time.Time) int {
	diff := Normalize(b).Sub(Normalize(a))
	if diff <= 0 {
		return 0
	}
	return int(math.Round(diff.Hours() / 24))
}

// Before reports whether a falls strictly before b at date granularity.
func Before(a, b time.Time) bool { return Normalize(a).Before(Normalize(b)) }

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool { return Normalize(a).Equal(Normalize(b)) }
