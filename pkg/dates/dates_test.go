package dates

import (
	"testing"
	"time"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.Local)
}

func TestNormalize_StripsTimeOfDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 17, 45, 12, 999, time.Local)
	got := Normalize(in)
	if !got.Equal(d(2024, 3, 15)) {
		t.Fatalf("Normalize = %v", got)
	}
}

func TestAddMonths_OverflowRollsForward(t *testing.T) {
	// Jan 31 + 1 month lands in early March, same as JS Date#setMonth.
	got := AddMonths(d(2024, 1, 31), 1)
	if got.Month() != time.March {
		t.Fatalf("expected March, got %v", got)
	}
	if got.Day() != 2 { // 2024 is a leap year
		t.Fatalf("expected day 2, got %d", got.Day())
	}
}

func TestAddMonths_Plain(t *testing.T) {
	got := AddMonths(d(2024, 1, 15), 1)
	if !got.Equal(d(2024, 2, 15)) {
		t.Fatalf("got %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		a, b time.Time
		want int
	}{
		{d(2024, 1, 1), d(2024, 1, 31), 30},
		{d(2024, 1, 1), d(2024, 1, 1), 0},
		{d(2024, 2, 1), d(2024, 1, 1), 0}, // never negative
		{d(2024, 2, 28), d(2024, 3, 1), 2},
	}
	for _, tc := range cases {
		if got := DaysBetween(tc.a, tc.b); got != tc.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestBeforeAndSameDay(t *testing.T) {
	morning := time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local)
	evening := time.Date(2024, 5, 10, 22, 0, 0, 0, time.Local)

	if Before(morning, evening) {
		t.Fatal("same calendar day must not be Before")
	}
	if !SameDay(morning, evening) {
		t.Fatal("expected SameDay")
	}
	if !Before(d(2024, 5, 9), evening) {
		t.Fatal("expected previous day to be Before")
	}
}

func TestAddWeeks(t *testing.T) {
	got := AddWeeks(d(2024, 1, 1), 2)
	if !got.Equal(d(2024, 1, 15)) {
		t.Fatalf("got %v", got)
	}
}
