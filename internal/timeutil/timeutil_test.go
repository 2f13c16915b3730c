package timeutil

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		year      int
		month     time.Month
		firstDay  int
		lastDay   int
		lastMonth time.Month
	}{
		{2024, time.January, 1, 31, time.January},
		{2024, time.February, 1, 29, time.February},
		{2025, time.February, 1, 28, time.February},
		{2026, time.April, 1, 30, time.April},
		{2026, time.December, 1, 31, time.December},
	}

	for _, tc := range cases {
		first, last := MonthBounds(tc.year, tc.month)
		if first.Year() != tc.year || first.Month() != tc.month || first.Day() != tc.firstDay {
			t.Fatalf("%d-%02d: unexpected first day: %v", tc.year, tc.month, first)
		}
		if last.Year() != tc.year || last.Month() != tc.lastMonth || last.Day() != tc.lastDay {
			t.Fatalf("%d-%02d: unexpected last day: %v", tc.year, tc.month, last)
		}
		if first.Hour() != 0 || last.Hour() != 0 {
			t.Fatalf("expected midnight bounds, got %v / %v", first, last)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	input := time.Date(2026, 3, 1, 14, 37, 9, 123, time.Local)
	got := StartOfDay(input)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("unexpected date: %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 1, 18, 30, 0, 0, time.Local)
	c := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Fatalf("expected same day for %v and %v", a, b)
	}
	if SameDay(a, c) {
		t.Fatalf("expected different days for %v and %v", a, c)
	}
}
