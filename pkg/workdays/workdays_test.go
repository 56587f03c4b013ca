package workdays

import (
	"testing"
	"time"
)

func TestInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.June, 20},     // starts Saturday, 30 days
		{2024, time.July, 23},     // starts Monday, 31 days
		{2024, time.February, 21}, // leap February, 29 days
		{2025, time.February, 20},
	}

	for _, tc := range cases {
		if got := InMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("InMonth(%d, %v) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	if !IsWeekend(saturday) {
		t.Error("expected Saturday to be a weekend")
	}
	if IsWeekend(monday) {
		t.Error("expected Monday to be a workday")
	}
}
