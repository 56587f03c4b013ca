// Package workdays provides calendar arithmetic for payroll accrual.
package workdays

import "time"

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// InMonth counts the working days (Monday through Friday) of a month.
func InMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	count := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			count++
		}
	}

	return count
}
