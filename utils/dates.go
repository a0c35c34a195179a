// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DayWindow returns the inclusive [00:00:00, 23:59:59] bounds of a calendar
// day in the current year, matching the availability query window.
func DayWindow(day, month int) (time.Time, time.Time) {
	year := time.Now().Year()
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)
	return start, end
}
