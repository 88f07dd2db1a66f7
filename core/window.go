package core

import "time"

// MonthWindow is the request range for one calendar month.
// From is the first day at 00:00 UTC and To is the last day at 23:59 UTC.
type MonthWindow struct {
	From time.Time
	To   time.Time
}

// Month returns the calendar month covered by the window.
func (w MonthWindow) Month() time.Month {
	return w.From.Month()
}

// MonthWindows partitions a year into its twelve calendar-month windows.
// Day zero of the next month normalizes to the last day of this one,
// which covers 28, 29, 30 and 31 day months alike.
func MonthWindows(year int) []MonthWindow {
	windows := make([]MonthWindow, 0, 12)
	for m := time.January; m <= time.December; m++ {
		windows = append(windows, MonthWindow{
			From: time.Date(year, m, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(year, m+1, 0, 23, 59, 0, 0, time.UTC),
		})
	}
	return windows
}
