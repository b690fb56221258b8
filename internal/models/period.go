package models

import (
	"fmt"
	"time"
)

// MonthWindow returns the half-open UTC interval [start, end) covering the
// given calendar month. Month overflow is normalized, so month 0 is December
// of the previous year.
func MonthWindow(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// MonthLabel formats a month as YYYY-MM.
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
