package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Resolution dates before this year are rejected: the product did not exist
// earlier, so they can only be typos.
const minResolutionYear = 2023
const maxResolutionYear = 2100

// Date represents a calendar date supplied by a reviewer.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date.
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// DaysInMonth returns the number of days in a given month.
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// Valid reports whether the date is calendar-valid and within the accepted
// resolution-year window.
func (d Date) Valid() bool {
	if d.Year < minResolutionYear || d.Year > maxResolutionYear {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return false
	}
	return true
}

// Time converts the date to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}
