package core

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	// DaysInYear is the length of a year in the simplified 360/30 loan calendar.
	DaysInYear = 360

	// DaysInMonth is the length of every month in the simplified 360/30 loan calendar.
	DaysInMonth = 30

	minMonth = 1
	maxMonth = 12
	minDay   = 1
	maxDay   = 31
)

// ErrMalformedDate is returned for dates that are not a valid YYYY-MM-DD.
var ErrMalformedDate = fmt.Errorf("%w: date is malformed", ErrValidation)

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Date is a calendar-like date of the loan calendar.
// It is not a real calendar date: every month may have 31 days and February 30 is accepted.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses a date in the form YYYY-MM-DD with month in 1..12 and day in 1..31.
func ParseDate(s string) (Date, error) {
	parts := datePattern.FindStringSubmatch(s)
	if parts == nil {
		return Date{}, fmt.Errorf("%w: %q is not in the form YYYY-MM-DD", ErrMalformedDate, s)
	}

	// The pattern guarantees digits only, so Atoi can't fail.
	year, _ := strconv.Atoi(parts[1])
	month, _ := strconv.Atoi(parts[2])
	day, _ := strconv.Atoi(parts[3])

	if month < minMonth || month > maxMonth {
		return Date{}, fmt.Errorf("%w: month %d of %q is out of range", ErrMalformedDate, month, s)
	}

	if day < minDay || day > maxDay {
		return Date{}, fmt.Errorf("%w: day %d of %q is out of range", ErrMalformedDate, day, s)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// MustParseDate is like ParseDate but panics on malformed input. Meant for tests and constants.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}

	return d
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DayNumber converts the date to a linear day count: year*360 + month*30 + day.
func (d Date) DayNumber() int {
	return d.Year*DaysInYear + d.Month*DaysInMonth + d.Day
}

// DaysBetween returns the number of loan calendar days from start to end.
// The result is negative if end precedes start.
func DaysBetween(start Date, end Date) int {
	return end.DayNumber() - start.DayNumber()
}
