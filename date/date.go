// Package date provides a day-granularity Date type with the ROC era
// formatting and the business-day arithmetic used by the PCF endpoint.
package date

import (
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// rocEpoch is the year offset of the Republic of China (Minguo)
// calendar used by the source system: 1912 is ROC year 1.
const rocEpoch = 1911

// Date represent a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Compact formats the date as YYYYMMDD, the form used in report file names.
func (d Date) Compact() string { return d.time().Format("20060102") }

// ROC formats the date in the Minguo calendar form the source system
// expects, YYY/MM/DD with a zero-padded three digit year.
func (d Date) ROC() string {
	return fmt.Sprintf("%03d/%02d/%02d", d.y-rocEpoch, int(d.m), d.d)
}

// PreviousBusinessDay returns the closest weekday strictly before d.
// Saturdays and Sundays are skipped; no holiday calendar is consulted.
func (d Date) PreviousBusinessDay() Date {
	p := d.Add(-1)
	for p.Weekday() == time.Saturday || p.Weekday() == time.Sunday {
		p = p.Add(-1)
	}
	return p
}
