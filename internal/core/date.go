package core

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the canonical storage form of a business-day date. Day
// records carry a calendar date, never a timestamp, so time-of-day and
// timezone artifacts cannot shift an entry across days.
const DateFormat = "2006-01-02"

// Date is a calendar date with day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return Date{y, m, d}
}

// Today returns the current local calendar date.
func Today() Date {
	return NewDate(time.Now().Date())
}

// ParseDate parses the canonical "YYYY-MM-DD" form. Legacy history entries
// stored full RFC 3339 timestamps; those are accepted too, truncated to
// their calendar date. Date-only wins when both could apply.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateFormat, s); err == nil {
		return NewDate(t.Date()), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t.Date()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: want %q or RFC 3339", s, DateFormat)
}

func (d Date) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// String formats the date in its canonical form.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// AddDays returns the date i days after d (i may be negative).
func (d Date) AddDays(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Within reports whether d lies in [from, to], boundaries inclusive.
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// MarshalJSON emits the canonical "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts the canonical form and legacy timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
