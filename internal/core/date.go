package core

import (
	"encoding/json"
	"time"
)

// DateKeyLayout is the canonical wire form of a date. Keys in this
// layout compare lexically in chronological order, but internally all
// comparisons go through time.Time to keep a single representation.
const DateKeyLayout = "2006-01-02"

// MonthKeyLayout identifies a year+month ("2024-03").
const MonthKeyLayout = "2006-01"

// Date is a calendar day pinned to UTC midnight. The zero value is
// invalid.
type Date struct {
	time.Time
}

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

// ParseDate parses the canonical "YYYY-MM-DD" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateKeyLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// Key returns the canonical "YYYY-MM-DD" form.
func (d Date) Key() string {
	return d.Format(DateKeyLayout)
}

// MonthKey returns the "YYYY-MM" form of the date's month.
func (d Date) MonthKey() string {
	return d.Format(MonthKeyLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// OnOrBefore reports whether d is not after o.
func (d Date) OnOrBefore(o Date) bool {
	return !d.Time.After(o.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Key())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthKey builds the "YYYY-MM" key for a year and 1-based month.
func MonthKey(year, month int) string {
	return NewDate(year, month, 1).MonthKey()
}

// DaysInMonth returns the day count of a month (1-based).
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndOfMonth returns the last day of the given month.
func EndOfMonth(year, month int) Date {
	return NewDate(year, month, DaysInMonth(year, month))
}

// MonthsAhead counts calendar months from the month containing now to
// the given month. Positive means the viewed month is in the future.
func MonthsAhead(now time.Time, year, month int) int {
	return (year-now.Year())*12 + (month - int(now.Month()))
}
