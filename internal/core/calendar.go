package core

import "time"

// GridCells is the fixed size of a month view: six Monday-first weeks.
const GridCells = 42

// CalendarDay is one cell of the month grid. Ephemeral: rebuilt on
// every navigation, never persisted.
type CalendarDay struct {
	Date           Date   `json:"date"`
	DateKey        string `json:"dateKey"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
}

// CalendarGrid builds the 42-cell grid for the month containing ref,
// padded with trailing days of the previous month and leading days of
// the next one.
func CalendarGrid(ref Date) []CalendarDay {
	year, month := ref.Year(), int(ref.Month())
	first := NewDate(year, month, 1)

	// Normalize Sunday (0) to 6 so weeks start on Monday.
	lead := int(first.Weekday())
	lead = (lead + 6) % 7

	days := make([]CalendarDay, 0, GridCells)

	prevLast := first.AddDate(0, 0, -1)
	daysInPrev := prevLast.Day()
	for i := lead - 1; i >= 0; i-- {
		d := NewDate(prevLast.Year(), int(prevLast.Month()), daysInPrev-i)
		days = append(days, CalendarDay{Date: d, DateKey: d.Key(), IsCurrentMonth: false})
	}

	for i := 1; i <= DaysInMonth(year, month); i++ {
		d := NewDate(year, month, i)
		days = append(days, CalendarDay{Date: d, DateKey: d.Key(), IsCurrentMonth: true})
	}

	next := first.AddDate(0, 1, 0)
	for i := 1; len(days) < GridCells; i++ {
		d := NewDate(next.Year(), int(next.Month()), i)
		days = append(days, CalendarDay{Date: d, DateKey: d.Key(), IsCurrentMonth: false})
	}

	return days
}

// Weeks splits a 42-cell grid into its six rows.
func Weeks(days []CalendarDay) [][]CalendarDay {
	weeks := make([][]CalendarDay, 0, GridCells/7)
	for i := 0; i+7 <= len(days); i += 7 {
		weeks = append(weeks, days[i:i+7])
	}
	return weeks
}

// IsWeekend reports whether the day falls on Saturday or Sunday.
func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
