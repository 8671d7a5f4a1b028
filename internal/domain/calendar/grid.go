// Package calendar lays out month grids with Monday as the first column.
package calendar

import (
	"time"

	"milahouse/internal/domain/datecodec"
)

// Grid sizes: five or six full weeks.
const (
	ShortGrid = 35
	LongGrid  = 42
)

// Cell is one square of a month grid. Muted cells belong to the adjacent
// month and only pad the layout.
type Cell struct {
	Date  time.Time
	Day   int
	Muted bool
}

// Month is the laid-out grid of a single month.
type Month struct {
	Year   int
	Month  time.Month
	Offset int
	Days   int
	Cells  []Cell
}

// Offset is the Monday-first column of the month's first day.
func Offset(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) + 6) % 7
}

// GridSize is 35 when the month fits in five weeks, 42 otherwise.
func GridSize(offset, days int) int {
	if offset+days <= ShortGrid {
		return ShortGrid
	}
	return LongGrid
}

// Layout builds the grid for month in loc: the previous month's tail, the
// month's own days, then the next month's head up to the grid size.
func Layout(year int, month time.Month, loc *time.Location) Month {
	if loc == nil {
		loc = time.Local
	}
	offset := Offset(year, month)
	days := datecodec.DaysIn(year, month)
	size := GridSize(offset, days)

	m := Month{Year: year, Month: month, Offset: offset, Days: days, Cells: make([]Cell, 0, size)}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for i := offset; i > 0; i-- {
		d := first.AddDate(0, 0, -i)
		m.Cells = append(m.Cells, Cell{Date: d, Day: d.Day(), Muted: true})
	}
	for n := 1; n <= days; n++ {
		m.Cells = append(m.Cells, Cell{Date: time.Date(year, month, n, 0, 0, 0, 0, loc), Day: n})
	}
	next := first.AddDate(0, 1, 0)
	for i := 0; len(m.Cells) < size; i++ {
		d := next.AddDate(0, 0, i)
		m.Cells = append(m.Cells, Cell{Date: d, Day: d.Day(), Muted: true})
	}
	return m
}

// Leading is the number of muted cells before the first day.
func (m Month) Leading() int { return m.Offset }

// Trailing is the number of muted cells after the last day.
func (m Month) Trailing() int { return len(m.Cells) - m.Offset - m.Days }

// Year lays out all twelve months of year, January first.
func Year(year int, loc *time.Location) []Month {
	months := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, Layout(year, m, loc))
	}
	return months
}
