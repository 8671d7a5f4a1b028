// Package datecodec parses and formats the calendar dates shown in booking
// widgets. All values are calendar days: time-of-day is always zero.
package datecodec

import (
	"time"
)

// ISOLayout is the layout of booking record date keys.
const ISOLayout = "2006-01-02"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant; used by tests and previews.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Calendar resolves "today" and the booking horizon in the hotel's location.
type Calendar struct {
	Clock    Clock
	Location *time.Location
}

// NewCalendar returns a calendar bound to loc, falling back to time.Local.
func NewCalendar(clock Clock, loc *time.Location) Calendar {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return Calendar{Clock: clock, Location: loc}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Now is the current instant in the calendar's location.
func (c Calendar) Now() time.Time {
	if c.Clock == nil {
		return time.Now().In(c.location())
	}
	return c.Clock.Now().In(c.location())
}

// Today is the start of the current day.
func (c Calendar) Today() time.Time {
	return Normalize(c.Now())
}

// Horizon is the farthest selectable date: one year from today.
func (c Calendar) Horizon() time.Time {
	return c.Today().AddDate(1, 0, 0)
}

// Date builds a normalized date in the calendar's location.
func (c Calendar) Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, c.location())
}

// ParseISO reads a YYYY-MM-DD key in the calendar's location.
func (c Calendar) ParseISO(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(ISOLayout, s, c.location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Normalize zeroes the time-of-day of t, keeping its location.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ISO formats t as a YYYY-MM-DD key. The zero time formats as "".
func ISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISOLayout)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
