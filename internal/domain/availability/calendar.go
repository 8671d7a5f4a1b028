package availability

import (
	"time"

	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/shared/daterange"
)

// DefaultWindowDays is the width of both the past and the far-future blocked windows.
const DefaultWindowDays = 365

// Engine turns booking records into the dates a guest may not select.
type Engine struct {
	Calendar      datecodec.Calendar
	LookbackDays  int
	LookaheadDays int
}

func NewEngine(cal datecodec.Calendar) Engine {
	return Engine{Calendar: cal, LookbackDays: DefaultWindowDays, LookaheadDays: DefaultWindowDays}
}

// DisabledDates returns every date in [today-lookback, today), every date in
// [horizon, horizon+lookahead] and every date booked by a record applying to
// scope. The far-future window includes both of its ends.
func (e Engine) DisabledDates(records []booking.Record, scope booking.Scope) DateSet {
	set := NewDateSet()
	today := e.Calendar.Today()
	horizon := e.Calendar.Horizon()

	for d := today.AddDate(0, 0, -e.lookback()); d.Before(today); d = d.AddDate(0, 0, 1) {
		set.Add(d)
	}
	last := horizon.AddDate(0, 0, e.lookahead())
	for d := horizon; !d.After(last); d = d.AddDate(0, 0, 1) {
		set.Add(d)
	}

	loc := e.Calendar.Location
	for _, rec := range records {
		if !Applies(rec, scope) {
			continue
		}
		dr, err := rec.Range(loc)
		if err != nil {
			continue
		}
		dr.Days(set.Add)
	}
	return set
}

// Bookable reports whether stay lies between today and the horizon.
func (e Engine) Bookable(stay daterange.DateRange) bool {
	return stay.Within(e.Calendar.Today(), e.Calendar.Horizon())
}

// Blocked lists the ISO keys of the stay's nights that are disabled for
// scope. The checkout day is not a night and never blocks.
func (e Engine) Blocked(records []booking.Record, scope booking.Scope, stay daterange.DateRange) []string {
	disabled := e.DisabledDates(records, scope)
	var blocked []string
	stay.Days(func(d time.Time) {
		if disabled.Contains(d) {
			blocked = append(blocked, datecodec.ISO(d))
		}
	})
	return blocked
}

func (e Engine) lookback() int {
	if e.LookbackDays <= 0 {
		return DefaultWindowDays
	}
	return e.LookbackDays
}

func (e Engine) lookahead() int {
	if e.LookaheadDays <= 0 {
		return DefaultWindowDays
	}
	return e.LookaheadDays
}

// Applies reports whether rec constrains availability for scope. A record
// without a room blocks every room; a room record only blocks its own room.
func Applies(rec booking.Record, scope booking.Scope) bool {
	id, scoped := scope.RoomID()
	if scoped && rec.HasRoom() && rec.RoomKey() != id {
		return false
	}
	return true
}

// IsDateBooked answers point membership with the same room matching as
// Engine.DisabledDates. Checkout days are free.
func IsDateBooked(date time.Time, scope booking.Scope, records []booking.Record) bool {
	key := datecodec.ISO(date)
	for _, rec := range records {
		if Applies(rec, scope) && rec.Covers(key) {
			return true
		}
	}
	return false
}
