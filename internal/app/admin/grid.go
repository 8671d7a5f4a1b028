// Package admin derives the admin board for one room tab: a twelve-month
// occupancy grid and the booking ledger. Both are rebuilt in full on every
// render.
package admin

import (
	"fmt"
	"time"

	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/calendar"
	"milahouse/internal/domain/datecodec"
)

// DayKind classifies a grid cell.
type DayKind string

const (
	KindMuted    DayKind = "muted"
	KindBooked   DayKind = "booked"
	KindBookable DayKind = "free"
	KindPlain    DayKind = "plain"
)

var monthTitles = [...]string{"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь", "Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"}

// Weekdays head every month, Monday first.
var Weekdays = []string{"ПН", "ВТ", "СР", "ЧТ", "ПТ", "СБ", "ВС"}

type Day struct {
	Day  int     `json:"day"`
	Date string  `json:"date,omitempty"`
	Kind DayKind `json:"kind"`
}

type Month struct {
	Title  string `json:"title"`
	Month  int    `json:"month"`
	Offset int    `json:"offset"`
	Days   []Day  `json:"days"`
}

type Grid struct {
	Year   int     `json:"year"`
	Months []Month `json:"months"`
}

// Renderer builds boards against a calendar.
type Renderer struct {
	Calendar datecodec.Calendar
	Store    booking.Store
}

// Grid lays out January to December of the current year for roomID. A day
// is booked when any record applying to the room covers it; room-less
// records apply to every room.
func (r Renderer) Grid(records []booking.Record, roomID string) Grid {
	today := r.Calendar.Today()
	year := today.Year()
	scope := booking.Room(roomID)
	if roomID == "" {
		scope = booking.AnyRoom()
	}

	g := Grid{Year: year, Months: make([]Month, 0, 12)}
	for _, layout := range calendar.Year(year, r.Calendar.Location) {
		m := Month{
			Title:  fmt.Sprintf("%s, %d", monthTitles[layout.Month-1], year),
			Month:  int(layout.Month),
			Offset: layout.Offset,
			Days:   make([]Day, 0, len(layout.Cells)),
		}
		for _, cell := range layout.Cells {
			if cell.Muted {
				m.Days = append(m.Days, Day{Day: cell.Day, Kind: KindMuted})
				continue
			}
			m.Days = append(m.Days, Day{
				Day:  cell.Day,
				Date: datecodec.ISO(cell.Date),
				Kind: classify(cell.Date, today, scope, records),
			})
		}
		g.Months = append(g.Months, m)
	}
	return g
}

func classify(d, today time.Time, scope booking.Scope, records []booking.Record) DayKind {
	switch {
	case availability.IsDateBooked(d, scope, records):
		return KindBooked
	case !d.Before(today):
		return KindBookable
	default:
		return KindPlain
	}
}
