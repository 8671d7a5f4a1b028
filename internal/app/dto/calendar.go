package dto

import (
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/datecodec"
)

type DateSpan struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DisabledDates is the blocked-date set of one widget, compressed to
// inclusive spans.
type DisabledDates struct {
	RoomID  string     `json:"room_id,omitempty"`
	MinDate string     `json:"min_date"`
	MaxDate string     `json:"max_date"`
	Days    int        `json:"days"`
	Blocked []DateSpan `json:"blocked"`
}

func MapDisabledDates(roomID string, set availability.DateSet, cal datecodec.Calendar) DisabledDates {
	spans := set.Ranges()
	out := DisabledDates{
		RoomID:  roomID,
		MinDate: datecodec.ISO(cal.Today()),
		MaxDate: datecodec.ISO(cal.Horizon()),
		Days:    set.Len(),
		Blocked: make([]DateSpan, 0, len(spans)),
	}
	for _, s := range spans {
		out.Blocked = append(out.Blocked, DateSpan{From: s.From, To: s.To})
	}
	return out
}

type CalendarDay struct {
	Day   int    `json:"day"`
	Date  string `json:"date"`
	State string `json:"state"`
}

type CalendarMonth struct {
	Key   string        `json:"key"`
	Title string        `json:"title"`
	Days  []CalendarDay `json:"days"`
}
