package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"milahouse/internal/domain/booking"
)

const productID = "-//milahouse//bookings//RU"

// Export renders the records as an iCalendar feed of all-day events. Records
// with unreadable dates are left out.
func Export(name string, records []booking.Record, loc *time.Location, stamp time.Time) string {
	if loc == nil {
		loc = time.Local
	}
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetXWRCalName(name)
	}
	cal.SetXWRTimezone(loc.String())

	for i, rec := range records {
		stay, err := rec.Range(loc)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(eventUID(rec, i))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(stay.CheckIn)
		ev.SetAllDayEndAt(stay.CheckOut)
		ev.SetSummary(summary(rec, i))
		if desc := description(rec); desc != "" {
			ev.SetDescription(desc)
		}
	}
	return cal.Serialize()
}

func eventUID(rec booking.Record, index int) string {
	room := rec.RoomKey()
	if room == "" {
		room = "all"
	}
	return fmt.Sprintf("%s-%s@milahouse", room, rec.DisplayID(index))
}

func summary(rec booking.Record, index int) string {
	name := rec.Guest.Name
	if name == "" {
		name = rec.Name
	}
	if name == "" {
		return "Бронь #" + rec.DisplayID(index)
	}
	return name
}

func description(rec booking.Record) string {
	var parts []string
	if rec.City != "" {
		parts = append(parts, rec.City)
	}
	if rec.Comment != "" {
		parts = append(parts, rec.Comment)
	}
	return strings.Join(parts, "\n")
}
