// Package ics converts between booking records and iCalendar data: recurring
// closures come in as RRULEs, room bookings go out as VEVENTs.
package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
)

// maxOccurrences caps a single rule so an open-ended RRULE cannot flood the
// snapshot.
const maxOccurrences = 1000

// Blackout is a recurring closure. Each occurrence blocks Nights days
// starting on the occurrence date.
type Blackout struct {
	RoomID  string
	Start   string
	Rule    string
	Nights  int
	Comment string
}

// ExpandBlackouts turns rules into booking records for every occurrence
// starting within [from, to]. Records of hotel-wide rules carry no room id.
func ExpandBlackouts(rules []Blackout, from, to time.Time, loc *time.Location) ([]booking.Record, error) {
	if loc == nil {
		loc = time.Local
	}
	if to.Before(from) {
		return nil, fmt.Errorf("ics: range end %s is before start %s", datecodec.ISO(to), datecodec.ISO(from))
	}
	var out []booking.Record
	for i, b := range rules {
		starts, err := occurrences(b, from, to, loc)
		if err != nil {
			return nil, fmt.Errorf("ics: blackout %d: %w", i, err)
		}
		nights := max(b.Nights, 1)
		for _, start := range starts {
			start = datecodec.Normalize(start.In(loc))
			rec := booking.Record{
				ID:       booking.Text(fmt.Sprintf("blackout-%d-%s", i+1, datecodec.ISO(start))),
				CheckIn:  datecodec.ISO(start),
				CheckOut: datecodec.ISO(start.AddDate(0, 0, nights)),
				Comment:  b.Comment,
			}
			if b.RoomID != "" {
				rec.RoomID = booking.Text(b.RoomID)
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

func occurrences(b Blackout, from, to time.Time, loc *time.Location) ([]time.Time, error) {
	start, err := time.ParseInLocation(datecodec.ISOLayout, strings.TrimSpace(b.Start), loc)
	if err != nil {
		return nil, fmt.Errorf("start %q: %w", b.Start, err)
	}
	if strings.TrimSpace(b.Rule) == "" {
		if start.Before(datecodec.Normalize(from)) || start.After(to) {
			return nil, nil
		}
		return []time.Time{start}, nil
	}
	r, err := rrule.StrToRRule(strings.TrimPrefix(strings.TrimSpace(b.Rule), "RRULE:"))
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", b.Rule, err)
	}
	r.DTStart(start)
	times := r.Between(datecodec.Normalize(from).In(loc), to.In(loc), true)
	if len(times) > maxOccurrences {
		times = times[:maxOccurrences]
	}
	return times, nil
}
