package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milahouse/internal/domain/booking"
)

func moscow(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	return loc
}

func TestExpandBlackouts(t *testing.T) {
	loc := moscow(t)
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, loc)
	to := time.Date(2026, time.December, 31, 0, 0, 0, 0, loc)

	tests := []struct {
		name  string
		rule  Blackout
		stays [][2]string
		room  string
	}{
		{
			name:  "yearly closure",
			rule:  Blackout{Start: "2025-01-10", Rule: "FREQ=YEARLY;COUNT=3", Nights: 3},
			stays: [][2]string{{"2025-01-10", "2025-01-13"}, {"2026-01-10", "2026-01-13"}},
		},
		{
			name:  "weekly with prefix",
			rule:  Blackout{Start: "2025-06-02", Rule: "RRULE:FREQ=WEEKLY;BYDAY=MO;UNTIL=20250620T000000Z"},
			stays: [][2]string{{"2025-06-02", "2025-06-03"}, {"2025-06-09", "2025-06-10"}, {"2025-06-16", "2025-06-17"}},
		},
		{
			name:  "single room date",
			rule:  Blackout{Start: "2025-05-09", RoomID: "2", Nights: 1},
			stays: [][2]string{{"2025-05-09", "2025-05-10"}},
			room:  "2",
		},
		{
			name: "single date outside range",
			rule: Blackout{Start: "2024-05-09"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ExpandBlackouts([]Blackout{tt.rule}, from, to, loc)
			require.NoError(t, err)
			require.Len(t, recs, len(tt.stays))
			for i, rec := range recs {
				assert.Equal(t, tt.stays[i][0], rec.CheckIn)
				assert.Equal(t, tt.stays[i][1], rec.CheckOut)
				assert.Equal(t, tt.room, rec.RoomKey())
				assert.Equal(t, tt.room != "", rec.HasRoom())
			}
		})
	}
}

func TestExpandBlackoutsRejectsBadInput(t *testing.T) {
	loc := moscow(t)
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(1, 0, 0)

	_, err := ExpandBlackouts([]Blackout{{Start: "10.01.2025"}}, from, to, loc)
	assert.Error(t, err)

	_, err = ExpandBlackouts([]Blackout{{Start: "2025-01-10", Rule: "FREQ=SOMETIMES"}}, from, to, loc)
	assert.Error(t, err)

	_, err = ExpandBlackouts(nil, to, from, loc)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	loc := moscow(t)
	records := []booking.Record{
		{ID: booking.Number(1), RoomID: booking.Text("1"), CheckIn: "2025-06-10", CheckOut: "2025-06-12", Guest: booking.Guest{Name: "Анна"}, City: "Казань"},
		{RoomID: booking.Text("1"), CheckIn: "2025-07-01", CheckOut: "2025-07-03"},
		{RoomID: booking.Text("1"), CheckIn: "soon", CheckOut: "2025-07-03"},
	}
	out := Export("Номер 1", records, loc, time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	assert.Equal(t, "1-1@milahouse", events[0].Id())
	assert.Equal(t, "Анна", events[0].GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "20250610", events[0].GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20250612", events[0].GetProperty(ical.ComponentPropertyDtEnd).Value)

	assert.Equal(t, "1-2@milahouse", events[1].Id())
	assert.Equal(t, "Бронь #2", events[1].GetProperty(ical.ComponentPropertySummary).Value)
}
