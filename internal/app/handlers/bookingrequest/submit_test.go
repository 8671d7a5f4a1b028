package bookingrequest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milahouse/internal/app/outbox"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/rooms"
)

type staticSnapshots struct {
	records []booking.Record
	err     error
}

func (s staticSnapshots) Records(context.Context) ([]booking.Record, error) { return s.records, s.err }

type memBox struct{ records []outbox.EventRecord }

func (m *memBox) Add(_ context.Context, r outbox.EventRecord) error {
	m.records = append(m.records, r)
	return nil
}

func (m *memBox) Flush(context.Context) error { return nil }

func newHandler(t *testing.T, box *memBox) *SubmitHandler {
	t.Helper()
	records, err := booking.Decode(`[
		{"roomId":"1","checkin":"2025-06-01","checkout":"2025-06-04"},
		{"checkin":"2025-07-10","checkout":"2025-07-11"}
	]`)
	require.NoError(t, err)
	cal := datecodec.NewCalendar(datecodec.FixedClock(time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)), time.UTC)
	return &SubmitHandler{
		Snapshots:   staticSnapshots{records: records},
		Engine:      availability.NewEngine(cal),
		Rooms:       rooms.NewCatalog(rooms.Room{ID: "1", Capacity: 3}, rooms.Room{ID: "2"}),
		Outbox:      box,
		Encoder:     outbox.JSONEventEncoder{IDGenerator: func() string { return "evt-1" }},
		IDGenerator: func() string { return "req-1" },
	}
}

func TestSubmitRelaysRequest(t *testing.T) {
	box := &memBox{}
	h := newHandler(t, box)

	receipt, err := h.Handle(context.Background(), SubmitCommand{
		RoomID: "1", Name: "Анна", Phone: "+79990000000",
		CheckIn: "04.06.2025", CheckOut: "07.06.2025",
		Adults: 5, Children: -1,
	})
	require.NoError(t, err)
	assert.Equal(t, "req-1", receipt.RequestID)
	assert.Equal(t, "2025-06-04", receipt.CheckIn)
	assert.Equal(t, 3, receipt.Nights)
	assert.Equal(t, 3, receipt.Adults)
	assert.Equal(t, 0, receipt.Children)

	require.Len(t, box.records, 1)
	rec := box.records[0]
	assert.Equal(t, booking.EventRequestSubmitted, rec.Name)
	assert.Equal(t, "1", rec.Aggregate)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Payload, &payload))
	assert.Equal(t, "Анна", payload["name"])
	assert.Equal(t, "2025-06-07", payload["checkout"])
}

func TestSubmitAcceptsLongFormDates(t *testing.T) {
	h := newHandler(t, &memBox{})
	receipt, err := h.Handle(context.Background(), SubmitCommand{
		RoomID: "2", Name: "Пётр", Phone: "+79990000001",
		CheckIn: "1 июня 2025", CheckOut: "3 июня", Adults: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", receipt.CheckIn)
	assert.Equal(t, "2025-06-03", receipt.CheckOut)
}

func TestSubmitRejections(t *testing.T) {
	tests := []struct {
		name string
		cmd  SubmitCommand
		want error
	}{
		{"booked night", SubmitCommand{RoomID: "1", CheckIn: "03.06.2025", CheckOut: "05.06.2025"}, booking.ErrDatesUnavailable},
		{"hotel closure", SubmitCommand{RoomID: "2", CheckIn: "09.07.2025", CheckOut: "12.07.2025"}, booking.ErrDatesUnavailable},
		{"past", SubmitCommand{RoomID: "2", CheckIn: "18.05.2025", CheckOut: "21.05.2025"}, booking.ErrDatesUnavailable},
		{"years ago", SubmitCommand{RoomID: "2", CheckIn: "01.01.2020", CheckOut: "03.01.2020"}, booking.ErrDatesUnavailable},
		{"years ahead", SubmitCommand{RoomID: "2", CheckIn: "01.01.2030", CheckOut: "03.01.2030"}, booking.ErrDatesUnavailable},
		{"crosses horizon", SubmitCommand{RoomID: "2", CheckIn: "19.05.2026", CheckOut: "21.05.2026"}, booking.ErrDatesUnavailable},
		{"reversed", SubmitCommand{RoomID: "2", CheckIn: "10.06.2025", CheckOut: "08.06.2025"}, booking.ErrInvalidDates},
		{"garbage", SubmitCommand{RoomID: "2", CheckIn: "скоро", CheckOut: "08.06.2025"}, booking.ErrInvalidDates},
		{"unknown room", SubmitCommand{RoomID: "9", CheckIn: "10.06.2025", CheckOut: "12.06.2025"}, rooms.ErrUnknownRoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := &memBox{}
			_, err := newHandler(t, box).Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, box.records)
		})
	}
}

func TestSubmitCheckoutOnBookedDayIsFine(t *testing.T) {
	// 2025-06-04 is room 1's previous checkout day.
	_, err := newHandler(t, &memBox{}).Handle(context.Background(), SubmitCommand{
		RoomID: "1", CheckIn: "04.06.2025", CheckOut: "05.06.2025", Adults: 1,
	})
	assert.NoError(t, err)

	_, err = newHandler(t, &memBox{}).Handle(context.Background(), SubmitCommand{
		RoomID: "1", CheckIn: "30.05.2025", CheckOut: "01.06.2025", Adults: 1,
	})
	assert.NoError(t, err)
}

func TestSubmitUpToHorizon(t *testing.T) {
	box := &memBox{}
	receipt, err := newHandler(t, box).Handle(context.Background(), SubmitCommand{
		RoomID: "2", CheckIn: "18.05.2026", CheckOut: "20.05.2026", Adults: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Nights)
	require.Len(t, box.records, 1)
	assert.Equal(t, time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC), box.records[0].OccurredAt)
}

func TestSubmitSnapshotFailure(t *testing.T) {
	h := newHandler(t, &memBox{})
	boom := errors.New("snapshot down")
	h.Snapshots = staticSnapshots{err: boom}
	_, err := h.Handle(context.Background(), SubmitCommand{RoomID: "1", CheckIn: "10.06.2025", CheckOut: "12.06.2025"})
	assert.ErrorIs(t, err, boom)
}
