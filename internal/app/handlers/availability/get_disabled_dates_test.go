package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milahouse/internal/app/dto"
	domainavailability "milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/rooms"
)

type staticSnapshots []booking.Record

func (s staticSnapshots) Records(context.Context) ([]booking.Record, error) { return s, nil }

func handler(t *testing.T) *GetDisabledDatesHandler {
	t.Helper()
	records, err := booking.Decode(`[
		{"roomId":"1","checkin":"2025-06-01","checkout":"2025-06-04"},
		{"roomId":"2","checkin":"2025-06-10","checkout":"2025-06-12"},
		{"checkin":"2025-07-01","checkout":"2025-07-02"}
	]`)
	require.NoError(t, err)
	cal := datecodec.NewCalendar(datecodec.FixedClock(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)), time.UTC)
	return &GetDisabledDatesHandler{
		Snapshots: staticSnapshots(records),
		Engine:    domainavailability.NewEngine(cal),
		Rooms:     rooms.NewCatalog(rooms.Room{ID: "1"}, rooms.Room{ID: "2"}),
	}
}

func contains(spans []dto.DateSpan, iso string) bool {
	for _, s := range spans {
		if iso >= s.From && iso <= s.To {
			return true
		}
	}
	return false
}

func TestDisabledDatesForRoom(t *testing.T) {
	got, err := handler(t).Handle(context.Background(), GetDisabledDatesQuery{RoomID: "1"})
	require.NoError(t, err)

	assert.Equal(t, "1", got.RoomID)
	assert.Equal(t, "2025-05-20", got.MinDate)
	assert.Equal(t, "2026-05-20", got.MaxDate)
	assert.True(t, contains(got.Blocked, "2025-05-19"))
	assert.False(t, contains(got.Blocked, "2025-05-20"))
	assert.True(t, contains(got.Blocked, "2025-06-03"))
	assert.False(t, contains(got.Blocked, "2025-06-04"))
	assert.False(t, contains(got.Blocked, "2025-06-10"))
	assert.True(t, contains(got.Blocked, "2025-07-01"))
	assert.True(t, contains(got.Blocked, "2026-05-20"))
}

func TestDisabledDatesHotelWide(t *testing.T) {
	got, err := handler(t).Handle(context.Background(), GetDisabledDatesQuery{})
	require.NoError(t, err)
	assert.Empty(t, got.RoomID)
	assert.True(t, contains(got.Blocked, "2025-06-01"))
	assert.True(t, contains(got.Blocked, "2025-06-11"))
}

func TestDisabledDatesUnknownRoom(t *testing.T) {
	_, err := handler(t).Handle(context.Background(), GetDisabledDatesQuery{RoomID: "42"})
	assert.ErrorIs(t, err, rooms.ErrUnknownRoom)
}
