package availability

import (
	"context"
	"errors"

	"milahouse/internal/app/dto"
	"milahouse/internal/app/policies"
	"milahouse/internal/app/queries"
	domainavailability "milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/rooms"
)

const getDisabledDatesKey = "availability.disabled_dates"

// GetDisabledDatesQuery asks for the dates a widget must refuse. An empty
// RoomID is the hotel-wide search form.
type GetDisabledDatesQuery struct {
	RoomID string
}

func (q GetDisabledDatesQuery) Key() string { return getDisabledDatesKey }

type GetDisabledDatesHandler struct {
	Snapshots policies.BookingSnapshots
	Engine    domainavailability.Engine
	Rooms     rooms.Catalog
}

var ErrSnapshotsRequired = errors.New("availability: booking snapshots required")

func (h *GetDisabledDatesHandler) Handle(ctx context.Context, q GetDisabledDatesQuery) (dto.DisabledDates, error) {
	if h.Snapshots == nil {
		return dto.DisabledDates{}, ErrSnapshotsRequired
	}
	scope := booking.AnyRoom()
	if q.RoomID != "" {
		if _, err := h.Rooms.Lookup(q.RoomID); err != nil {
			return dto.DisabledDates{}, err
		}
		scope = booking.Room(q.RoomID)
	}
	records, err := h.Snapshots.Records(ctx)
	if err != nil {
		return dto.DisabledDates{}, err
	}
	set := h.Engine.DisabledDates(records, scope)
	return dto.MapDisabledDates(q.RoomID, set, h.Engine.Calendar), nil
}

var _ queries.Handler[GetDisabledDatesQuery, dto.DisabledDates] = (*GetDisabledDatesHandler)(nil)
