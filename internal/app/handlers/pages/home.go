package pages

import (
	"context"
	"log/slog"

	"milahouse/internal/app/admin"
	"milahouse/internal/app/dto"
	"milahouse/internal/app/picker"
	"milahouse/internal/app/policies"
	"milahouse/internal/app/queries"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/rooms"
)

const getHomeKey = "pages.home"

type GetHomeQuery struct{}

func (GetHomeQuery) Key() string { return getHomeKey }

// GetHomeHandler prepares the landing page: the search form gets every
// record, each room card gets its own.
type GetHomeHandler struct {
	Snapshots policies.BookingSnapshots
	Rooms     rooms.Catalog
	Engine    availability.Engine
	Widgets   picker.Factory
	Logger    *slog.Logger
}

func (h *GetHomeHandler) Handle(ctx context.Context, _ GetHomeQuery) (dto.HomePage, error) {
	records, err := h.Snapshots.Records(ctx)
	if err != nil {
		return dto.HomePage{}, err
	}
	payload, err := booking.Encode(records)
	if err != nil {
		return dto.HomePage{}, err
	}
	hero, _, err := heroForm(newBinder(h.Engine, h.Widgets, h.Logger), payload, "", "")
	if err != nil {
		return dto.HomePage{}, err
	}
	cards, err := roomCards(h.Rooms, records)
	if err != nil {
		return dto.HomePage{}, err
	}
	return dto.HomePage{Hero: hero, Rooms: cards, Year: h.Engine.Calendar.Today().Year()}, nil
}

func roomCards(catalog rooms.Catalog, records []booking.Record) ([]dto.RoomCard, error) {
	cards := make([]dto.RoomCard, 0, catalog.Len())
	for _, room := range catalog.All() {
		payload, err := booking.Encode(booking.CardRecords(records, room.ID))
		if err != nil {
			return nil, err
		}
		cards = append(cards, dto.RoomCard{Room: dto.MapRoom(room, admin.FormatMoney), Bookings: payload})
	}
	return cards, nil
}

var _ queries.Handler[GetHomeQuery, dto.HomePage] = (*GetHomeHandler)(nil)
