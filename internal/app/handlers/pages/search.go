package pages

import (
	"context"
	"log/slog"
	"net/url"

	"milahouse/internal/app/dto"
	"milahouse/internal/app/picker"
	"milahouse/internal/app/policies"
	"milahouse/internal/app/queries"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/rooms"
	"milahouse/internal/domain/shared/daterange"
)

const searchRoomsKey = "pages.search_rooms"

// SearchRoomsQuery is the hero form as submitted, dates in the long form.
type SearchRoomsQuery struct {
	CheckIn  string `form:"checkin" validate:"max=64"`
	CheckOut string `form:"checkout" validate:"max=64"`
}

func (SearchRoomsQuery) Key() string { return searchRoomsKey }

// SearchRoomsHandler answers the hero search: every room, marked free or
// taken for the picked stay, with the stay carried into its modal link.
type SearchRoomsHandler struct {
	Snapshots policies.BookingSnapshots
	Rooms     rooms.Catalog
	Engine    availability.Engine
	Widgets   picker.Factory
	Logger    *slog.Logger
}

func (h *SearchRoomsHandler) Handle(ctx context.Context, q SearchRoomsQuery) (dto.SearchPage, error) {
	records, err := h.Snapshots.Records(ctx)
	if err != nil {
		return dto.SearchPage{}, err
	}
	payload, err := booking.Encode(records)
	if err != nil {
		return dto.SearchPage{}, err
	}
	hero, sel, err := heroForm(newBinder(h.Engine, h.Widgets, h.Logger), payload, q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.SearchPage{}, err
	}
	cards, err := roomCards(h.Rooms, records)
	if err != nil {
		return dto.SearchPage{}, err
	}

	short := datecodec.ShortCodec{Calendar: h.Engine.Calendar}
	carry := url.Values{}
	if !sel.CheckIn.IsZero() {
		carry.Set("checkin", short.Format(sel.CheckIn))
	}
	if !sel.CheckOut.IsZero() {
		carry.Set("checkout", short.Format(sel.CheckOut))
	}

	page := dto.SearchPage{Hero: hero, Year: h.Engine.Calendar.Today().Year()}
	for _, card := range cards {
		result := dto.SearchResult{RoomCard: card, Available: true, ModalURL: "/rooms/" + url.PathEscape(card.Room.ID) + "/modal"}
		if len(carry) > 0 {
			result.ModalURL += "?" + carry.Encode()
		}
		if sel.Complete() {
			stay := daterange.DateRange{CheckIn: sel.CheckIn, CheckOut: sel.CheckOut}
			result.Available = h.Engine.Bookable(stay) && len(h.Engine.Blocked(records, booking.Room(card.Room.ID), stay)) == 0
		}
		page.Results = append(page.Results, result)
	}
	return page, nil
}

var _ queries.Handler[SearchRoomsQuery, dto.SearchPage] = (*SearchRoomsHandler)(nil)
