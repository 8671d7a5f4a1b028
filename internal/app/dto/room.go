package dto

import (
	"milahouse/internal/domain/rooms"
)

type Room struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Capacity    int      `json:"capacity"`
	Price       float64  `json:"price"`
	PriceText   string   `json:"price_text"`
	Photos      []string `json:"photos,omitempty"`
}

func MapRoom(r rooms.Room, formatMoney func(float64) string) Room {
	out := Room{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Capacity:    r.MaxGuests(),
		Price:       r.Price,
		Photos:      append([]string(nil), r.Photos...),
	}
	if formatMoney != nil {
		out.PriceText = formatMoney(r.Price)
	}
	return out
}

// RoomCard is a room as listed on the home page. Bookings is the serialized
// payload embedded into the card for its date pickers.
type RoomCard struct {
	Room     Room   `json:"room"`
	Bookings string `json:"bookings"`
}

// SearchForm is the hero search form after its picker has run: values are
// what the picker accepted, in the long form.
type SearchForm struct {
	Bookings            string `json:"bookings"`
	CheckIn             string `json:"checkin"`
	CheckOut            string `json:"checkout"`
	CheckInPlaceholder  string `json:"checkin_placeholder"`
	CheckOutPlaceholder string `json:"checkout_placeholder"`
	Nights              int    `json:"nights"`
}

type HomePage struct {
	Hero  SearchForm `json:"hero"`
	Rooms []RoomCard `json:"rooms"`
	Year  int        `json:"year"`
}

// SearchResult is a room card on the search page. ModalURL carries the
// searched dates into the room modal in short form.
type SearchResult struct {
	RoomCard
	Available bool   `json:"available"`
	ModalURL  string `json:"modal_url"`
}

type SearchPage struct {
	Hero    SearchForm     `json:"hero"`
	Results []SearchResult `json:"results"`
	Year    int            `json:"year"`
}

// RoomModal is the room-detail fragment after the modal fields and inline
// calendar have been synchronised.
type RoomModal struct {
	Room                Room            `json:"room"`
	Bookings            string          `json:"bookings"`
	CheckIn             string          `json:"checkin"`
	CheckOut            string          `json:"checkout"`
	CheckInPlaceholder  string          `json:"checkin_placeholder"`
	CheckOutPlaceholder string          `json:"checkout_placeholder"`
	Nights              int             `json:"nights"`
	Months              []CalendarMonth `json:"months"`
	PrevMonth           string          `json:"prev_month,omitempty"`
	NextMonth           string          `json:"next_month,omitempty"`
	Weekdays            []string        `json:"weekdays"`
}
