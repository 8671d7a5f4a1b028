package booking

import (
	"errors"
	"time"

	"milahouse/internal/domain/shared/daterange"
	"milahouse/internal/domain/shared/events"
)

var ErrDatesUnavailable = errors.New("booking: requested dates are not available")

// Request is a guest's booking request as submitted from the site. It is
// relayed to the reservations backend and never stored here.
type Request struct {
	ID          string
	RoomID      string
	Name        string
	Phone       string
	Email       string
	Stay        daterange.DateRange
	Adults      int
	Children    int
	Comment     string
	SubmittedAt time.Time
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampGuests bounds adults to [1, capacity] and children to [0, capacity].
func ClampGuests(adults, children, capacity int) (int, int) {
	if capacity < 1 {
		capacity = 1
	}
	return Clamp(adults, 1, capacity), Clamp(children, 0, capacity)
}

const EventRequestSubmitted = "booking.request_submitted"

// RequestSubmitted is emitted for every accepted request.
type RequestSubmitted struct {
	events.BaseEvent
	RequestID string `json:"requestId"`
	RoomID    string `json:"roomId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	CheckIn   string `json:"checkin"`
	CheckOut  string `json:"checkout"`
	Nights    int    `json:"nights"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
	Comment   string `json:"comment,omitempty"`
}

func NewRequestSubmitted(r Request) RequestSubmitted {
	return RequestSubmitted{
		BaseEvent: events.BaseEvent{Name: EventRequestSubmitted, Aggregate: r.RoomID, Time: r.SubmittedAt},
		RequestID: r.ID,
		RoomID:    r.RoomID,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		CheckIn:   r.Stay.CheckIn.Format(time.DateOnly),
		CheckOut:  r.Stay.CheckOut.Format(time.DateOnly),
		Nights:    r.Stay.Nights(),
		Adults:    r.Adults,
		Children:  r.Children,
		Comment:   r.Comment,
	}
}
