package bookingrequest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"milahouse/internal/app/commands"
	"milahouse/internal/app/dto"
	"milahouse/internal/app/outbox"
	"milahouse/internal/app/policies"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/rooms"
	"milahouse/internal/domain/shared/daterange"
	"milahouse/internal/domain/shared/events"
)

const submitKey = "booking.request.submit"

// SubmitCommand is the booking form as posted. Dates arrive in whatever
// display format the form's picker used.
type SubmitCommand struct {
	RoomID   string `form:"room_id" validate:"required"`
	Name     string `form:"name" validate:"required,max=120"`
	Phone    string `form:"phone" validate:"required,max=32,phone"`
	Email    string `form:"email" validate:"omitempty,email"`
	CheckIn  string `form:"checkin" validate:"required"`
	CheckOut string `form:"checkout" validate:"required"`
	Adults   int    `form:"adults" validate:"gte=1"`
	Children int    `form:"children" validate:"gte=0"`
	Comment  string `form:"comment" validate:"max=1000"`
}

func (SubmitCommand) Key() string { return submitKey }

type SubmitHandler struct {
	Snapshots policies.BookingSnapshots
	Engine    availability.Engine
	Rooms     rooms.Catalog
	// Codecs are tried in order when parsing the form dates.
	Codecs      []datecodec.Codec
	Outbox      outbox.Outbox
	Encoder     outbox.EventEncoder
	IDGenerator func() string
}

var ErrSnapshotsRequired = errors.New("bookingrequest: booking snapshots required")

func (h *SubmitHandler) Handle(ctx context.Context, cmd SubmitCommand) (dto.BookingReceipt, error) {
	if h.Snapshots == nil {
		return dto.BookingReceipt{}, ErrSnapshotsRequired
	}
	room, err := h.Rooms.Lookup(cmd.RoomID)
	if err != nil {
		return dto.BookingReceipt{}, err
	}
	stay, err := h.parseStay(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return dto.BookingReceipt{}, err
	}

	cal := h.Engine.Calendar
	if !h.Engine.Bookable(stay) {
		return dto.BookingReceipt{}, fmt.Errorf("%w: outside %s..%s", booking.ErrDatesUnavailable,
			datecodec.ISO(cal.Today()), datecodec.ISO(cal.Horizon()))
	}

	records, err := h.Snapshots.Records(ctx)
	if err != nil {
		return dto.BookingReceipt{}, err
	}
	if blocked := h.Engine.Blocked(records, booking.Room(room.ID), stay); len(blocked) > 0 {
		return dto.BookingReceipt{}, fmt.Errorf("%w: %v", booking.ErrDatesUnavailable, blocked)
	}

	adults, children := booking.ClampGuests(cmd.Adults, cmd.Children, room.MaxGuests())
	req := booking.Request{
		ID:          h.newID(),
		RoomID:      room.ID,
		Name:        cmd.Name,
		Phone:       cmd.Phone,
		Email:       cmd.Email,
		Stay:        stay,
		Adults:      adults,
		Children:    children,
		Comment:     cmd.Comment,
		SubmittedAt: cal.Now().UTC(),
	}
	ev := booking.NewRequestSubmitted(req)
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, []events.DomainEvent{ev}); err != nil {
		return dto.BookingReceipt{}, err
	}
	return dto.BookingReceipt{
		RequestID: req.ID,
		RoomID:    req.RoomID,
		CheckIn:   ev.CheckIn,
		CheckOut:  ev.CheckOut,
		Nights:    ev.Nights,
		Adults:    adults,
		Children:  children,
	}, nil
}

func (h *SubmitHandler) parseStay(checkin, checkout string) (daterange.DateRange, error) {
	in, okIn := h.parse(checkin)
	out, okOut := h.parse(checkout)
	if !okIn || !okOut {
		return daterange.DateRange{}, booking.ErrInvalidDates
	}
	stay, err := daterange.New(in, out)
	if err != nil {
		return daterange.DateRange{}, fmt.Errorf("%w: %w", booking.ErrInvalidDates, err)
	}
	return stay, nil
}

func (h *SubmitHandler) parse(s string) (time.Time, bool) {
	codecs := h.Codecs
	if len(codecs) == 0 {
		codecs = []datecodec.Codec{
			datecodec.ShortCodec{Calendar: h.Engine.Calendar},
			datecodec.LongCodec{Calendar: h.Engine.Calendar},
		}
	}
	for _, c := range codecs {
		if t, ok := c.Parse(s); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func (h *SubmitHandler) newID() string {
	if h.IDGenerator != nil {
		return h.IDGenerator()
	}
	return uuid.NewString()
}

var _ commands.Handler[SubmitCommand, dto.BookingReceipt] = (*SubmitHandler)(nil)
