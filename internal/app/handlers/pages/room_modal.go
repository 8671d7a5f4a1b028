package pages

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"milahouse/internal/app/admin"
	"milahouse/internal/app/dto"
	"milahouse/internal/app/picker"
	"milahouse/internal/app/policies"
	"milahouse/internal/app/queries"
	"milahouse/internal/app/roomsync"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/rooms"
	"milahouse/internal/ui/dom"
	"milahouse/internal/ui/widget"
)

const getRoomModalKey = "pages.room_modal"

// GetRoomModalQuery opens a room's detail modal, optionally carrying dates
// over from the search form in short form.
// Month, as YYYY-MM, pages the inline calendar.
type GetRoomModalQuery struct {
	RoomID   string `validate:"required,max=64"`
	CheckIn  string `validate:"max=32"`
	CheckOut string `validate:"max=32"`
	Month    string `validate:"omitempty,datetime=2006-01"`
}

func (GetRoomModalQuery) Key() string { return getRoomModalKey }

const modalSkeleton = `<article class="room-card"></article>
<form class="room-modal__form">
	<input id="modalCheckin" name="checkin">
	<button id="modalCheckinBtn" type="button"></button>
	<input id="modalCheckout" name="checkout">
	<button id="modalCheckoutBtn" type="button"></button>
</form>
<div id="roomModalCalendarContainer"></div>`

type GetRoomModalHandler struct {
	Snapshots policies.BookingSnapshots
	Rooms     rooms.Catalog
	Engine    availability.Engine
	Widgets   picker.Factory
	Logger    *slog.Logger
}

type monthPainter interface {
	Months() []widget.MonthView
}

type monthNavigator interface {
	Navigate(year int, month time.Month)
}

// Handle runs the modal's pickers against a fresh document: the room card
// carries the bookings, the inline calendar is rebuilt for the room and the
// carried-over dates go through the same field sync a guest's edits would.
func (h *GetRoomModalHandler) Handle(ctx context.Context, q GetRoomModalQuery) (dto.RoomModal, error) {
	room, err := h.Rooms.Lookup(q.RoomID)
	if err != nil {
		return dto.RoomModal{}, err
	}
	records, err := h.Snapshots.Records(ctx)
	if err != nil {
		return dto.RoomModal{}, err
	}
	payload, err := booking.Encode(booking.CardRecords(records, room.ID))
	if err != nil {
		return dto.RoomModal{}, err
	}

	doc, err := dom.ParseString(modalSkeleton)
	if err != nil {
		return dto.RoomModal{}, err
	}
	card := doc.First(dom.WithClass("room-card"))
	card.SetAttr("data-room-id", room.ID).SetAttr(booking.AttrRoomBookings, payload)
	checkIn, checkOut := doc.ByID("modalCheckin"), doc.ByID("modalCheckout")
	if checkIn == nil || checkOut == nil {
		return dto.RoomModal{}, fmt.Errorf("pages: modal fields missing")
	}

	cal := h.Engine.Calendar
	codec := datecodec.ShortCodec{Calendar: cal}
	binder := newBinder(h.Engine, h.Widgets, h.Logger)
	scope := booking.Room(room.ID)

	bridge := roomsync.New(binder, checkIn, checkOut, doc.ByID("roomModalCalendarContainer"))
	defer bridge.Close()
	bridge.Open(card, scope)

	ctrl := binder.Bind(picker.Config{
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		CheckInButton:  doc.ByID("modalCheckinBtn"),
		CheckOutButton: doc.ByID("modalCheckoutBtn"),
		Scope:          func() booking.Scope { return scope },
		Source:         card,
		Codec:          codec,
		OnComplete:     bridge.SyncRange,
	})
	defer ctrl.Destroy()

	in, _ := codec.Parse(q.CheckIn)
	out, _ := codec.Parse(q.CheckOut)
	if ctrl != nil {
		ctrl.SetRange(in, out)
	} else {
		checkIn.SetValue(q.CheckIn)
		checkOut.SetValue(q.CheckOut)
	}
	checkIn.Dispatch("change")

	modal := dto.RoomModal{
		Room:                dto.MapRoom(room, admin.FormatMoney),
		Bookings:            payload,
		CheckIn:             checkIn.Value(),
		CheckOut:            checkOut.Value(),
		CheckInPlaceholder:  checkIn.Placeholder(),
		CheckOutPlaceholder: checkOut.Placeholder(),
		Nights:              admin.StayNights(cal, checkIn.Value(), checkOut.Value()),
		Weekdays:            widget.Weekdays,
	}
	if month, err := time.ParseInLocation("2006-01", q.Month, cal.Location); err == nil {
		if nav, ok := bridge.Widget().(monthNavigator); ok {
			nav.Navigate(month.Year(), month.Month())
		}
	}
	if painter, ok := bridge.Widget().(monthPainter); ok {
		modal.Months = mapMonths(painter.Months())
	}
	if len(modal.Months) > 0 {
		if first, err := time.ParseInLocation("2006-01", modal.Months[0].Key, cal.Location); err == nil {
			modal.PrevMonth = first.AddDate(0, -1, 0).Format("2006-01")
			modal.NextMonth = first.AddDate(0, 1, 0).Format("2006-01")
		}
	}
	return modal, nil
}

func mapMonths(views []widget.MonthView) []dto.CalendarMonth {
	out := make([]dto.CalendarMonth, 0, len(views))
	for _, mv := range views {
		m := dto.CalendarMonth{Key: mv.Key, Title: mv.Title, Days: make([]dto.CalendarDay, 0, len(mv.Cells))}
		for _, c := range mv.Cells {
			m.Days = append(m.Days, dto.CalendarDay{Day: c.Day, Date: c.ISO, State: string(c.State)})
		}
		out = append(out, m)
	}
	return out
}

var _ queries.Handler[GetRoomModalQuery, dto.RoomModal] = (*GetRoomModalHandler)(nil)
