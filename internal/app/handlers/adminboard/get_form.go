package adminboard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"milahouse/internal/app/admin"
	"milahouse/internal/app/dto"
	"milahouse/internal/app/picker"
	"milahouse/internal/app/policies"
	"milahouse/internal/app/queries"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/rooms"
	"milahouse/internal/ui/dom"
	"milahouse/internal/ui/widget"
)

const getFormKey = "admin.form"

const formSkeleton = `<form id="adminBookingForm">
	<input id="adminCheckin" name="checkin">
	<input id="adminCheckout" name="checkout">
	<span id="adminDaysCount">0</span>
</form>`

// GetFormQuery opens the admin booking form on a room tab, optionally with
// dates in the short form. An empty RoomID selects the first room.
type GetFormQuery struct {
	RoomID   string `validate:"max=64"`
	CheckIn  string `validate:"max=32"`
	CheckOut string `validate:"max=32"`
}

func (GetFormQuery) Key() string { return getFormKey }

func (GetFormQuery) AdminOnly() {}

// GetFormHandler runs the admin form's picker. The picker is bound on the
// landing tab and reconfigured when another tab is open, the way switching
// tabs does on the page; completed ranges update the stay length.
type GetFormHandler struct {
	Snapshots policies.BookingSnapshots
	Rooms     rooms.Catalog
	Engine    availability.Engine
	Widgets   picker.Factory
	Logger    *slog.Logger
}

func (h *GetFormHandler) Handle(ctx context.Context, q GetFormQuery) (dto.AdminForm, error) {
	landing, ok := h.Rooms.Default()
	if !ok {
		return dto.AdminForm{}, ErrNoRooms
	}
	tab, err := resolveRoom(h.Rooms, q.RoomID)
	if err != nil {
		return dto.AdminForm{}, err
	}
	records, err := h.Snapshots.Records(ctx)
	if err != nil {
		return dto.AdminForm{}, err
	}

	doc, err := dom.ParseString(formSkeleton)
	if err != nil {
		return dto.AdminForm{}, err
	}
	form, in, out, days := doc.ByID("adminBookingForm"), doc.ByID("adminCheckin"), doc.ByID("adminCheckout"), doc.ByID("adminDaysCount")
	if form == nil || in == nil || out == nil || days == nil {
		return dto.AdminForm{}, fmt.Errorf("adminboard: form fields missing")
	}
	landingSource, err := roomSource(records, landing.ID)
	if err != nil {
		return dto.AdminForm{}, err
	}
	form.SetAttr(booking.AttrRoomBookings, landingSource[booking.AttrRoomBookings])

	cal := h.Engine.Calendar
	codec := datecodec.ShortCodec{Calendar: cal}
	factory := h.Widgets
	if factory == nil {
		factory = widget.Factory{Months: 1}
	}
	binder := picker.Binder{Factory: factory, Store: booking.Store{Logger: h.Logger}, Engine: h.Engine, Logger: h.Logger}
	ctrl := binder.Bind(picker.Config{
		CheckIn:  in,
		CheckOut: out,
		Scope:    func() booking.Scope { return booking.Room(landing.ID) },
		Source:   form,
		Codec:    codec,
		OnComplete: func(picker.SelectedRange) {
			days.SetText(strconv.Itoa(admin.StayNights(cal, in.Value(), out.Value())))
		},
	})
	defer ctrl.Destroy()

	if tab.ID != landing.ID {
		src, err := roomSource(records, tab.ID)
		if err != nil {
			return dto.AdminForm{}, err
		}
		form.SetAttr(booking.AttrRoomBookings, src[booking.AttrRoomBookings])
		ctrl.Reconfigure(src, booking.Room(tab.ID))
	}

	ci, _ := codec.Parse(q.CheckIn)
	co, _ := codec.Parse(q.CheckOut)
	if !ci.IsZero() {
		ctrl.SetRange(ci, co)
	}

	nights, _ := strconv.Atoi(days.Text())
	return dto.AdminForm{
		RoomID:              tab.ID,
		CheckIn:             in.Value(),
		CheckOut:            out.Value(),
		CheckInPlaceholder:  in.Placeholder(),
		CheckOutPlaceholder: out.Placeholder(),
		Nights:              nights,
	}, nil
}

func roomSource(records []booking.Record, roomID string) (booking.Attrs, error) {
	payload, err := booking.Encode(booking.CardRecords(records, roomID))
	if err != nil {
		return nil, err
	}
	return booking.Attrs{booking.AttrRoomBookings: payload}, nil
}

var _ queries.Handler[GetFormQuery, dto.AdminForm] = (*GetFormHandler)(nil)
