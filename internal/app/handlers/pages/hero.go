package pages

import (
	"fmt"
	"log/slog"

	"milahouse/internal/app/dto"
	"milahouse/internal/app/picker"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/shared/daterange"
	"milahouse/internal/ui/dom"
	"milahouse/internal/ui/widget"
)

const heroSkeleton = `<form id="heroSearch">
	<input id="checkin" name="checkin">
	<button id="checkinBtn" type="button"></button>
	<input id="checkout" name="checkout">
	<button id="checkoutBtn" type="button"></button>
</form>`

func newBinder(engine availability.Engine, factory picker.Factory, logger *slog.Logger) picker.Binder {
	if factory == nil {
		factory = widget.Factory{Months: 2}
	}
	return picker.Binder{
		Factory: factory,
		Store:   booking.Store{Logger: logger},
		Engine:  engine,
		Logger:  logger,
	}
}

// heroForm runs the search form's picker over the hotel-wide payload and
// applies the submitted long-form dates the way a guest's picks would.
// Dates the picker refuses leave the fields empty.
func heroForm(binder picker.Binder, payload, checkin, checkout string) (dto.SearchForm, picker.SelectedRange, error) {
	doc, err := dom.ParseString(heroSkeleton)
	if err != nil {
		return dto.SearchForm{}, picker.SelectedRange{}, err
	}
	form := doc.ByID("heroSearch")
	in, out := doc.ByID("checkin"), doc.ByID("checkout")
	if form == nil || in == nil || out == nil {
		return dto.SearchForm{}, picker.SelectedRange{}, fmt.Errorf("pages: hero fields missing")
	}
	form.SetAttr(booking.AttrBookings, payload)

	codec := datecodec.LongCodec{Calendar: binder.Engine.Calendar}
	ctrl := binder.Bind(picker.Config{
		CheckIn:        in,
		CheckOut:       out,
		CheckInButton:  doc.ByID("checkinBtn"),
		CheckOutButton: doc.ByID("checkoutBtn"),
		Scope:          booking.AnyRoom,
		Source:         form,
		Codec:          codec,
	})
	defer ctrl.Destroy()

	ci, _ := codec.Parse(checkin)
	co, _ := codec.Parse(checkout)
	if !ci.IsZero() {
		ctrl.SetRange(ci, co)
	}
	sel := ctrl.Range()

	hero := dto.SearchForm{
		Bookings:            payload,
		CheckIn:             in.Value(),
		CheckOut:            out.Value(),
		CheckInPlaceholder:  in.Placeholder(),
		CheckOutPlaceholder: out.Placeholder(),
	}
	if sel.Complete() {
		hero.Nights = daterange.DateRange{CheckIn: sel.CheckIn, CheckOut: sel.CheckOut}.Nights()
	}
	return hero, sel, nil
}
