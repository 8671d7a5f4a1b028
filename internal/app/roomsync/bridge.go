// Package roomsync keeps a room-detail modal's text fields and its inline
// calendar in step.
package roomsync

import (
	"io"
	"log/slog"
	"time"

	"milahouse/internal/app/picker"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/ui/dom"
)

// Bridge links one modal's check-in/check-out fields with the inline widget
// rendered into container. Calendar selections are written into the fields
// and field edits are applied back onto the calendar.
type Bridge struct {
	binder    picker.Binder
	checkIn   *dom.Element
	checkOut  *dom.Element
	container *dom.Element
	codec     datecodec.ShortCodec
	widget    picker.Widget
	unbind    []func()
}

// New returns nil when any anchor is missing or no widget is available.
func New(b picker.Binder, checkIn, checkOut, container *dom.Element) *Bridge {
	if checkIn == nil || checkOut == nil || container == nil || b.Factory == nil {
		return nil
	}
	br := &Bridge{
		binder:    b,
		checkIn:   checkIn,
		checkOut:  checkOut,
		container: container,
		codec:     datecodec.ShortCodec{Calendar: b.Engine.Calendar},
	}
	for _, field := range []*dom.Element{checkIn, checkOut} {
		for _, typ := range []string{"change", "blur"} {
			br.unbind = append(br.unbind, field.On(typ, func(dom.Event) { br.Sync() }))
		}
	}
	return br
}

// Open rebuilds the inline widget for the room whose card is src. The
// previous widget is destroyed first so its disabled dates never carry over.
func (br *Bridge) Open(src booking.Source, scope booking.Scope) {
	if br == nil {
		return
	}
	br.destroyWidget()
	br.container.Empty()

	records := br.binder.Store.RecordsFor(src, scope)
	cal := br.binder.Engine.Calendar
	opts := picker.Options{
		Range:     true,
		Inline:    true,
		Format:    br.codec.Layout(),
		MinDate:   cal.Today(),
		MaxDate:   cal.Horizon(),
		Disabled:  br.binder.Engine.DisabledDates(records, scope),
		Container: br.container,
		FirstDay:  time.Monday,
		OnSelect:  br.writeFields,
	}
	w, err := picker.Construct(br.binder.Factory, br.container, opts)
	if err != nil {
		br.log().Warn("room calendar unavailable", "room", scope.String(), "error", err)
		return
	}
	br.widget = w
	picker.Guard(br.log(), "show", w.Show)
}

// Widget returns the current inline widget, nil before Open.
func (br *Bridge) Widget() picker.Widget {
	if br == nil {
		return nil
	}
	return br.widget
}

func (br *Bridge) writeFields(dates []time.Time) {
	switch len(dates) {
	case 2:
		br.checkIn.SetValue(br.codec.Format(dates[0]))
		br.checkOut.SetValue(br.codec.Format(dates[1]))
	case 1:
		br.checkIn.SetValue(br.codec.Format(dates[0]))
		br.checkOut.SetValue("")
	default:
		br.checkIn.SetValue("")
		br.checkOut.SetValue("")
	}
}

// Sync parses both fields and applies the result to the calendar.
func (br *Bridge) Sync() {
	if br == nil || br.widget == nil {
		return
	}
	checkin, okIn := br.codec.Parse(br.checkIn.Value())
	checkout, okOut := br.codec.Parse(br.checkOut.Value())
	w := br.widget
	switch {
	case okIn && okOut:
		picker.Guard(br.log(), "select", func() error { return w.SelectDate([]time.Time{checkin, checkout}) })
	case okIn:
		picker.Guard(br.log(), "select", func() error { return w.SelectDate([]time.Time{checkin}) })
	default:
		picker.Guard(br.log(), "clear", w.Clear)
	}
}

// SyncRange is the completion hook for the modal's own picker.
func (br *Bridge) SyncRange(picker.SelectedRange) { br.Sync() }

// Close destroys the widget and drops the field listeners.
func (br *Bridge) Close() {
	if br == nil {
		return
	}
	br.destroyWidget()
	for _, off := range br.unbind {
		off()
	}
	br.unbind = nil
}

func (br *Bridge) destroyWidget() {
	if br.widget == nil {
		return
	}
	picker.Guard(br.log(), "destroy", br.widget.Destroy)
	br.widget = nil
}

func (br *Bridge) log() *slog.Logger {
	if br.binder.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return br.binder.Logger
}
