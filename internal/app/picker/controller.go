// Package picker binds pairs of check-in/check-out fields to a date-range
// widget, feeding it the dates that cannot be booked.
package picker

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/ui/dom"
)

// SelectedRange is the selection a controller owns. CheckOut is zero for a
// partial selection; both are zero when nothing is selected.
type SelectedRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (r SelectedRange) Complete() bool {
	return !r.CheckIn.IsZero() && !r.CheckOut.IsZero()
}

func (r SelectedRange) Empty() bool {
	return r.CheckIn.IsZero() && r.CheckOut.IsZero()
}

// Config describes one picker instance on a page.
type Config struct {
	CheckIn        *dom.Element
	CheckOut       *dom.Element
	CheckInButton  *dom.Element
	CheckOutButton *dom.Element
	// Scope is evaluated once when the controller is bound. Nil means any room.
	Scope func() booking.Scope
	// Source carries the embedded booking data. Nil means no bookings.
	Source    booking.Source
	Container *dom.Element
	// Codec defaults to the long form.
	Codec      datecodec.Codec
	OnComplete func(SelectedRange)
	Inline     bool
}

// Binder holds what every controller shares. A nil Factory turns every
// picker into plain read-only fields.
type Binder struct {
	Factory Factory
	Store   booking.Store
	Engine  availability.Engine
	Logger  *slog.Logger
}

// Controller drives a widget from a pair of fields. A nil *Controller is
// valid and does nothing.
type Controller struct {
	cfg      Config
	codec    datecodec.Codec
	widget   Widget
	engine   availability.Engine
	store    booking.Store
	logger   *slog.Logger
	selected SelectedRange
	unbind   []func()
}

// Bind sets up the fields described by cfg. It returns nil when the fields
// are missing from the page or the widget is unavailable; the fields are
// still made read-only in the latter case.
func (b Binder) Bind(cfg Config) *Controller {
	if cfg.CheckIn == nil || cfg.CheckOut == nil {
		return nil
	}
	codec := cfg.Codec
	if codec == nil {
		codec = datecodec.LongCodec{Calendar: b.Engine.Calendar}
	}

	today := b.Engine.Calendar.Today()
	cfg.CheckIn.SetAttr("placeholder", codec.Format(today))
	cfg.CheckOut.SetAttr("placeholder", codec.Format(today.AddDate(0, 0, 1)))
	for _, field := range []*dom.Element{cfg.CheckIn, cfg.CheckOut} {
		field.SetAttr("readonly", "readonly")
		field.SetAttr("inputmode", "none")
	}

	if b.Factory == nil {
		return nil
	}

	c := &Controller{
		cfg:    cfg,
		codec:  codec,
		engine: b.Engine,
		store:  b.Store,
		logger: b.Logger,
	}

	scope := booking.AnyRoom()
	if cfg.Scope != nil {
		scope = cfg.Scope()
	}
	disabled := c.disabled(cfg.Source, scope)

	anchor := cfg.CheckIn
	if cfg.Inline && cfg.Container != nil {
		anchor = cfg.Container
	}
	opts := Options{
		Range:     true,
		Inline:    cfg.Inline,
		Format:    codec.Layout(),
		MinDate:   today,
		MaxDate:   b.Engine.Calendar.Horizon(),
		Disabled:  disabled,
		Container: cfg.Container,
		FirstDay:  time.Monday,
		OnSelect:  c.handleSelect,
	}

	widget, err := Construct(b.Factory, anchor, opts)
	if err != nil {
		c.log().Warn("date picker unavailable", "field", cfg.CheckIn.ID(), "error", err)
		return nil
	}
	c.widget = widget

	if !cfg.Inline {
		c.listen(cfg.CheckInButton, "click", c.toggle)
		c.listen(cfg.CheckOutButton, "click", c.toggle)
		for _, field := range []*dom.Element{cfg.CheckIn, cfg.CheckOut} {
			c.listen(field, "click", c.Show)
			c.listen(field, "focus", c.Show)
		}
	}
	return c
}

// Construct calls f, turning a panic or a missing widget into an error.
func Construct(f Factory, anchor *dom.Element, opts Options) (w Widget, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("picker: construct: %v", r)
		}
	}()
	w, err = f.New(anchor, opts)
	if err == nil && w == nil {
		err = fmt.Errorf("picker: factory returned no widget")
	}
	return w, err
}

func (c *Controller) disabled(src booking.Source, scope booking.Scope) availability.DateSet {
	records := c.store.RecordsFor(src, scope)
	return c.engine.DisabledDates(records, scope)
}

func (c *Controller) listen(el *dom.Element, typ string, fn func()) {
	if el == nil {
		return
	}
	c.unbind = append(c.unbind, el.On(typ, func(dom.Event) { fn() }))
}

func (c *Controller) handleSelect(dates []time.Time) {
	switch len(dates) {
	case 2:
		c.selected = SelectedRange{CheckIn: datecodec.Normalize(dates[0]), CheckOut: datecodec.Normalize(dates[1])}
		c.cfg.CheckIn.SetValue(c.codec.Format(dates[0]))
		c.cfg.CheckOut.SetValue(c.codec.Format(dates[1]))
		if c.cfg.OnComplete != nil {
			c.cfg.OnComplete(c.selected)
		}
	case 1:
		c.selected = SelectedRange{CheckIn: datecodec.Normalize(dates[0])}
		c.cfg.CheckIn.SetValue(c.codec.Format(dates[0]))
		c.cfg.CheckOut.SetValue("")
	default:
		c.selected = SelectedRange{}
		c.cfg.CheckIn.SetValue("")
		c.cfg.CheckOut.SetValue("")
	}
}

// Select feeds a selection to the controller as if the widget reported it.
func (c *Controller) Select(dates []time.Time) {
	if c == nil {
		return
	}
	c.handleSelect(dates)
}

// SetRange drives the widget's selection: both dates, check-in only, or
// nothing when checkin is zero.
func (c *Controller) SetRange(checkin, checkout time.Time) {
	if c == nil {
		return
	}
	switch {
	case !checkin.IsZero() && !checkout.IsZero():
		c.guard("select", func() error { return c.widget.SelectDate([]time.Time{checkin, checkout}) })
	case !checkin.IsZero():
		c.guard("select", func() error { return c.widget.SelectDate([]time.Time{checkin}) })
	default:
		c.guard("clear", c.widget.Clear)
	}
}

// Reconfigure recomputes disabled dates for a new room and pushes them to
// the widget.
func (c *Controller) Reconfigure(src booking.Source, scope booking.Scope) {
	if c == nil {
		return
	}
	disabled := c.disabled(src, scope)
	c.guard("update", func() error { return c.widget.Update(Patch{Disabled: &disabled}) })
}

// Range returns the current selection.
func (c *Controller) Range() SelectedRange {
	if c == nil {
		return SelectedRange{}
	}
	return c.selected
}

// Fields returns the bound check-in and check-out fields.
func (c *Controller) Fields() (checkin, checkout *dom.Element) {
	if c == nil {
		return nil, nil
	}
	return c.cfg.CheckIn, c.cfg.CheckOut
}

func (c *Controller) Show() {
	if c == nil {
		return
	}
	c.guard("show", c.widget.Show)
}

func (c *Controller) Hide() {
	if c == nil || !c.visible() {
		return
	}
	c.guard("hide", c.widget.Hide)
}

func (c *Controller) toggle() {
	if c.visible() {
		c.Hide()
		return
	}
	c.Show()
}

func (c *Controller) visible() (v bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log().Warn("date picker call panicked", "op", "visible", "panic", r)
			v = false
		}
	}()
	return c.widget.Visible()
}

// Destroy removes the listeners and tears the widget down.
func (c *Controller) Destroy() {
	if c == nil {
		return
	}
	for _, off := range c.unbind {
		off()
	}
	c.unbind = nil
	c.guard("destroy", c.widget.Destroy)
}

func (c *Controller) guard(op string, fn func() error) {
	Guard(c.log(), op, fn)
}

// Guard runs a widget call, logging and swallowing errors and panics.
func Guard(logger *slog.Logger, op string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("date picker call panicked", "op", op, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		logger.Warn("date picker call failed", "op", op, "error", err)
	}
}

func (c *Controller) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}
