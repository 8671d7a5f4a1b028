// Package widget is a server-side date-range picker. It keeps selection
// state, classifies days for rendering and paints inline calendars into the
// headless document.
package widget

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"milahouse/internal/app/picker"
	"milahouse/internal/domain/calendar"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/ui/dom"
)

var (
	ErrNoAnchor  = errors.New("widget: anchor element is required")
	ErrDestroyed = errors.New("widget: picker destroyed")
	ErrDisabled  = errors.New("widget: date is not selectable")
)

// DayState is how a day cell is drawn.
type DayState string

const (
	StateMuted     DayState = "muted"
	StateDisabled  DayState = "disabled"
	StateSelected  DayState = "selected"
	StateInRange   DayState = "in-range"
	StateAvailable DayState = "available"
)

var monthTitles = [...]string{"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь", "Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"}

// Weekdays are the column headers, Monday first.
var Weekdays = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// DayView is one rendered cell.
type DayView struct {
	Date  time.Time
	Day   int
	ISO   string
	State DayState
}

// MonthView is one rendered month.
type MonthView struct {
	Key   string
	Title string
	Cells []DayView
}

// Factory builds pickers. Months is how many months a paint shows.
type Factory struct {
	Months int
}

var _ picker.Factory = Factory{}

func (f Factory) New(anchor *dom.Element, opts picker.Options) (picker.Widget, error) {
	p, err := f.Open(anchor, opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open is New returning the concrete picker.
func (f Factory) Open(anchor *dom.Element, opts picker.Options) (*Picker, error) {
	if anchor == nil {
		return nil, ErrNoAnchor
	}
	months := f.Months
	if months <= 0 {
		months = 2
	}
	p := &Picker{anchor: anchor, opts: opts, months: months}
	p.view = firstOfMonth(opts.MinDate)
	if p.view.IsZero() {
		p.view = firstOfMonth(datecodec.Normalize(time.Now()))
	}
	if opts.Inline {
		p.visible = true
		p.paint()
	}
	return p, nil
}

// Picker is a single widget instance.
type Picker struct {
	anchor    *dom.Element
	opts      picker.Options
	months    int
	view      time.Time
	visible   bool
	destroyed bool
	selected  []time.Time
}

var _ picker.Widget = (*Picker)(nil)

func (p *Picker) Show() error {
	if p.destroyed {
		return ErrDestroyed
	}
	p.visible = true
	p.paint()
	return nil
}

func (p *Picker) Hide() error {
	if p.destroyed {
		return ErrDestroyed
	}
	if !p.opts.Inline {
		p.visible = false
	}
	return nil
}

func (p *Picker) Visible() bool { return p.visible && !p.destroyed }

// SelectDate replaces the selection. Disabled or out-of-bounds dates are
// rejected and leave the selection untouched.
func (p *Picker) SelectDate(dates []time.Time) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if len(dates) > 2 || (!p.opts.Range && len(dates) > 1) {
		return fmt.Errorf("widget: cannot select %d dates", len(dates))
	}
	next := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = datecodec.Normalize(d)
		if !p.Selectable(d) {
			return fmt.Errorf("%w: %s", ErrDisabled, datecodec.ISO(d))
		}
		next = append(next, d)
	}
	sort.Slice(next, func(i, j int) bool { return next[i].Before(next[j]) })
	p.commit(next)
	if len(next) > 0 {
		p.view = firstOfMonth(next[0])
	}
	return nil
}

func (p *Picker) Clear() error {
	if p.destroyed {
		return ErrDestroyed
	}
	p.commit(nil)
	return nil
}

func (p *Picker) Update(patch picker.Patch) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if patch.Disabled != nil {
		p.opts.Disabled = *patch.Disabled
	}
	if patch.MinDate != nil {
		p.opts.MinDate = *patch.MinDate
	}
	if patch.MaxDate != nil {
		p.opts.MaxDate = *patch.MaxDate
	}
	p.paint()
	return nil
}

func (p *Picker) Destroy() error {
	if p.destroyed {
		return nil
	}
	p.destroyed = true
	p.visible = false
	p.selected = nil
	if p.opts.Inline {
		p.target().Empty()
	}
	return nil
}

// Pick is a click on a day: it starts a new range or completes the
// pending one. Clicks on unselectable days are ignored.
func (p *Picker) Pick(d time.Time) bool {
	if p.destroyed {
		return false
	}
	d = datecodec.Normalize(d)
	if !p.Selectable(d) {
		return false
	}
	if !p.opts.Range || len(p.selected) != 1 {
		p.commit([]time.Time{d})
		return true
	}
	start := p.selected[0]
	if d.Before(start) {
		start, d = d, start
	}
	p.commit([]time.Time{start, d})
	return true
}

// Navigate moves the first painted month.
func (p *Picker) Navigate(year int, month time.Month) {
	p.view = time.Date(year, month, 1, 0, 0, 0, 0, p.location())
	p.paint()
}

// Selection returns a copy of the selected dates.
func (p *Picker) Selection() []time.Time {
	return append([]time.Time(nil), p.selected...)
}

// Selectable reports whether d is inside the bounds and not disabled.
func (p *Picker) Selectable(d time.Time) bool {
	d = datecodec.Normalize(d)
	if !p.opts.MinDate.IsZero() && d.Before(datecodec.Normalize(p.opts.MinDate)) {
		return false
	}
	if !p.opts.MaxDate.IsZero() && d.After(datecodec.Normalize(p.opts.MaxDate)) {
		return false
	}
	return !p.opts.Disabled.Contains(d)
}

// State classifies a day that belongs to the painted month.
func (p *Picker) State(d time.Time) DayState {
	d = datecodec.Normalize(d)
	for _, s := range p.selected {
		if datecodec.SameDay(s, d) {
			return StateSelected
		}
	}
	if len(p.selected) == 2 && d.After(p.selected[0]) && d.Before(p.selected[1]) {
		return StateInRange
	}
	if !p.Selectable(d) {
		return StateDisabled
	}
	return StateAvailable
}

// Months lays out the painted months starting at the current view.
func (p *Picker) Months() []MonthView {
	loc := p.location()
	views := make([]MonthView, 0, p.months)
	for i := 0; i < p.months; i++ {
		first := p.view.AddDate(0, i, 0)
		grid := calendar.Layout(first.Year(), first.Month(), loc)
		mv := MonthView{
			Key:   fmt.Sprintf("%04d-%02d", first.Year(), int(first.Month())),
			Title: fmt.Sprintf("%s %d", monthTitles[first.Month()-1], first.Year()),
			Cells: make([]DayView, 0, len(grid.Cells)),
		}
		for _, c := range grid.Cells {
			state := StateMuted
			if !c.Muted {
				state = p.State(c.Date)
			}
			mv.Cells = append(mv.Cells, DayView{Date: c.Date, Day: c.Day, ISO: datecodec.ISO(c.Date), State: state})
		}
		views = append(views, mv)
	}
	return views
}

func (p *Picker) commit(dates []time.Time) {
	p.selected = dates
	p.paint()
	if p.opts.OnSelect != nil {
		p.opts.OnSelect(p.Selection())
	}
}

func (p *Picker) target() *dom.Element {
	if p.opts.Container != nil {
		return p.opts.Container
	}
	return p.anchor
}

// paint redraws inline calendars into their container.
func (p *Picker) paint() {
	if !p.opts.Inline || !p.visible || p.destroyed {
		return
	}
	root := p.target()
	root.Empty()
	for _, mv := range p.Months() {
		month := dom.New("div").SetAttr("class", "calendar__month").SetAttr("data-month", mv.Key)
		month.SetText(mv.Title)
		for _, c := range mv.Cells {
			cell := dom.New("span").
				SetAttr("class", "calendar__day calendar__day--"+string(c.State)).
				SetAttr("data-date", c.ISO)
			cell.SetText(fmt.Sprint(c.Day))
			month.Append(cell)
		}
		root.Append(month)
	}
}

func (p *Picker) location() *time.Location {
	if !p.opts.MinDate.IsZero() {
		return p.opts.MinDate.Location()
	}
	return time.Local
}

func firstOfMonth(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
