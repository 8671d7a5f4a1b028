package picker

import (
	"time"

	"milahouse/internal/domain/availability"
	"milahouse/internal/ui/dom"
)

// Options configure a date-range widget at construction. Disabled must be
// final by then: the widget paints with it before any selection is possible.
type Options struct {
	Range     bool
	Inline    bool
	Format    string
	MinDate   time.Time
	MaxDate   time.Time
	Disabled  availability.DateSet
	Container *dom.Element
	// FirstDay is the first column of the month grid.
	FirstDay time.Weekday
	// OnSelect receives the current selection: zero, one or two dates.
	OnSelect func(dates []time.Time)
}

// Patch is a partial options update. Nil fields are left unchanged.
type Patch struct {
	Disabled *availability.DateSet
	MinDate  *time.Time
	MaxDate  *time.Time
}

// Widget is the date-range picker capability the controllers drive.
// SelectDate and Clear report the new selection through Options.OnSelect.
type Widget interface {
	Show() error
	Hide() error
	Visible() bool
	SelectDate(dates []time.Time) error
	Clear() error
	Update(p Patch) error
	Destroy() error
}

// Factory constructs widgets anchored at an element.
type Factory interface {
	New(anchor *dom.Element, opts Options) (Widget, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(anchor *dom.Element, opts Options) (Widget, error)

func (f FactoryFunc) New(anchor *dom.Element, opts Options) (Widget, error) {
	return f(anchor, opts)
}
