package picker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/ui/dom"
)

type fakeWidget struct {
	opts      Options
	anchor    *dom.Element
	visible   bool
	selected  []time.Time
	patches   []Patch
	destroyed bool
	failWith  error
	panicOn   string
}

func (w *fakeWidget) fail(op string) error {
	if w.panicOn == op {
		panic("widget exploded")
	}
	return w.failWith
}

func (w *fakeWidget) Show() error {
	if err := w.fail("show"); err != nil {
		return err
	}
	w.visible = true
	return nil
}

func (w *fakeWidget) Hide() error {
	if err := w.fail("hide"); err != nil {
		return err
	}
	w.visible = false
	return nil
}

func (w *fakeWidget) Visible() bool { return w.visible }

func (w *fakeWidget) SelectDate(dates []time.Time) error {
	if err := w.fail("select"); err != nil {
		return err
	}
	w.selected = dates
	w.opts.OnSelect(dates)
	return nil
}

func (w *fakeWidget) Clear() error {
	if err := w.fail("clear"); err != nil {
		return err
	}
	w.selected = nil
	w.opts.OnSelect(nil)
	return nil
}

func (w *fakeWidget) Update(p Patch) error {
	if err := w.fail("update"); err != nil {
		return err
	}
	w.patches = append(w.patches, p)
	return nil
}

func (w *fakeWidget) Destroy() error {
	w.destroyed = true
	return w.fail("destroy")
}

func fakeFactory(w *fakeWidget) Factory {
	return FactoryFunc(func(anchor *dom.Element, opts Options) (Widget, error) {
		w.anchor = anchor
		w.opts = opts
		return w, nil
	})
}

var msk = time.FixedZone("MSK", 3*60*60)

func testBinder(f Factory) Binder {
	cal := datecodec.NewCalendar(datecodec.FixedClock(time.Date(2025, 5, 20, 10, 0, 0, 0, msk)), msk)
	return Binder{Factory: f, Engine: availability.NewEngine(cal)}
}

func fields() (*dom.Element, *dom.Element) {
	return dom.New("input").SetAttr("id", "checkin-input"), dom.New("input").SetAttr("id", "checkout-input")
}

func TestBindMissingFieldsIsInert(t *testing.T) {
	w := &fakeWidget{}
	in, _ := fields()
	c := testBinder(fakeFactory(w)).Bind(Config{CheckIn: in})
	assert.Nil(t, c)
	assert.Nil(t, w.opts.OnSelect)
	assert.Zero(t, in.Listeners("click"))

	// nil controllers are safe to call
	c.Show()
	c.SetRange(time.Now(), time.Time{})
	c.Reconfigure(nil, booking.AnyRoom())
	c.Destroy()
	assert.True(t, c.Range().Empty())
}

func TestBindPreparesFields(t *testing.T) {
	in, out := fields()
	c := testBinder(fakeFactory(&fakeWidget{})).Bind(Config{CheckIn: in, CheckOut: out})
	require.NotNil(t, c)

	assert.Equal(t, "20 мая 2025", in.Placeholder())
	assert.Equal(t, "21 мая 2025", out.Placeholder())
	for _, f := range []*dom.Element{in, out} {
		v, _ := f.Attr("readonly")
		assert.Equal(t, "readonly", v)
		v, _ = f.Attr("inputmode")
		assert.Equal(t, "none", v)
	}
}

func TestBindWithoutFactoryKeepsFieldsReadOnly(t *testing.T) {
	in, out := fields()
	c := testBinder(nil).Bind(Config{CheckIn: in, CheckOut: out, Codec: datecodec.ShortCodec{}})
	assert.Nil(t, c)
	_, ok := in.Attr("readonly")
	assert.True(t, ok)
	assert.Equal(t, "20.05.2025", in.Placeholder())
	assert.Zero(t, in.Listeners("click"))
}

func TestBindSurvivesFactoryFailure(t *testing.T) {
	in, out := fields()
	failing := FactoryFunc(func(*dom.Element, Options) (Widget, error) { return nil, errors.New("boom") })
	assert.Nil(t, testBinder(failing).Bind(Config{CheckIn: in, CheckOut: out}))

	panicking := FactoryFunc(func(*dom.Element, Options) (Widget, error) { panic("no widget library") })
	assert.Nil(t, testBinder(panicking).Bind(Config{CheckIn: in, CheckOut: out}))
}

func TestDisabledDatesSuppliedAtConstruction(t *testing.T) {
	in, out := fields()
	src := booking.Attrs{booking.AttrRoomBookings: `[
		{"roomId":"1","checkin":"2025-06-01","checkout":"2025-06-04"},
		{"roomId":"2","checkin":"2025-06-10","checkout":"2025-06-12"}
	]`}
	w := &fakeWidget{}
	c := testBinder(fakeFactory(w)).Bind(Config{
		CheckIn: in, CheckOut: out, Source: src,
		Scope: func() booking.Scope { return booking.Room("1") },
	})
	require.NotNil(t, c)

	d := func(day int) time.Time { return time.Date(2025, 6, day, 0, 0, 0, 0, msk) }
	assert.True(t, w.opts.Disabled.Contains(d(1)))
	assert.True(t, w.opts.Disabled.Contains(d(3)))
	assert.False(t, w.opts.Disabled.Contains(d(4)))
	assert.False(t, w.opts.Disabled.Contains(d(10)))
	assert.True(t, w.opts.Range)
	assert.Equal(t, "d MMMM yyyy", w.opts.Format)
	assert.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, msk), w.opts.MinDate)
	assert.Equal(t, time.Date(2026, 5, 20, 0, 0, 0, 0, msk), w.opts.MaxDate)
	assert.Equal(t, in, w.anchor)
}

func TestSelectionShapes(t *testing.T) {
	in, out := fields()
	var completed []SelectedRange
	c := testBinder(fakeFactory(&fakeWidget{})).Bind(Config{
		CheckIn: in, CheckOut: out, Codec: datecodec.ShortCodec{},
		OnComplete: func(r SelectedRange) { completed = append(completed, r) },
	})
	require.NotNil(t, c)
	a := time.Date(2025, 6, 5, 0, 0, 0, 0, msk)
	b := time.Date(2025, 6, 7, 0, 0, 0, 0, msk)

	c.Select([]time.Time{a, b})
	assert.Equal(t, "05.06.2025", in.Value())
	assert.Equal(t, "07.06.2025", out.Value())
	assert.True(t, c.Range().Complete())
	assert.Len(t, completed, 1)

	c.Select([]time.Time{a})
	assert.Equal(t, "05.06.2025", in.Value())
	assert.Empty(t, out.Value())
	assert.False(t, c.Range().Complete())
	assert.Len(t, completed, 1)

	c.Select([]time.Time{a, b})
	c.Select(nil)
	assert.Empty(t, in.Value())
	assert.Empty(t, out.Value())
	assert.True(t, c.Range().Empty())

	c.Select([]time.Time{a, b, b})
	assert.Empty(t, in.Value())
	assert.Empty(t, out.Value())
}

func TestSetRangeDrivesWidget(t *testing.T) {
	in, out := fields()
	w := &fakeWidget{}
	c := testBinder(fakeFactory(w)).Bind(Config{CheckIn: in, CheckOut: out})
	require.NotNil(t, c)
	a := time.Date(2025, 6, 5, 0, 0, 0, 0, msk)
	b := time.Date(2025, 6, 7, 0, 0, 0, 0, msk)

	c.SetRange(a, b)
	assert.Equal(t, []time.Time{a, b}, w.selected)
	assert.Equal(t, "5 июня 2025", in.Value())
	assert.Equal(t, "7 июня 2025", out.Value())

	c.SetRange(a, time.Time{})
	assert.Equal(t, []time.Time{a}, w.selected)
	assert.Empty(t, out.Value())

	c.SetRange(time.Time{}, time.Time{})
	assert.Nil(t, w.selected)
	assert.Empty(t, in.Value())
}

func TestButtonsToggleAndFieldsOpen(t *testing.T) {
	in, out := fields()
	inBtn, outBtn := dom.New("button"), dom.New("button")
	w := &fakeWidget{}
	c := testBinder(fakeFactory(w)).Bind(Config{CheckIn: in, CheckOut: out, CheckInButton: inBtn, CheckOutButton: outBtn})
	require.NotNil(t, c)

	inBtn.Dispatch("click")
	assert.True(t, w.visible)
	outBtn.Dispatch("click")
	assert.False(t, w.visible)
	out.Dispatch("focus")
	assert.True(t, w.visible)
	in.Dispatch("click")
	assert.True(t, w.visible)

	c.Destroy()
	assert.True(t, w.destroyed)
	assert.Zero(t, inBtn.Listeners("click"))
	assert.Zero(t, in.Listeners("focus"))
}

func TestWidgetFailuresAreSwallowed(t *testing.T) {
	in, out := fields()
	w := &fakeWidget{}
	c := testBinder(fakeFactory(w)).Bind(Config{CheckIn: in, CheckOut: out})
	require.NotNil(t, c)

	w.failWith = errors.New("detached")
	assert.NotPanics(t, func() {
		c.Show()
		c.SetRange(time.Date(2025, 6, 5, 0, 0, 0, 0, msk), time.Time{})
	})

	w.failWith = nil
	for _, op := range []string{"show", "hide", "select", "clear", "update", "destroy"} {
		w.panicOn = op
		w.visible = true
		assert.NotPanics(t, func() {
			c.Show()
			c.Hide()
			c.SetRange(time.Date(2025, 6, 5, 0, 0, 0, 0, msk), time.Time{})
			c.SetRange(time.Time{}, time.Time{})
			c.Reconfigure(nil, booking.AnyRoom())
			c.Destroy()
		}, op)
	}
}

func TestReconfigurePushesNewDisabledDates(t *testing.T) {
	in, out := fields()
	w := &fakeWidget{}
	c := testBinder(fakeFactory(w)).Bind(Config{CheckIn: in, CheckOut: out})
	require.NotNil(t, c)
	assert.False(t, w.opts.Disabled.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, msk)))

	c.Reconfigure(booking.Attrs{booking.AttrBookings: `[{"roomId":3,"checkin":"2025-07-01","checkout":"2025-07-02"}]`}, booking.Room("3"))
	require.Len(t, w.patches, 1)
	require.NotNil(t, w.patches[0].Disabled)
	assert.True(t, w.patches[0].Disabled.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, msk)))
}
