// Package dom is a minimal headless document model: elements with
// attributes, a text value and event listeners. Page fragments rendered by
// the service are parsed back into it so controllers can run server-side and
// under test exactly as they would against a browser document.
package dom

import (
	"sort"
	"strings"
	"sync"
)

// Event is delivered to listeners registered with On.
type Event struct {
	Type   string
	Target *Element
}

type listener struct {
	id int
	fn func(Event)
}

// Element is a single node. The zero value is not usable; create elements
// with New.
type Element struct {
	tag      string
	attrs    map[string]string
	value    string
	text     string
	children []*Element
	parent   *Element

	mu        sync.Mutex
	listeners map[string][]listener
	nextID    int
}

func New(tag string) *Element {
	return &Element{tag: strings.ToLower(tag), attrs: make(map[string]string), listeners: make(map[string][]listener)}
}

func (e *Element) Tag() string { return e.tag }

// ID returns the id attribute.
func (e *Element) ID() string { return e.attrs["id"] }

// Attr satisfies booking.Source.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttr(name, value string) *Element {
	e.attrs[name] = value
	return e
}

func (e *Element) RemoveAttr(name string) { delete(e.attrs, name) }

// Attrs returns attribute names in sorted order.
func (e *Element) Attrs() []string {
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.attrs["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

// Value is the current field value. Setting it never dispatches events.
func (e *Element) Value() string { return e.value }

func (e *Element) SetValue(v string) { e.value = v }

// Placeholder is a shorthand for the placeholder attribute.
func (e *Element) Placeholder() string { return e.attrs["placeholder"] }

func (e *Element) Text() string { return e.text }

func (e *Element) SetText(s string) { e.text = s }

func (e *Element) Parent() *Element { return e.parent }

func (e *Element) Children() []*Element { return e.children }

func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// Empty drops every child.
func (e *Element) Empty() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.text = ""
}

// On registers fn for events of type typ and returns a function that removes
// it again.
func (e *Element) On(typ string, fn func(Event)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	id := e.nextID
	e.listeners[typ] = append(e.listeners[typ], listener{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		ls := e.listeners[typ]
		for i, l := range ls {
			if l.id == id {
				e.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Listeners reports how many listeners are registered for typ.
func (e *Element) Listeners(typ string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[typ])
}

// Dispatch calls the listeners registered for typ in registration order.
// Listeners added while dispatching run from the next dispatch on.
func (e *Element) Dispatch(typ string) {
	e.mu.Lock()
	ls := append([]listener(nil), e.listeners[typ]...)
	e.mu.Unlock()
	ev := Event{Type: typ, Target: e}
	for _, l := range ls {
		l.fn(ev)
	}
}

// Walk visits e and its descendants depth first until fn returns false.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first descendant (or e itself) matching pred.
func (e *Element) Find(pred func(*Element) bool) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if pred(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant (and e itself) matching pred.
func (e *Element) FindAll(pred func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(el *Element) bool {
		if pred(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// WithClass matches elements carrying class.
func WithClass(class string) func(*Element) bool {
	return func(el *Element) bool { return el.HasClass(class) }
}

// WithAttr matches elements carrying the attribute name.
func WithAttr(name string) func(*Element) bool {
	return func(el *Element) bool {
		_, ok := el.attrs[name]
		return ok
	}
}
