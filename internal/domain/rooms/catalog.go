// Package rooms is the hotel's room catalogue.
package rooms

import "errors"

// DefaultCapacity caps every guest counter when a room sets none.
const DefaultCapacity = 15

var ErrUnknownRoom = errors.New("rooms: unknown room")

type Room struct {
	ID          string
	Title       string
	Description string
	Capacity    int
	Price       float64
	Photos      []string
}

// MaxGuests is the room's capacity or DefaultCapacity.
func (r Room) MaxGuests() int {
	if r.Capacity <= 0 {
		return DefaultCapacity
	}
	return r.Capacity
}

// Catalog keeps rooms in display order.
type Catalog struct {
	rooms []Room
	index map[string]int
}

func NewCatalog(rs ...Room) Catalog {
	c := Catalog{rooms: make([]Room, 0, len(rs)), index: make(map[string]int, len(rs))}
	for _, r := range rs {
		if r.ID == "" {
			continue
		}
		if _, dup := c.index[r.ID]; dup {
			continue
		}
		c.index[r.ID] = len(c.rooms)
		c.rooms = append(c.rooms, r)
	}
	return c
}

func (c Catalog) All() []Room {
	return append([]Room(nil), c.rooms...)
}

func (c Catalog) Lookup(id string) (Room, error) {
	i, ok := c.index[id]
	if !ok {
		return Room{}, ErrUnknownRoom
	}
	return c.rooms[i], nil
}

// Default is the first room, the one an admin lands on.
func (c Catalog) Default() (Room, bool) {
	if len(c.rooms) == 0 {
		return Room{}, false
	}
	return c.rooms[0], true
}

func (c Catalog) Len() int { return len(c.rooms) }
