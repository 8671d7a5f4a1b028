package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"milahouse/internal/domain/rooms"
	"milahouse/internal/infra/ics"
)

const defaultTimezone = "Europe/Moscow"

var ErrNoRooms = errors.New("config: catalog lists no rooms")

type RoomConfig struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Capacity    int      `yaml:"capacity"`
	Price       float64  `yaml:"price"`
	Photos      []string `yaml:"photos"`
}

// AdminConfig holds the basic-auth credentials of the admin pages. The
// password is stored as a bcrypt hash.
type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// BlackoutConfig is a recurring closure. An empty RoomID closes the whole hotel.
type BlackoutConfig struct {
	RoomID  string `yaml:"room_id"`
	Start   string `yaml:"start"`
	Rule    string `yaml:"rule"`
	Nights  int    `yaml:"nights"`
	Comment string `yaml:"comment"`
}

// Catalog is the hotel description file.
type Catalog struct {
	Timezone  string           `yaml:"timezone"`
	Rooms     []RoomConfig     `yaml:"rooms"`
	Admin     AdminConfig      `yaml:"admin"`
	Blackouts []BlackoutConfig `yaml:"blackouts"`
}

// LoadCatalog reads and normalizes the YAML catalogue at path.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	c.Normalize()
	if len(c.Rooms) == 0 {
		return Catalog{}, ErrNoRooms
	}
	if _, err := c.Location(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Normalize fills in defaults and drops rooms without an id.
func (c *Catalog) Normalize() {
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	kept := c.Rooms[:0]
	for _, r := range c.Rooms {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			continue
		}
		if r.Capacity <= 0 {
			r.Capacity = rooms.DefaultCapacity
		}
		kept = append(kept, r)
	}
	c.Rooms = kept
	for i := range c.Blackouts {
		if c.Blackouts[i].Nights <= 0 {
			c.Blackouts[i].Nights = 1
		}
	}
}

func (c Catalog) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Catalog) RoomCatalog() rooms.Catalog {
	rs := make([]rooms.Room, 0, len(c.Rooms))
	for _, r := range c.Rooms {
		rs = append(rs, rooms.Room{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Capacity:    r.Capacity,
			Price:       r.Price,
			Photos:      append([]string(nil), r.Photos...),
		})
	}
	return rooms.NewCatalog(rs...)
}

func (c Catalog) BlackoutRules() []ics.Blackout {
	out := make([]ics.Blackout, 0, len(c.Blackouts))
	for _, b := range c.Blackouts {
		out = append(out, ics.Blackout{
			RoomID:  b.RoomID,
			Start:   b.Start,
			Rule:    b.Rule,
			Nights:  b.Nights,
			Comment: b.Comment,
		})
	}
	return out
}
