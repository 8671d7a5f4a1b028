package booking

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
)

// Attribute names carrying serialized booking records, in lookup order.
const (
	AttrBookings     = "data-bookings"
	AttrRoomBookings = "data-room-bookings"
)

// Source is anything carrying string attributes, typically a page element.
type Source interface {
	Attr(name string) (string, bool)
}

// Attrs is a Source backed by a plain map.
type Attrs map[string]string

func (a Attrs) Attr(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Scope selects the room a lookup is about. The zero Scope is room-agnostic.
type Scope struct {
	id  string
	set bool
}

// AnyRoom is the room-agnostic scope.
func AnyRoom() Scope { return Scope{} }

// Room scopes a lookup to one room id.
func Room(id string) Scope { return Scope{id: id, set: true} }

// RoomID returns the scoped id and whether a room is scoped at all.
func (s Scope) RoomID() (string, bool) { return s.id, s.set }

func (s Scope) String() string {
	if !s.set {
		return "*"
	}
	return s.id
}

// Store reads booking records embedded in page data. It never mutates them.
type Store struct {
	Logger *slog.Logger
}

// RecordsFor decodes the records attached to src. With a room scope only
// records whose roomId equals the scoped id are kept; records without a
// roomId are dropped. Undecodable data yields no records.
func (s Store) RecordsFor(src Source, scope Scope) []Record {
	payload := payloadOf(src)
	if payload == "" {
		return []Record{}
	}
	records, err := Decode(payload)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("booking data ignored", "error", err, "scope", scope.String())
		}
		return []Record{}
	}
	return Filter(records, scope)
}

// Filter keeps the records that strictly belong to the scoped room.
func Filter(records []Record, scope Scope) []Record {
	id, ok := scope.RoomID()
	if !ok {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.HasRoom() && rec.RoomKey() == id {
			out = append(out, rec)
		}
	}
	return out
}

// CardRecords is what a room card embeds: the room's own records plus the
// hotel-wide ones, stamped with the room id so strict room filtering keeps
// them.
func CardRecords(records []Record, roomID string) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		switch {
		case !rec.HasRoom():
			rec.RoomID = Text(roomID)
			out = append(out, rec)
		case rec.RoomKey() == roomID:
			out = append(out, rec)
		}
	}
	return out
}

// Decode parses a serialized record array. A payload that is not a JSON
// array yields no records at all. Elements that are not objects carry no
// stay and are skipped; odd display values never fail a record.
func Decode(payload string) ([]Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Encode serializes records into the attribute payload format.
func Encode(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func payloadOf(src Source) string {
	if src == nil {
		return ""
	}
	for _, name := range []string{AttrBookings, AttrRoomBookings} {
		if v, ok := src.Attr(name); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
