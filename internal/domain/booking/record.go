package booking

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"milahouse/internal/domain/shared/daterange"
)

var ErrInvalidDates = errors.New("booking: record dates are missing or malformed")

// Record is one existing booking as embedded in page data. Only CheckIn,
// CheckOut and RoomID carry meaning for availability; the rest is display data.
type Record struct {
	ID          Scalar `json:"id,omitzero"`
	RoomID      Scalar `json:"roomId,omitzero"`
	CheckIn     string `json:"checkin"`
	CheckOut    string `json:"checkout"`
	Guest       Guest  `json:"guest,omitzero"`
	Name        string `json:"name,omitempty"`
	City        string `json:"city,omitempty"`
	Guests      Guests `json:"guests,omitzero"`
	GuestsCount Scalar `json:"guestsCount,omitzero"`
	Price       Scalar `json:"price,omitzero"`
	Total       Scalar `json:"total,omitzero"`
	TotalPrice  Scalar `json:"totalPrice,omitzero"`
	PriceTotal  Scalar `json:"priceTotal,omitzero"`
	Comment     string `json:"comment,omitempty"`
}

// HasRoom reports whether the record is tied to a specific room.
func (r Record) HasRoom() bool { return r.RoomID.Present() }

// RoomKey is the record's room id in string form, "" when room-agnostic.
func (r Record) RoomKey() string {
	if !r.HasRoom() {
		return ""
	}
	return r.RoomID.String()
}

// DisplayID is the record id, or its 1-based position when the id is missing.
func (r Record) DisplayID(index int) string {
	if r.ID.Present() {
		return r.ID.String()
	}
	return strconv.Itoa(index + 1)
}

// ResolvedTotal is the first non-zero of total, totalPrice, priceTotal and
// price, or 0.
func (r Record) ResolvedTotal() float64 {
	for _, v := range []Scalar{r.Total, r.TotalPrice, r.PriceTotal, r.Price} {
		if f := v.Float(); f != 0 {
			return f
		}
	}
	return 0
}

// Range parses the record's stay in loc.
func (r Record) Range(loc *time.Location) (daterange.DateRange, error) {
	if loc == nil {
		loc = time.Local
	}
	checkIn, err := time.ParseInLocation(time.DateOnly, r.CheckIn, loc)
	if err != nil {
		return daterange.DateRange{}, ErrInvalidDates
	}
	checkOut, err := time.ParseInLocation(time.DateOnly, r.CheckOut, loc)
	if err != nil {
		return daterange.DateRange{}, ErrInvalidDates
	}
	return daterange.New(checkIn, checkOut)
}

// UnmarshalJSON reads a record field by field. Display fields are opaque:
// a value of an unexpected type reads as absent instead of failing the
// record, so only the stay itself decides availability.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = Record{}
	for name, raw := range fields {
		switch name {
		case "id":
			decodeLoose(raw, &r.ID)
		case "roomId":
			decodeLoose(raw, &r.RoomID)
		case "checkin":
			decodeLoose(raw, &r.CheckIn)
		case "checkout":
			decodeLoose(raw, &r.CheckOut)
		case "guest":
			decodeLoose(raw, &r.Guest)
		case "name":
			decodeLoose(raw, &r.Name)
		case "city":
			decodeLoose(raw, &r.City)
		case "guests":
			decodeLoose(raw, &r.Guests)
		case "guestsCount":
			decodeLoose(raw, &r.GuestsCount)
		case "price":
			decodeLoose(raw, &r.Price)
		case "total":
			decodeLoose(raw, &r.Total)
		case "totalPrice":
			decodeLoose(raw, &r.TotalPrice)
		case "priceTotal":
			decodeLoose(raw, &r.PriceTotal)
		case "comment":
			decodeLoose(raw, &r.Comment)
		}
	}
	return nil
}

func decodeLoose[T any](raw json.RawMessage, dst *T) {
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// Covers reports whether the ISO date key falls inside [checkin, checkout).
// Keys compare lexically, so malformed records simply never match.
func (r Record) Covers(isoDate string) bool {
	if r.CheckIn == "" || r.CheckOut == "" {
		return false
	}
	return isoDate >= r.CheckIn && isoDate < r.CheckOut
}

// Guest is either a plain name or an object with a name field.
type Guest struct {
	Name   string
	object bool
}

func (g Guest) IsZero() bool { return g.Name == "" && !g.object }

func (g *Guest) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*g = Guest{Name: obj.Name, object: true}
		return nil
	}
	var s Scalar
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	*g = Guest{Name: s.String()}
	return nil
}

func (g Guest) MarshalJSON() ([]byte, error) {
	if g.object {
		return json.Marshal(struct {
			Name string `json:"name"`
		}{g.Name})
	}
	return json.Marshal(g.Name)
}

// Guests is either a head count or an adults/children breakdown.
type Guests struct {
	Count     Scalar
	Adults    int
	Children  int
	breakdown bool
}

// GuestBreakdown builds the adults/children form.
func GuestBreakdown(adults, children int) Guests {
	return Guests{Adults: adults, Children: children, breakdown: true}
}

func (g Guests) IsZero() bool { return g.Count.IsZero() && !g.breakdown }

// Breakdown reports whether the adults/children form was used.
func (g Guests) Breakdown() bool { return g.breakdown && g.Adults > 0 }

func (g *Guests) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Adults   int `json:"adults"`
			Children int `json:"children"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*g = Guests{Adults: obj.Adults, Children: obj.Children, breakdown: true}
		return nil
	}
	var s Scalar
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	*g = Guests{Count: s}
	return nil
}

func (g Guests) MarshalJSON() ([]byte, error) {
	if g.breakdown {
		return json.Marshal(struct {
			Adults   int `json:"adults"`
			Children int `json:"children"`
		}{g.Adults, g.Children})
	}
	return g.Count.MarshalJSON()
}
