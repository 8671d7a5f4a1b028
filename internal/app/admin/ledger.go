package admin

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/shared/daterange"
)

// EmptyLedger is shown instead of rows when a room has no bookings.
const EmptyLedger = "Нет броней"

const dash = "—"

var ruPrinter = message.NewPrinter(language.Russian)

// FormatMoney groups thousands the way ru-RU does, with a no-break space.
func FormatMoney(v float64) string {
	return ruPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

type Row struct {
	ID        string  `json:"id"`
	Guest     string  `json:"guest"`
	City      string  `json:"city"`
	CheckIn   string  `json:"checkin"`
	CheckOut  string  `json:"checkout"`
	Nights    int     `json:"nights"`
	Guests    string  `json:"guests"`
	Total     float64 `json:"total"`
	TotalText string  `json:"totalText"`
	Comment   string  `json:"comment"`
}

type Ledger struct {
	Rows      []Row   `json:"rows"`
	Total     float64 `json:"total"`
	TotalText string  `json:"totalText"`
}

func (l Ledger) Empty() bool { return len(l.Rows) == 0 }

// Ledger lists the records whose own roomId equals roomID. Room-less
// records are never listed, whatever the tab.
func (r Renderer) Ledger(records []booking.Record, roomID string) Ledger {
	codec := datecodec.ShortCodec{Calendar: r.Calendar}
	l := Ledger{Rows: []Row{}}
	index := 0
	for _, rec := range records {
		if !rec.HasRoom() || rec.RoomKey() != roomID {
			continue
		}
		row := r.row(rec, index, codec)
		index++
		l.Total += row.Total
		l.Rows = append(l.Rows, row)
	}
	l.TotalText = FormatMoney(l.Total)
	return l
}

func (r Renderer) row(rec booking.Record, index int, codec datecodec.ShortCodec) Row {
	checkIn, okIn := r.Calendar.ParseISO(rec.CheckIn)
	checkOut, okOut := r.Calendar.ParseISO(rec.CheckOut)
	row := Row{
		ID:       rec.DisplayID(index),
		Guest:    orDash(guestName(rec)),
		City:     orDash(rec.City),
		CheckIn:  dash,
		CheckOut: dash,
		Guests:   orDash(guestCount(rec)),
		Total:    rec.ResolvedTotal(),
		Comment:  orDash(rec.Comment),
	}
	if okIn {
		row.CheckIn = codec.Format(checkIn)
	}
	if okOut {
		row.CheckOut = codec.Format(checkOut)
	}
	if okIn && okOut {
		row.Nights = daterange.DateRange{CheckIn: checkIn, CheckOut: checkOut}.Nights()
	}
	row.TotalText = FormatMoney(row.Total)
	return row
}

func guestName(rec booking.Record) string {
	if rec.Guest.Name != "" {
		return rec.Guest.Name
	}
	return rec.Name
}

func guestCount(rec booking.Record) string {
	switch {
	case rec.Guests.Breakdown():
		return strconv.Itoa(rec.Guests.Adults + rec.Guests.Children)
	case rec.Guests.Count.Present():
		return rec.Guests.Count.String()
	case rec.GuestsCount.Present():
		return rec.GuestsCount.String()
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}

// LedgerView is a rendered ledger the admin can prune while reviewing it.
// Deleting a row only changes this view; the next render restores it.
type LedgerView struct {
	Rows      []Row
	TotalText string
}

func NewLedgerView(l Ledger) *LedgerView {
	return &LedgerView{Rows: append([]Row(nil), l.Rows...), TotalText: l.TotalText}
}

// Delete drops the first row with id. The total is left as rendered until
// the last row goes, when it resets to zero.
func (v *LedgerView) Delete(id string) bool {
	for i, row := range v.Rows {
		if row.ID != id {
			continue
		}
		v.Rows = append(v.Rows[:i:i], v.Rows[i+1:]...)
		if len(v.Rows) == 0 {
			v.TotalText = "0"
		}
		return true
	}
	return false
}

func (v *LedgerView) Empty() bool { return len(v.Rows) == 0 }

// StayNights counts the nights between two short-form dates, 0 when either
// is invalid or checkout is not after checkin.
func StayNights(cal datecodec.Calendar, checkin, checkout string) int {
	codec := datecodec.ShortCodec{Calendar: cal}
	in, okIn := codec.Parse(checkin)
	out, okOut := codec.Parse(checkout)
	if !okIn || !okOut || !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Round(24*time.Hour) / (24 * time.Hour))
}

// StaticIndex is the calendar shown for roomID on pages that pre-render one
// calendar per room: max(0, roomID-1), the first one when roomID is empty,
// none (-1) when it is not a number.
func StaticIndex(roomID string) int {
	if roomID == "" {
		return 0
	}
	n, err := strconv.ParseFloat(roomID, 64)
	if err != nil {
		return -1
	}
	return max(0, int(n)-1)
}
