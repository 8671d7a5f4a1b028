package admin

import "milahouse/internal/domain/booking"

// Board is everything the admin page shows for one room tab.
type Board struct {
	RoomID      string `json:"roomId"`
	Grid        Grid   `json:"grid"`
	Ledger      Ledger `json:"ledger"`
	StaticIndex int    `json:"staticIndex"`
}

// Board decodes the tab's embedded records and derives grid and ledger from
// scratch.
func (r Renderer) Board(src booking.Source, roomID string) Board {
	records := r.Store.RecordsFor(src, booking.AnyRoom())
	return r.BoardFor(records, roomID)
}

// BoardFor derives the board from already decoded records.
func (r Renderer) BoardFor(records []booking.Record, roomID string) Board {
	return Board{
		RoomID:      roomID,
		Grid:        r.Grid(records, roomID),
		Ledger:      r.Ledger(records, roomID),
		StaticIndex: StaticIndex(roomID),
	}
}
