package adminboard

import (
	"context"
	"errors"

	"milahouse/internal/app/admin"
	"milahouse/internal/app/policies"
	"milahouse/internal/app/queries"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/rooms"
)

const (
	getBoardKey         = "admin.board"
	listRoomBookingsKey = "admin.room_bookings"
)

var ErrNoRooms = errors.New("adminboard: catalogue has no rooms")

// GetBoardQuery builds the admin board for a room tab. An empty RoomID
// selects the first room.
type GetBoardQuery struct {
	RoomID string
}

func (GetBoardQuery) Key() string { return getBoardKey }

func (GetBoardQuery) AdminOnly() {}

type GetBoardHandler struct {
	Snapshots policies.BookingSnapshots
	Renderer  admin.Renderer
	Rooms     rooms.Catalog
}

func (h *GetBoardHandler) Handle(ctx context.Context, q GetBoardQuery) (admin.Board, error) {
	room, err := resolveRoom(h.Rooms, q.RoomID)
	if err != nil {
		return admin.Board{}, err
	}
	records, err := h.Snapshots.Records(ctx)
	if err != nil {
		return admin.Board{}, err
	}
	return h.Renderer.BoardFor(records, room.ID), nil
}

// ListRoomBookingsQuery returns the bookings that belong to one room,
// matched strictly on roomId.
type ListRoomBookingsQuery struct {
	RoomID string
}

func (ListRoomBookingsQuery) Key() string { return listRoomBookingsKey }

func (ListRoomBookingsQuery) AdminOnly() {}

type ListRoomBookingsHandler struct {
	Snapshots policies.BookingSnapshots
	Rooms     rooms.Catalog
}

func (h *ListRoomBookingsHandler) Handle(ctx context.Context, q ListRoomBookingsQuery) ([]booking.Record, error) {
	room, err := resolveRoom(h.Rooms, q.RoomID)
	if err != nil {
		return nil, err
	}
	records, err := h.Snapshots.Records(ctx)
	if err != nil {
		return nil, err
	}
	return booking.Filter(records, booking.Room(room.ID)), nil
}

func resolveRoom(catalog rooms.Catalog, id string) (rooms.Room, error) {
	if id == "" {
		room, ok := catalog.Default()
		if !ok {
			return rooms.Room{}, ErrNoRooms
		}
		return room, nil
	}
	return catalog.Lookup(id)
}

var (
	_ queries.Handler[GetBoardQuery, admin.Board]              = (*GetBoardHandler)(nil)
	_ queries.Handler[ListRoomBookingsQuery, []booking.Record] = (*ListRoomBookingsHandler)(nil)
)
