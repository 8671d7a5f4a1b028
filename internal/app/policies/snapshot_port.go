package policies

import (
	"context"
	"errors"

	"milahouse/internal/domain/booking"
)

var ErrSnapshotUnavailable = errors.New("policies: booking snapshot unavailable")

// BookingSnapshots serves the latest booking data exported by the
// reservations backend.
type BookingSnapshots interface {
	Records(ctx context.Context) ([]booking.Record, error)
}

// SnapshotFeed fetches a fresh export from wherever the backend publishes it.
type SnapshotFeed interface {
	Fetch(ctx context.Context) ([]booking.Record, error)
}
