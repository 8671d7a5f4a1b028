// Package file reads the booking export from the local filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"

	"milahouse/internal/app/policies"
	"milahouse/internal/domain/booking"
)

type SnapshotFeed struct {
	Path string
	// Optional lets a missing file read as no bookings.
	Optional bool
}

func (f SnapshotFeed) Fetch(ctx context.Context) ([]booking.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if f.Optional && errors.Is(err, os.ErrNotExist) {
			return []booking.Record{}, nil
		}
		return nil, fmt.Errorf("file: read snapshot: %w", err)
	}
	records, err := booking.Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("file: decode snapshot %s: %w", f.Path, err)
	}
	return records, nil
}

var _ policies.SnapshotFeed = SnapshotFeed{}
