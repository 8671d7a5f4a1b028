package memory

import (
	"context"
	"sync"
	"time"

	"milahouse/internal/app/policies"
	"milahouse/internal/domain/booking"
)

// SnapshotStore holds the latest booking export. Refreshes swap the whole
// slice; readers always get their own copy.
type SnapshotStore struct {
	mu        sync.RWMutex
	records   []booking.Record
	loaded    bool
	updatedAt time.Time
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Records fails with policies.ErrSnapshotUnavailable until the first Replace.
func (s *SnapshotStore) Records(ctx context.Context) ([]booking.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, policies.ErrSnapshotUnavailable
	}
	return append([]booking.Record(nil), s.records...), nil
}

func (s *SnapshotStore) Replace(records []booking.Record, at time.Time) {
	cp := append([]booking.Record(nil), records...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cp
	s.loaded = true
	s.updatedAt = at
}

func (s *SnapshotStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

func (s *SnapshotStore) Ready(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return policies.ErrSnapshotUnavailable
	}
	return nil
}

var _ policies.BookingSnapshots = (*SnapshotStore)(nil)
