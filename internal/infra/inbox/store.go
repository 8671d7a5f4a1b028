package inbox

import (
	"context"
	"sync"
)

const defaultCapacity = 4096

// Store remembers the ids of recently consumed events so redelivered ones
// are skipped. Only the newest Capacity ids are kept.
type Store struct {
	mu       sync.Mutex
	capacity int
	order    []string
	seen     map[string]struct{}
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Store{capacity: capacity, seen: make(map[string]struct{}, capacity)}
}

// Seen records eventID and reports whether it had been recorded before.
// Empty ids are never considered seen.
func (s *Store) Seen(_ context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[eventID]; ok {
		return true, nil
	}
	if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.seen, oldest)
	}
	s.order = append(s.order, eventID)
	s.seen[eventID] = struct{}{}
	return false, nil
}
