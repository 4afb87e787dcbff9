package location

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store implementation, selected by
// configuration when no Redis instance is available.
type MemoryStore struct {
	mu        sync.RWMutex
	positions map[int64]Position
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{positions: make(map[int64]Position)}
}

func (s *MemoryStore) Set(_ context.Context, riderID int64, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[riderID] = pos
	return nil
}

func (s *MemoryStore) Get(_ context.Context, riderID int64) (Position, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.positions[riderID]
	return pos, ok, nil
}

func (s *MemoryStore) Remove(_ context.Context, riderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, riderID)
	return nil
}

func (s *MemoryStore) SweepStale(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, pos := range s.positions {
		if pos.Timestamp.Before(cutoff) {
			delete(s.positions, id)
			removed++
		}
	}
	return removed, nil
}
