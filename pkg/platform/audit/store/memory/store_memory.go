package memory

import (
	"context"
	"sync"

	id "passport/pkg/domain"
	audit "passport/pkg/platform/audit"
)

// InMemoryStore keeps audit events per passport in insertion order.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.PassportID][]audit.Event
	total  int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.PassportID][]audit.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.PassportID] = append(s.events[event.PassportID], event)
	s.total++
	return nil
}

func (s *InMemoryStore) ListByPassport(_ context.Context, passportID id.PassportID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[passportID]...), nil
}

// Len returns the number of events recorded across all passports.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}
