// Package registry holds issued passports in process memory.
package registry

import (
	"context"
	"fmt"
	"sync"

	"passport/internal/passport/models"
	id "passport/pkg/domain"
	"passport/pkg/platform/sentinel"
)

// ErrNotFound is returned when a passport is not present in the registry.
var ErrNotFound = sentinel.ErrNotFound

// InMemory is a thread-safe keyed store of passports.
//
// The backing map never leaves this type: callers go through the methods,
// which serialize writers against each other and against readers. Stored
// values are shared pointers, so a record returned by FindByID is the same
// instance later lookups see.
type InMemory struct {
	mu        sync.RWMutex
	passports map[id.PassportID]*models.Passport
}

func NewInMemory() *InMemory {
	return &InMemory{passports: make(map[id.PassportID]*models.Passport)}
}

var (
	defaultOnce  sync.Once
	defaultStore *InMemory
)

// Default returns the process-wide registry, creating it on first use.
// Concurrent first callers all receive the same instance.
func Default() *InMemory {
	defaultOnce.Do(func() {
		defaultStore = NewInMemory()
	})
	return defaultStore
}

// Save inserts or overwrites by ID. Field values are not validated, but a
// revoked record is refused with ErrInvalidState.
func (s *InMemory) Save(_ context.Context, passport *models.Passport) error {
	if passport == nil {
		return fmt.Errorf("save passport: %w", sentinel.ErrInvalidState)
	}
	if passport.IsRevoked() {
		return fmt.Errorf("save passport %s: revoked: %w", passport.ID(), sentinel.ErrInvalidState)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passports[passport.ID()] = passport
	return nil
}

func (s *InMemory) FindByID(_ context.Context, passportID id.PassportID) (*models.Passport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if passport, ok := s.passports[passportID]; ok {
		return passport, nil
	}
	return nil, fmt.Errorf("passport %s: %w", passportID, ErrNotFound)
}

// DeleteByID removes a passport and reports whether one existed. The removed
// record is marked revoked so holders of the pointer cannot keep stamping it.
func (s *InMemory) DeleteByID(_ context.Context, passportID id.PassportID) (bool, error) {
	s.mu.Lock()
	passport, ok := s.passports[passportID]
	if ok {
		delete(s.passports, passportID)
	}
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	passport.Revoke()
	return true, nil
}

// Clear removes every record. Records already handed out are left untouched.
func (s *InMemory) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passports = make(map[id.PassportID]*models.Passport)
	return nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.passports), nil
}
