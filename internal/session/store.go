// internal/session/store.go

// Package session keeps the open booking dialog of each visitor in memory.
// Nothing here outlives the process; idle dialogs are swept.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inteligenciarte/luxurystudio/internal/booking"
)

const (
	CookieName = "booking_session"
	DefaultTTL = 30 * time.Minute
)

var ErrInvalidID = errors.New("invalid session id")

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Config struct {
	TTL   time.Duration
	Clock Clock
	// NewController builds the controller for a new visitor.
	NewController func() *booking.Controller
}

type entry struct {
	controller *booking.Controller
	lastSeen   time.Time
}

// Store maps session ids to booking controllers. Every access to a
// controller happens under the store lock.
type Store struct {
	ttl           time.Duration
	clock         Clock
	newController func() *booking.Controller

	mu      sync.Mutex
	entries map[string]*entry
}

func NewStore(cfg Config) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	newController := cfg.NewController
	if newController == nil {
		newController = func() *booking.Controller { return booking.NewController(nil, "") }
	}
	return &Store{
		ttl:           ttl,
		clock:         clock,
		newController: newController,
		entries:       make(map[string]*entry),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an id issued by NewID.
func ValidID(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// With runs fn with the controller for id, creating one if needed.
func (s *Store) With(id string, fn func(*booking.Controller)) error {
	if !ValidID(id) {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	e, ok := s.entries[id]
	if !ok || now.Sub(e.lastSeen) > s.ttl {
		e = &entry{controller: s.newController()}
		s.entries[id] = e
	}
	e.lastSeen = now
	fn(e.controller)
	return nil
}

// WithExisting runs fn with the controller for id only when the session is
// known and not expired. It never creates an entry.
func (s *Store) WithExisting(id string, fn func(*booking.Controller)) (bool, error) {
	if !ValidID(id) {
		return false, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	e, ok := s.entries[id]
	if !ok {
		return false, nil
	}
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, id)
		return false, nil
	}
	e.lastSeen = now
	fn(e.controller)
	return true, nil
}

// Peek returns the dialog state for id without creating or touching the
// session. Unknown and expired sessions report ok false.
func (s *Store) Peek(id string) (state booking.State, request booking.Request, ok bool) {
	if !ValidID(id) {
		return booking.StateClosed, booking.Request{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[id]
	if !found || s.clock.Now().Sub(e.lastSeen) > s.ttl {
		return booking.StateClosed, booking.Request{}, false
	}
	return e.controller.State(), e.controller.Request(), true
}

// TTL is how long an idle session survives.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Discard drops the session's dialog.
func (s *Store) Discard(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
