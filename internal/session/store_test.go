package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inteligenciarte/luxurystudio/internal/booking"
	"github.com/inteligenciarte/luxurystudio/internal/catalog"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(clock Clock) *Store {
	return NewStore(Config{
		TTL:   10 * time.Minute,
		Clock: clock,
		NewController: func() *booking.Controller {
			return booking.NewController(catalog.Default(), "42999722042")
		},
	})
}

func TestWithKeepsControllerPerSession(t *testing.T) {
	store := newTestStore(&fakeClock{now: time.Unix(1700000000, 0)})
	id := NewID()

	if err := store.With(id, func(c *booking.Controller) {
		c.Open()
		c.Dispatch(booking.SetName("Maria"))
	}); err != nil {
		t.Fatalf("with: %v", err)
	}

	var name string
	if err := store.With(id, func(c *booking.Controller) {
		name = c.Request().Name
	}); err != nil {
		t.Fatalf("with: %v", err)
	}
	if name != "Maria" {
		t.Fatalf("expected stored name, got %q", name)
	}

	other := NewID()
	_ = store.With(other, func(c *booking.Controller) {
		if c.State() != booking.StateClosed {
			t.Fatalf("expected new session to start closed")
		}
	})
	if store.Len() != 2 {
		t.Fatalf("expected two sessions, got %d", store.Len())
	}
}

func TestWithRejectsInvalidID(t *testing.T) {
	store := newTestStore(nil)
	for _, id := range []string{"", "   ", "not-a-uuid"} {
		err := store.With(id, func(*booking.Controller) {
			t.Fatalf("callback must not run for %q", id)
		})
		if !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %q, got %v", id, err)
		}
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := newTestStore(clock)

	idle := NewID()
	active := NewID()
	_ = store.With(idle, func(c *booking.Controller) { c.Open() })
	clock.Advance(6 * time.Minute)
	_ = store.With(active, func(c *booking.Controller) { c.Open() })
	clock.Advance(6 * time.Minute)

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected one session swept, got %d", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one session left, got %d", store.Len())
	}
}

func TestExpiredSessionStartsFresh(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := newTestStore(clock)
	id := NewID()

	_ = store.With(id, func(c *booking.Controller) {
		c.Open()
		c.Dispatch(booking.SetName("Maria"))
	})
	clock.Advance(11 * time.Minute)

	_ = store.With(id, func(c *booking.Controller) {
		if c.State() != booking.StateClosed || c.Request().Name != "" {
			t.Fatalf("expected expired dialog to be discarded")
		}
	})
}

func TestDiscard(t *testing.T) {
	store := newTestStore(nil)
	id := NewID()
	_ = store.With(id, func(c *booking.Controller) { c.Open() })

	store.Discard(id)
	if store.Len() != 0 {
		t.Fatalf("expected session discarded")
	}
}

func TestPeekDoesNotCreate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	store := newTestStore(clock)
	id := NewID()

	if _, _, ok := store.Peek(id); ok {
		t.Fatalf("unknown session reported as present")
	}
	if store.Len() != 0 {
		t.Fatalf("peek created a session")
	}

	if err := store.With(id, func(c *booking.Controller) {
		c.Open()
		c.Dispatch(booking.SetName("Ana"))
	}); err != nil {
		t.Fatalf("with: %v", err)
	}

	state, request, ok := store.Peek(id)
	if !ok || state != booking.StateEditing || request.Name != "Ana" {
		t.Fatalf("unexpected peek: %v %+v %t", state, request, ok)
	}

	clock.Advance(11 * time.Minute)
	if _, _, ok := store.Peek(id); ok {
		t.Fatalf("expired session reported as present")
	}
}

func TestWithExistingDoesNotCreate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	store := newTestStore(clock)
	id := NewID()

	found, err := store.WithExisting(id, func(*booking.Controller) {
		t.Fatalf("callback must not run for an unknown session")
	})
	if err != nil || found {
		t.Fatalf("unexpected result for unknown session: %t %v", found, err)
	}
	if store.Len() != 0 {
		t.Fatalf("lookup created a session")
	}

	_ = store.With(id, func(c *booking.Controller) { c.Open() })
	clock.Advance(8 * time.Minute)

	found, err = store.WithExisting(id, func(c *booking.Controller) {
		c.Dispatch(booking.SetName("Ana"))
	})
	if err != nil || !found {
		t.Fatalf("expected known session: %t %v", found, err)
	}

	// The lookup above slid the idle window.
	clock.Advance(8 * time.Minute)
	if _, request, ok := store.Peek(id); !ok || request.Name != "Ana" {
		t.Fatalf("expected session kept alive, got %+v %t", request, ok)
	}

	clock.Advance(11 * time.Minute)
	found, _ = store.WithExisting(id, func(*booking.Controller) {
		t.Fatalf("callback must not run for an expired session")
	})
	if found || store.Len() != 0 {
		t.Fatalf("expected expired session dropped, found=%t len=%d", found, store.Len())
	}
}

func TestWithExistingRejectsInvalidID(t *testing.T) {
	store := newTestStore(nil)
	if _, err := store.WithExisting("not-a-uuid", func(*booking.Controller) {}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
