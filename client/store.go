package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultAlertTTL is how long an alert stays up before it expires on its own.
const DefaultAlertTTL = 5 * time.Second

// Store owns the state and is the only place dispatch happens. Dispatches
// are serialized under a mutex, so reduction order is dispatch order:
// whichever response dispatches last wins its slice.
type Store struct {
	mu       sync.Mutex
	state    State
	nextSub  int
	subs     map[int]func(State)
	alertTTL time.Duration
}

// NewStore creates a store holding the initial state.
func NewStore() *Store {
	return &Store{
		state:    InitialState(),
		subs:     map[int]func(State){},
		alertTTL: DefaultAlertTTL,
	}
}

// NewStoreWithAlertTTL overrides the alert expiry delay (used by tests).
func NewStoreWithAlertTTL(ttl time.Duration) *Store {
	s := NewStore()
	s.alertTTL = ttl
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces an outcome into the state and notifies subscribers with
// the new snapshot.
func (s *Store) Dispatch(o Outcome) {
	s.mu.Lock()
	s.state = Reduce(s.state, o)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers a listener called after every dispatch. The returned
// function removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// RaiseAlert dispatches a new alert and schedules its expiry. Returns the
// alert id so callers can dismiss it early via DismissAlert.
func (s *Store) RaiseAlert(message, kind string) string {
	id := uuid.NewString()
	s.Dispatch(Outcome{Kind: OutcomeAlertRaised, Alert: &Alert{ID: id, Message: message, Kind: kind}})

	time.AfterFunc(s.alertTTL, func() {
		s.Dispatch(Outcome{Kind: OutcomeAlertExpired, AlertID: id})
	})

	return id
}

// DismissAlert removes an alert before its scheduled expiry. Expiring an
// already-dismissed alert is a no-op reduction.
func (s *Store) DismissAlert(id string) {
	s.Dispatch(Outcome{Kind: OutcomeAlertExpired, AlertID: id})
}
