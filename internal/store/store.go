// Package store holds the auth state shared by every page of the client:
// the in-flight loading flag and the logged-in user.
package store

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// User is the session user as returned by the user API.
type User struct {
	ID           string `json:"_id" mapstructure:"_id"`
	FullName     string `json:"fullname" mapstructure:"fullname"`
	Email        string `json:"email" mapstructure:"email"`
	PhoneNumber  string `json:"phoneNumber" mapstructure:"phoneNumber"`
	Role         string `json:"role" mapstructure:"role"`
	ProfilePhoto string `json:"profilePhoto,omitempty" mapstructure:"profilePhoto"`
}

// AuthState is a snapshot of the auth slice.
type AuthState struct {
	Loading bool
	User    *User
}

// Listener is called with a snapshot after every change.
type Listener func(AuthState)

// Persister keeps the session user across page loads.
type Persister interface {
	Load() (*User, error)
	Save(*User) error
	Clear() error
}

// Option configures a Store.
type Option func(*Store)

// WithPersister makes the store save and restore the session user.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// Store is the process-wide auth state. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     AuthState
	listeners map[int]Listener
	nextID    int
	persister Persister
	log       *logrus.Entry
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		listeners: make(map[int]Listener),
		log:       logrus.WithField("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads a persisted session, if any.
func (s *Store) Restore() error {
	if s.persister == nil {
		return nil
	}
	u, err := s.persister.Load()
	if err != nil {
		return errors.Wrap(err, "restoring session")
	}
	if u == nil {
		return nil
	}
	s.update(func(st *AuthState) { st.User = u })
	return nil
}

// State returns a snapshot of the current state.
func (s *Store) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

// Loading reports whether a request is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Loading
}

// HasSession reports whether a user is logged in.
func (s *Store) HasSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User != nil
}

// User returns a copy of the session user, or nil.
func (s *Store) User() *User {
	return s.State().User
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.update(func(st *AuthState) { st.Loading = loading })
}

// SetUser stores the session user and persists it when a persister is set.
// A nil user is the same as Logout.
func (s *Store) SetUser(u *User) {
	if u == nil {
		s.Logout()
		return
	}
	c := *u
	s.update(func(st *AuthState) { st.User = &c })
	if s.persister != nil {
		if err := s.persister.Save(&c); err != nil {
			s.log.WithError(err).Warn("failed to persist session")
		}
	}
}

// Logout clears the session user.
func (s *Store) Logout() {
	s.update(func(st *AuthState) { st.User = nil })
	if s.persister != nil {
		if err := s.persister.Clear(); err != nil {
			s.log.WithError(err).Warn("failed to clear persisted session")
		}
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// update applies fn under the lock and notifies listeners outside of it.
func (s *Store) update(fn func(*AuthState)) {
	s.mu.Lock()
	fn(&s.state)
	st := snapshot(s.state)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(st)
	}
}

func snapshot(st AuthState) AuthState {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
