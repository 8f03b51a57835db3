// Package session holds who is signed in on a client. A Store is an owned
// object handed to whatever needs the current user; nothing here is global.
package session

import (
	"sync"

	"github.com/geocoder89/restaurantos/internal/domain/user"
)

type Session struct {
	User  user.User
	Token string
}

// Store is one client's session slot. None of its operations fail; the
// caller is responsible for verifying the user before Login.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

func NewStore() *Store {
	return &Store{}
}

// Login replaces whatever session was active. The token is kept as given.
func (s *Store) Login(u user.User, token string) {
	s.mu.Lock()
	s.current = &Session{User: u.Public(), Token: token}
	s.mu.Unlock()
}

// Logout clears the session; calling it while signed out is a no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns the signed-in user, or false when there is no session.
func (s *Store) Current() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return user.User{}, false
	}
	return s.current.User, true
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}
