package session

import (
	"net/http"
	"sync"
)

// MemStore is an in-memory Store for tests. It models a single browsing
// context, so it holds at most one session and ignores the cookie plumbing.
type MemStore struct {
	mu      sync.Mutex
	current Session
	ok      bool
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Set(_ http.ResponseWriter, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
	m.ok = true
	return nil
}

func (m *MemStore) Get(_ *http.Request) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return Session{}, false
	}
	return m.current, true
}

func (m *MemStore) Clear(_ http.ResponseWriter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	m.ok = false
}
