// Package session holds per-browser-session state: the authenticated user,
// the one-shot pending redirect, and small display preferences. Business
// logic never reads ambient storage directly; everything goes through the
// Store interface and the Bridge on top of it.
package session

import "sync"

// Store is string key/value state scoped to a session ID. Implementations
// must be safe for concurrent use.
type Store interface {
	// Get returns the value for key in the given session, and whether it
	// was present.
	Get(sid, key string) (string, bool)
	// Set stores value under key for the given session.
	Set(sid, key, value string)
	// Delete removes key from the given session.
	Delete(sid, key string)
	// Clear removes every key held for the given session.
	Clear(sid string)
}

// MemoryStore is an in-process Store. State lives for the life of the
// process, matching session-scoped browser storage.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(sid, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.sessions[sid][key]
	return v, ok
}

func (s *MemoryStore) Set(sid, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sid] == nil {
		s.sessions[sid] = make(map[string]string)
	}
	s.sessions[sid][key] = value
}

func (s *MemoryStore) Delete(sid, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions[sid], key)
}

func (s *MemoryStore) Clear(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
}
