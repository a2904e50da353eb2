package state

import "sync"

// Store owns the single authoritative copy of the server-provided progress
// state. Replace swaps the whole snapshot; there is deliberately no partial
// update API. When overlapping refreshes resolve, the last one to complete
// wins.
type Store struct {
	mu    sync.RWMutex
	state ProgressState
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs a new authoritative snapshot, discarding the old one.
func (s *Store) Replace(p ProgressState) {
	cp := clone(p)
	s.mu.Lock()
	s.state = cp
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current state. Callers may mutate the
// result freely without affecting the store.
func (s *Store) Snapshot() ProgressState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.state)
}

func clone(p ProgressState) ProgressState {
	cp := p
	if p.Badges != nil {
		cp.Badges = make([]string, len(p.Badges))
		copy(cp.Badges, p.Badges)
	}
	if p.Tasks != nil {
		cp.Tasks = make([]Task, len(p.Tasks))
		copy(cp.Tasks, p.Tasks)
	}
	return cp
}
