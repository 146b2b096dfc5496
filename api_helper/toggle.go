package api_helper

import (
	"fmt"
	"sync"
)

// ToggleStore tracks which tokens are enabled for batch recommendation
// sweeps. Tokens start disabled and are flipped through the API.
type ToggleStore struct {
	mu      sync.RWMutex
	toggles map[string]bool
}

func NewToggleStore(tokens []string) *ToggleStore {
	m := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		m[t] = false
	}
	return &ToggleStore{toggles: m}
}

// Toggle flips a token and returns its new state.
func (s *ToggleStore) Toggle(token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.toggles[token]; !ok {
		return false, fmt.Errorf("unknown token: %s", token)
	}
	s.toggles[token] = !s.toggles[token]
	return s.toggles[token], nil
}

func (s *ToggleStore) Get(token string) (enabled, known bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.toggles[token]
	return v, ok
}

// Snapshot copies the current state so callers cannot mutate the store.
func (s *ToggleStore) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[string]bool, len(s.toggles))
	for k, v := range s.toggles {
		cp[k] = v
	}
	return cp
}
