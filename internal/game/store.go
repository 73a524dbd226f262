package game

import (
	"sync"

	"github.com/iburimskiy/blob-field/internal/blob"
)

// paramStore holds the live slider values. Update is the only writer;
// Draw and the snapshot goroutine read copies so a frame never sees a
// half-applied edit.
type paramStore struct {
	params   blob.Params
	defaults blob.Params
	mu       sync.RWMutex
}

func newParamStore(initial blob.Params) *paramStore {
	return &paramStore{
		params:   initial,
		defaults: initial,
	}
}

// snapshot returns the current parameters by value.
func (s *paramStore) snapshot() blob.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// update applies fn to the stored parameters under the write lock.
func (s *paramStore) update(fn func(p *blob.Params)) {
	s.mu.Lock()
	fn(&s.params)
	s.mu.Unlock()
}

// reset restores the values the store was created with.
func (s *paramStore) reset() {
	s.mu.Lock()
	s.params = s.defaults
	s.mu.Unlock()
}
