package mapstore

import (
	"sync"
	"time"

	pr "github.com/unkn0wn-root/mapkv/provider"
)

// Store is the map-like capability the Adapter is written against.
// Any container keyed by string can satisfy it. Errors returned here are
// passed to the Adapter's callers unmodified.
type Store interface {
	Get(key string) (pr.Record, bool, error)
	// Set replaces the record at key. ttl is a hint for stores with native
	// expiry; the Adapter enforces expiry itself through rec.ExpiresAt.
	Set(key string, rec pr.Record, ttl time.Duration) error
	// Delete reports whether key was present.
	Delete(key string) (bool, error)
	Clear() error
	Has(key string) (bool, error)
}

// Map is a plain Go map guarded by a mutex. The zero value is ready to use.
type Map struct {
	mu sync.RWMutex
	m  map[string]pr.Record
}

var _ Store = (*Map)(nil)

func NewMap() *Map { return &Map{m: make(map[string]pr.Record)} }

func (s *Map) Get(key string) (pr.Record, bool, error) {
	s.mu.RLock()
	rec, ok := s.m[key]
	s.mu.RUnlock()
	return rec, ok, nil
}

func (s *Map) Set(key string, rec pr.Record, _ time.Duration) error {
	s.mu.Lock()
	if s.m == nil {
		s.m = make(map[string]pr.Record)
	}
	s.m[key] = rec
	s.mu.Unlock()
	return nil
}

func (s *Map) Delete(key string) (bool, error) {
	s.mu.Lock()
	_, ok := s.m[key]
	delete(s.m, key)
	s.mu.Unlock()
	return ok, nil
}

func (s *Map) Clear() error {
	s.mu.Lock()
	clear(s.m)
	s.mu.Unlock()
	return nil
}

func (s *Map) Has(key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.m[key]
	s.mu.RUnlock()
	return ok, nil
}

// Len returns the number of records held, live or not.
func (s *Map) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
