// Package lru is a size-bounded map-like store for mapstore, backed by
// hashicorp/golang-lru's expirable LRU.
package lru

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	pr "github.com/unkn0wn-root/mapkv/provider"
	"github.com/unkn0wn-root/mapkv/provider/mapstore"
)

type Config struct {
	Size int           // max entries; <= 0 => unbounded
	TTL  time.Duration // store-wide ceiling on entry age; 0 => none
}

// Store evicts the least recently used records once Size is reached.
// Per-record TTLs are enforced by the mapstore Adapter, not here.
type Store struct {
	c *expirable.LRU[string, pr.Record]
}

var _ mapstore.Store = (*Store)(nil)

func New(cfg Config) *Store {
	return &Store{c: expirable.NewLRU[string, pr.Record](cfg.Size, nil, cfg.TTL)}
}

func (s *Store) Get(key string) (pr.Record, bool, error) {
	rec, ok := s.c.Get(key)
	return rec, ok, nil
}

func (s *Store) Set(key string, rec pr.Record, _ time.Duration) error {
	s.c.Add(key, rec)
	return nil
}

func (s *Store) Delete(key string) (bool, error) { return s.c.Remove(key), nil }

func (s *Store) Clear() error {
	s.c.Purge()
	return nil
}

func (s *Store) Has(key string) (bool, error) { return s.c.Contains(key), nil }

// Len reports the number of records currently held.
func (s *Store) Len() int { return s.c.Len() }
