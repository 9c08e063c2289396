// Package ristretto is a map-like store for mapstore backed by
// dgraph-io/ristretto. Records are held by identity.
package ristretto

import (
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/mapkv/provider"
	"github.com/unkn0wn-root/mapkv/provider/mapstore"
)

// ErrRejected is returned by Set when ristretto's admission policy drops the write.
var ErrRejected = errors.New("ristretto: set rejected")

type Store struct {
	c    *rc.Cache
	cost func(key string, rec pr.Record) int64
}

var _ mapstore.Store = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	// Cost computes the admission cost of a record; nil => 1.
	Cost func(key string, rec pr.Record) int64
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,

		// costs are whatever Config.Cost says, nothing added for bookkeeping
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	cost := cfg.Cost
	if cost == nil {
		cost = func(string, pr.Record) int64 { return 1 }
	}
	return &Store{c: c, cost: cost}, nil
}

func (s *Store) Get(key string) (pr.Record, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return pr.Record{}, false, nil
	}
	rec, ok := v.(pr.Record)
	if !ok {
		// drop unexpected entry shape
		s.c.Del(key)
		return pr.Record{}, false, nil
	}
	return rec, true, nil
}

// Set writes through ristretto's buffers before returning so the record is
// visible to the next Get.
func (s *Store) Set(key string, rec pr.Record, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if !s.c.SetWithTTL(key, rec, s.cost(key, rec), ttl) {
		return ErrRejected
	}
	s.c.Wait()
	return nil
}

func (s *Store) Delete(key string) (bool, error) {
	_, ok := s.c.Get(key)
	s.c.Del(key)
	return ok, nil
}

func (s *Store) Clear() error {
	s.c.Clear()
	return nil
}

func (s *Store) Has(key string) (bool, error) {
	_, ok := s.c.Get(key)
	return ok, nil
}

func (s *Store) Close() error {
	s.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when Config.Metrics is set.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
