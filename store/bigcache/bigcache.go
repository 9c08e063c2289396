// Package bigcache is a map-like store for mapstore backed by
// allegro/bigcache. BigCache only holds bytes, so record values must be
// []byte (pair it with a codec on the façade, or V = []byte in passthrough).
package bigcache

import (
	"errors"
	"fmt"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/mapkv/internal/wire"
	pr "github.com/unkn0wn-root/mapkv/provider"
	"github.com/unkn0wn-root/mapkv/provider/mapstore"
)

// ErrNotBytes is returned by Set for values that are not []byte.
var ErrNotBytes = errors.New("bigcache: value must be []byte")

type Store struct {
	c *bc.BigCache
}

var _ mapstore.Store = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration // store-wide ceiling on entry age
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
	Shards             int // power of two; 0 = bigcache default
}

func New(cfg Config) (*Store, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	conf.Verbose = false
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(key string) (pr.Record, bool, error) {
	b, err := s.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return pr.Record{}, false, nil
	}
	if err != nil {
		return pr.Record{}, false, err
	}
	exp, payload, err := wire.DecodeRecord(b)
	if err != nil {
		// self-heal: drop entries not written by this store
		_ = s.c.Delete(key)
		return pr.Record{}, false, nil
	}
	return pr.Record{Value: payload, ExpiresAt: exp}, true, nil
}

// Set frames rec with its expiry. BigCache has no per-entry TTL; ttl is ignored.
func (s *Store) Set(key string, rec pr.Record, _ time.Duration) error {
	b, ok := rec.Value.([]byte)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrNotBytes, rec.Value)
	}
	return s.c.Set(key, wire.EncodeRecord(rec.ExpiresAt, b))
}

func (s *Store) Delete(key string) (bool, error) {
	err := s.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) Clear() error { return s.c.Reset() }

func (s *Store) Has(key string) (bool, error) {
	_, err := s.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) Len() int { return s.c.Len() }

func (s *Store) Close() error { return s.c.Close() }
