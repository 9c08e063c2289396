// Package redis is a provider.Provider backed by Redis. Values must be
// []byte or string, so pair it with a codec on the façade. Expiry uses
// Redis TTLs; records read back never carry ExpiresAt.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/mapkv/internal/keyspace"
	pr "github.com/unkn0wn-root/mapkv/provider"
)

var (
	ErrNilClient = errors.New("redis provider: nil client")
	// ErrUnsupportedValue is returned by Set for values other than []byte or string.
	ErrUnsupportedValue = errors.New("redis provider: value must be []byte or string")
)

type Provider struct {
	rdb         goredis.UniversalClient
	closeClient bool
	sep         string
	scanCount   int64

	nsMu sync.RWMutex
	ns   string
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	Client       goredis.UniversalClient
	Namespace    string
	KeySeparator string // "" => "::"
	ScanCount    int64  // SCAN COUNT hint for Clear and Iterator; 0 => 100
	CloseClient  bool   // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Provider, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	p := &Provider{
		rdb:         cfg.Client,
		closeClient: cfg.CloseClient,
		sep:         cfg.KeySeparator,
		scanCount:   cfg.ScanCount,
		ns:          cfg.Namespace,
	}
	if p.sep == "" {
		p.sep = keyspace.DefaultSeparator
	}
	if p.scanCount <= 0 {
		p.scanCount = 100
	}
	return p, nil
}

func (p *Provider) Namespace() string {
	p.nsMu.RLock()
	defer p.nsMu.RUnlock()
	return p.ns
}

func (p *Provider) SetNamespace(ns string) {
	p.nsMu.Lock()
	p.ns = ns
	p.nsMu.Unlock()
}

func (p *Provider) key(k string) string { return keyspace.Compose(k, p.Namespace(), p.sep) }

func payload(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedValue, v)
	}
}

func (p *Provider) Get(ctx context.Context, key string) (pr.Record, bool, error) {
	b, err := p.rdb.Get(ctx, p.key(key)).Bytes()
	if err == goredis.Nil {
		return pr.Record{}, false, nil // miss
	}
	if err != nil {
		return pr.Record{}, false, err // transport/server error
	}
	return pr.Record{Value: b}, true, nil
}

func (p *Provider) GetMany(ctx context.Context, keys []string) ([]pr.Record, []bool, error) {
	recs := make([]pr.Record, len(keys))
	found := make([]bool, len(keys))
	if len(keys) == 0 {
		return recs, found, nil
	}
	sk := make([]string, len(keys))
	for i, k := range keys {
		sk[i] = p.key(k)
	}
	vals, err := p.rdb.MGet(ctx, sk...).Result()
	if err != nil {
		return nil, nil, err
	}
	for i, v := range vals {
		switch vv := v.(type) {
		case nil:
		case string:
			recs[i], found[i] = pr.Record{Value: []byte(vv)}, true
		case []byte:
			recs[i], found[i] = pr.Record{Value: vv}, true
		default:
			return nil, nil, fmt.Errorf("redis provider: unexpected MGET reply %T at %s", v, sk[i])
		}
	}
	return recs, found, nil
}

// Set treats non-positive TTLs as "no expiry".
func (p *Provider) Set(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	b, err := payload(value)
	if err != nil {
		return false, err
	}
	if ttl <= 0 {
		ttl = 0
	}
	if err := p.rdb.Set(ctx, p.key(key), b, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// SetMany pipelines all writes in one round trip. Values are validated up
// front; a transport failure may leave the batch partially applied.
func (p *Provider) SetMany(ctx context.Context, entries []pr.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	bs := make([][]byte, len(entries))
	for i, e := range entries {
		b, err := payload(e.Value)
		if err != nil {
			return err
		}
		bs[i] = b
	}
	_, err := p.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, e := range entries {
			ttl := e.TTL
			if ttl < 0 {
				ttl = 0
			}
			pipe.Set(ctx, p.key(e.Key), bs[i], ttl)
		}
		return nil
	})
	return err
}

func (p *Provider) Delete(ctx context.Context, key string) (bool, error) {
	n, err := p.rdb.Del(ctx, p.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteMany issues a single DEL. It reports true once the DEL ran, whether
// or not any key existed.
func (p *Provider) DeleteMany(ctx context.Context, keys []string) (bool, error) {
	if len(keys) == 0 {
		return true, nil
	}
	sk := make([]string, len(keys))
	for i, k := range keys {
		sk[i] = p.key(k)
	}
	if err := p.rdb.Del(ctx, sk...).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Has(ctx context.Context, key string) (bool, error) {
	n, err := p.rdb.Exists(ctx, p.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes the keys of the current namespace. Without a namespace it
// flushes the selected database. Passes repeat until a SCAN finds nothing,
// which also catches keys written while a pass was running.
func (p *Provider) Clear(ctx context.Context) error {
	ns := p.Namespace()
	if ns == "" {
		return p.rdb.FlushDB(ctx).Err()
	}
	pattern := keyspace.Pattern(ns, p.sep)
	for {
		n, err := p.unlinkPass(ctx, pattern)
		if err != nil || n == 0 {
			return err
		}
	}
}

// unlinkPass runs one SCAN over pattern, unlinking in scanCount batches.
func (p *Provider) unlinkPass(ctx context.Context, pattern string) (int, error) {
	removed := 0
	batch := make([]string, 0, p.scanCount)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.rdb.Unlink(ctx, batch...).Err(); err != nil {
			return err
		}
		removed += len(batch)
		batch = batch[:0]
		return nil
	}
	it := p.rdb.Scan(ctx, 0, pattern, p.scanCount).Iterator()
	for it.Next(ctx) {
		batch = append(batch, it.Val())
		if int64(len(batch)) >= p.scanCount {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := it.Err(); err != nil {
		return removed, err
	}
	err := flush()
	return removed, err
}

// Iterator scans namespace and yields raw keys with their values and
// remaining TTLs. Keys that disappear mid-scan are skipped.
func (p *Provider) Iterator(ctx context.Context, namespace string) (pr.Iterator, error) {
	pattern := keyspace.Pattern(namespace, p.sep)
	return func(yield func(pr.Entry, error) bool) {
		it := p.rdb.Scan(ctx, 0, pattern, p.scanCount).Iterator()
		for it.Next(ctx) {
			sk := it.Val()
			var get *goredis.StringCmd
			var pttl *goredis.DurationCmd
			_, err := p.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
				get = pipe.Get(ctx, sk)
				pttl = pipe.PTTL(ctx, sk)
				return nil
			})
			if errors.Is(err, goredis.Nil) {
				continue
			}
			if err != nil {
				yield(pr.Entry{}, err)
				return
			}
			b, _ := get.Bytes()
			ttl := pttl.Val()
			if ttl < 0 {
				ttl = 0
			}
			e := pr.Entry{Key: keyspace.Decompose(sk, p.sep).Key, Value: b, TTL: ttl}
			if namespace == "" {
				e.Key = sk
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(pr.Entry{}, err)
		}
	}, nil
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Provider) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
