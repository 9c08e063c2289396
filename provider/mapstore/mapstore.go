// Package mapstore adapts any map-like in-memory Store into a
// provider.Provider. Values are held by identity inside provider.Record;
// nothing is encoded.
//
// Keys:
//
//	<namespace><separator><key>  - when a namespace resolves non-empty
//	<key>                        - otherwise
//
// Expiry is lazy: a record past its ExpiresAt is deleted by the read that
// finds it (Get, GetMany, Has). There is no background sweep.
package mapstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/unkn0wn-root/mapkv/events"
	"github.com/unkn0wn-root/mapkv/internal/keyspace"
	"github.com/unkn0wn-root/mapkv/logging"
	pr "github.com/unkn0wn-root/mapkv/provider"
)

// ErrNilStore is returned by New when no Store is given.
var ErrNilStore = errors.New("mapstore: store is required")

// KeyPrefixData is a composite key split back into namespace and raw key.
type KeyPrefixData = keyspace.Parts

type Options struct {
	Namespace    Namespace      // zero => no namespace
	KeySeparator string         // "" => "::"
	Events       events.Emitter // receives DeleteMany faults; nil => discarded
	Logger       logging.Logger // nil => logging.Nop
	Now          func() time.Time
}

// Adapter is the provider.Provider over a map-like Store. It adds no
// locking around store calls; callers that share the Store with code
// outside the Adapter get undefined results.
type Adapter struct {
	store  Store
	sep    string
	events events.Emitter
	log    logging.Logger
	now    func() time.Time

	nsMu sync.RWMutex
	ns   Namespace
}

var _ pr.Provider = (*Adapter)(nil)

func New(store Store, opts Options) (*Adapter, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	a := &Adapter{
		store:  store,
		sep:    opts.KeySeparator,
		events: events.OrDiscard(opts.Events),
		log:    logging.OrNop(opts.Logger),
		now:    opts.Now,
		ns:     opts.Namespace,
	}
	if a.sep == "" {
		a.sep = keyspace.DefaultSeparator
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a, nil
}

// Store returns the wrapped store.
func (a *Adapter) Store() Store { return a.store }

// Separator returns the configured key separator.
func (a *Adapter) Separator() string { return a.sep }

// Namespace resolves the configured namespace. Resolvers are invoked on
// every call.
func (a *Adapter) Namespace() string {
	a.nsMu.RLock()
	ns := a.ns
	a.nsMu.RUnlock()
	return ns.Resolve()
}

func (a *Adapter) SetNamespace(ns string) { a.setNamespace(Fixed(ns)) }

func (a *Adapter) SetNamespaceResolver(fn func() string) { a.setNamespace(Resolver(fn)) }

func (a *Adapter) setNamespace(ns Namespace) {
	a.nsMu.Lock()
	a.ns = ns
	a.nsMu.Unlock()
}

// KeyPrefix composes the storage key for key under namespace.
func (a *Adapter) KeyPrefix(key, namespace string) string {
	return keyspace.Compose(key, namespace, a.sep)
}

// KeyPrefixData splits a composite key on the first separator.
func (a *Adapter) KeyPrefixData(composite string) KeyPrefixData {
	return keyspace.Decompose(composite, a.sep)
}

func (a *Adapter) storageKey(key string) string {
	return a.KeyPrefix(key, a.Namespace())
}

func (a *Adapter) Get(ctx context.Context, key string) (pr.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return pr.Record{}, false, err
	}
	return a.lookup(a.storageKey(key))
}

// lookup reads sk and evicts it when expired.
func (a *Adapter) lookup(sk string) (pr.Record, bool, error) {
	rec, ok, err := a.store.Get(sk)
	if err != nil || !ok {
		return pr.Record{}, false, err
	}
	if !rec.Live(a.now()) {
		if _, err := a.store.Delete(sk); err != nil {
			return pr.Record{}, false, err
		}
		a.log.Debug("evicted expired record", logging.Fields{"key": sk, "expiresAt": rec.ExpiresAt})
		return pr.Record{}, false, nil
	}
	return rec, true, nil
}

// Set always overwrites. It reports true unless the store fails.
func (a *Adapter) Set(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	rec := pr.Record{Value: value, ExpiresAt: pr.ExpiresAfter(a.now(), ttl)}
	if err := a.store.Set(a.storageKey(key), rec, ttl); err != nil {
		return false, err
	}
	return true, nil
}

// SetMany writes entries in order and aborts on the first failure.
// Entries written before the failure stay written.
func (a *Adapter) SetMany(ctx context.Context, entries []pr.Entry) error {
	for _, e := range entries {
		if _, err := a.Set(ctx, e.Key, e.Value, e.TTL); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) Delete(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return a.store.Delete(a.storageKey(key))
}

// DeleteMany deletes keys in order. On the first store failure it stops,
// emits one events.Error carrying that failure and returns false. Keys
// deleted before the failure stay deleted and the failing key is not
// reported. A cancelled ctx is returned as an error, not emitted.
func (a *Adapter) DeleteMany(ctx context.Context, keys []string) (bool, error) {
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := a.store.Delete(a.storageKey(k)); err != nil {
			a.log.Warn("delete many aborted", logging.Fields{"err": err, "requested": len(keys)})
			a.events.Emit(events.Error, err)
			return false, nil
		}
	}
	return true, nil
}

func (a *Adapter) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.store.Clear()
}

// Has reports whether Get finds a record whose value is truthy. A live
// record holding nil, false, zero or "" reports false.
func (a *Adapter) Has(ctx context.Context, key string) (bool, error) {
	rec, ok, err := a.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return truthy(rec.Value), nil
}

// GetMany looks up each key independently with the same lazy eviction as
// Get. Results are aligned with keys.
func (a *Adapter) GetMany(ctx context.Context, keys []string) ([]pr.Record, []bool, error) {
	recs := make([]pr.Record, len(keys))
	found := make([]bool, len(keys))
	for i, k := range keys {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		rec, ok, err := a.lookup(a.storageKey(k))
		if err != nil {
			return nil, nil, err
		}
		recs[i], found[i] = rec, ok
	}
	return recs, found, nil
}

// Iterator is not available for map-like stores.
func (a *Adapter) Iterator(context.Context, string) (pr.Iterator, error) {
	return nil, fmt.Errorf("mapstore: iterator: %w", pr.ErrUnsupported)
}

// Close closes the store when it has a Close method.
func (a *Adapter) Close(ctx context.Context) error {
	switch s := a.store.(type) {
	case interface{ Close(context.Context) error }:
		return s.Close(ctx)
	case interface{ Close() error }:
		return s.Close()
	}
	return nil
}
