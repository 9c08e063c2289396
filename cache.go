package mapkv

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/unkn0wn-root/mapkv/events"
	pr "github.com/unkn0wn-root/mapkv/provider"
)

const defaultPrefixSep = ":"

type cache[V any] struct {
	provider    pr.Provider
	codec       codecFunc[V]
	passthrough bool
	prefix      bool
	sep         string
	defaultTTL  time.Duration
	log         Logger
	bus         *events.Bus

	nsMu sync.RWMutex
	ns   string
}

// codecFunc keeps the hot path free of nil checks on Options.Codec.
type codecFunc[V any] struct {
	encode func(V) ([]byte, error)
	decode func([]byte) (V, error)
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Provider == nil {
		return nil, ErrNilProvider
	}
	if opts.Codec == nil && !opts.PassthroughValues {
		return nil, ErrNilCodec
	}

	c := &cache[V]{
		provider:    opts.Provider,
		passthrough: opts.PassthroughValues,
		prefix:      !opts.DisableKeyPrefix,
		ns:          opts.Namespace,
		defaultTTL:  opts.DefaultTTL,
	}
	if opts.Codec != nil {
		c.codec = codecFunc[V]{encode: opts.Codec.Encode, decode: opts.Codec.Decode}
	}

	// defaults
	c.sep = coalesce(opts.KeySeparator, defaultPrefixSep)
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.bus = opts.Events
	if c.bus == nil {
		c.bus = events.NewBus()
	}
	return c, nil
}

func (c *cache[V]) Provider() pr.Provider { return c.provider }

func (c *cache[V]) On(ev events.Event, h events.Handler) func() { return c.bus.On(ev, h) }

func (c *cache[V]) Namespace() string {
	if c.prefix {
		return c.prefixNamespace()
	}
	return c.provider.Namespace()
}

func (c *cache[V]) prefixNamespace() string {
	c.nsMu.RLock()
	defer c.nsMu.RUnlock()
	return c.ns
}

// SetNamespace updates the façade prefix, or the provider's namespace when
// the provider does its own prefixing.
func (c *cache[V]) SetNamespace(ns string) {
	if c.prefix {
		c.nsMu.Lock()
		c.ns = ns
		c.nsMu.Unlock()
		return
	}
	c.provider.SetNamespace(ns)
}

func (c *cache[V]) Close(ctx context.Context) error {
	return c.provider.Close(ctx)
}

func (c *cache[V]) key(k string) string {
	if !c.prefix {
		return k
	}
	ns := c.prefixNamespace()
	if ns == "" {
		return k
	}
	return ns + c.sep + k
}

// keyFunc snapshots the namespace once so a batch never mixes prefixes.
func (c *cache[V]) keyFunc() func(string) string {
	if !c.prefix {
		return func(k string) string { return k }
	}
	ns := c.prefixNamespace()
	if ns == "" {
		return func(k string) string { return k }
	}
	p := ns + c.sep
	return func(k string) string { return p + k }
}

func (c *cache[V]) unkey(ns, k string) string {
	if !c.prefix || ns == "" {
		return k
	}
	return strings.TrimPrefix(k, ns+c.sep)
}

func (c *cache[V]) ttl(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return c.defaultTTL
	}
	return ttl
}

func (c *cache[V]) encode(v V) (any, error) {
	if c.passthrough {
		return v, nil
	}
	return c.codec.encode(v)
}

// decode turns a stored value back into V.
func (c *cache[V]) decode(raw any) (V, error) {
	var zero V
	if c.passthrough {
		v, ok := raw.(V)
		if !ok && raw != nil {
			return zero, fmt.Errorf("%w: stored %T", ErrValueType, raw)
		}
		return v, nil
	}
	b, ok := raw.([]byte)
	if !ok {
		return zero, fmt.Errorf("%w: stored %T, want []byte", ErrValueType, raw)
	}
	return c.codec.decode(b)
}

func (c *cache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	k := c.key(key)
	rec, ok, err := c.provider.Get(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := c.decode(rec.Value)
	if err != nil {
		return zero, false, c.selfHeal(ctx, k, err)
	}
	return v, true, nil
}

// selfHeal drops an undecodable value. Passthrough type mismatches are the
// caller's bug and surface as errors; codec failures become misses.
func (c *cache[V]) selfHeal(ctx context.Context, storageKey string, cause error) error {
	if c.passthrough {
		return cause
	}
	c.log.Debug("dropping undecodable value", Fields{"key": storageKey, "err": cause})
	if _, err := c.provider.Delete(ctx, storageKey); err != nil {
		c.log.Warn("self-heal delete failed", Fields{"key": storageKey, "err": err})
		c.bus.Emit(events.Error, &StorageError{Op: "self-heal delete", Key: storageKey, Err: err})
	}
	return nil
}

func (c *cache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	raw, err := c.encode(value)
	if err != nil {
		return err
	}
	ok, err := c.provider.Set(ctx, c.key(key), raw, c.ttl(ttl))
	if err != nil {
		return err
	}
	if !ok {
		c.log.Debug("set rejected by provider", Fields{"key": key})
	}
	return nil
}

func (c *cache[V]) Delete(ctx context.Context, key string) (bool, error) {
	return c.provider.Delete(ctx, c.key(key))
}

func (c *cache[V]) Has(ctx context.Context, key string) (bool, error) {
	return c.provider.Has(ctx, c.key(key))
}

func (c *cache[V]) GetMany(ctx context.Context, keys []string) ([]V, []bool, error) {
	key := c.keyFunc()
	sk := make([]string, len(keys))
	for i, k := range keys {
		sk[i] = key(k)
	}
	recs, found, err := c.provider.GetMany(ctx, sk)
	if err != nil {
		return nil, nil, err
	}
	out := make([]V, len(keys))
	for i := range recs {
		if !found[i] {
			continue
		}
		v, err := c.decode(recs[i].Value)
		if err != nil {
			found[i] = false
			if err := c.selfHeal(ctx, sk[i], err); err != nil {
				return nil, nil, err
			}
			continue
		}
		out[i] = v
	}
	return out, found, nil
}

func (c *cache[V]) SetMany(ctx context.Context, entries []Entry[V]) error {
	key := c.keyFunc()
	batch := make([]pr.Entry, len(entries))
	for i, e := range entries {
		raw, err := c.encode(e.Value)
		if err != nil {
			return err
		}
		batch[i] = pr.Entry{Key: key(e.Key), Value: raw, TTL: c.ttl(e.TTL)}
	}
	return c.provider.SetMany(ctx, batch)
}

func (c *cache[V]) DeleteMany(ctx context.Context, keys []string) (bool, error) {
	key := c.keyFunc()
	sk := make([]string, len(keys))
	for i, k := range keys {
		sk[i] = key(k)
	}
	return c.provider.DeleteMany(ctx, sk)
}

func (c *cache[V]) Clear(ctx context.Context) error {
	return c.provider.Clear(ctx)
}

// Iterate decodes each entry the provider yields. Entries that fail to
// decode are skipped; provider errors stop the walk and are emitted as
// events.Error.
func (c *cache[V]) Iterate(ctx context.Context, namespace string) (func(yield func(string, V) bool), error) {
	if namespace == "" {
		namespace = c.provider.Namespace()
	}
	prefixNS := c.prefixNamespace()
	it, err := c.provider.Iterator(ctx, namespace)
	if err != nil {
		return nil, err
	}
	return func(yield func(string, V) bool) {
		for e, err := range it {
			if err != nil {
				c.bus.Emit(events.Error, err)
				return
			}
			v, err := c.decode(e.Value)
			if err != nil {
				c.log.Debug("iterate: skipping undecodable value", Fields{"key": e.Key, "err": err})
				continue
			}
			if !yield(c.unkey(prefixNS, e.Key), v) {
				return
			}
		}
	}, nil
}
