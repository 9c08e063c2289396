package mapkv

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/mapkv/codec"
	"github.com/unkn0wn-root/mapkv/events"
	pr "github.com/unkn0wn-root/mapkv/provider"
)

// Entry is one item of a SetMany batch.
type Entry[V any] struct {
	Key   string
	Value V
	TTL   time.Duration // 0 => Options.DefaultTTL
}

// Cache is the provider-agnostic key-value façade. V is the caller's value
// type. Values go through a Codec[V] unless PassthroughValues is set.
type Cache[V any] interface {
	// Single
	Get(ctx context.Context, key string) (v V, ok bool, err error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
	Has(ctx context.Context, key string) (bool, error)

	// Bulk; GetMany results are aligned with keys
	GetMany(ctx context.Context, keys []string) (values []V, found []bool, err error)
	SetMany(ctx context.Context, entries []Entry[V]) error
	DeleteMany(ctx context.Context, keys []string) (bool, error)

	Clear(ctx context.Context) error
	// Iterate walks the provider's records under namespace ("" => current).
	Iterate(ctx context.Context, namespace string) (func(yield func(key string, v V) bool), error)

	Namespace() string
	SetNamespace(ns string)
	Provider() pr.Provider

	// On subscribes to events published by the provider and the façade.
	On(ev events.Event, h events.Handler) (off func())

	Close(context.Context) error
}

// Options tune the façade. Provider is required; Codec is required unless
// PassthroughValues is set.
type Options[V any] struct {
	Provider pr.Provider
	Codec    c.Codec[V]

	// PassthroughValues hands values to the provider as-is and returns them
	// by identity. Only meaningful for providers that hold values in memory.
	PassthroughValues bool

	Namespace        string        // prefix applied by the façade unless DisableKeyPrefix
	DisableKeyPrefix bool          // set when the provider namespaces keys itself
	KeySeparator     string        // façade prefix separator; "" => ":"
	DefaultTTL       time.Duration // 0 => no expiry
	Logger           Logger        // nil => NopLogger
	Events           *events.Bus   // nil => a fresh Bus
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
