package mapkv

import (
	"time"

	"github.com/unkn0wn-root/mapkv/events"
	"github.com/unkn0wn-root/mapkv/provider/mapstore"
)

// InMemoryOptions configure NewInMemory.
type InMemoryOptions struct {
	Namespace    mapstore.Namespace // zero => keys stored verbatim
	KeySeparator string             // "" => "::"
	DefaultTTL   time.Duration      // 0 => no expiry
	Logger       Logger
	Events       *events.Bus      // nil => a fresh Bus, shared by adapter and façade
	Now          func() time.Time // nil => time.Now
}

// NewInMemory puts a mapstore Adapter over store and returns a façade that
// stores values by identity. The adapter owns namespacing, so the façade's
// own key prefix is disabled.
func NewInMemory[V any](store mapstore.Store, opts InMemoryOptions) (Cache[V], error) {
	bus := opts.Events
	if bus == nil {
		bus = events.NewBus()
	}
	adapter, err := mapstore.New(store, mapstore.Options{
		Namespace:    opts.Namespace,
		KeySeparator: opts.KeySeparator,
		Events:       bus,
		Logger:       opts.Logger,
		Now:          opts.Now,
	})
	if err != nil {
		return nil, err
	}
	return newCache[V](Options[V]{
		Provider:          adapter,
		PassthroughValues: true,
		DisableKeyPrefix:  true,
		DefaultTTL:        opts.DefaultTTL,
		Logger:            opts.Logger,
		Events:            bus,
	})
}

// InMemoryFromConfig is NewInMemory with settings taken from cfg.
func InMemoryFromConfig[V any](store mapstore.Store, cfg Config, log Logger) (Cache[V], error) {
	return NewInMemory[V](store, InMemoryOptions{
		Namespace:    mapstore.Fixed(cfg.Namespace),
		KeySeparator: cfg.KeySeparator,
		DefaultTTL:   cfg.DefaultTTL,
		Logger:       log,
	})
}
