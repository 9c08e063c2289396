// Package provider defines the backend contract used by the mapkv façade.
//
// A Provider owns key composition (namespacing) and expiry accounting for
// the records it stores. The façade hands values through unchanged: either
// the caller's value itself (passthrough) or the codec's []byte output.
// Providers that only hold bytes must reject anything else with an error.
package provider

import (
	"context"
	"errors"
	"iter"
	"time"
)

// ErrUnsupported is returned by operations a backend kind cannot offer.
var ErrUnsupported = errors.New("provider: operation not supported")

// Record is what a Provider stores per key. It is replaced whole on every
// Set and never mutated in place.
type Record struct {
	Value any
	// ExpiresAt is absolute; the zero time means the record never expires.
	ExpiresAt time.Time
}

// Live reports whether r is still valid at now (now <= ExpiresAt).
func (r Record) Live(now time.Time) bool {
	return r.ExpiresAt.IsZero() || !now.After(r.ExpiresAt)
}

// ExpiresAfter returns the absolute expiry for a write at now with ttl.
// Non-positive ttls mean "no expiry".
func ExpiresAfter(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// Entry is one item of a SetMany batch, and one item yielded by an Iterator.
type Entry struct {
	Key   string
	Value any
	TTL   time.Duration // <= 0 => no expiry
}

// Iterator yields entries of one namespace. A non-nil error ends the sequence.
type Iterator = iter.Seq2[Entry, error]

// Provider is the standard backend-adapter contract expected by the façade.
// Keys passed in are raw keys; the Provider applies its own namespace.
type Provider interface {
	// Get returns (rec, true, nil) on a live hit; (Record{}, false, nil) on miss.
	Get(ctx context.Context, key string) (Record, bool, error)
	// GetMany returns slices aligned with keys; found[i] is false on miss.
	GetMany(ctx context.Context, keys []string) (recs []Record, found []bool, err error)

	// Set stores value with ttl (<= 0 => no expiry).
	Set(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	// SetMany applies entries in order and stops at the first error.
	SetMany(ctx context.Context, entries []Entry) error

	// Delete reports whether a record was present and removed.
	Delete(ctx context.Context, key string) (bool, error)
	// DeleteMany removes keys in order. It reports true when every delete
	// ran, regardless of whether the keys existed. false with a nil error
	// means the batch stopped part way and the cause went out as an
	// events.Error. Transport and context failures come back as errors.
	DeleteMany(ctx context.Context, keys []string) (bool, error)

	Has(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error

	// Iterator walks the records of namespace. Backends that cannot
	// enumerate keys return ErrUnsupported.
	Iterator(ctx context.Context, namespace string) (Iterator, error)

	Namespace() string
	SetNamespace(ns string)

	// Close releases resources.
	Close(ctx context.Context) error
}
