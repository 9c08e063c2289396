// Package events is the publish channel mapkv uses to report asynchronous
// failures. Providers emit into an Emitter; the façade exposes the Bus so
// callers can subscribe.
package events

import "sync"

// Event names a kind of notification.
type Event string

// Error is the only event emitted by the built-in providers. Its payload is
// the causal error.
const Error Event = "error"

// Handler receives an event payload. Handlers run on the emitting goroutine
// and MUST be cheap and non-blocking; wrap with async.New otherwise.
type Handler func(payload any)

// Emitter is the publishing side used by providers.
type Emitter interface {
	Emit(ev Event, payload any)
}

// Discard drops every event.
var Discard Emitter = discard{}

type discard struct{}

func (discard) Emit(Event, any) {}

// OrDiscard returns e, or Discard when e is nil.
func OrDiscard(e Emitter) Emitter {
	if e == nil {
		return Discard
	}
	return e
}

type subscription struct {
	id uint64
	h  Handler
}

// Bus is an in-process Emitter with named subscriptions. The zero value is
// ready to use and safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Event][]subscription
}

var _ Emitter = (*Bus)(nil)

func NewBus() *Bus { return &Bus{} }

// On registers h for ev and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (b *Bus) On(ev Event, h Handler) (off func()) {
	if h == nil {
		return func() {}
	}
	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[Event][]subscription)
	}
	b.nextID++
	id := b.nextID
	b.subs[ev] = append(b.subs[ev], subscription{id: id, h: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(ev, id) })
	}
}

func (b *Bus) remove(ev Event, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[ev]
	for i, s := range subs {
		if s.id == id {
			// copy so snapshots held by in-flight Emit calls stay intact
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			if len(next) == 0 {
				delete(b.subs, ev)
			} else {
				b.subs[ev] = next
			}
			return
		}
	}
}

// Emit calls every handler registered for ev, in registration order.
func (b *Bus) Emit(ev Event, payload any) {
	b.mu.RLock()
	subs := b.subs[ev]
	b.mu.RUnlock()
	for _, s := range subs {
		s.h(payload)
	}
}

// Listeners reports how many handlers are registered for ev.
func (b *Bus) Listeners(ev Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[ev])
}
