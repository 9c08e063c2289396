// usage:
//
//	bus := events.NewBus()
//	bus.On(events.Error, logsink.New(logger, logsink.Options{Every: 10}))
//
//	em := async.New(bus, 1, 1000) // 1 worker; queue 1000 events
//	defer em.Close()
//
//	adapter, _ := mapstore.New(mapstore.NewMap(), mapstore.Options{Events: em})
package async

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/mapkv/events"
)

// Emitter forwards events to an inner Emitter on background workers.
// Events are dropped when the queue is full or the Emitter is closed.
type Emitter struct {
	inner   events.Emitter
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ events.Emitter = (*Emitter)(nil)

func New(inner events.Emitter, workers, qlen int) *Emitter {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	e := &Emitter{inner: events.OrDiscard(inner), q: make(chan func(), qlen)}
	e.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer e.wg.Done()
			for f := range e.q {
				f()
			}
		}()
	}
	return e
}

// Close stops accepting events and waits for queued ones to be delivered.
func (e *Emitter) Close() {
	e.once.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.q)
		e.mu.Unlock()
		e.wg.Wait()
	})
}

func (e *Emitter) Emit(ev events.Event, payload any) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.dropped.Add(1)
		return
	}
	select {
	case e.q <- func() { e.inner.Emit(ev, payload) }:
	default:
		e.dropped.Add(1)
	}
}

// Dropped reports how many events were discarded.
func (e *Emitter) Dropped() uint64 { return e.dropped.Load() }
