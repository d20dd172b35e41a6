// Package asynchook moves hook callbacks off the loader's hot path onto
// a bounded worker queue. Events are dropped when the queue is full
// rather than blocking a request.
package asynchook

import (
	"sync"

	"github.com/LeadRDRK/pixcache"
)

type Hooks struct {
	inner pixcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ pixcache.Hooks = (*Hooks)(nil)

func New(inner pixcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) CacheHit(uri string)       { h.try(func() { h.inner.CacheHit(uri) }) }
func (h *Hooks) HeaderRejected(uri string) { h.try(func() { h.inner.HeaderRejected(uri) }) }
func (h *Hooks) DecodeFailed(uri, msg string) {
	h.try(func() { h.inner.DecodeFailed(uri, msg) })
}
func (h *Hooks) MIMERejected(uri, mime string) {
	h.try(func() { h.inner.MIMERejected(uri, mime) })
}
func (h *Hooks) Evicted(entries int, bytes int64) {
	h.try(func() { h.inner.Evicted(entries, bytes) })
}
