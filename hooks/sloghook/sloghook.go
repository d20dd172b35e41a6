// Package sloghook logs loader events through slog, with sampling for
// the hot ones so a cache-hit-heavy render loop cannot flood the log.
package sloghook

import (
	"log/slog"
	"sync/atomic"

	"github.com/LeadRDRK/pixcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	CacheHitEvery     uint64
	HeaderRejectEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr    atomic.Uint64
	headerCtr atomic.Uint64
}

var _ pixcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) CacheHit(uri string) {
	if h.l == nil || !sample(h.opts.CacheHitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("pixcache.cache_hit", "uri", uri)
}

func (h *Hooks) DecodeFailed(uri, msg string) {
	if h.l == nil {
		return
	}
	h.l.Warn("pixcache.decode_failed",
		"uri", uri,
		"err", msg)
}

func (h *Hooks) MIMERejected(uri, mime string) {
	if h.l == nil {
		return
	}
	h.l.Info("pixcache.mime_rejected",
		"uri", uri,
		"mime", mime)
}

func (h *Hooks) HeaderRejected(uri string) {
	if h.l == nil || !sample(h.opts.HeaderRejectEvery, &h.headerCtr) {
		return
	}
	h.l.Info("pixcache.header_rejected", "uri", uri)
}

func (h *Hooks) Evicted(entries int, bytes int64) {
	if h.l == nil {
		return
	}
	h.l.Debug("pixcache.evicted",
		"entries", entries,
		"bytes", bytes)
}
