// Package host wires format loaders and a shared byte source into one
// image-loading surface, the way a UI context routes image URIs to
// whichever registered loader claims them.
package host

import (
	"context"
	"errors"
	"sync"

	"github.com/LeadRDRK/pixcache"
	"github.com/LeadRDRK/pixcache/bytesrc"
	"github.com/LeadRDRK/pixcache/codec"
)

// Host is an ordered registry of loaders sharing one byte source.
// Loaders are consulted in registration order; each performs its own
// extension routing, so formats compose without coordination.
type Host struct {
	source bytesrc.Source

	mu      sync.RWMutex
	loaders []pixcache.Loader
}

func New(source bytesrc.Source) *Host {
	return &Host{source: source}
}

// Source returns the byte source shared by registered loaders.
func (h *Host) Source() bytesrc.Source { return h.source }

// AddLoader registers l. A loader whose Identity matches an already
// registered one is ignored, so repeated installs are harmless.
func (h *Host) AddLoader(l pixcache.Loader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, have := range h.loaders {
		if have.Identity() == l.Identity() {
			return
		}
	}
	h.loaders = append(h.loaders, l)
}

// Load walks registered loaders and returns the first result from a
// loader that claims uri. ErrNotSupported comes back only when every
// loader declines.
func (h *Host) Load(ctx context.Context, uri string, hint bytesrc.SizeHint) (pixcache.Poll, error) {
	for _, l := range h.snapshot() {
		p, err := l.Request(ctx, uri, hint)
		if errors.Is(err, pixcache.ErrNotSupported) {
			continue
		}
		return p, err
	}
	return pixcache.Poll{}, pixcache.ErrNotSupported
}

// ForgetImage evicts uri from every loader.
func (h *Host) ForgetImage(uri string) {
	for _, l := range h.snapshot() {
		l.Forget(uri)
	}
}

// ForgetAllImages evicts everything from every loader.
func (h *Host) ForgetAllImages() {
	for _, l := range h.snapshot() {
		l.ForgetAll()
	}
}

// LoaderByteSize sums the accounted memory of every loader's cache.
func (h *Host) LoaderByteSize() int64 {
	var n int64
	for _, l := range h.snapshot() {
		n += l.MemoryUsage()
	}
	return n
}

// Close evicts all entries and closes the shared byte source once.
// Loaders registered here share the source, so their individual Close is
// deliberately not called.
func (h *Host) Close(ctx context.Context) error {
	h.ForgetAllImages()
	if h.source != nil {
		return h.source.Close(ctx)
	}
	return nil
}

func (h *Host) snapshot() []pixcache.Loader {
	h.mu.RLock()
	ls := make([]pixcache.Loader, len(h.loaders))
	copy(ls, h.loaders)
	h.mu.RUnlock()
	return ls
}

// Install registers a default PNG loader against h's byte source.
func Install(h *Host) error {
	return install(h, codec.PNG{})
}

// InstallAll registers PNG, JPEG and GIF loaders.
func InstallAll(h *Host) error {
	for _, c := range []codec.Codec{codec.PNG{}, codec.JPEG{}, codec.GIF{}} {
		if err := install(h, c); err != nil {
			return err
		}
	}
	return nil
}

func install(h *Host, c codec.Codec) error {
	l, err := pixcache.New(pixcache.Options{Source: h.Source(), Codec: c})
	if err != nil {
		return err
	}
	h.AddLoader(l)
	return nil
}
