package pixcache

import (
	"context"

	"github.com/LeadRDRK/pixcache/bytesrc"
	"github.com/LeadRDRK/pixcache/codec"
)

// Loader is the capability interface a format-specific image loader
// exposes to its host. Multiple loaders can serve one byte source; each
// declines URIs it does not claim (ErrNotSupported) so they compose
// without coordination.
type Loader interface {
	// Identity is a stable unique name for this loader instance, used by
	// hosts to route and deduplicate registrations.
	Identity() string

	// Request returns the decoded image for uri, a pending poll while
	// bytes are still arriving, or an error. ErrNotSupported means this
	// loader does not claim uri; a *DecodeError is a permanent, cached
	// failure; any other error is propagated verbatim from the byte
	// source and may be transient.
	Request(ctx context.Context, uri string, hint bytesrc.SizeHint) (Poll, error)

	// Forget evicts the cache entry for uri. No-op if absent.
	Forget(uri string)

	// ForgetAll evicts every cache entry.
	ForgetAll()

	// MemoryUsage is the accounted byte size of all cache entries:
	// width*height*4 per decoded image, message length per cached failure.
	MemoryUsage() int64

	// Close evicts all entries and releases the byte source.
	Close(ctx context.Context) error
}

// Options tune a loader.
// Only Source and Codec are required; others have sensible defaults.
type Options struct {
	// Required
	Source bytesrc.Source
	Codec  codec.Codec

	ID           string // identity override; "" => "pixcache." + codec extension
	Logger       Logger // if nil, NopLogger is used
	Hooks        Hooks  // if nil, NopHooks is used
	DisableCache bool   // bypass the outcome cache (every request re-decodes)
}

func New(opts Options) (Loader, error) {
	return newLoader(opts)
}
