// Package bytesrc defines the byte-provider abstraction pixcache loaders
// acquire encoded image bytes from.
//
// Implementations MUST NOT block on network or disk I/O inside TryLoad:
// slow acquisition runs in the background and TryLoad reports a pending
// poll until bytes are available. There is no callback or wakeup
// mechanism; the caller re-polls.
//
// Errors from TryLoad are transient from the caller's point of view: the
// loader caches nothing for them and a later call may succeed.
package bytesrc

import "context"

// SizeHint is an advisory pixel size for layout while bytes are pending.
// The zero value means unknown.
type SizeHint struct {
	Width  int
	Height int
}

// BytesPoll is the result of one TryLoad call.
type BytesPoll struct {
	// Bytes is the complete encoded image when Pending is false.
	Bytes []byte

	// MIME is the provider-reported media type, "" when unknown.
	MIME string

	// Size is an advisory size hint, meaningful while Pending.
	Size SizeHint

	// Pending reports that bytes are not available yet.
	Pending bool
}

// Source supplies encoded bytes for URIs. Implementations must be safe
// for concurrent use.
type Source interface {
	// TryLoad returns the bytes for uri, a pending poll, or an error.
	TryLoad(ctx context.Context, uri string) (BytesPoll, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
