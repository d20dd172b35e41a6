package pixcache

import (
	"errors"
	"fmt"
)

// ErrNotSupported is returned when a loader does not claim a URI: wrong
// extension, mismatched MIME type, or an unparseable header. It is never
// cached; another registered loader may still serve the same URI.
var ErrNotSupported = errors.New("pixcache: uri not supported by this loader")

// DecodeError is a permanent decode or normalization failure. The
// message is cached alongside successes, so repeated requests for a
// broken resource return the identical error without touching the byte
// source or the codec again.
type DecodeError struct {
	URI string
	Msg string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pixcache: decode %q: %s", e.URI, e.Msg)
}
