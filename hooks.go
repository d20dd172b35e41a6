package pixcache

// Hooks are lightweight callbacks for high-signal loader events.
// Implementations MUST be cheap and non-blocking; the loader calls them
// on hot paths. Wrap with hooks/async to move work off the caller.
type Hooks interface {
	// A request was served from the outcome cache (success or cached
	// failure).
	CacheHit(uri string)

	// A full decode or normalization failed; the message is now cached.
	DecodeFailed(uri string, msg string)

	// The byte source reported a MIME type the codec does not accept;
	// the loader declined the URI after bytes arrived.
	MIMERejected(uri string, mime string)

	// Header parsing failed; the loader declined the URI as not its
	// format.
	HeaderRejected(uri string)

	// Entries were evicted via Forget/ForgetAll. bytes is the accounted
	// size released.
	Evicted(entries int, bytes int64)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CacheHit(string)             {}
func (NopHooks) DecodeFailed(string, string) {}
func (NopHooks) MIMERejected(string, string) {}
func (NopHooks) HeaderRejected(string)       {}
func (NopHooks) Evicted(int, int64)          {}
