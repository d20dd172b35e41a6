package pixcache

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/LeadRDRK/pixcache/bytesrc"
	"github.com/LeadRDRK/pixcache/codec"
)

type loader struct {
	id     string
	source bytesrc.Source
	codec  codec.Codec
	log    Logger
	hooks  Hooks

	caching bool
	cache   *store
	flight  singleflight.Group
}

func newLoader(opts Options) (*loader, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("pixcache: source is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("pixcache: codec is required")
	}

	l := &loader{
		source:  opts.Source,
		codec:   opts.Codec,
		cache:   newStore(),
		caching: !opts.DisableCache,
	}

	// defaults
	l.id = coalesce(opts.ID, "pixcache."+opts.Codec.Extension())
	l.log = coalesce[Logger](opts.Logger, NopLogger{})
	l.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return l, nil
}

func (l *loader) Identity() string { return l.id }

func (l *loader) Request(ctx context.Context, uri string, hint bytesrc.SizeHint) (Poll, error) {
	// Extension routing happens before the cache and the byte source are
	// consulted at all.
	if extensionOf(uri) != l.codec.Extension() {
		return Poll{}, ErrNotSupported
	}

	if l.caching {
		if out, ok := l.cache.lookup(uri); ok {
			l.hooks.CacheHit(uri)
			return pollFor(uri, out)
		}
	}

	// Collapse concurrent first requests for the same URI into one
	// acquisition and decode. Pending polls and source errors are shared
	// by all waiters but never stored.
	v, err, _ := l.flight.Do(uri, func() (any, error) {
		res, err := l.fill(ctx, uri, hint)
		return res, err
	})
	if err != nil {
		return Poll{}, err
	}
	res := v.(fillResult)
	if res.pending {
		return Poll{Size: res.size, Pending: true}, nil
	}
	return pollFor(uri, res.out)
}

// fillResult is what one flight produces: a completed outcome or a
// pending signal with a size hint.
type fillResult struct {
	out     outcome
	pending bool
	size    bytesrc.SizeHint
}

func (l *loader) fill(ctx context.Context, uri string, hint bytesrc.SizeHint) (fillResult, error) {
	// A previous flight may have completed this URI while we waited.
	if l.caching {
		if out, ok := l.cache.lookup(uri); ok {
			return fillResult{out: out}, nil
		}
	}

	bp, err := l.source.TryLoad(ctx, uri)
	if err != nil {
		// Source failures are transient by contract: propagate verbatim,
		// cache nothing, let the host retry.
		return fillResult{}, err
	}
	if bp.Pending {
		size := bp.Size
		if size == (bytesrc.SizeHint{}) {
			size = hint
		}
		return fillResult{pending: true, size: size}, nil
	}

	if bp.MIME != "" && !l.codec.MatchesMIME(bp.MIME) {
		l.hooks.MIMERejected(uri, bp.MIME)
		l.log.Debug("declined uri (mime mismatch)", Fields{"uri": uri, "mime": bp.MIME})
		return fillResult{}, ErrNotSupported
	}

	hdr, err := l.codec.ParseHeader(bp.Bytes)
	if err != nil {
		// An unparseable header means the bytes are not this loader's
		// format, not a permanent failure; another loader may claim them.
		l.hooks.HeaderRejected(uri)
		l.log.Debug("declined uri (header parse failed)", Fields{"uri": uri, "err": err})
		return fillResult{}, ErrNotSupported
	}

	out := l.decode(uri, hdr, bp.Bytes)
	if l.caching {
		l.cache.insert(uri, out)
	}
	return fillResult{out: out}, nil
}

// decode runs the full decode into an exactly-sized buffer and wraps the
// result as a cacheable outcome. Failures past this point are permanent.
func (l *loader) decode(uri string, hdr codec.Header, data []byte) outcome {
	buf := make([]byte, hdr.BufferBytes)
	if err := l.codec.Decode(hdr, data, buf); err != nil {
		msg := err.Error()
		l.hooks.DecodeFailed(uri, msg)
		l.log.Warn("decode failed (caching failure)", Fields{"uri": uri, "err": msg})
		return outcome{errMsg: msg}
	}
	return outcome{img: &Image{Width: hdr.Width, Height: hdr.Height, Pix: buf}}
}

func (l *loader) Forget(uri string) {
	if out, ok := l.cache.remove(uri); ok {
		l.hooks.Evicted(1, out.byteSize())
		l.log.Debug("forgot entry", Fields{"uri": uri, "bytes": out.byteSize()})
	}
}

func (l *loader) ForgetAll() {
	entries, bytes := l.cache.clear()
	if entries > 0 {
		l.hooks.Evicted(entries, bytes)
		l.log.Debug("forgot all entries", Fields{"entries": entries, "bytes": bytes})
	}
}

func (l *loader) MemoryUsage() int64 { return l.cache.totalBytes() }

func (l *loader) Close(ctx context.Context) error {
	l.cache.clear()
	if l.source != nil {
		return l.source.Close(ctx)
	}
	return nil
}

func pollFor(uri string, out outcome) (Poll, error) {
	if out.img != nil {
		return Poll{Image: out.img}, nil
	}
	return Poll{}, &DecodeError{URI: uri, Msg: out.errMsg}
}

// extensionOf returns the suffix after the final "." of the final path
// segment, case-sensitively. A leading dot alone ("/.png") or no dot at
// all yields "".
func extensionOf(uri string) string {
	base := uri
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}
