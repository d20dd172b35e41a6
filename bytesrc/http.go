package bytesrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/LeadRDRK/pixcache/internal/wire"
	"github.com/LeadRDRK/pixcache/provider"
)

const defaultRetainTTL = time.Hour

// HTTP fetches encoded bytes over HTTP(S) on a background goroutine per
// URI; TryLoad reports Pending until the fetch completes. The response
// Content-Type is surfaced as the poll's MIME.
//
// With a retention store configured, completed bodies are framed with
// their MIME type and kept there, so a re-request after the decoded
// entry was evicted does not re-download. Corrupt store entries are
// deleted on read and the fetch restarts.
//
// Fetch errors (transport failures, non-200 statuses) are handed over
// exactly once and the slot is dropped, so a later request retries.
type HTTP struct {
	client *http.Client
	store  provider.Provider
	ttl    time.Duration

	mu      sync.Mutex
	pending map[string]*fetchState
}

var _ Source = (*HTTP)(nil)

type HTTPConfig struct {
	Client *http.Client // nil => http.DefaultClient

	// Store optionally retains fetched bodies (see provider/bigcache,
	// provider/ristretto, provider/redis). The source owns the store and
	// closes it.
	Store provider.Provider

	// RetainTTL is the store TTL for retained bodies; 0 => 1h.
	RetainTTL time.Duration
}

func NewHTTP(cfg HTTPConfig) *HTTP {
	s := &HTTP{
		client:  cfg.Client,
		store:   cfg.Store,
		ttl:     cfg.RetainTTL,
		pending: make(map[string]*fetchState),
	}
	if s.client == nil {
		s.client = http.DefaultClient
	}
	if s.ttl == 0 {
		s.ttl = defaultRetainTTL
	}
	return s
}

func (s *HTTP) TryLoad(ctx context.Context, uri string) (BytesPoll, error) {
	if s.store != nil {
		if raw, ok, err := s.store.Get(ctx, uri); err == nil && ok {
			mime, body, derr := wire.DecodeFetched(raw)
			if derr == nil {
				s.dropDone(uri)
				return BytesPoll{Bytes: body, MIME: mime}, nil
			}
			_ = s.store.Del(ctx, uri) // self-heal corrupt
		}
	}

	s.mu.Lock()
	st, ok := s.pending[uri]
	if !ok {
		st = &fetchState{}
		s.pending[uri] = st
		s.mu.Unlock()
		go s.fetch(uri, st)
		return BytesPoll{Pending: true}, nil
	}
	if !st.done {
		s.mu.Unlock()
		return BytesPoll{Pending: true}, nil
	}
	delete(s.pending, uri)
	s.mu.Unlock()

	if st.err != nil {
		return BytesPoll{}, st.err
	}
	return BytesPoll{Bytes: st.bytes, MIME: st.mime}, nil
}

func (s *HTTP) fetch(uri string, st *fetchState) {
	body, mime, err := s.get(uri)
	if err == nil && s.store != nil {
		if raw, werr := wire.EncodeFetched(mime, body); werr == nil {
			// best-effort retention
			_, _ = s.store.Set(context.Background(), uri, raw, int64(len(raw)), s.ttl)
		}
	}

	s.mu.Lock()
	st.bytes, st.mime, st.err, st.done = body, mime, err, true
	s.mu.Unlock()
}

// dropDone releases a completed fetch slot whose result was served from
// the retention store instead.
func (s *HTTP) dropDone(uri string) {
	s.mu.Lock()
	if st, ok := s.pending[uri]; ok && st.done {
		delete(s.pending, uri)
	}
	s.mu.Unlock()
}

func (s *HTTP) get(uri string) ([]byte, string, error) {
	resp, err := s.client.Get(uri)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, "", fmt.Errorf("bytesrc: GET %s: %s", uri, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("bytesrc: GET %s: %w", uri, err)
	}
	return body, mimeOf(resp), nil
}

// mimeOf strips media type parameters ("image/png; charset=x" => "image/png").
func mimeOf(resp *http.Response) string {
	ct := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func (s *HTTP) Close(ctx context.Context) error {
	if s.store != nil {
		return s.store.Close(ctx)
	}
	return nil
}
