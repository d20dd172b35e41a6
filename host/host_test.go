package host

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"

	"github.com/LeadRDRK/pixcache"
	"github.com/LeadRDRK/pixcache/bytesrc"
)

// stubLoader claims URIs ending in "." + ext and records requests.
type stubLoader struct {
	id  string
	ext string

	mu   sync.Mutex
	uris []string
}

var _ pixcache.Loader = (*stubLoader)(nil)

func (l *stubLoader) Identity() string { return l.id }

func (l *stubLoader) Request(_ context.Context, uri string, _ bytesrc.SizeHint) (pixcache.Poll, error) {
	if !hasExt(uri, l.ext) {
		return pixcache.Poll{}, pixcache.ErrNotSupported
	}
	l.mu.Lock()
	l.uris = append(l.uris, uri)
	l.mu.Unlock()
	return pixcache.Poll{Image: &pixcache.Image{Width: 1, Height: 1, Pix: make([]byte, 4)}}, nil
}

func (l *stubLoader) Forget(string)               {}
func (l *stubLoader) ForgetAll()                  {}
func (l *stubLoader) MemoryUsage() int64          { return 0 }
func (l *stubLoader) Close(context.Context) error { return nil }

func hasExt(uri, ext string) bool {
	return len(uri) > len(ext)+1 && uri[len(uri)-len(ext)-1:] == "."+ext
}

func (l *stubLoader) served() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.uris...)
}

func TestLoadRoutesToClaimingLoader(t *testing.T) {
	ctx := context.Background()
	h := New(bytesrc.NewMemory())

	pngL := &stubLoader{id: "stub.png", ext: "png"}
	jpgL := &stubLoader{id: "stub.jpg", ext: "jpg"}
	h.AddLoader(pngL)
	h.AddLoader(jpgL)

	if _, err := h.Load(ctx, "a.jpg", bytesrc.SizeHint{}); err != nil {
		t.Fatalf("Load(a.jpg): %v", err)
	}
	if got := jpgL.served(); len(got) != 1 || got[0] != "a.jpg" {
		t.Fatalf("jpg loader served %v", got)
	}
	if got := pngL.served(); len(got) != 0 {
		t.Fatalf("png loader should not have served, got %v", got)
	}

	if _, err := h.Load(ctx, "a.txt", bytesrc.SizeHint{}); !errors.Is(err, pixcache.ErrNotSupported) {
		t.Fatalf("Load(a.txt) err = %v, want ErrNotSupported", err)
	}
}

// Registering a loader with a duplicate identity is ignored.
func TestAddLoaderDedup(t *testing.T) {
	ctx := context.Background()
	h := New(bytesrc.NewMemory())

	first := &stubLoader{id: "stub.png", ext: "png"}
	second := &stubLoader{id: "stub.png", ext: "png"}
	h.AddLoader(first)
	h.AddLoader(second)

	if _, err := h.Load(ctx, "a.png", bytesrc.SizeHint{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(first.served()) != 1 || len(second.served()) != 0 {
		t.Fatalf("duplicate registration not ignored: first=%v second=%v",
			first.served(), second.served())
	}
}

func encodePNG(t *testing.T, pix []byte, w, hgt int) []byte {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, w, hgt))
	copy(m.Pix, pix)
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// Install wires a real PNG loader against the host's source.
func TestInstall(t *testing.T) {
	ctx := context.Background()
	src := bytesrc.NewMemory()
	src.Add("a.png", encodePNG(t, []byte{255, 0, 0, 255, 0, 255, 0, 255}, 2, 1), "image/png")

	h := New(src)
	if err := Install(h); err != nil {
		t.Fatalf("Install: %v", err)
	}
	// Installing again is harmless: the identity already exists.
	if err := Install(h); err != nil {
		t.Fatalf("second Install: %v", err)
	}

	p, err := h.Load(ctx, "a.png", bytesrc.SizeHint{})
	if err != nil || !p.Ready() {
		t.Fatalf("Load: poll=%+v err=%v", p, err)
	}
	if p.Image.Width != 2 || p.Image.Height != 1 {
		t.Fatalf("decoded %dx%d", p.Image.Width, p.Image.Height)
	}
	if got := h.LoaderByteSize(); got != 8 {
		t.Fatalf("LoaderByteSize = %d, want 8", got)
	}

	h.ForgetAllImages()
	if got := h.LoaderByteSize(); got != 0 {
		t.Fatalf("LoaderByteSize after ForgetAllImages = %d", got)
	}
}

func TestInstallAllRegistersEveryFormat(t *testing.T) {
	ctx := context.Background()
	src := bytesrc.NewMemory()
	src.Add("a.png", encodePNG(t, []byte{1, 2, 3, 255}, 1, 1), "")

	h := New(src)
	if err := InstallAll(h); err != nil {
		t.Fatalf("InstallAll: %v", err)
	}

	if _, err := h.Load(ctx, "a.png", bytesrc.SizeHint{}); err != nil {
		t.Fatalf("png route: %v", err)
	}
	// jpg and gif loaders are present: an unknown extension still falls
	// through to ErrNotSupported rather than an earlier loader error.
	if _, err := h.Load(ctx, "a.webp", bytesrc.SizeHint{}); !errors.Is(err, pixcache.ErrNotSupported) {
		t.Fatalf("webp err = %v, want ErrNotSupported", err)
	}
}
