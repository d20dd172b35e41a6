package bytesrc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File serves "file://" and plain-path URIs from disk. Reads run on a
// background goroutine per URI; TryLoad reports Pending until the read
// finishes. A completed result (bytes or error) is handed over exactly
// once and the slot is dropped, so a failed read is retried on a later
// request.
type File struct {
	root string

	mu      sync.Mutex
	pending map[string]*fetchState
}

// fetchState tracks one background acquisition. Fields are written under
// the owning source's mutex.
type fetchState struct {
	done  bool
	bytes []byte
	mime  string
	err   error
}

var _ Source = (*File)(nil)

// NewFile returns a disk-backed source. When root is non-empty, URIs are
// resolved relative to it.
func NewFile(root string) *File {
	return &File{root: root, pending: make(map[string]*fetchState)}
}

func (s *File) TryLoad(_ context.Context, uri string) (BytesPoll, error) {
	s.mu.Lock()
	st, ok := s.pending[uri]
	if !ok {
		st = &fetchState{}
		s.pending[uri] = st
		s.mu.Unlock()
		go s.read(uri, st)
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
	return BytesPoll{Bytes: st.bytes}, nil
}

func (s *File) read(uri string, st *fetchState) {
	path := strings.TrimPrefix(uri, "file://")
	if s.root != "" {
		path = filepath.Join(s.root, path)
	}
	b, err := os.ReadFile(path)

	s.mu.Lock()
	st.bytes, st.err, st.done = b, err, true
	s.mu.Unlock()
}

func (s *File) Close(context.Context) error { return nil }
