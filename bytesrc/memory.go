package bytesrc

import (
	"context"
	"fmt"
	"sync"
)

// Memory is a Source backed by an in-process map, for embedded assets
// and tests. Registered entries are always immediately ready.
type Memory struct {
	mu sync.RWMutex
	m  map[string]memEntry
}

type memEntry struct {
	bytes []byte
	mime  string
}

var _ Source = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{m: make(map[string]memEntry)} }

// Add registers bytes for uri. mime may be "" when unknown. The slice is
// retained as-is; callers must not mutate it afterwards.
func (s *Memory) Add(uri string, b []byte, mime string) {
	s.mu.Lock()
	s.m[uri] = memEntry{bytes: b, mime: mime}
	s.mu.Unlock()
}

// Remove drops the entry for uri.
func (s *Memory) Remove(uri string) {
	s.mu.Lock()
	delete(s.m, uri)
	s.mu.Unlock()
}

func (s *Memory) TryLoad(_ context.Context, uri string) (BytesPoll, error) {
	s.mu.RLock()
	e, ok := s.m[uri]
	s.mu.RUnlock()
	if !ok {
		return BytesPoll{}, fmt.Errorf("bytesrc: no bytes registered for %q", uri)
	}
	return BytesPoll{Bytes: e.bytes, MIME: e.mime}, nil
}

func (s *Memory) Close(context.Context) error { return nil }
