package pixcache

import "sync"

// store maps URI -> completed outcome. It is the only shared mutable
// state in a loader; every access goes through its mutex. Invariant: an
// entry exists iff a decode attempt for that URI has completed
// (successfully or not). Pending acquisitions are never stored; they are
// recomputed by re-polling the byte source on the next request.
type store struct {
	mu sync.Mutex
	m  map[string]outcome
}

func newStore() *store { return &store{m: make(map[string]outcome)} }

func (s *store) lookup(uri string) (outcome, bool) {
	s.mu.Lock()
	o, ok := s.m[uri]
	s.mu.Unlock()
	return o, ok
}

func (s *store) insert(uri string, o outcome) {
	s.mu.Lock()
	s.m[uri] = o
	s.mu.Unlock()
}

func (s *store) remove(uri string) (outcome, bool) {
	s.mu.Lock()
	o, ok := s.m[uri]
	if ok {
		delete(s.m, uri)
	}
	s.mu.Unlock()
	return o, ok
}

func (s *store) clear() (entries int, bytes int64) {
	s.mu.Lock()
	entries = len(s.m)
	for _, o := range s.m {
		bytes += o.byteSize()
	}
	s.m = make(map[string]outcome)
	s.mu.Unlock()
	return entries, bytes
}

// totalBytes sums the accounted size of every entry: pixel bytes for
// decoded images, message length for cached failures. This is an
// accounting aid for the host's budget decisions, not an enforced limit.
func (s *store) totalBytes() int64 {
	s.mu.Lock()
	var n int64
	for _, o := range s.m {
		n += o.byteSize()
	}
	s.mu.Unlock()
	return n
}

func (s *store) len() int {
	s.mu.Lock()
	n := len(s.m)
	s.mu.Unlock()
	return n
}
