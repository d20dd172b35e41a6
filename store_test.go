package pixcache

import "testing"

func TestStoreOps(t *testing.T) {
	s := newStore()

	if _, ok := s.lookup("a"); ok {
		t.Fatalf("lookup on empty store should miss")
	}

	img := &Image{Width: 2, Height: 2, Pix: make([]byte, 16)}
	s.insert("a", outcome{img: img})
	s.insert("b", outcome{errMsg: "boom"})

	if o, ok := s.lookup("a"); !ok || o.img != img {
		t.Fatalf("lookup(a) = %+v ok=%v", o, ok)
	}
	if got := s.totalBytes(); got != 16+4 {
		t.Fatalf("totalBytes = %d, want 20", got)
	}
	if s.len() != 2 {
		t.Fatalf("len = %d, want 2", s.len())
	}

	// insert replaces
	s.insert("a", outcome{errMsg: "x"})
	if got := s.totalBytes(); got != 1+4 {
		t.Fatalf("totalBytes after replace = %d, want 5", got)
	}

	if o, ok := s.remove("b"); !ok || o.errMsg != "boom" {
		t.Fatalf("remove(b) = %+v ok=%v", o, ok)
	}
	if _, ok := s.remove("b"); ok {
		t.Fatalf("second remove should be a no-op miss")
	}

	entries, bytes := s.clear()
	if entries != 1 || bytes != 1 {
		t.Fatalf("clear = (%d, %d), want (1, 1)", entries, bytes)
	}
	if s.len() != 0 || s.totalBytes() != 0 {
		t.Fatalf("store not empty after clear")
	}
}
