package pixel

import (
	"bytes"
	"image"
	"testing"
)

func TestFillNRGBAFastPath(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	copy(m.Pix, []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	})

	dst := make([]byte, 16)
	if err := Fill(dst, 2, 2, m); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if !bytes.Equal(dst, m.Pix) {
		t.Fatalf("dst = %v, want %v", dst, m.Pix)
	}
}

// Sub-images have a padded stride and a non-zero origin; rows must still
// land contiguously.
func TestFillNRGBASubImage(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range m.Pix {
		m.Pix[i] = byte(i)
	}
	sub := m.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)

	dst := make([]byte, 2*2*4)
	if err := Fill(dst, 2, 2, sub); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	var want []byte
	for y := 1; y < 3; y++ {
		off := m.PixOffset(1, y)
		want = append(want, m.Pix[off:off+8]...)
	}
	if !bytes.Equal(dst, want) {
		t.Fatalf("dst = %v, want %v", dst, want)
	}
}

// Premultiplied input is converted back to non-premultiplied channels.
func TestFillUnpremultiplies(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 1, 1))
	// 50% red at 50% alpha, premultiplied.
	m.Pix[0], m.Pix[1], m.Pix[2], m.Pix[3] = 128, 0, 0, 128

	dst := make([]byte, 4)
	if err := Fill(dst, 1, 1, m); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if dst[3] != 128 {
		t.Fatalf("alpha = %d, want 128", dst[3])
	}
	// Un-premultiplied red should be scaled back up toward 255.
	if dst[0] < 250 {
		t.Fatalf("red = %d, want ~255 after un-premultiply", dst[0])
	}
}

func TestFillRejectsMismatch(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))

	if err := Fill(make([]byte, 8), 1, 1, m); err == nil {
		t.Fatalf("dimension mismatch should error")
	}
	if err := Fill(make([]byte, 7), 2, 1, m); err == nil {
		t.Fatalf("wrong buffer size should error")
	}
}
