// Package pixel converts decoded images into the flat RGBA8
// non-premultiplied layout pixcache caches.
package pixel

import (
	"fmt"
	"image"
	"image/draw"
)

// Fill writes src into dst as 8-bit non-premultiplied RGBA, row-major,
// top to bottom. dst must be exactly w*h*4 bytes and src must span
// exactly w x h pixels; any disagreement is reported as an error, never
// a silent truncation.
func Fill(dst []byte, w, h int, src image.Image) error {
	b := src.Bounds()
	if b.Dx() != w || b.Dy() != h {
		return fmt.Errorf("pixel: decoded size %dx%d does not match header %dx%d", b.Dx(), b.Dy(), w, h)
	}
	if len(dst) != w*h*4 {
		return fmt.Errorf("pixel: buffer is %d bytes, need %d", len(dst), w*h*4)
	}

	// Fast path: already non-premultiplied RGBA8; copy rows (handles
	// sub-images and padded strides).
	if n, ok := src.(*image.NRGBA); ok {
		rowLen := w * 4
		for y := 0; y < h; y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst[y*rowLen:(y+1)*rowLen], n.Pix[off:off+rowLen])
		}
		return nil
	}

	// General path: draw into an NRGBA view of dst. draw.Src through an
	// NRGBA destination un-premultiplies whatever model src uses.
	out := &image.NRGBA{Pix: dst, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	draw.Draw(out, out.Rect, src, b.Min, draw.Src)
	return nil
}
