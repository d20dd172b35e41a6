package pixcache

import "github.com/LeadRDRK/pixcache/bytesrc"

// SizeHint is an advisory pixel size for layout while bytes are pending.
type SizeHint = bytesrc.SizeHint

// Image is a decoded image: 8-bit RGBA, non-premultiplied alpha,
// row-major top to bottom, 4 bytes per pixel. Instances are immutable
// once built and shared by pointer between the cache and every caller
// that received them; the pixel buffer is freed when the last holder
// drops its reference.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// ByteSize is the accounting footprint of the pixel buffer.
func (im *Image) ByteSize() int64 { return int64(len(im.Pix)) }

// Poll is the non-error result of a Request.
type Poll struct {
	// Image is set when the decoded image is ready (possibly from cache).
	Image *Image

	// Size carries the byte source's size hint while bytes are pending.
	Size SizeHint

	// Pending reports that bytes are not available yet; the caller
	// should issue the same Request again later.
	Pending bool
}

// Ready reports whether the poll carries a decoded image.
func (p Poll) Ready() bool { return p.Image != nil }

// outcome is one completed decode attempt: a shared image or a permanent
// failure message. Exactly one field is set.
type outcome struct {
	img    *Image
	errMsg string
}

func (o outcome) byteSize() int64 {
	if o.img != nil {
		return o.img.ByteSize()
	}
	return int64(len(o.errMsg))
}
