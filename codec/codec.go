// Package codec defines the image decoding abstraction used by pixcache
// loaders and provides PNG, JPEG and GIF implementations.
//
// A Codec separates decoding into two steps: a cheap header parse that
// yields dimensions and the exact decode buffer size, and a full decode
// that fills a caller-allocated buffer with 8-bit non-premultiplied RGBA.
// Header parse failures mean "not this codec's format"; full-decode
// failures mean the data is this format but broken.
package codec

import (
	"errors"
	"fmt"
	"math"
)

// ErrHeader reports bytes whose header this codec cannot parse.
var ErrHeader = errors.New("codec: unparseable image header")

// Header describes an encoded image before full decode.
type Header struct {
	Width  int
	Height int

	// BufferBytes is the exact size of the RGBA8 buffer Decode requires:
	// Width*Height*4.
	BufferBytes int
}

// Codec decodes one image format.
type Codec interface {
	// Extension is the canonical lower-case file extension ("png").
	// Loaders claim a URI iff its extension equals this exactly.
	Extension() string

	// MatchesMIME reports whether a provider-supplied MIME type is
	// consistent with this format.
	MatchesMIME(mime string) bool

	// ParseHeader inspects data without a full decode. A failure means
	// the data is not this codec's format.
	ParseHeader(data []byte) (Header, error)

	// Decode fully decodes data into buf, which must be exactly
	// h.BufferBytes long, as non-premultiplied RGBA8 rows top to bottom.
	// Decoded dimensions that disagree with h are an error, never a
	// silent truncation.
	Decode(h Header, data []byte, buf []byte) error
}

// headerFor validates dimensions and computes the buffer requirement.
func headerFor(w, h int) (Header, error) {
	if w <= 0 || h <= 0 {
		return Header{}, ErrHeader
	}
	if h > math.MaxInt/4/w {
		return Header{}, fmt.Errorf("codec: image %dx%d exceeds addressable buffer size", w, h)
	}
	return Header{Width: w, Height: h, BufferBytes: w * h * 4}, nil
}
