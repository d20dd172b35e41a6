package codec

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/LeadRDRK/pixcache/internal/pixel"
)

// PNG decodes Portable Network Graphics images. All bit depths and color
// types the png package understands (paletted, grayscale, 16-bit,
// interlaced) are normalized to RGBA8 with non-premultiplied alpha.
type PNG struct{}

var _ Codec = PNG{}

func (PNG) Extension() string { return "png" }

// MatchesMIME accepts any media type mentioning png ("image/png",
// "image/x-png", "image/apng").
func (PNG) MatchesMIME(mime string) bool { return strings.Contains(mime, "png") }

// ParseHeader reads the signature and IHDR chunk only.
func (PNG) ParseHeader(data []byte) (Header, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Header{}, ErrHeader
	}
	return headerFor(cfg.Width, cfg.Height)
}

func (PNG) Decode(h Header, data []byte, buf []byte) error {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return pixel.Fill(buf, h.Width, h.Height, img)
}
