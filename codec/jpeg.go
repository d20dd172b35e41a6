package codec

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"strings"

	"github.com/LeadRDRK/pixcache/internal/pixel"
)

// JPEG decodes baseline and progressive JPEG images. JPEG carries no
// alpha channel; decoded pixels are fully opaque.
type JPEG struct{}

var _ Codec = JPEG{}

func (JPEG) Extension() string { return "jpg" }

func (JPEG) MatchesMIME(mime string) bool { return strings.Contains(mime, "jpeg") }

// ParseHeader reads frame markers up to SOF only.
func (JPEG) ParseHeader(data []byte) (Header, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Header{}, ErrHeader
	}
	return headerFor(cfg.Width, cfg.Height)
}

func (JPEG) Decode(h Header, data []byte, buf []byte) error {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("jpeg: %w", err)
	}
	return pixel.Fill(buf, h.Width, h.Height, img)
}
