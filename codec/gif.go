package codec

import (
	"bytes"
	"fmt"
	"image/gif"
	"strings"

	"github.com/LeadRDRK/pixcache/internal/pixel"
)

// GIF decodes GIF images. For animations only the first frame is
// decoded; a decode cache holds one verbatim image per URI.
type GIF struct{}

var _ Codec = GIF{}

func (GIF) Extension() string { return "gif" }

func (GIF) MatchesMIME(mime string) bool { return strings.Contains(mime, "gif") }

// ParseHeader reads the logical screen descriptor only.
func (GIF) ParseHeader(data []byte) (Header, error) {
	cfg, err := gif.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Header{}, ErrHeader
	}
	return headerFor(cfg.Width, cfg.Height)
}

func (GIF) Decode(h Header, data []byte, buf []byte) error {
	img, err := gif.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("gif: %w", err)
	}
	return pixel.Fill(buf, h.Width, h.Height, img)
}
