package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for name, tc := range map[string]struct {
		mime string
		body []byte
	}{
		"typical":    {"image/png", []byte{1, 2, 3}},
		"empty_mime": {"", []byte("body")},
		"empty_body": {"image/gif", nil},
	} {
		t.Run(name, func(t *testing.T) {
			enc, err := EncodeFetched(tc.mime, tc.body)
			if err != nil {
				t.Fatalf("EncodeFetched: %v", err)
			}
			mime, body, err := DecodeFetched(enc)
			if err != nil {
				t.Fatalf("DecodeFetched: %v", err)
			}
			if mime != tc.mime || !bytes.Equal(body, tc.body) {
				t.Fatalf("got (%q, %v), want (%q, %v)", mime, body, tc.mime, tc.body)
			}
		})
	}
}

func TestEncodeRejectsHugeMIME(t *testing.T) {
	if _, err := EncodeFetched(strings.Repeat("x", 0x10000), nil); err == nil {
		t.Fatalf("EncodeFetched should reject mime > 0xFFFF")
	}
	if _, err := EncodeFetched(strings.Repeat("x", 0xFFFF), nil); err != nil {
		t.Fatalf("EncodeFetched at boundary: %v", err)
	}
}

// Strict framing: trailing or missing bytes are corruption.
func TestDecodeStrictness(t *testing.T) {
	enc, err := EncodeFetched("image/png", []byte("data"))
	if err != nil {
		t.Fatalf("EncodeFetched: %v", err)
	}

	for name, bad := range map[string][]byte{
		"trailing":    append(append([]byte{}, enc...), 0xDE, 0xAD),
		"truncated":   enc[:len(enc)-1],
		"short":       enc[:3],
		"bad_magic":   append([]byte("XXXX"), enc[4:]...),
		"bad_version": func() []byte { b := append([]byte{}, enc...); b[4] = 99; return b }(),
		"empty":       nil,
	} {
		t.Run(name, func(t *testing.T) {
			if _, _, err := DecodeFetched(bad); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("DecodeFetched(%s) err = %v, want ErrCorrupt", name, err)
			}
		})
	}
}
