// Package wire frames a fetched HTTP body together with its reported
// MIME type for storage in a retention provider. Framing is strict:
// short, oversized or trailing bytes are all ErrCorrupt, and readers
// self-heal by deleting the entry.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("wire: corrupt entry")
	magic4     = [...]byte{'P', 'X', 'C', 'B'}
)

const maxMIMELen = 0xFFFF

// Fetched: magic(4) | ver(1) | mlen(u16 be) | mime(mlen) | blen(u32 be) | body(blen)
func EncodeFetched(mime string, body []byte) ([]byte, error) {
	if len(mime) > maxMIMELen {
		return nil, errors.New("wire: mime type too long")
	}

	var buf bytes.Buffer
	buf.Grow(4 + 1 + 2 + len(mime) + 4 + len(body))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u2 [2]byte
	var u4 [4]byte

	binary.BigEndian.PutUint16(u2[:], uint16(len(mime)))
	buf.Write(u2[:])
	buf.WriteString(mime)

	binary.BigEndian.PutUint32(u4[:], uint32(len(body)))
	buf.Write(u4[:])
	buf.Write(body)

	return buf.Bytes(), nil
}

func DecodeFetched(b []byte) (mime string, body []byte, err error) {
	const hdr = 4 + 1 + 2
	if len(b) < hdr || !bytes.Equal(b[:4], magic4[:]) || b[4] != version {
		return "", nil, ErrCorrupt
	}

	off := 5

	mlen := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2
	if mlen > len(b)-off {
		return "", nil, ErrCorrupt
	}
	mime = string(b[off : off+mlen])
	off += mlen

	if off+4 > len(b) {
		return "", nil, ErrCorrupt
	}
	blen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if blen < 0 || blen != len(b)-off { // strict: no trailing bytes
		return "", nil, ErrCorrupt
	}

	return mime, b[off : off+blen], nil
}
