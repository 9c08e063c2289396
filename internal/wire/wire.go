// Package wire frames records for stores that only hold bytes.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("mapkv: corrupt record")
	magic4     = [...]byte{'M', 'K', 'V', 'R'}
)

const header = 4 + 1 + 8 + 4

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// EncodeRecord frames payload with its absolute expiry.
//
//	magic(4) | ver(1) | expiresAt unix nanos(i64 be, 0 = never) | vlen(u32 be) | payload(vlen)
func EncodeRecord(expiresAt time.Time, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(header + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte

	var exp int64
	if !expiresAt.IsZero() {
		exp = expiresAt.UnixNano()
	}
	binary.BigEndian.PutUint64(u8[:], uint64(exp))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// DecodeRecord is the inverse of EncodeRecord. Trailing bytes are rejected.
func DecodeRecord(b []byte) (expiresAt time.Time, payload []byte, err error) {
	if len(b) < header || !hasMagic(b) || b[4] != version {
		return time.Time{}, nil, ErrCorrupt
	}
	off := 5

	exp := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen != len(b)-off {
		return time.Time{}, nil, ErrCorrupt
	}

	if exp != 0 {
		expiresAt = time.Unix(0, exp)
	}
	return expiresAt, b[off:], nil
}
