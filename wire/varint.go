// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/btctestnet/node/nodeerr"
)

// ReadVarInt reads a variable length integer ("compact size") from r and
// returns it as a uint64. The encoding is always little-endian on the
// wire: a first byte b<=252 is the value itself; b==253 is followed by a
// 2-byte value; b==254 by a 4-byte value; b==255 by an 8-byte value.
func ReadVarInt(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, nodeerr.Wrap(nodeerr.IO, "read varint prefix", err)
	}

	switch prefix[0] {
	case 0xff:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, nodeerr.Wrap(nodeerr.IO, "read varint u64", err)
		}
		return binary.LittleEndian.Uint64(buf[:]), nil
	case 0xfe:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, nodeerr.Wrap(nodeerr.IO, "read varint u32", err)
		}
		return uint64(binary.LittleEndian.Uint32(buf[:])), nil
	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, nodeerr.Wrap(nodeerr.IO, "read varint u16", err)
		}
		return uint64(binary.LittleEndian.Uint16(buf[:])), nil
	default:
		return uint64(prefix[0]), nil
	}
}

// WriteVarInt writes v to w using the minimal compact-size encoding.
func WriteVarInt(w io.Writer, v uint64) error {
	var buf []byte
	switch {
	case v <= 252:
		buf = []byte{byte(v)}
	case v <= 0xffff:
		buf = make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(v))
	case v <= 0xffffffff:
		buf = make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(v))
	default:
		buf = make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], v)
	}

	if _, err := w.Write(buf); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write varint", err)
	}
	return nil
}

// VarIntSerializeSize returns the number of bytes WriteVarInt would write
// for v.
func VarIntSerializeSize(v uint64) int {
	switch {
	case v <= 252:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// CompactSizeWidth names the four width variants the compact-size
// encoding distinguishes by prefix byte.
type CompactSizeWidth int

const (
	CompactSizeU8 CompactSizeWidth = iota
	CompactSizeU16
	CompactSizeU32
	CompactSizeU64
)

// CompactSize is an explicitly-widthed compact-size value: unlike
// WriteVarInt (which always picks the minimal encoding for a value),
// CompactSize serializes in the width its caller names even when the
// value would fit in fewer bytes. It exists to construct wire-exact
// fixtures and test vectors against a known width.
type CompactSize struct {
	Width CompactSizeWidth
	Value uint64
}

// Serialize returns the compact-size wire encoding for c at its named
// width.
func (c CompactSize) Serialize() []byte {
	switch c.Width {
	case CompactSizeU16:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(c.Value))
		return buf
	case CompactSizeU32:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(c.Value))
		return buf
	case CompactSizeU64:
		buf := make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], c.Value)
		return buf
	default:
		return []byte{byte(c.Value)}
	}
}

// ReadVarBytes reads a varint-prefixed byte slice, rejecting lengths above
// maxAllowed to guard against a hostile peer claiming an enormous length.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if n > maxAllowed {
		return nil, nodeerr.New(nodeerr.MessageTooLong, fieldName+" exceeds maximum allowed size")
	}

	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, nodeerr.Wrap(nodeerr.IO, "read "+fieldName, err)
		}
	}
	return buf, nil
}

// WriteVarBytes writes b prefixed by its varint length.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	if _, err := w.Write(b); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write var bytes", err)
	}
	return nil
}

// ReadVarString reads a varint-prefixed UTF-8 string.
func ReadVarString(r io.Reader, maxAllowed uint64) (string, error) {
	b, err := ReadVarBytes(r, maxAllowed, "var string")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteVarString writes s prefixed by its varint length.
func WriteVarString(w io.Writer, s string) error {
	return WriteVarBytes(w, []byte(s))
}
