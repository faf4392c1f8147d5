// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/nodeerr"
)

// BlockHeaderPayload is the fixed wire size of a block header: four i32/u32
// fields plus two 32-byte hashes.
const BlockHeaderPayload = 4 + chainhash.HashSize*2 + 4 + 4 + 4

// BlockHeader is the 80-byte header shared by the block and headers
// messages.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// BlockHash computes the header's identity: the double-SHA256 of its
// 80-byte wire serialization.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	buf := make([]byte, 0, BlockHeaderPayload)
	w := &sliceWriter{buf: buf}
	_ = writeBlockHeader(w, h)
	return chainhash.DoubleHashH(w.buf)
}

// sliceWriter is a minimal io.Writer over a growable byte slice, used to
// avoid pulling in bytes.Buffer for the hot BlockHash path.
type sliceWriter struct{ buf []byte }

func (s *sliceWriter) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func writeBlockHeader(w io.Writer, h *BlockHeader) error {
	var buf [BlockHeaderPayload]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:4+chainhash.HashSize], h.PrevBlock[:])
	off := 4 + chainhash.HashSize
	copy(buf[off:off+chainhash.HashSize], h.MerkleRoot[:])
	off += chainhash.HashSize
	binary.LittleEndian.PutUint32(buf[off:off+4], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[off+4:off+8], h.Bits)
	binary.LittleEndian.PutUint32(buf[off+8:off+12], h.Nonce)

	if _, err := w.Write(buf[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write block header", err)
	}
	return nil
}

func readBlockHeader(r io.Reader, h *BlockHeader) error {
	var buf [BlockHeaderPayload]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read block header", err)
	}

	h.Version = int32(binary.LittleEndian.Uint32(buf[0:4]))
	copy(h.PrevBlock[:], buf[4:4+chainhash.HashSize])
	off := 4 + chainhash.HashSize
	copy(h.MerkleRoot[:], buf[off:off+chainhash.HashSize])
	off += chainhash.HashSize
	h.Timestamp = binary.LittleEndian.Uint32(buf[off : off+4])
	h.Bits = binary.LittleEndian.Uint32(buf[off+4 : off+8])
	h.Nonce = binary.LittleEndian.Uint32(buf[off+8 : off+12])
	return nil
}
