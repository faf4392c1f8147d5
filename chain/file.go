// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/wire"
)

// entrySize is the packed on-disk size of one non-genesis block entry:
// version(4) + merkle_root(32) + timestamp(4) + bits(4) + nonce(4).
const entrySize = 4 + chainhash.HashSize + 4 + 4 + 4

// Save rewrites path with one entrySize-byte entry per non-genesis
// block, oldest first. prev_hash is never stored; it is reconstructed
// on Load from the previous entry's identity, starting at genesis.
func (c *Chain) Save(path string) error {
	c.mu.Lock()
	blocks := append([]*Block(nil), c.blocks[1:]...)
	c.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, entrySize)
	for _, b := range blocks {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(b.Header.Version))
		copy(buf[4:4+chainhash.HashSize], b.Header.MerkleRoot[:])
		off := 4 + chainhash.HashSize
		binary.LittleEndian.PutUint32(buf[off:off+4], b.Header.Timestamp)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], b.Header.Bits)
		binary.LittleEndian.PutUint32(buf[off+8:off+12], b.Header.Nonce)
		if _, err := f.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a chain file written by Save and returns a Chain
// pre-populated with genesis plus every reconstructed entry. A missing
// file is treated as an empty (genesis-only) chain, not an error.
func Load(path string, params *chaincfg.Params) (*Chain, error) {
	c := New(params)

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prevHash := *params.GenesisHash
	buf := make([]byte, entrySize)
	for {
		_, err := io.ReadFull(f, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var header wire.BlockHeader
		header.Version = int32(binary.LittleEndian.Uint32(buf[0:4]))
		copy(header.MerkleRoot[:], buf[4:4+chainhash.HashSize])
		off := 4 + chainhash.HashSize
		header.Timestamp = binary.LittleEndian.Uint32(buf[off : off+4])
		header.Bits = binary.LittleEndian.Uint32(buf[off+4 : off+8])
		header.Nonce = binary.LittleEndian.Uint32(buf[off+8 : off+12])
		header.PrevBlock = prevHash

		block := NewBlock(header)
		c.blocks = append(c.blocks, block)
		prevHash = block.Identity
	}

	return c, nil
}
