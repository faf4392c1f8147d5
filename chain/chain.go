// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/nodeerr"
	"github.com/btctestnet/node/wire"
)

// forkScanDepth bounds how far back from the tip a pushed header's
// prev_hash is searched for when it doesn't extend the tip directly.
const forkScanDepth = 100

// Chain is an ordered, mutex-protected sequence of blocks, tail =
// genesis, head = tip. Side chains are never tracked: a header that
// forks off a non-tip ancestor is logged and dropped.
type Chain struct {
	mu     sync.Mutex
	blocks []*Block
}

// New creates a chain pre-populated with the genesis block for params.
func New(params *chaincfg.Params) *Chain {
	genesis := &Block{
		Header: wire.BlockHeader{
			Version:    params.GenesisVersion,
			MerkleRoot: *params.GenesisMerkleRoot,
			Timestamp:  params.GenesisTimestamp,
			Bits:       params.GenesisBits,
			Nonce:      params.GenesisNonce,
		},
		Identity: *params.GenesisHash,
	}
	return &Chain{blocks: []*Block{genesis}}
}

// Size returns the number of blocks in the chain, including genesis.
func (c *Chain) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

// Tip returns the chain's most recent block.
func (c *Chain) Tip() *Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks[len(c.blocks)-1]
}

// BlockByIdentity returns the block with the given identity, if any.
func (c *Chain) BlockByIdentity(id chainhash.Hash) (*Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.blocks) - 1; i >= 0; i-- {
		if c.blocks[i].Identity == id {
			return c.blocks[i], true
		}
	}
	return nil, false
}

// PushHeader appends header if it extends the tip. If it instead
// matches the identity of a recent block, the push is a no-op
// (duplicate tip-extension is idempotent). If its prev_hash matches a
// non-tip ancestor within the last forkScanDepth blocks, it is logged
// as a dropped fork. Anything else — stale data from a lagging peer —
// is silently ignored, per the resolved permissive push-header
// behavior.
func (c *Chain) PushHeader(header wire.BlockHeader) error {
	if err := CheckProofOfWork(header.BlockHash(), header.Bits); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tip := c.blocks[len(c.blocks)-1]
	identity := header.BlockHash()

	if header.PrevBlock == tip.Identity {
		c.blocks = append(c.blocks, NewBlock(header))
		return nil
	}

	depth := forkScanDepth
	if depth > len(c.blocks) {
		depth = len(c.blocks)
	}
	for i := 0; i < depth; i++ {
		idx := len(c.blocks) - 1 - i
		if c.blocks[idx].Identity == identity {
			return nil
		}
		if i > 0 && c.blocks[idx].Identity == header.PrevBlock {
			log.Warnf("dropping fork at height %d: %v", idx+1, identity)
			return nil
		}
	}

	log.Debugf("ignoring header with unknown ancestor: %v", identity)
	return nil
}

// AddBlockTxs locates the block with the given identity and attaches
// txs to it after verifying their merkle root matches the stored
// header, applying the block's effects to utxo.
func (c *Chain) AddBlockTxs(identity chainhash.Hash, txs []*wire.MsgTx, utxo *UTXOSet) error {
	c.mu.Lock()
	block, ok := c.findLocked(identity)
	c.mu.Unlock()
	if !ok {
		return nodeerr.New(nodeerr.UnexpectedMessage, "block not found in chain")
	}

	txids := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		txids[i] = tx.TxHash()
	}
	root := MerkleRoot(txids)
	if root != block.Header.MerkleRoot {
		return nodeerr.New(nodeerr.MerkleMismatch, "merkle root does not match header")
	}

	block.Txs = txs
	if utxo != nil {
		utxo.ApplyBlock(txs)
	}
	return nil
}

func (c *Chain) findLocked(identity chainhash.Hash) (*Block, bool) {
	for i := len(c.blocks) - 1; i >= 0; i-- {
		if c.blocks[i].Identity == identity {
			return c.blocks[i], true
		}
	}
	return nil, false
}

// BlocksFrom returns every non-genesis chain block with header
// timestamp at least start, oldest first. The genesis block is never
// returned.
func (c *Chain) BlocksFrom(start uint32) []*Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Block, 0, len(c.blocks))
	for _, b := range c.blocks[1:] {
		if b.Header.Timestamp >= start {
			out = append(out, b)
		}
	}
	return out
}

// HeadersAfter walks the chain tail-to-tip and returns up to max
// headers found strictly after the block identified by any hash in
// locator (scanning from the tip, the first block whose identity is in
// locator is used as the starting point; if none match, headers starts
// from genesis).
func (c *Chain) HeadersAfter(locator []chainhash.Hash, max int) []wire.BlockHeader {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := 0
scan:
	for i := len(c.blocks) - 1; i >= 0; i-- {
		for _, loc := range locator {
			if c.blocks[i].Identity == loc {
				start = i + 1
				break scan
			}
		}
	}

	var out []wire.BlockHeader
	for i := start; i < len(c.blocks) && len(out) < max; i++ {
		out = append(out, c.blocks[i].Header)
	}
	return out
}
