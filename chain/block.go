// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/wire"
)

// Block is a chain node: the 80-byte header, its identity, and the
// transactions attached once the full block body has been downloaded.
// Txs is nil for headers-only nodes.
type Block struct {
	Header   wire.BlockHeader
	Identity chainhash.Hash
	Txs      []*wire.MsgTx
}

// NewBlock wraps header into a Block, computing its identity.
func NewBlock(header wire.BlockHeader) *Block {
	return &Block{
		Header:   header,
		Identity: header.BlockHash(),
	}
}

// TxIDs returns the identities of b's attached transactions, in order.
func (b *Block) TxIDs() []chainhash.Hash {
	ids := make([]chainhash.Hash, len(b.Txs))
	for i, tx := range b.Txs {
		ids[i] = tx.TxHash()
	}
	return ids
}
