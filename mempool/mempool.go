// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool holds unconfirmed transactions the node has seen or
// broadcast. There is no fee estimation, orphan pool, or persistence:
// entries live only for the process lifetime and are purged once their
// transaction confirms in a block.
package mempool

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/wire"
)

// Pool is a mutex-guarded map from transaction identity to the raw
// transaction.
type Pool struct {
	mu  sync.RWMutex
	txs map[chainhash.Hash]*wire.MsgTx
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{txs: make(map[chainhash.Hash]*wire.MsgTx)}
}

// Has reports whether id is already known to the pool.
func (p *Pool) Has(id chainhash.Hash) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.txs[id]
	return ok
}

// Get returns the transaction for id, if present.
func (p *Pool) Get(id chainhash.Hash) (*wire.MsgTx, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	tx, ok := p.txs[id]
	return tx, ok
}

// Insert adds tx to the pool, keyed by its own hash.
func (p *Pool) Insert(tx *wire.MsgTx) chainhash.Hash {
	id := tx.TxHash()
	p.mu.Lock()
	p.txs[id] = tx
	p.mu.Unlock()
	return id
}

// Remove purges id from the pool, e.g. once its transaction confirms.
func (p *Pool) Remove(id chainhash.Hash) {
	p.mu.Lock()
	delete(p.txs, id)
	p.mu.Unlock()
}

// Identities returns every transaction identity currently held.
func (p *Pool) Identities() []chainhash.Hash {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]chainhash.Hash, 0, len(p.txs))
	for id := range p.txs {
		out = append(out, id)
	}
	return out
}

// Len returns the number of transactions in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.txs)
}
