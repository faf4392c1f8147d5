// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/script"
	"github.com/btctestnet/node/wire"
)

// Output is a single live transaction output.
type Output struct {
	Index    uint32
	Value    int64
	PkScript []byte
}

// UTXOSet maps a transaction identity to its ordered sequence of live
// outputs. An output is live iff no confirmed block has spent it.
type UTXOSet struct {
	mu   sync.RWMutex
	outs map[chainhash.Hash][]Output
}

// NewUTXOSet returns an empty UTXO set.
func NewUTXOSet() *UTXOSet {
	return &UTXOSet{outs: make(map[chainhash.Hash][]Output)}
}

// ApplyBlock applies every transaction in txs, in order: inputs remove
// the outputs they reference (pruning the txid entry once empty), then
// the transaction's own outputs are inserted.
func (u *UTXOSet) ApplyBlock(txs []*wire.MsgTx) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, tx := range txs {
		for _, in := range tx.TxIn {
			u.removeLocked(in.PreviousOutPoint.Hash, in.PreviousOutPoint.Index)
		}

		txid := tx.TxHash()
		outs := make([]Output, len(tx.TxOut))
		for i, out := range tx.TxOut {
			outs[i] = Output{Index: uint32(i), Value: out.Value, PkScript: out.PkScript}
		}
		if len(outs) > 0 {
			u.outs[txid] = outs
		}
	}
}

func (u *UTXOSet) removeLocked(txid chainhash.Hash, index uint32) {
	entries, ok := u.outs[txid]
	if !ok {
		return
	}
	for i, e := range entries {
		if e.Index == index {
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(entries) == 0 {
		delete(u.outs, txid)
	} else {
		u.outs[txid] = entries
	}
}

// Get returns the live output at (txid,index), if any.
func (u *UTXOSet) Get(txid chainhash.Hash, index uint32) (Output, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, e := range u.outs[txid] {
		if e.Index == index {
			return e, true
		}
	}
	return Output{}, false
}

// OutPoint identifies a (txid, index) pair alongside its live output,
// used by the queries below that need to name the spendable outpoint.
type OutPoint struct {
	TxID   chainhash.Hash
	Output Output
}

// OutputsByPKHash returns every live output payable to hash20.
func (u *UTXOSet) OutputsByPKHash(hash20 [20]byte) []OutPoint {
	u.mu.RLock()
	defer u.mu.RUnlock()

	var out []OutPoint
	for txid, entries := range u.outs {
		for _, e := range entries {
			if script.CanBeSpentBy(e.PkScript, hash20) {
				out = append(out, OutPoint{TxID: txid, Output: e})
			}
		}
	}
	return out
}

// BalanceByPKHash sums the value of every live output payable to
// hash20.
func (u *UTXOSet) BalanceByPKHash(hash20 [20]byte) int64 {
	var total int64
	for _, op := range u.OutputsByPKHash(hash20) {
		total += op.Output.Value
	}
	return total
}

// TotalBalance sums the value of every live output in the set.
func (u *UTXOSet) TotalBalance() int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()

	var total int64
	for _, entries := range u.outs {
		for _, e := range entries {
			total += e.Value
		}
	}
	return total
}

// Size returns the number of live outputs across every transaction.
func (u *UTXOSet) Size() int {
	u.mu.RLock()
	defer u.mu.RUnlock()

	var n int
	for _, entries := range u.outs {
		n += len(entries)
	}
	return n
}

// AddressOfOutpoint classifies the output at (txid,index) and returns
// its pkhash20, if it is a recognized P2PKH/P2SH script.
func (u *UTXOSet) AddressOfOutpoint(txid chainhash.Hash, index uint32) ([20]byte, bool) {
	out, ok := u.Get(txid, index)
	if !ok {
		return [20]byte{}, false
	}
	class, hash20 := script.Classify(out.PkScript)
	if class != script.ClassP2PKH && class != script.ClassP2SH {
		return [20]byte{}, false
	}
	return hash20, true
}
