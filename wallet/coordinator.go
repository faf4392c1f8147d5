// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet implements the wallet coordinator (§4.10): a
// single-consumer command loop that tracks a watch list of addresses,
// answers balance/history queries, and builds, signs and broadcasts
// payments.
package wallet

import (
	"sort"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/chain"
	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/events"
	"github.com/btctestnet/node/mempool"
	"github.com/btctestnet/node/peerset"
	"github.com/btctestnet/node/script"
	"github.com/btctestnet/node/wire"
)

type watchEntry struct {
	Addr     string
	Satoshis int64
}

// Coordinator owns the watched-address table and drives balance and
// history updates from chain events, per §4.10.
type Coordinator struct {
	utxo     *chain.UTXOSet
	mempool  *mempool.Pool
	registry *peerset.Registry
	params   *chaincfg.Params
	eventsCh chan<- events.Event
	cmdCh    <-chan events.Command

	mu       sync.RWMutex
	watched  []string
	watchTx  map[chainhash.Hash]watchEntry
	history  map[string][]events.HistoryEntry
}

// New constructs a Coordinator. Run must be called (typically in its
// own goroutine) to begin draining cmdCh.
func New(utxo *chain.UTXOSet, pool *mempool.Pool, registry *peerset.Registry, params *chaincfg.Params, eventsCh chan<- events.Event, cmdCh <-chan events.Command) *Coordinator {
	return &Coordinator{
		utxo:     utxo,
		mempool:  pool,
		registry: registry,
		params:   params,
		eventsCh: eventsCh,
		cmdCh:    cmdCh,
		watchTx:  make(map[chainhash.Hash]watchEntry),
		history:  make(map[string][]events.HistoryEntry),
	}
}

// Run drains cmdCh until it is closed, handling each command
// sequentially.
func (c *Coordinator) Run() {
	for cmd := range c.cmdCh {
		c.handle(cmd)
	}
}

func (c *Coordinator) handle(cmd events.Command) {
	switch m := cmd.(type) {
	case events.AddAddress:
		c.onAddAddress(m.Addr)
	case events.GetBalance:
		c.onGetBalance(m.Addr)
	case events.GetHistory:
		c.onGetHistory(m.Addr)
	case events.PayTo:
		c.onPayTo(m)
	}
}

func (c *Coordinator) emit(e events.Event) {
	if c.eventsCh != nil {
		c.eventsCh <- e
	}
}

func (c *Coordinator) addressHash20(addr string) ([20]byte, error) {
	_, hash20, err := script.DecodeAddress(addr, c.params)
	return hash20, err
}

func (c *Coordinator) onAddAddress(addr string) {
	c.mu.Lock()
	alreadyWatched := false
	for _, a := range c.watched {
		if a == addr {
			alreadyWatched = true
			break
		}
	}
	if !alreadyWatched {
		c.watched = append(c.watched, addr)
	}
	c.mu.Unlock()

	hash20, err := c.addressHash20(addr)
	if err != nil {
		c.emit(events.Error{Kind: "invalid_address", Message: err.Error()})
		return
	}

	for _, txid := range c.mempool.Identities() {
		tx, ok := c.mempool.Get(txid)
		if !ok {
			continue
		}
		c.notePendingOutputs(tx, addr, "", hash20)
	}

	c.emit(events.Balance{Satoshis: c.utxo.BalanceByPKHash(hash20), Addr: addr})

	c.mu.RLock()
	entries := append([]events.HistoryEntry(nil), c.history[addr]...)
	c.mu.RUnlock()
	c.emit(events.History{Entries: entries, Addr: addr})
}

func (c *Coordinator) onGetBalance(addr string) {
	hash20, err := c.addressHash20(addr)
	if err != nil {
		c.emit(events.Error{Kind: "invalid_address", Message: err.Error()})
		return
	}
	c.emit(events.Balance{Satoshis: c.utxo.BalanceByPKHash(hash20), Addr: addr})
}

func (c *Coordinator) onGetHistory(addr string) {
	c.mu.RLock()
	entries := append([]events.HistoryEntry(nil), c.history[addr]...)
	c.mu.RUnlock()
	c.emit(events.History{Entries: entries, Addr: addr})
}

// PendingTx implements peer.Watcher: it scans tx's outputs against the
// watch list and emits AddPendingBalance/NewTx for any match.
func (c *Coordinator) PendingTx(tx *wire.MsgTx, payerAddr string) {
	c.mu.RLock()
	watched := append([]string(nil), c.watched...)
	c.mu.RUnlock()

	for _, addr := range watched {
		hash20, err := c.addressHash20(addr)
		if err != nil {
			continue
		}
		c.notePendingOutputs(tx, addr, payerAddr, hash20)
	}
}

func (c *Coordinator) notePendingOutputs(tx *wire.MsgTx, addr, payerAddr string, hash20 [20]byte) {
	for _, out := range tx.TxOut {
		if !script.CanBeSpentBy(out.PkScript, hash20) {
			continue
		}

		c.mu.Lock()
		c.watchTx[tx.TxHash()] = watchEntry{Addr: addr, Satoshis: out.Value}
		c.history[addr] = append(c.history[addr], events.HistoryEntry{
			TxID:      tx.TxHash(),
			Confirmed: false,
			AmountSat: out.Value,
		})
		c.mu.Unlock()

		c.emit(events.AddPendingBalance{Satoshis: out.Value, Addr: addr})
		c.emit(events.NewTx{Tx: tx, PayerAddr: payerAddr, WatchedAddr: addr})
	}
}

// ConfirmedTx implements peer.Watcher: it reports whether txid was
// being watched, emitting AddConfirmedBalance and updating history if
// so.
func (c *Coordinator) ConfirmedTx(txid chainhash.Hash) (string, bool) {
	c.mu.Lock()
	entry, ok := c.watchTx[txid]
	if ok {
		delete(c.watchTx, txid)
		for i, h := range c.history[entry.Addr] {
			if h.TxID == txid {
				c.history[entry.Addr][i].Confirmed = true
			}
		}
	}
	c.mu.Unlock()

	if !ok {
		return "", false
	}
	c.emit(events.AddConfirmedBalance{Satoshis: entry.Satoshis, Addr: entry.Addr})
	return entry.Addr, true
}

// onPayTo resolves the payer's key from cmd.WIF, greedily selects
// UTXOs by descending value until the target amount plus fee is
// covered, builds and signs the spending transaction, validates it
// against the current UTXO snapshot, then inserts it into the
// wallet-watch map under the payer's own address and broadcasts it.
func (c *Coordinator) onPayTo(cmd events.PayTo) {
	priv, err := script.DecodeWIF(cmd.WIF, c.params)
	if err != nil {
		c.emit(events.Error{Kind: "invalid_wif", Message: err.Error()})
		return
	}
	payerHash20 := script.Hash160(priv.PubKey().SerializeCompressed())
	payerAddr := script.EncodeP2PKHAddress(payerHash20, c.params)
	payerScript := script.PayToPubKeyHashScript(payerHash20)

	candidates := c.utxo.OutputsByPKHash(payerHash20)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Output.Value > candidates[j].Output.Value
	})

	need := cmd.AmountSats + cmd.FeeSats
	var sum int64
	var selected []chain.OutPoint
	for _, op := range candidates {
		if sum >= need {
			break
		}
		selected = append(selected, op)
		sum += op.Output.Value
	}
	if sum < need {
		c.emit(events.Error{Kind: "insufficient_balance", Message: "not enough funds to cover amount plus fee"})
		return
	}

	_, targetHash20, err := script.DecodeAddress(cmd.Addr, c.params)
	if err != nil {
		c.emit(events.Error{Kind: "invalid_address", Message: err.Error()})
		return
	}

	tx := &wire.MsgTx{Version: 1}
	prevScripts := make([][]byte, len(selected))
	for i, op := range selected {
		tx.TxIn = append(tx.TxIn, &wire.TxIn{
			PreviousOutPoint: wire.OutPoint{Hash: op.TxID, Index: op.Output.Index},
			Sequence:         0xffffffff,
		})
		prevScripts[i] = op.Output.PkScript
	}

	tx.TxOut = append(tx.TxOut, &wire.TxOut{
		Value:    cmd.AmountSats,
		PkScript: script.PayToPubKeyHashScript(targetHash20),
	})
	if change := sum - need; change > 0 {
		tx.TxOut = append(tx.TxOut, &wire.TxOut{Value: change, PkScript: payerScript})
	}

	if err := script.SignP2PKH(tx, prevScripts, priv); err != nil {
		c.emit(events.Error{Kind: "invalid_tx", Message: err.Error()})
		return
	}

	if err := chain.ValidateTx(c.utxo, tx); err != nil {
		c.emit(events.Error{Kind: "invalid_tx", Message: err.Error()})
		return
	}

	txid := tx.TxHash()
	c.mu.Lock()
	c.watchTx[txid] = watchEntry{Addr: payerAddr, Satoshis: cmd.AmountSats}
	c.mu.Unlock()

	c.mempool.Insert(tx)
	if c.registry != nil {
		c.registry.Broadcast(tx)
	}

	c.emit(events.PaymentConfirmation{
		Tx:         tx,
		PayerAddr:  payerAddr,
		PayeeAddr:  cmd.Addr,
		AmountSats: cmd.AmountSats,
	})
}
