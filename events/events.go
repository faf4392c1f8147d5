// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package events defines the typed event and command values exchanged
// between the node core and its presentation layer: a single-producer,
// many-consumer event stream out of the node, and a command channel
// into it. The presentation layer itself (a GUI, a CLI) is out of
// scope; this package only defines the interface contract.
package events

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/wire"
)

// ErrorKind mirrors the node's error taxonomy for the purposes of the
// UI-facing Error event, without pulling in nodeerr's wrapped-error
// plumbing.
type ErrorKind string

// Event is implemented by every value the node may send on its event
// channel to the presentation layer.
type Event interface {
	isEvent()
}

// NodeReady is emitted once after initial peer connection and sync.
type NodeReady struct{}

// NewTx reports an unconfirmed transaction paying a watched address.
type NewTx struct {
	Tx          *wire.MsgTx
	PayerAddr   string
	WatchedAddr string
}

// ConfirmedTx reports that a previously pending transaction has
// confirmed in a block.
type ConfirmedTx struct {
	TxID        chainhash.Hash
	WatchedAddr string
}

// Balance reports the current confirmed balance of addr.
type Balance struct {
	Satoshis int64
	Addr     string
}

// AddPendingBalance reports unconfirmed incoming value for addr.
type AddPendingBalance struct {
	Satoshis int64
	Addr     string
}

// AddConfirmedBalance reports newly confirmed incoming value for addr.
type AddConfirmedBalance struct {
	Satoshis int64
	Addr     string
}

// PaymentConfirmation reports a payment the wallet coordinator made on
// behalf of the UI has been broadcast.
type PaymentConfirmation struct {
	Tx         *wire.MsgTx
	PayerAddr  string
	PayeeAddr  string
	AmountSats int64
}

// HistoryEntry is one line of an address's transaction history.
type HistoryEntry struct {
	TxID      chainhash.Hash
	Confirmed bool
	AmountSat int64
}

// History reports addr's transaction history.
type History struct {
	Entries []HistoryEntry
	Addr    string
}

// Error surfaces a user-visible failure.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Loading reports block-download progress in [0,1].
type Loading struct {
	Fraction float64
}

// FinishedConnectingToPeers is emitted once the initial peer
// connection pass completes.
type FinishedConnectingToPeers struct{}

func (NodeReady) isEvent()                  {}
func (NewTx) isEvent()                      {}
func (ConfirmedTx) isEvent()                {}
func (Balance) isEvent()                    {}
func (AddPendingBalance) isEvent()          {}
func (AddConfirmedBalance) isEvent()        {}
func (PaymentConfirmation) isEvent()        {}
func (History) isEvent()                    {}
func (Error) isEvent()                      {}
func (Loading) isEvent()                    {}
func (FinishedConnectingToPeers) isEvent()  {}

// Command is implemented by every value the presentation layer may
// send on the node's command channel.
type Command interface {
	isCommand()
}

// GetBalance requests a Balance event for addr.
type GetBalance struct {
	Addr string
}

// GetHistory requests a History event for addr.
type GetHistory struct {
	Addr string
}

// PayTo requests the wallet coordinator build, sign and broadcast a
// payment of AmountSats (plus FeeSats) to Addr, spending from the
// address derived from WIF.
type PayTo struct {
	WIF        string
	Addr       string
	AmountSats int64
	FeeSats    int64
}

// AddAddress registers Addr for balance and history tracking.
type AddAddress struct {
	Addr string
}

func (GetBalance) isCommand()  {}
func (GetHistory) isCommand()  {}
func (PayTo) isCommand()       {}
func (AddAddress) isCommand()  {}
