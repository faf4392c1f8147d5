// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/btctestnet/node/events"
	"github.com/btctestnet/node/wire"
)

// Run enters the steady-state dispatch loop (§4.7): read a framed
// message, log it, dispatch to its handler. Handler errors are logged
// and the loop continues; any error from ReadMessage (I/O, bad magic,
// checksum mismatch, oversized or undecodable payload) closes the
// connection and terminates it.
func (p *Peer) Run() {
	for {
		msg, err := wire.ReadMessage(p.conn, p.net)
		if err != nil {
			log.Warnf("peer %s: read error, closing: %v", p.addr, err)
			p.conn.Close()
			return
		}

		log.Debugf("peer %s: %s", p.addr, msg.Command())
		if err := p.dispatch(msg); err != nil {
			log.Warnf("peer %s: handler error for %s: %v", p.addr, msg.Command(), err)
		}
	}
}

func (p *Peer) dispatch(msg wire.Message) error {
	switch m := msg.(type) {
	case *wire.MsgHeaders:
		return p.onHeaders(m)
	case *wire.MsgGetHeaders:
		return p.onGetHeaders(m)
	case *wire.MsgGetData:
		return p.onGetData(m)
	case *wire.MsgInv:
		return p.onInv(m)
	case *wire.MsgBlock:
		return p.onBlock(m)
	case *wire.MsgTx:
		return p.onTx(m)
	case *wire.MsgPing:
		return p.Send(&wire.MsgPong{Nonce: m.Nonce})
	case *wire.MsgMemPool:
		return p.onMemPool()
	case *wire.MsgSendHeaders, *wire.MsgSendCmpct, *wire.MsgAddr, *wire.MsgFeeFilter:
		return nil
	default:
		return nil
	}
}

func (p *Peer) onHeaders(m *wire.MsgHeaders) error {
	for _, h := range m.Headers {
		if err := p.chain.PushHeader(*h); err != nil {
			log.Warnf("push header: %v", err)
		}
	}
	if len(m.Headers) == wire.MaxHeadersPerMsg {
		return p.Send(wire.NewMsgGetHeaders(p.chain.Tip().Identity))
	}
	return nil
}

func (p *Peer) onGetHeaders(m *wire.MsgGetHeaders) error {
	headers := p.chain.HeadersAfter(m.BlockLocatorHashes, wire.MaxHeadersPerMsg)
	out := make([]*wire.BlockHeader, len(headers))
	for i := range headers {
		h := headers[i]
		out[i] = &h
	}
	return p.Send(&wire.MsgHeaders{Headers: out})
}

func (p *Peer) onGetData(m *wire.MsgGetData) error {
	for _, inv := range m.InvList {
		switch inv.Type {
		case wire.InvTypeTx:
			if tx, ok := p.mempool.Get(inv.Hash); ok {
				if err := p.Send(tx); err != nil {
					return err
				}
			}
		case wire.InvTypeBlock:
			block, ok := p.chain.BlockByIdentity(inv.Hash)
			if !ok || block.Txs == nil {
				continue
			}
			msg := &wire.MsgBlock{Header: block.Header, Transactions: block.Txs}
			if err := p.Send(msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Peer) onInv(m *wire.MsgInv) error {
	var want []wire.InvVect
	for _, inv := range m.InvList {
		switch inv.Type {
		case wire.InvTypeTx:
			if !p.mempool.Has(inv.Hash) {
				want = append(want, inv)
			}
		case wire.InvTypeBlock:
			want = append(want, inv)
		}
	}
	if len(want) == 0 {
		return nil
	}
	return p.Send(&wire.MsgGetData{InvList: want})
}

func (p *Peer) onBlock(m *wire.MsgBlock) error {
	identity := m.Header.BlockHash()
	if err := p.chain.PushHeader(m.Header); err != nil {
		return err
	}
	if err := p.chain.AddBlockTxs(identity, m.Transactions, p.utxo); err != nil {
		return err
	}

	if p.watcher == nil {
		return nil
	}
	for _, tx := range m.Transactions {
		txid := tx.TxHash()
		if addr, ok := p.watcher.ConfirmedTx(txid); ok {
			p.mempool.Remove(txid)
			if p.eventsCh != nil {
				p.eventsCh <- events.ConfirmedTx{TxID: txid, WatchedAddr: addr}
			}
		}
	}
	return nil
}

func (p *Peer) onTx(m *wire.MsgTx) error {
	id := m.TxHash()
	if p.mempool.Has(id) {
		return nil
	}
	p.mempool.Insert(m)

	if p.registry != nil {
		p.registry.Broadcast(m)
	}
	if p.watcher != nil {
		p.watcher.PendingTx(m, p.addr)
	}
	return nil
}

func (p *Peer) onMemPool() error {
	ids := p.mempool.Identities()
	inv := make([]wire.InvVect, len(ids))
	for i, id := range ids {
		inv[i] = wire.InvVect{Type: wire.InvTypeTx, Hash: id}
	}
	return p.Send(&wire.MsgInv{InvList: inv})
}
