// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer implements the per-connection session: the version
// handshake and the long-lived message dispatch loop described in
// spec §4.7/§4.8. Each Peer owns one socket and runs its own loop;
// message processing within a single peer is strictly sequential.
package peer

import (
	"crypto/rand"
	"encoding/binary"
	"net"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/chain"
	"github.com/btctestnet/node/events"
	"github.com/btctestnet/node/mempool"
	"github.com/btctestnet/node/nodeerr"
	"github.com/btctestnet/node/peerset"
	"github.com/btctestnet/node/wire"
)

// Watcher lets the wallet coordinator hook into the dispatch loop
// without peer needing to import the wallet package.
type Watcher interface {
	// ConfirmedTx reports that txid confirmed in a block. It returns
	// the watched address responsible, if any.
	ConfirmedTx(txid chainhash.Hash) (addr string, ok bool)
	// PendingTx scans tx's outputs against the watch list and emits
	// AddPendingBalance/NewTx events for any match.
	PendingTx(tx *wire.MsgTx, payerAddr string)
}

// Peer is one connected, handshaken remote node.
type Peer struct {
	conn    net.Conn
	writeMu sync.Mutex
	addr    string
	net     wire.BitcoinNet
	Version *wire.MsgVersion

	chain    *chain.Chain
	utxo     *chain.UTXOSet
	mempool  *mempool.Pool
	watcher  Watcher
	registry *peerset.Registry
	eventsCh chan<- events.Event
}

// Addr returns the peer's remote address.
func (p *Peer) Addr() string { return p.addr }

// Send serializes and writes msg to the peer's socket. Concurrent
// callers are serialized so their messages never interleave.
func (p *Peer) Send(msg wire.Message) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if err := wire.WriteMessage(p.conn, p.net, msg); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write message", err)
	}
	return nil
}

func randomNonce() uint64 {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// Deps bundles the shared state a Peer dispatches against.
type Deps struct {
	Net       wire.BitcoinNet
	Chain     *chain.Chain
	UTXO      *chain.UTXOSet
	Mempool   *mempool.Pool
	Watcher   Watcher
	Registry  *peerset.Registry
	Events    chan<- events.Event
	Timeout   time.Duration
	UserAgent string
	OurPort   uint16
}

func newPeer(conn net.Conn, deps Deps) *Peer {
	return &Peer{
		conn:     conn,
		addr:     conn.RemoteAddr().String(),
		net:      deps.Net,
		chain:    deps.Chain,
		utxo:     deps.UTXO,
		mempool:  deps.Mempool,
		watcher:  deps.Watcher,
		registry: deps.Registry,
		eventsCh: deps.Events,
	}
}

func setDeadline(conn net.Conn, timeout time.Duration) {
	if timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(timeout))
	}
}

func clearDeadline(conn net.Conn) {
	_ = conn.SetDeadline(time.Time{})
}

// DialAndHandshake connects to addr, performs the outbound handshake
// (§4.8), runs the bounded header-sync phase, and returns the
// resulting Peer ready to be registered and run.
func DialAndHandshake(addr string, deps Deps) (*Peer, error) {
	conn, err := net.DialTimeout("tcp", addr, deps.Timeout)
	if err != nil {
		return nil, nodeerr.Wrap(nodeerr.IO, "dial peer", err)
	}

	p := newPeer(conn, deps)
	setDeadline(conn, deps.Timeout)
	defer clearDeadline(conn)

	tip := deps.Chain.Tip().Identity
	ourVersion := wire.NewMsgVersion(conn.RemoteAddr().(*net.TCPAddr).IP, uint16(conn.RemoteAddr().(*net.TCPAddr).Port), deps.OurPort, randomNonce(), deps.UserAgent, int32(deps.Chain.Size()-1))
	ourVersion.Timestamp = time.Now().Unix()

	if err := p.Send(ourVersion); err != nil {
		conn.Close()
		return nil, err
	}

	theirVersion, err := readExpect(p, "version")
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.Version = theirVersion.(*wire.MsgVersion)

	if err := p.Send(&wire.MsgVerAck{}); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := readExpect(p, "verack"); err != nil {
		conn.Close()
		return nil, err
	}

	if err := p.Send(wire.NewMsgGetHeaders(tip)); err != nil {
		conn.Close()
		return nil, err
	}

	if err := p.initialHeaderSync(); err != nil {
		conn.Close()
		return nil, err
	}

	log.Infof("handshake complete with %s", p.addr)
	return p, nil
}

// AcceptAndHandshake performs the inbound handshake (§4.8): read
// version, send ours, read verack, send verack.
func AcceptAndHandshake(conn net.Conn, deps Deps) (*Peer, error) {
	p := newPeer(conn, deps)
	setDeadline(conn, deps.Timeout)
	defer clearDeadline(conn)

	theirVersion, err := readExpect(p, "version")
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.Version = theirVersion.(*wire.MsgVersion)

	ourVersion := wire.NewMsgVersion(conn.RemoteAddr().(*net.TCPAddr).IP, uint16(conn.RemoteAddr().(*net.TCPAddr).Port), deps.OurPort, randomNonce(), deps.UserAgent, int32(deps.Chain.Size()-1))
	ourVersion.Timestamp = time.Now().Unix()
	if err := p.Send(ourVersion); err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := readExpect(p, "verack"); err != nil {
		conn.Close()
		return nil, err
	}
	if err := p.Send(&wire.MsgVerAck{}); err != nil {
		conn.Close()
		return nil, err
	}

	log.Infof("inbound handshake complete with %s", p.addr)
	return p, nil
}

func readExpect(p *Peer, want string) (wire.Message, error) {
	msg, err := wire.ReadMessage(p.conn, p.net)
	if err != nil {
		return nil, nodeerr.Wrap(nodeerr.IO, "read message", err)
	}
	if msg.Command() != want {
		return nil, nodeerr.New(nodeerr.UnexpectedMessage, "expected "+want+", got "+msg.Command())
	}
	return msg, nil
}

// initialHeaderSync runs the bounded, handshake-time header-sync
// phase: push every header from each headers batch, following up with
// another getheaders on a full (2000-entry) batch; answer pings with
// pongs and, as a liveness bound, stop once two pongs have been sent;
// stop on a non-full batch.
func (p *Peer) initialHeaderSync() error {
	pongsSent := 0
	for {
		msg, err := wire.ReadMessage(p.conn, p.net)
		if err != nil {
			return nodeerr.Wrap(nodeerr.IO, "read message during header sync", err)
		}

		switch m := msg.(type) {
		case *wire.MsgHeaders:
			for _, h := range m.Headers {
				if err := p.chain.PushHeader(*h); err != nil {
					log.Warnf("push header during sync: %v", err)
				}
			}
			if len(m.Headers) < wire.MaxHeadersPerMsg {
				return nil
			}
			if err := p.Send(wire.NewMsgGetHeaders(p.chain.Tip().Identity)); err != nil {
				return err
			}

		case *wire.MsgPing:
			if err := p.Send(&wire.MsgPong{Nonce: m.Nonce}); err != nil {
				return err
			}
			pongsSent++
			if pongsSent >= 2 {
				return nil
			}

		default:
			// any other message arriving mid-sync is ignored
		}
	}
}
