// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the Bitcoin P2P wire protocol subset this node
// speaks: message framing, the compact-size varint, and codecs for the
// version, verack, ping, pong, sendcmpct, sendheaders, getheaders, headers,
// inv, getdata, block, tx, mempool, addr and feefilter messages.
package wire

import "fmt"

// ProtocolVersion is the protocol version this node advertises and the
// version it always sends with getheaders, per spec.
const ProtocolVersion uint32 = 70015

// ServiceFlag identifies services supported by a peer.
type ServiceFlag uint64

const (
	// SFNodeNetwork indicates a peer is a full node that can serve the
	// complete block chain.
	SFNodeNetwork ServiceFlag = 1 << iota
)

// BitcoinNet represents which Bitcoin network a message belongs to, carried
// as the four-byte magic at the front of every message header.
type BitcoinNet uint32

const (
	// TestNet3 is the magic value for the Bitcoin test network (version
	// 3), the only network this node joins. On the wire this is the
	// byte sequence 0B 11 09 07 (little-endian encoding of 0x0709110b).
	TestNet3 BitcoinNet = 0x0709110b
)

func (n BitcoinNet) String() string {
	if n == TestNet3 {
		return "TestNet3"
	}
	return fmt.Sprintf("Unknown BitcoinNet (%d)", uint32(n))
}

// CommandSize is the fixed, NUL-padded width of the command field in a
// message header.
const CommandSize = 12

// Command strings for every message type this node implements.
const (
	CmdVersion     = "version"
	CmdVerAck      = "verack"
	CmdPing        = "ping"
	CmdPong        = "pong"
	CmdSendCmpct   = "sendcmpct"
	CmdSendHeaders = "sendheaders"
	CmdGetHeaders  = "getheaders"
	CmdHeaders     = "headers"
	CmdInv         = "inv"
	CmdGetData     = "getdata"
	CmdBlock       = "block"
	CmdTx          = "tx"
	CmdMemPool     = "mempool"
	CmdAddr        = "addr"
	CmdFeeFilter   = "feefilter"
)

// MaxPayloadSize is the largest payload this codec will allocate a buffer
// for when decoding. A block can legitimately approach 4MB; this leaves
// generous headroom without being unbounded.
const MaxPayloadSize = 32 * 1024 * 1024
