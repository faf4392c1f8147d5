// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/btctestnet/node/nodeerr"
)

// MsgVerAck acknowledges a version message. It carries no payload.
type MsgVerAck struct{}

func (m *MsgVerAck) Command() string         { return CmdVerAck }
func (m *MsgVerAck) Encode(w io.Writer) error { return nil }
func (m *MsgVerAck) Decode(r io.Reader) error { return nil }

// MsgMemPool requests an inv of every transaction the peer holds in its
// mempool. It carries no payload.
type MsgMemPool struct{}

func (m *MsgMemPool) Command() string         { return CmdMemPool }
func (m *MsgMemPool) Encode(w io.Writer) error { return nil }
func (m *MsgMemPool) Decode(r io.Reader) error { return nil }

// MsgSendHeaders requests that new blocks be announced via headers rather
// than inv. It carries no payload.
type MsgSendHeaders struct{}

func (m *MsgSendHeaders) Command() string         { return CmdSendHeaders }
func (m *MsgSendHeaders) Encode(w io.Writer) error { return nil }
func (m *MsgSendHeaders) Decode(r io.Reader) error { return nil }

// MsgPing carries a nonce used to measure liveness; the receiver must
// reply with a pong carrying the same nonce.
type MsgPing struct {
	Nonce uint64
}

func (m *MsgPing) Command() string { return CmdPing }
func (m *MsgPing) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, m.Nonce); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write ping.nonce", err)
	}
	return nil
}
func (m *MsgPing) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &m.Nonce); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read ping.nonce", err)
	}
	return nil
}

// MsgPong replies to a ping, echoing its nonce.
type MsgPong struct {
	Nonce uint64
}

func (m *MsgPong) Command() string { return CmdPong }
func (m *MsgPong) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, m.Nonce); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write pong.nonce", err)
	}
	return nil
}
func (m *MsgPong) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &m.Nonce); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read pong.nonce", err)
	}
	return nil
}

// MsgSendCmpct signals (or withdraws) compact block relay support. This
// node neither sends compact blocks nor acts on the announce flag (spec
// Non-goals exclude compact blocks); it accepts and ignores the message.
type MsgSendCmpct struct {
	Announce bool
	Version  uint64
}

func (m *MsgSendCmpct) Command() string { return CmdSendCmpct }
func (m *MsgSendCmpct) Encode(w io.Writer) error {
	announce := byte(0)
	if m.Announce {
		announce = 1
	}
	if _, err := w.Write([]byte{announce}); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write sendcmpct.announce", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.Version); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write sendcmpct.version", err)
	}
	return nil
}
func (m *MsgSendCmpct) Decode(r io.Reader) error {
	var announce [1]byte
	if _, err := io.ReadFull(r, announce[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read sendcmpct.announce", err)
	}
	m.Announce = announce[0] != 0
	if err := binary.Read(r, binary.LittleEndian, &m.Version); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read sendcmpct.version", err)
	}
	return nil
}

// MsgFeeFilter advertises the minimum fee rate (satoshis per kB) the
// sender wants to receive transaction announcements for. This node
// applies no mempool fee policy (spec Non-goals); it accepts and
// ignores the value.
type MsgFeeFilter struct {
	FeeRate int64
}

func (m *MsgFeeFilter) Command() string { return CmdFeeFilter }
func (m *MsgFeeFilter) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, m.FeeRate); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write feefilter.fee_rate", err)
	}
	return nil
}
func (m *MsgFeeFilter) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &m.FeeRate); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read feefilter.fee_rate", err)
	}
	return nil
}
