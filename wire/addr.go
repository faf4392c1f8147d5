// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/btctestnet/node/nodeerr"
)

// MaxAddrEntries bounds the number of addresses this node will decode
// from a single addr message.
const MaxAddrEntries = 1000

// MsgAddr carries a list of known peer addresses. This node parses it
// (spec requires a dedicated codec) but never acts on the contents (spec
// Non-goals: "received addr messages are parsed but not acted upon").
type MsgAddr struct {
	AddrList []NetAddress
}

func (m *MsgAddr) Command() string { return CmdAddr }

func (m *MsgAddr) Encode(w io.Writer) error {
	if err := WriteVarInt(w, uint64(len(m.AddrList))); err != nil {
		return err
	}
	for i := range m.AddrList {
		if err := writeNetAddress(w, &m.AddrList[i], true); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgAddr) Decode(r io.Reader) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxAddrEntries {
		return nodeerr.New(nodeerr.MessageTooLong, "addr message exceeds maximum entries")
	}
	m.AddrList = make([]NetAddress, count)
	for i := range m.AddrList {
		if err := readNetAddress(r, &m.AddrList[i], true); err != nil {
			return err
		}
	}
	return nil
}
