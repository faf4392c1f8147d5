// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/btctestnet/node/nodeerr"
)

// MaxBlockTxCount bounds the number of transactions this node will decode
// from a single block message.
const MaxBlockTxCount = 1000000

// MsgBlock carries a full block: its header and every transaction.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

func (m *MsgBlock) Command() string { return CmdBlock }

func (m *MsgBlock) Encode(w io.Writer) error {
	if err := writeBlockHeader(w, &m.Header); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(m.Transactions))); err != nil {
		return err
	}
	for _, tx := range m.Transactions {
		if err := tx.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgBlock) Decode(r io.Reader) error {
	if err := readBlockHeader(r, &m.Header); err != nil {
		return err
	}
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxBlockTxCount {
		return nodeerr.New(nodeerr.MessageTooLong, "block transaction count exceeds maximum")
	}
	m.Transactions = make([]*MsgTx, count)
	for i := range m.Transactions {
		tx := &MsgTx{}
		if err := tx.Decode(r); err != nil {
			return err
		}
		m.Transactions[i] = tx
	}
	return nil
}
