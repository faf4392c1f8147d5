// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/nodeerr"
)

// MaxScriptSize bounds the size of a single script this node will decode.
const MaxScriptSize = 10000

// MaxTxInPerMessage and MaxTxOutPerMessage bound the number of inputs and
// outputs this node will decode for a single transaction.
const (
	MaxTxInPerMessage  = 100000
	MaxTxOutPerMessage = 100000
)

// OutPoint identifies a specific output of a specific previous
// transaction.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

func (op *OutPoint) encode(w io.Writer) error {
	if _, err := w.Write(op.Hash[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write outpoint.hash", err)
	}
	if err := writeUint32LE(w, op.Index); err != nil {
		return err
	}
	return nil
}

func (op *OutPoint) decode(r io.Reader) error {
	if _, err := io.ReadFull(r, op.Hash[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read outpoint.hash", err)
	}
	idx, err := readUint32LE(r)
	if err != nil {
		return err
	}
	op.Index = idx
	return nil
}

// TxIn is a single transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

func (ti *TxIn) encode(w io.Writer) error {
	if err := ti.PreviousOutPoint.encode(w); err != nil {
		return err
	}
	if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
		return err
	}
	if err := writeUint32LE(w, ti.Sequence); err != nil {
		return err
	}
	return nil
}

func (ti *TxIn) decode(r io.Reader) error {
	if err := ti.PreviousOutPoint.decode(r); err != nil {
		return err
	}
	sig, err := ReadVarBytes(r, MaxScriptSize, "tx_in.signature_script")
	if err != nil {
		return err
	}
	ti.SignatureScript = sig
	seq, err := readUint32LE(r)
	if err != nil {
		return err
	}
	ti.Sequence = seq
	return nil
}

// TxOut is a single transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

func (to *TxOut) encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, to.Value); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write tx_out.value", err)
	}
	return WriteVarBytes(w, to.PkScript)
}

func (to *TxOut) decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &to.Value); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read tx_out.value", err)
	}
	script, err := ReadVarBytes(r, MaxScriptSize, "tx_out.pk_script")
	if err != nil {
		return err
	}
	to.PkScript = script
	return nil
}

// MsgTx is a raw Bitcoin transaction.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

func (m *MsgTx) Command() string { return CmdTx }

func (m *MsgTx) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, m.Version); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write tx.version", err)
	}
	if err := WriteVarInt(w, uint64(len(m.TxIn))); err != nil {
		return err
	}
	for _, ti := range m.TxIn {
		if err := ti.encode(w); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(m.TxOut))); err != nil {
		return err
	}
	for _, to := range m.TxOut {
		if err := to.encode(w); err != nil {
			return err
		}
	}
	if err := writeUint32LE(w, m.LockTime); err != nil {
		return err
	}
	return nil
}

func (m *MsgTx) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &m.Version); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read tx.version", err)
	}

	inCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if inCount > MaxTxInPerMessage {
		return nodeerr.New(nodeerr.MessageTooLong, "tx input count exceeds maximum")
	}
	m.TxIn = make([]*TxIn, inCount)
	for i := range m.TxIn {
		ti := &TxIn{}
		if err := ti.decode(r); err != nil {
			return err
		}
		m.TxIn[i] = ti
	}

	outCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if outCount > MaxTxOutPerMessage {
		return nodeerr.New(nodeerr.MessageTooLong, "tx output count exceeds maximum")
	}
	m.TxOut = make([]*TxOut, outCount)
	for i := range m.TxOut {
		to := &TxOut{}
		if err := to.decode(r); err != nil {
			return err
		}
		m.TxOut[i] = to
	}

	lockTime, err := readUint32LE(r)
	if err != nil {
		return err
	}
	m.LockTime = lockTime
	return nil
}

// TxHash computes the transaction's identity: the double-SHA256 of its
// canonical wire serialization.
func (m *MsgTx) TxHash() chainhash.Hash {
	buf := &sliceWriter{}
	_ = m.Encode(buf)
	return chainhash.DoubleHashH(buf.buf)
}
