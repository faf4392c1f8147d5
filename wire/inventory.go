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

// InvType identifies what kind of item an inventory vector refers to.
type InvType uint32

const (
	// InvTypeTx identifies a transaction.
	InvTypeTx InvType = 1
	// InvTypeBlock identifies a block.
	InvTypeBlock InvType = 2
)

// InvVect is a single (type, hash) inventory entry as carried by the inv
// and getdata messages.
type InvVect struct {
	Type InvType
	Hash chainhash.Hash
}

func writeInvVect(w io.Writer, iv *InvVect) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(iv.Type)); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write inv_vect.type", err)
	}
	if _, err := w.Write(iv.Hash[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write inv_vect.hash", err)
	}
	return nil
}

func readInvVect(r io.Reader, iv *InvVect) error {
	var typ uint32
	if err := binary.Read(r, binary.LittleEndian, &typ); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read inv_vect.type", err)
	}
	iv.Type = InvType(typ)
	if _, err := io.ReadFull(r, iv.Hash[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read inv_vect.hash", err)
	}
	return nil
}

// MaxInvEntries bounds the number of inventory entries this node will
// decode from a single inv or getdata message.
const MaxInvEntries = 50000

func writeInvList(w io.Writer, list []InvVect) error {
	if err := WriteVarInt(w, uint64(len(list))); err != nil {
		return err
	}
	for i := range list {
		if err := writeInvVect(w, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func readInvList(r io.Reader) ([]InvVect, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > MaxInvEntries {
		return nil, nodeerr.New(nodeerr.MessageTooLong, "inventory list exceeds maximum entries")
	}
	list := make([]InvVect, count)
	for i := range list {
		if err := readInvVect(r, &list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// MsgInv advertises items the sender has available.
type MsgInv struct {
	InvList []InvVect
}

func (m *MsgInv) Command() string           { return CmdInv }
func (m *MsgInv) Encode(w io.Writer) error   { return writeInvList(w, m.InvList) }
func (m *MsgInv) Decode(r io.Reader) error {
	list, err := readInvList(r)
	if err != nil {
		return err
	}
	m.InvList = list
	return nil
}

// MsgGetData requests the full data for a set of previously advertised
// inventory items.
type MsgGetData struct {
	InvList []InvVect
}

func (m *MsgGetData) Command() string         { return CmdGetData }
func (m *MsgGetData) Encode(w io.Writer) error { return writeInvList(w, m.InvList) }
func (m *MsgGetData) Decode(r io.Reader) error {
	list, err := readInvList(r)
	if err != nil {
		return err
	}
	m.InvList = list
	return nil
}
