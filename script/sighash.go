// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/wire"
)

// SigHashAllHash computes the SIGHASH_ALL signing hash for the input at
// inputIndex: the transaction is serialized with that input's
// script_sig replaced by prevPkScript and every other input's
// script_sig replaced by an empty byte string, the 4-byte sighash type
// is appended, and the result is double-SHA256'd.
func SigHashAllHash(tx *wire.MsgTx, inputIndex int, prevPkScript []byte) chainhash.Hash {
	shallow := &wire.MsgTx{
		Version:  tx.Version,
		TxOut:    tx.TxOut,
		LockTime: tx.LockTime,
	}
	shallow.TxIn = make([]*wire.TxIn, len(tx.TxIn))
	for i, in := range tx.TxIn {
		script := []byte{}
		if i == inputIndex {
			script = prevPkScript
		}
		shallow.TxIn[i] = &wire.TxIn{
			PreviousOutPoint: in.PreviousOutPoint,
			SignatureScript:  script,
			Sequence:         in.Sequence,
		}
	}

	buf := &hashWriter{}
	_ = shallow.Encode(buf)

	var sigHashType [4]byte
	binary.LittleEndian.PutUint32(sigHashType[:], SigHashAll)
	buf.b = append(buf.b, sigHashType[:]...)

	return chainhash.DoubleHashH(buf.b)
}

// hashWriter is a minimal io.Writer over a growable byte slice.
type hashWriter struct{ b []byte }

func (h *hashWriter) Write(p []byte) (int, error) {
	h.b = append(h.b, p...)
	return len(p), nil
}
