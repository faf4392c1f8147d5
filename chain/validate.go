// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/btctestnet/node/nodeerr"
	"github.com/btctestnet/node/script"
	"github.com/btctestnet/node/wire"
)

// ValidateTx implements §4.6: tx is valid iff it has at least one
// input, every input's referenced output exists in utxo, the P2PKH
// interpreter accepts every input against its spent output's
// pk_script, and the sum of outputs does not exceed the sum of spent
// values. All arithmetic is signed 64-bit and negative values are
// rejected.
func ValidateTx(utxo *UTXOSet, tx *wire.MsgTx) error {
	if len(tx.TxIn) == 0 {
		return nodeerr.New(nodeerr.InvalidTx, "transaction has no inputs")
	}

	var spent int64
	for i, in := range tx.TxIn {
		out, ok := utxo.Get(in.PreviousOutPoint.Hash, in.PreviousOutPoint.Index)
		if !ok {
			return nodeerr.New(nodeerr.InvalidTx, "spent output not found in utxo set")
		}
		if out.Value < 0 {
			return nodeerr.New(nodeerr.InvalidTx, "spent output has negative value")
		}

		ok, err := script.Evaluate(out.PkScript, in.SignatureScript, tx, i)
		if err != nil {
			return nodeerr.Wrap(nodeerr.InvalidTx, "script evaluation error", err)
		}
		if !ok {
			return nodeerr.New(nodeerr.InvalidTx, "input script did not validate")
		}

		spent += out.Value
	}

	var paid int64
	for _, out := range tx.TxOut {
		if out.Value < 0 {
			return nodeerr.New(nodeerr.InvalidTx, "output has negative value")
		}
		paid += out.Value
	}

	if paid > spent {
		return nodeerr.New(nodeerr.InvalidTx, "outputs exceed spent inputs")
	}
	return nil
}
