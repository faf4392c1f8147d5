// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/btctestnet/node/wire"
)

// SignatureScript produces the scriptSig for a P2PKH input spending an
// output locked by prevPkScript: the input at inputIndex is signed with
// priv under SIGHASH_ALL, and the script is built as
//
//	<len(sig)+1> <DER sig> <SIGHASH_ALL> <len(pubkey)> <compressed pubkey>
func SignatureScript(tx *wire.MsgTx, inputIndex int, prevPkScript []byte, priv *btcec.PrivateKey) ([]byte, error) {
	sigHash := SigHashAllHash(tx, inputIndex, prevPkScript)

	sig := ecdsa.Sign(priv, sigHash[:])
	derSig := sig.Serialize()

	pubKey := priv.PubKey().SerializeCompressed()

	sigPart := append(append([]byte{}, derSig...), SigHashAll)

	out := make([]byte, 0, 1+len(sigPart)+1+len(pubKey))
	out = append(out, byte(len(sigPart)))
	out = append(out, sigPart...)
	out = append(out, byte(len(pubKey)))
	out = append(out, pubKey...)
	return out, nil
}

// SignP2PKH signs every input of tx in place. prevPkScripts must contain,
// at the same index as tx.TxIn, the pk_script of the output that input
// spends.
func SignP2PKH(tx *wire.MsgTx, prevPkScripts [][]byte, priv *btcec.PrivateKey) error {
	for i, in := range tx.TxIn {
		sigScript, err := SignatureScript(tx, i, prevPkScripts[i], priv)
		if err != nil {
			return err
		}
		in.SignatureScript = sigScript
	}
	return nil
}
