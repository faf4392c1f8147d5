// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/nodeerr"
	"github.com/btctestnet/node/script"
	"github.com/btctestnet/node/wire"
)

const testWIFFixture = "cSnB7AwCEDKrdq1x2XmHu8f1BHPh6KeuBjeXgssDe2cMpeGDM7oB"

func TestValidateTxNoInputs(t *testing.T) {
	utxo := NewUTXOSet()
	tx := &wire.MsgTx{Version: 1}

	err := ValidateTx(utxo, tx)
	require.Error(t, err)

	var nerr *nodeerr.Error
	require.True(t, errors.As(err, &nerr))
	require.Equal(t, nodeerr.InvalidTx, nerr.Kind)
}

func TestValidateTxUnknownOutpoint(t *testing.T) {
	utxo := NewUTXOSet()
	tx := &wire.MsgTx{
		Version: 1,
		TxIn:    []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0}}},
		TxOut:   []*wire.TxOut{{Value: 1}},
	}

	err := ValidateTx(utxo, tx)
	require.Error(t, err)

	var nerr *nodeerr.Error
	require.True(t, errors.As(err, &nerr))
	require.Equal(t, nodeerr.InvalidTx, nerr.Kind)
}

func TestValidateTxRejectsOverspend(t *testing.T) {
	priv, err := script.DecodeWIF(testWIFFixture, &chaincfg.TestNet3Params)
	require.NoError(t, err)
	hash20 := script.Hash160(priv.PubKey().SerializeCompressed())
	pkScript := script.PayToPubKeyHashScript(hash20)

	utxo := NewUTXOSet()
	fundingTx := &wire.MsgTx{
		Version: 1,
		TxIn:    []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0xffffffff}}},
		TxOut:   []*wire.TxOut{{Value: 10, PkScript: pkScript}},
	}
	utxo.ApplyBlock([]*wire.MsgTx{fundingTx})

	spendTx := &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Hash: fundingTx.TxHash(), Index: 0},
		}},
		TxOut: []*wire.TxOut{{Value: 20, PkScript: pkScript}},
	}
	require.NoError(t, script.SignP2PKH(spendTx, [][]byte{pkScript}, priv))

	err = ValidateTx(utxo, spendTx)
	require.Error(t, err)

	var nerr *nodeerr.Error
	require.True(t, errors.As(err, &nerr))
	require.Equal(t, nodeerr.InvalidTx, nerr.Kind)
}
