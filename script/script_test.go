package script

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/wire"
)

func TestClassifyP2PKH(t *testing.T) {
	var hash20 [20]byte
	copy(hash20[:], []byte("0123456789abcdefghi"))

	pk := PayToPubKeyHashScript(hash20)
	class, got := Classify(pk)
	require.Equal(t, ClassP2PKH, class)
	require.Equal(t, hash20, got)
}

func TestAddressRoundTrip(t *testing.T) {
	var hash20 [20]byte
	copy(hash20[:], []byte("0123456789abcdefghi"))

	addr := EncodeP2PKHAddress(hash20, &chaincfg.TestNet3Params)
	kind, decoded, err := DecodeAddress(addr, &chaincfg.TestNet3Params)
	require.NoError(t, err)
	require.Equal(t, AddressP2PKH, kind)
	require.Equal(t, hash20, decoded)
}

func TestDecodeAddressBadChecksum(t *testing.T) {
	var hash20 [20]byte
	addr := EncodeP2PKHAddress(hash20, &chaincfg.TestNet3Params)
	corrupt := addr[:len(addr)-1] + "x"
	_, _, err := DecodeAddress(corrupt, &chaincfg.TestNet3Params)
	require.Error(t, err)
}

// TestFundAndSpendP2PKH exercises the §8 scenario 5 fixture: fund a
// 10-sat P2PKH output to mgkPm4UebNCJSRGs2Kp2aVE69G8hUEf4d7, sign a
// spend with the matching WIF, and confirm the interpreter accepts it.
func TestFundAndSpendP2PKH(t *testing.T) {
	const (
		wif     = "cSnB7AwCEDKrdq1x2XmHu8f1BHPh6KeuBjeXgssDe2cMpeGDM7oB"
		address = "mgkPm4UebNCJSRGs2Kp2aVE69G8hUEf4d7"
	)

	priv, err := DecodeWIF(wif, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	hash20 := Hash160(priv.PubKey().SerializeCompressed())
	require.Equal(t, address, EncodeP2PKHAddress(hash20, &chaincfg.TestNet3Params))

	fundingScript := PayToPubKeyHashScript(hash20)
	fundingTx := &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Index: 0xffffffff},
			SignatureScript:  []byte{},
			Sequence:         0xffffffff,
		}},
		TxOut: []*wire.TxOut{{
			Value:    10,
			PkScript: fundingScript,
		}},
	}

	spendTx := &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Hash: fundingTx.TxHash(), Index: 0},
			Sequence:         0xffffffff,
		}},
		TxOut: []*wire.TxOut{{
			Value:    10,
			PkScript: fundingScript,
		}},
	}

	require.NoError(t, SignP2PKH(spendTx, [][]byte{fundingScript}, priv))

	ok, err := Evaluate(fundingScript, spendTx.TxIn[0].SignatureScript, spendTx, 0)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluateRejectsWrongKey(t *testing.T) {
	privA, err := DecodeWIF("cSnB7AwCEDKrdq1x2XmHu8f1BHPh6KeuBjeXgssDe2cMpeGDM7oB", &chaincfg.TestNet3Params)
	require.NoError(t, err)

	otherWIF, err := EncodeWIF(make([]byte, 32), &chaincfg.TestNet3Params)
	require.NoError(t, err)
	privB, err := DecodeWIF(otherWIF, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	hashA := Hash160(privA.PubKey().SerializeCompressed())
	fundingScript := PayToPubKeyHashScript(hashA)

	tx := &wire.MsgTx{
		Version: 1,
		TxIn:    []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0}}},
		TxOut:   []*wire.TxOut{{Value: 1, PkScript: fundingScript}},
	}

	require.NoError(t, SignP2PKH(tx, [][]byte{fundingScript}, privB))

	ok, err := Evaluate(fundingScript, tx.TxIn[0].SignatureScript, tx, 0)
	require.NoError(t, err)
	require.False(t, ok)
}
