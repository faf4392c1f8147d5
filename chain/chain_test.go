package chain

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/script"
	"github.com/btctestnet/node/wire"
)

// TestEmptyChain covers §8 scenario 1: size=1, tip identity equals the
// well-known testnet3 genesis hash.
func TestEmptyChain(t *testing.T) {
	c := New(&chaincfg.TestNet3Params)
	require.Equal(t, 1, c.Size())
	require.Equal(t, *chaincfg.TestNet3Params.GenesisHash, c.Tip().Identity)
}

func mineHeader(t *testing.T, prev chainhash.Hash, nonceSeed uint32) wire.BlockHeader {
	t.Helper()
	// bits 0x207fffff (regtest-style maximal target) makes proof-of-work
	// trivially satisfiable so tests don't need to grind a real nonce.
	for nonce := nonceSeed; ; nonce++ {
		h := wire.BlockHeader{
			Version:   1,
			PrevBlock: prev,
			Timestamp: 1000,
			Bits:      0x207fffff,
			Nonce:     nonce,
		}
		if CheckProofOfWork(h.BlockHash(), h.Bits) == nil {
			return h
		}
	}
}

// TestPushThreeHeaders covers §8 scenario 2: push three valid headers
// forming a straight chain; tip updates to the third; size=4.
func TestPushThreeHeaders(t *testing.T) {
	c := New(&chaincfg.TestNet3Params)

	tip := c.Tip().Identity
	var last wire.BlockHeader
	for i := 0; i < 3; i++ {
		h := mineHeader(t, tip, uint32(i*1000))
		require.NoError(t, c.PushHeader(h))
		tip = h.BlockHash()
		last = h
	}

	require.Equal(t, 4, c.Size())
	require.Equal(t, last.BlockHash(), c.Tip().Identity)
}

// TestPushHeaderUnknownAncestor covers §8 scenario 3: a header whose
// prev_hash is unknown to the chain is a silent no-op.
func TestPushHeaderUnknownAncestor(t *testing.T) {
	c := New(&chaincfg.TestNet3Params)

	var unknown chainhash.Hash
	for i := range unknown {
		unknown[i] = 0x01
	}
	h := mineHeader(t, unknown, 0)

	require.NoError(t, c.PushHeader(h))
	require.Equal(t, 1, c.Size())
	require.Equal(t, *chaincfg.TestNet3Params.GenesisHash, c.Tip().Identity)
}

// TestUTXOBlockApplication covers §8 scenario 4: one block with three
// outputs of values 10, 20, 3 to unspendable scripts; UTXO size=3,
// balance=33. A follow-up block spends outputs 1 and 2, paying 20 to
// an unspendable script; UTXO size=2, balance=30.
func TestUTXOBlockApplication(t *testing.T) {
	utxo := NewUTXOSet()

	unspendable := []byte{0x6a} // OP_RETURN-shaped, not P2PKH/P2SH

	fundingTx := &wire.MsgTx{
		Version: 1,
		TxIn:    []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0xffffffff}}},
		TxOut: []*wire.TxOut{
			{Value: 10, PkScript: unspendable},
			{Value: 20, PkScript: unspendable},
			{Value: 3, PkScript: unspendable},
		},
	}

	utxo.ApplyBlock([]*wire.MsgTx{fundingTx})
	require.Equal(t, 3, utxo.Size())
	require.Equal(t, int64(33), utxo.TotalBalance())

	spendTx := &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{
			{PreviousOutPoint: wire.OutPoint{Hash: fundingTx.TxHash(), Index: 1}},
			{PreviousOutPoint: wire.OutPoint{Hash: fundingTx.TxHash(), Index: 2}},
		},
		TxOut: []*wire.TxOut{
			{Value: 20, PkScript: unspendable},
		},
	}

	utxo.ApplyBlock([]*wire.MsgTx{spendTx})
	require.Equal(t, 2, utxo.Size())
	require.Equal(t, int64(30), utxo.TotalBalance())
}

// TestFundAndSpendP2PKHThroughUTXO covers §8 scenario 5 end-to-end
// through the UTXO set: fund a P2PKH output, sign a spend with the
// matching WIF, and confirm the UTXO set contains only the new output
// after the spend is applied.
func TestFundAndSpendP2PKHThroughUTXO(t *testing.T) {
	const wif = "cSnB7AwCEDKrdq1x2XmHu8f1BHPh6KeuBjeXgssDe2cMpeGDM7oB"

	priv, err := script.DecodeWIF(wif, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	hash20 := script.Hash160(priv.PubKey().SerializeCompressed())
	fundingScript := script.PayToPubKeyHashScript(hash20)

	fundingTx := &wire.MsgTx{
		Version: 1,
		TxIn:    []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0xffffffff}}},
		TxOut:   []*wire.TxOut{{Value: 10, PkScript: fundingScript}},
	}

	utxo := NewUTXOSet()
	utxo.ApplyBlock([]*wire.MsgTx{fundingTx})
	require.Equal(t, int64(10), utxo.BalanceByPKHash(hash20))

	spendTx := &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Hash: fundingTx.TxHash(), Index: 0},
		}},
		TxOut: []*wire.TxOut{{Value: 10, PkScript: fundingScript}},
	}
	require.NoError(t, script.SignP2PKH(spendTx, [][]byte{fundingScript}, priv))

	ok, err := script.Evaluate(fundingScript, spendTx.TxIn[0].SignatureScript, spendTx, 0)
	require.NoError(t, err)
	require.True(t, ok)

	utxo.ApplyBlock([]*wire.MsgTx{spendTx})
	require.Equal(t, 1, utxo.Size())
	require.Equal(t, int64(10), utxo.TotalBalance())
}

func TestMerkleRootSingleAndEmpty(t *testing.T) {
	require.Equal(t, chainhash.Hash{}, MerkleRoot(nil))

	h := chainhash.Hash{1, 2, 3}
	require.Equal(t, h, MerkleRoot([]chainhash.Hash{h}))
}

func TestCompactSizeU16VectorSanity(t *testing.T) {
	// §8 scenario 6 lives in wire/varint_test.go; this just documents
	// the cross-reference for readers of the chain test suite.
	got := wire.CompactSize{Width: wire.CompactSizeU16, Value: 123}.Serialize()
	require.Equal(t, []byte{253, 0x7B, 0x00}, got)
}
