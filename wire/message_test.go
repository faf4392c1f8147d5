package wire

import (
	"bytes"
	"net"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	msgs := []Message{
		&MsgVerAck{},
		&MsgMemPool{},
		&MsgSendHeaders{},
		&MsgPing{Nonce: 42},
		&MsgPong{Nonce: 42},
		&MsgSendCmpct{Announce: true, Version: 1},
		&MsgFeeFilter{FeeRate: 1000},
		NewMsgVersion(net.ParseIP("127.0.0.1"), 18333, 18333, 7, "/btctestnet:0.1/", 0),
		NewMsgGetHeaders(chainhash.Hash{1, 2, 3}),
		&MsgHeaders{Headers: []*BlockHeader{{
			Version:    1,
			PrevBlock:  chainhash.Hash{1},
			MerkleRoot: chainhash.Hash{2},
			Timestamp:  1000,
			Bits:       0x1d00ffff,
			Nonce:      99,
		}}},
		&MsgInv{InvList: []InvVect{{Type: InvTypeTx, Hash: chainhash.Hash{9}}}},
		&MsgGetData{InvList: []InvVect{{Type: InvTypeBlock, Hash: chainhash.Hash{9}}}},
		&MsgAddr{AddrList: []NetAddress{{Timestamp: 1, Services: SFNodeNetwork, IP: net.ParseIP("1.2.3.4"), Port: 18333}}},
	}

	for _, msg := range msgs {
		var buf bytes.Buffer
		require.NoError(t, WriteMessage(&buf, TestNet3, msg))

		got, err := ReadMessage(&buf, TestNet3)
		require.NoError(t, err)
		require.Equal(t, msg.Command(), got.Command())

		var reEncoded bytes.Buffer
		require.NoError(t, WriteMessage(&reEncoded, TestNet3, got))

		var original bytes.Buffer
		require.NoError(t, WriteMessage(&original, TestNet3, msg))
		require.Equal(t, original.Bytes(), reEncoded.Bytes())
	}
}

func TestMessageTxAndBlockRoundTrip(t *testing.T) {
	tx := &MsgTx{
		Version: 1,
		TxIn: []*TxIn{{
			PreviousOutPoint: OutPoint{Hash: chainhash.Hash{1}, Index: 0},
			SignatureScript:  []byte{0x01, 0x02},
			Sequence:         0xffffffff,
		}},
		TxOut: []*TxOut{{
			Value:    1000,
			PkScript: []byte{0x76, 0xa9},
		}},
		LockTime: 0,
	}

	var txBuf bytes.Buffer
	require.NoError(t, WriteMessage(&txBuf, TestNet3, tx))
	gotTx, err := ReadMessage(&txBuf, TestNet3)
	require.NoError(t, err)
	require.Equal(t, tx.TxHash(), gotTx.(*MsgTx).TxHash())

	block := &MsgBlock{
		Header: BlockHeader{
			Version:    1,
			PrevBlock:  chainhash.Hash{1},
			MerkleRoot: tx.TxHash(),
			Timestamp:  1000,
			Bits:       0x1d00ffff,
			Nonce:      1,
		},
		Transactions: []*MsgTx{tx},
	}

	var blockBuf bytes.Buffer
	require.NoError(t, WriteMessage(&blockBuf, TestNet3, block))
	gotBlock, err := ReadMessage(&blockBuf, TestNet3)
	require.NoError(t, err)
	require.Equal(t, block.Header.BlockHash(), gotBlock.(*MsgBlock).Header.BlockHash())
	require.Len(t, gotBlock.(*MsgBlock).Transactions, 1)
}

func TestReadMessageBadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, TestNet3, &MsgVerAck{}))
	raw := buf.Bytes()
	raw[0] ^= 0xff

	_, err := ReadMessage(bytes.NewReader(raw), TestNet3)
	require.Error(t, err)
}

func TestReadMessageChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, TestNet3, &MsgPing{Nonce: 1}))
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xff // corrupt the payload without touching the header

	_, err := ReadMessage(bytes.NewReader(raw), TestNet3)
	require.Error(t, err)
}

func TestReadMessageUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	unknown := &MsgUnknown{Cmd: "reject", Payload: []byte("nope")}
	require.NoError(t, WriteMessage(&buf, TestNet3, unknown))

	got, err := ReadMessage(&buf, TestNet3)
	require.NoError(t, err)
	require.Equal(t, "reject", got.Command())
}
