package peer

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/chain"
	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/mempool"
	"github.com/btctestnet/node/wire"
)

func testPeerPair(t *testing.T) (*Peer, net.Conn) {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() { clientConn.Close(); serverConn.Close() })

	p := newPeer(serverConn, Deps{
		Net:     wire.TestNet3,
		Chain:   chain.New(&chaincfg.TestNet3Params),
		UTXO:    chain.NewUTXOSet(),
		Mempool: mempool.New(),
	})
	return p, clientConn
}

func TestOnTxInsertsIntoMempoolOnce(t *testing.T) {
	p, _ := testPeerPair(t)

	tx := &wire.MsgTx{Version: 1, TxOut: []*wire.TxOut{{Value: 1}}}
	require.NoError(t, p.onTx(tx))
	require.True(t, p.mempool.Has(tx.TxHash()))

	// re-delivering the same tx is a no-op, not a second insert
	require.NoError(t, p.onTx(tx))
	require.Equal(t, 1, p.mempool.Len())
}

func TestOnPingRepliesPong(t *testing.T) {
	p, client := testPeerPair(t)

	done := make(chan error, 1)
	go func() {
		msg, err := wire.ReadMessage(client, wire.TestNet3)
		if err != nil {
			done <- err
			return
		}
		if msg.Command() != wire.CmdPong {
			done <- require.AnError
			return
		}
		done <- nil
	}()

	require.NoError(t, p.dispatch(&wire.MsgPing{Nonce: 7}))
	require.NoError(t, <-done)
}

func TestOnMemPoolRepliesInv(t *testing.T) {
	p, client := testPeerPair(t)
	tx := &wire.MsgTx{Version: 1, TxOut: []*wire.TxOut{{Value: 1}}}
	p.mempool.Insert(tx)

	done := make(chan error, 1)
	go func() {
		msg, err := wire.ReadMessage(client, wire.TestNet3)
		if err != nil {
			done <- err
			return
		}
		inv, ok := msg.(*wire.MsgInv)
		if !ok || len(inv.InvList) != 1 {
			done <- require.AnError
			return
		}
		done <- nil
	}()

	require.NoError(t, p.onMemPool())
	require.NoError(t, <-done)
}
