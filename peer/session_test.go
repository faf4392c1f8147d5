package peer

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/chain"
	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/mempool"
	"github.com/btctestnet/node/wire"
)

func TestDialAndHandshakeCompletes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	serverDone := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			serverDone <- err
			return
		}
		defer conn.Close()

		msg, err := wire.ReadMessage(conn, wire.TestNet3)
		if err != nil {
			serverDone <- err
			return
		}
		if msg.Command() != wire.CmdVersion {
			serverDone <- err
			return
		}

		theirVersion := wire.NewMsgVersion(net.ParseIP("127.0.0.1"), 18333, 18333, 1, "/test:0.1/", 0)
		if err := wire.WriteMessage(conn, wire.TestNet3, theirVersion); err != nil {
			serverDone <- err
			return
		}

		if _, err := wire.ReadMessage(conn, wire.TestNet3); err != nil {
			serverDone <- err
			return
		}
		if err := wire.WriteMessage(conn, wire.TestNet3, &wire.MsgVerAck{}); err != nil {
			serverDone <- err
			return
		}

		// consume the getheaders the client sends after the handshake
		if _, err := wire.ReadMessage(conn, wire.TestNet3); err != nil {
			serverDone <- err
			return
		}
		// reply with an empty (non-full) headers batch to end the
		// bounded header-sync phase immediately
		if err := wire.WriteMessage(conn, wire.TestNet3, &wire.MsgHeaders{}); err != nil {
			serverDone <- err
			return
		}

		serverDone <- nil
	}()

	c := chain.New(&chaincfg.TestNet3Params)
	deps := Deps{
		Net:       wire.TestNet3,
		Chain:     c,
		UTXO:      chain.NewUTXOSet(),
		Mempool:   mempool.New(),
		Timeout:   2 * time.Second,
		UserAgent: "/test:0.1/",
		OurPort:   18333,
	}

	p, err := DialAndHandshake(ln.Addr().String(), deps)
	require.NoError(t, err)
	require.NotNil(t, p.Version)
	require.NoError(t, <-serverDone)
}
