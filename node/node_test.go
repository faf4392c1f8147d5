// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/config"
	"github.com/btctestnet/node/peer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		BlockchainFile:    filepath.Join(t.TempDir(), "chain.dat"),
		MaxListenPeers:    8,
		TCPTimeoutSeconds: 2,
		Port:              18333,
	}
}

func TestNewWiresSharedState(t *testing.T) {
	n, err := New(testConfig(t), &chaincfg.TestNet3Params)
	require.NoError(t, err)

	require.NotNil(t, n.Chain)
	require.NotNil(t, n.UTXO)
	require.NotNil(t, n.Mempool)
	require.NotNil(t, n.Registry)
	require.NotNil(t, n.Wallet)
	require.Equal(t, 1, n.Chain.Size())
	require.Equal(t, 0, n.Registry.Len())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(&config.Config{}, &chaincfg.TestNet3Params)
	require.Error(t, err)
}

// TestListenAndAcceptRegistersPeer spins up the real inbound listener
// in host-pinning-disabled mode, dials it as an outbound peer, and
// confirms the accept loop completes the inbound handshake and
// registers the connection in the peer registry.
func TestListenAndAcceptRegistersPeer(t *testing.T) {
	cfg := testConfig(t)
	n, err := New(cfg, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	require.NoError(t, n.Listen())

	deps := peer.Deps{
		Net:       n.params.Net,
		Chain:     n.Chain,
		UTXO:      n.UTXO,
		Mempool:   n.Mempool,
		Registry:  n.Registry,
		Events:    n.eventsCh,
		Timeout:   2 * time.Second,
		UserAgent: "/test:0.0.1/",
		OurPort:   1,
	}

	var client *peer.Peer
	require.Eventually(t, func() bool {
		client, err = peer.DialAndHandshake(net.JoinHostPort("127.0.0.1", listenPort), deps)
		return err == nil
	}, time.Second, 10*time.Millisecond)
	require.NotNil(t, client)

	require.Eventually(t, func() bool {
		return n.Registry.Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestConnectSingleHostModeSkipsListener(t *testing.T) {
	cfg := testConfig(t)
	cfg.Host = "203.0.113.1"
	n, err := New(cfg, &chaincfg.TestNet3Params)
	require.NoError(t, err)

	addrs := n.resolveAddrs()
	require.Equal(t, []string{net.JoinHostPort("203.0.113.1", n.params.DefaultPort)}, addrs)

	require.NoError(t, n.Listen())
	_, err = net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", listenPort), 100*time.Millisecond)
	require.Error(t, err)
}
