package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.conf")
	contents := "DNS=testnet-seed.bitcoin.jonasschnelli.ch\nPORT=18333\nblockchain_file=/tmp/chain.dat\nmax_listen_peers=8\nunknown_key=ignored\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "testnet-seed.bitcoin.jonasschnelli.ch", cfg.DNSSeed)
	require.Equal(t, uint16(18333), cfg.Port)
	require.Equal(t, "/tmp/chain.dat", cfg.BlockchainFile)
	require.Equal(t, 8, cfg.MaxListenPeers)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileMissingFieldValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.conf")
	require.NoError(t, os.WriteFile(path, []byte("dns=example.com\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}

func TestParseFlagsOverlay(t *testing.T) {
	cfg := &Config{BlockchainFile: "/tmp/a.dat", MaxListenPeers: 4}
	err := ParseFlags(cfg, []string{"--port=9999"})
	require.NoError(t, err)
	require.Equal(t, uint16(9999), cfg.Port)
	require.Equal(t, "/tmp/a.dat", cfg.BlockchainFile)
}
