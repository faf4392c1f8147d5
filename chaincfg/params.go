// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the network parameters this node joins: the
// Bitcoin testnet3 overlay.
package chaincfg

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/wire"
)

// DNSSeed identifies a DNS seed used to discover initial peer addresses.
type DNSSeed struct {
	Host string
}

// Params defines the subset of Bitcoin testnet3 network parameters this
// node cares about: enough to frame wire messages, recognize the genesis
// block, and encode/decode addresses. It intentionally carries none of a
// full node's consensus parameters (difficulty retargeting schedule,
// subsidy halving interval, soft-fork deployments) since this node does
// not enforce them (spec Non-goals).
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// Net is the magic 4-byte prefix every message on this network
	// begins with.
	Net wire.BitcoinNet

	// DefaultPort is the default P2P port for this network.
	DefaultPort string

	// DNSSeeds lists hosts to resolve for initial peer addresses.
	DNSSeeds []DNSSeed

	// GenesisHash is the identity of the genesis block.
	GenesisHash *chainhash.Hash

	// GenesisMerkleRoot is the genesis block's merkle root.
	GenesisMerkleRoot *chainhash.Hash

	// GenesisVersion, GenesisTimestamp, GenesisBits and GenesisNonce are
	// the remaining header fields of the genesis block.
	GenesisVersion   int32
	GenesisTimestamp uint32
	GenesisBits      uint32
	GenesisNonce     uint32

	// PubKeyHashAddrID is the address version byte for a P2PKH address.
	PubKeyHashAddrID byte

	// ScriptHashAddrID is the address version byte for a P2SH address.
	ScriptHashAddrID byte

	// PrivateKeyID is the version byte prepended to a WIF-encoded
	// private key.
	PrivateKeyID byte
}

// bigOne is 1 represented as a big.Int, used to build PowLimit without
// repeated allocation.
var bigOne = big.NewInt(1)

// testNet3PowLimit is the highest proof-of-work value a testnet3 block
// identity may have: 2^224 - 1.
var testNet3PowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

// TestNet3Params are the parameters for the Bitcoin test network (version
// 3), the only network this node ever joins.
var TestNet3Params = Params{
	Name:        "testnet3",
	Net:         wire.TestNet3,
	DefaultPort: "18333",
	DNSSeeds: []DNSSeed{
		{Host: "testnet-seed.bitcoin.jonasschnelli.ch"},
		{Host: "seed.tbtc.petertodd.org"},
		{Host: "seed.testnet.bitcoin.sprovoost.nl"},
		{Host: "testnet-seed.bluematt.me"},
	},

	GenesisHash:       mustHash("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943"),
	GenesisMerkleRoot: mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
	GenesisVersion:    1,
	GenesisTimestamp:  1296688602,
	GenesisBits:       0x1d00ffff,
	GenesisNonce:      414098458,

	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	PrivateKeyID:     0xef,
}

// PowLimit returns the highest allowed proof-of-work target for the
// network as a 256-bit integer.
func (p *Params) PowLimit() *big.Int {
	return testNet3PowLimit
}

func mustHash(s string) *chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return h
}
