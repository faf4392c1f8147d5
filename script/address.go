// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package script implements P2PKH/P2SH output-script recognition, the
// P2PKH interpreter, ECDSA transaction signing, and base58check address
// and WIF encoding.
package script

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // spec-mandated hash160 = RIPEMD160(SHA256(x))

	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/nodeerr"
)

// Hash160 computes RIPEMD160(SHA256(b)), the 20-byte public key hash used
// throughout P2PKH/P2SH.
func Hash160(b []byte) [20]byte {
	sha := chainhash.HashB(b)
	r := ripemd160.New()
	r.Write(sha)
	sum := r.Sum(nil)
	var out [20]byte
	copy(out[:], sum)
	return out
}

func checksum4(payload []byte) [4]byte {
	sum := chainhash.DoubleHashB(payload)
	var out [4]byte
	copy(out[:], sum[:4])
	return out
}

// doubleSHA256 computes SHA256(SHA256(b)), used by OP_HASH256.
func doubleSHA256(b []byte) chainhash.Hash {
	return chainhash.DoubleHashH(b)
}

// EncodeP2PKHAddress base58check-encodes a P2PKH address for hash20 on
// params.
func EncodeP2PKHAddress(hash20 [20]byte, params *chaincfg.Params) string {
	return encodeVersionedHash(params.PubKeyHashAddrID, hash20)
}

// EncodeP2SHAddress base58check-encodes a P2SH address for hash20 on
// params.
func EncodeP2SHAddress(hash20 [20]byte, params *chaincfg.Params) string {
	return encodeVersionedHash(params.ScriptHashAddrID, hash20)
}

func encodeVersionedHash(version byte, hash20 [20]byte) string {
	payload := make([]byte, 0, 25)
	payload = append(payload, version)
	payload = append(payload, hash20[:]...)
	sum := checksum4(payload)
	payload = append(payload, sum[:]...)
	return base58.Encode(payload)
}

// AddressKind distinguishes which version byte a decoded address matched.
type AddressKind int

const (
	AddressP2PKH AddressKind = iota
	AddressP2SH
)

// DecodeAddress base58check-decodes addr and identifies whether it is a
// P2PKH or P2SH address for params, returning its 20-byte hash.
func DecodeAddress(addr string, params *chaincfg.Params) (AddressKind, [20]byte, error) {
	var hash20 [20]byte

	decoded := base58.Decode(addr)
	if len(decoded) != 25 {
		return 0, hash20, nodeerr.New(nodeerr.Base58Decode, "decoded address is not 25 bytes")
	}

	payload, gotSum := decoded[:21], decoded[21:]
	wantSum := checksum4(payload)
	for i := range wantSum {
		if gotSum[i] != wantSum[i] {
			return 0, hash20, nodeerr.New(nodeerr.Base58Decode, "address checksum mismatch")
		}
	}

	version := payload[0]
	copy(hash20[:], payload[1:])

	switch version {
	case params.PubKeyHashAddrID:
		return AddressP2PKH, hash20, nil
	case params.ScriptHashAddrID:
		return AddressP2SH, hash20, nil
	default:
		return 0, hash20, nodeerr.New(nodeerr.InvalidAddress, "address version byte not recognized for network")
	}
}

// DecodeWIF decodes a base58check WIF-encoded compressed private key,
// returning the private key built from its 32-byte secret.
func DecodeWIF(wif string, params *chaincfg.Params) (*btcec.PrivateKey, error) {
	decoded := base58.Decode(wif)
	// version(1) + secret(32) + compression flag(1) + checksum(4)
	if len(decoded) != 38 {
		return nil, nodeerr.New(nodeerr.InvalidWIF, "decoded wif is not 38 bytes")
	}

	payload, gotSum := decoded[:34], decoded[34:]
	wantSum := checksum4(payload)
	for i := range wantSum {
		if gotSum[i] != wantSum[i] {
			return nil, nodeerr.New(nodeerr.InvalidWIF, "wif checksum mismatch")
		}
	}

	if payload[0] != params.PrivateKeyID {
		return nil, nodeerr.New(nodeerr.InvalidWIF, "wif version byte not recognized for network")
	}

	secret := payload[1:33]
	return btcec.PrivKeyFromBytes(secret), nil
}

// EncodeWIF base58check-encodes secret as a compressed WIF private key.
func EncodeWIF(secret []byte, params *chaincfg.Params) (string, error) {
	if len(secret) != 32 {
		return "", nodeerr.New(nodeerr.InvalidWIF, "secret must be 32 bytes")
	}
	payload := make([]byte, 0, 34)
	payload = append(payload, params.PrivateKeyID)
	payload = append(payload, secret...)
	payload = append(payload, 0x01) // compressed
	sum := checksum4(payload)
	payload = append(payload, sum[:]...)
	return base58.Encode(payload), nil
}
