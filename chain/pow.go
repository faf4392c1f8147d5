// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math/big"

	"github.com/btctestnet/node/nodeerr"
)

// minExponent and maxExponent bound the compact-bits exponent this node
// will expand into a target. The source does not bounds-check the
// exponent; here it is clamped per the resolved design question.
const (
	minExponent = 3
	maxExponent = 32
)

// ExpandTarget expands compact-encoded bits into a 256-bit target. The
// exponent `e = bits>>24` places the mantissa `m = bits&0x007FFFFF` so
// its least-significant byte sits at big-endian byte offset e-3 from
// the right; all other bytes are zero.
func ExpandTarget(bits uint32) (*big.Int, error) {
	exponent := int(bits >> 24)
	mantissa := bits & 0x007fffff

	if exponent < minExponent || exponent > maxExponent {
		return nil, nodeerr.New(nodeerr.ProofOfWorkFailed, "bits exponent out of range")
	}

	buf := make([]byte, 32)
	zerosToRight := exponent - 3

	var m [3]byte
	m[0] = byte(mantissa >> 16)
	m[1] = byte(mantissa >> 8)
	m[2] = byte(mantissa)

	end := 32 - zerosToRight
	start := end - 3
	if start < 0 || end > 32 {
		return nil, nodeerr.New(nodeerr.ProofOfWorkFailed, "bits exponent out of range")
	}
	copy(buf[start:end], m[:])

	return new(big.Int).SetBytes(buf), nil
}

// CheckProofOfWork reports whether identity, interpreted as a
// little-endian 256-bit integer, is strictly less than the target
// expanded from bits.
func CheckProofOfWork(identity [32]byte, bits uint32) error {
	target, err := ExpandTarget(bits)
	if err != nil {
		return err
	}

	reversed := make([]byte, 32)
	for i, b := range identity {
		reversed[31-i] = b
	}
	idInt := new(big.Int).SetBytes(reversed)

	if idInt.Cmp(target) >= 0 {
		return nodeerr.New(nodeerr.ProofOfWorkFailed, "identity does not satisfy target")
	}
	return nil
}
