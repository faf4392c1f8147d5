// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// hashMerkleBranches hashes the concatenation of two nodes, treated as
// the left and right children.
func hashMerkleBranches(left, right chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}

// MerkleRoot computes the merkle root over txids: pair adjacent hashes
// (duplicating the last if the current level has an odd count),
// double-SHA256 each pair, and recurse until one hash remains. An empty
// input yields the zero hash.
func MerkleRoot(txids []chainhash.Hash) chainhash.Hash {
	if len(txids) == 0 {
		return chainhash.Hash{}
	}

	level := make([]chainhash.Hash, len(txids))
	copy(level, txids)

	for len(level) > 1 {
		next := make([]chainhash.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hashMerkleBranches(left, right))
		}
		level = next
	}
	return level[0]
}
