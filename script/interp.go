// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/btctestnet/node/wire"
)

// stack is a byte-slice LIFO used while evaluating a script.
type stack struct {
	items [][]byte
}

func (s *stack) push(b []byte) { s.items = append(s.items, b) }

func (s *stack) pop() ([]byte, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	n := len(s.items) - 1
	top := s.items[n]
	s.items = s.items[:n]
	return top, true
}

func (s *stack) top() ([]byte, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

func isTruthy(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return true
		}
	}
	return false
}

// Evaluate runs the P2PKH/P2SH interpreter against sigScript followed by
// pkScript, verifying CHECKSIG against tx's signature hash for the input
// at inputIndex with pkScript substituted as described in §4.2.
// Supported opcodes are data pushes (0x01..0x4B), DUP, HASH160, EQUAL,
// EQUALVERIFY, CHECKSIG and HASH256; any other opcode fails evaluation.
//
// Execution processes sigScript's opcodes before pkScript's, the same
// order the spec's reverse-then-pop construction produces: reversing
// both scripts and popping one byte at a time off the combined,
// concatenated buffer yields sigScript's bytes (in original order)
// before pkScript's, which is exactly the front-to-back order used here.
func Evaluate(pkScript, sigScript []byte, tx *wire.MsgTx, inputIndex int) (bool, error) {
	stream := make([]byte, 0, len(sigScript)+len(pkScript))
	stream = append(stream, sigScript...)
	stream = append(stream, pkScript...)

	var st stack
	pos := 0
	for pos < len(stream) {
		op := stream[pos]
		pos++

		switch {
		case op >= OpData1 && op <= OpData75:
			n := int(op)
			if pos+n > len(stream) {
				return false, nil
			}
			st.push(stream[pos : pos+n])
			pos += n

		case op == OpDup:
			top, ok := st.top()
			if !ok {
				return false, nil
			}
			dup := make([]byte, len(top))
			copy(dup, top)
			st.push(dup)

		case op == OpHash160:
			top, ok := st.pop()
			if !ok {
				return false, nil
			}
			h := Hash160(top)
			st.push(h[:])

		case op == OpHash256:
			top, ok := st.pop()
			if !ok {
				return false, nil
			}
			h := doubleSHA256(top)
			st.push(h[:])

		case op == OpEqual, op == OpEqualVerify:
			a, ok1 := st.pop()
			b, ok2 := st.pop()
			if !ok1 || !ok2 {
				return false, nil
			}
			eq := bytesEqual(a, b)
			if op == OpEqualVerify {
				if !eq {
					return false, nil
				}
				continue
			}
			if eq {
				st.push([]byte{1})
			} else {
				st.push([]byte{0})
			}

		case op == OpCheckSig:
			pubKeyBytes, ok1 := st.pop()
			sigBytes, ok2 := st.pop()
			if !ok1 || !ok2 {
				return false, nil
			}
			ok, err := checkSig(pubKeyBytes, sigBytes, tx, inputIndex, pkScript)
			if err != nil {
				return false, err
			}
			if ok {
				st.push([]byte{1})
			} else {
				st.push([]byte{0})
			}

		default:
			return false, nil
		}
	}

	top, ok := st.top()
	if !ok || len(st.items) != 1 {
		return false, nil
	}
	return isTruthy(top), nil
}

func checkSig(pubKeyBytes, sigBytes []byte, tx *wire.MsgTx, inputIndex int, prevPkScript []byte) (bool, error) {
	if len(sigBytes) == 0 {
		return false, nil
	}
	sigHashType := sigBytes[len(sigBytes)-1]
	if sigHashType != SigHashAll {
		return false, nil
	}
	derSig := sigBytes[:len(sigBytes)-1]

	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false, nil
	}
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false, nil
	}

	sigHash := SigHashAllHash(tx, inputIndex, prevPkScript)
	return sig.Verify(sigHash[:], pubKey), nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
