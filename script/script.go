// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

const (
	OpData1        = 0x01
	OpData75       = 0x4b
	OpDup          = 0x76
	OpEqual        = 0x87
	OpEqualVerify  = 0x88
	OpHash160      = 0xa9
	OpHash256      = 0xaa
	OpCheckSig     = 0xac
	// SigHashAll is the only signature hash type this node produces or
	// accepts.
	SigHashAll = 0x01
)

// Class tags a recognized output script shape.
type Class int

const (
	// ClassEmpty is an empty script (no bytes at all).
	ClassEmpty Class = iota
	// ClassP2PKH is a standard pay-to-public-key-hash output.
	ClassP2PKH
	// ClassP2SH is a standard pay-to-script-hash output.
	ClassP2SH
	// ClassNonStandard is a recognized-as-a-script-but-not-pattern-matched
	// output; it can never be spent by this node's interpreter.
	ClassNonStandard
)

// Classify pattern-matches pkScript against the two recognized shapes:
//
//	DUP HASH160 <20> <20-byte-hash> EQUALVERIFY CHECKSIG  -> P2PKH
//	HASH160 <20> <20-byte-hash> EQUAL                     -> P2SH
//
// Anything else is ClassNonStandard, or ClassEmpty if the script has no
// bytes at all.
func Classify(pkScript []byte) (Class, [20]byte) {
	var hash20 [20]byte

	if len(pkScript) == 0 {
		return ClassEmpty, hash20
	}

	if len(pkScript) == 25 &&
		pkScript[0] == OpDup &&
		pkScript[1] == OpHash160 &&
		pkScript[2] == 20 &&
		pkScript[23] == OpEqualVerify &&
		pkScript[24] == OpCheckSig {
		copy(hash20[:], pkScript[3:23])
		return ClassP2PKH, hash20
	}

	if len(pkScript) == 23 &&
		pkScript[0] == OpHash160 &&
		pkScript[1] == 20 &&
		pkScript[22] == OpEqual {
		copy(hash20[:], pkScript[2:22])
		return ClassP2SH, hash20
	}

	return ClassNonStandard, hash20
}

// PayToPubKeyHashScript builds a standard P2PKH output script for hash20.
func PayToPubKeyHashScript(hash20 [20]byte) []byte {
	out := make([]byte, 0, 25)
	out = append(out, OpDup, OpHash160, 20)
	out = append(out, hash20[:]...)
	out = append(out, OpEqualVerify, OpCheckSig)
	return out
}

// PayToScriptHashScript builds a standard P2SH output script for hash20.
func PayToScriptHashScript(hash20 [20]byte) []byte {
	out := make([]byte, 0, 23)
	out = append(out, OpHash160, 20)
	out = append(out, hash20[:]...)
	out = append(out, OpEqual)
	return out
}

// CanBeSpentBy reports whether pkScript is a P2PKH or P2SH output payable
// to hash20.
func CanBeSpentBy(pkScript []byte, hash20 [20]byte) bool {
	class, scriptHash := Classify(pkScript)
	switch class {
	case ClassP2PKH, ClassP2SH:
		return scriptHash == hash20
	default:
		return false
	}
}
