// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/nodeerr"
)

// MaxGetHeadersLocator bounds the number of locator hashes this node
// will decode from a getheaders message. The spec always sends exactly
// one; a generous ceiling guards against a hostile peer.
const MaxGetHeadersLocator = 2000

// MaxHeadersPerMsg is the maximum number of headers a single headers
// message carries; a batch of exactly this size signals more are
// available.
const MaxHeadersPerMsg = 2000

// MsgGetHeaders requests headers following the best-known block locator.
// This node always sends it with exactly one locator hash and a zero
// stop hash.
type MsgGetHeaders struct {
	ProtocolVersion    uint32
	BlockLocatorHashes []chainhash.Hash
	HashStop           chainhash.Hash
}

func (m *MsgGetHeaders) Command() string { return CmdGetHeaders }

func (m *MsgGetHeaders) Encode(w io.Writer) error {
	if err := writeUint32LE(w, m.ProtocolVersion); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(m.BlockLocatorHashes))); err != nil {
		return err
	}
	for i := range m.BlockLocatorHashes {
		if _, err := w.Write(m.BlockLocatorHashes[i][:]); err != nil {
			return nodeerr.Wrap(nodeerr.IO, "write getheaders.locator_hash", err)
		}
	}
	if _, err := w.Write(m.HashStop[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write getheaders.hash_stop", err)
	}
	return nil
}

func (m *MsgGetHeaders) Decode(r io.Reader) error {
	v, err := readUint32LE(r)
	if err != nil {
		return err
	}
	m.ProtocolVersion = v

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxGetHeadersLocator {
		return nodeerr.New(nodeerr.MessageTooLong, "getheaders locator exceeds maximum")
	}
	m.BlockLocatorHashes = make([]chainhash.Hash, count)
	for i := range m.BlockLocatorHashes {
		if _, err := io.ReadFull(r, m.BlockLocatorHashes[i][:]); err != nil {
			return nodeerr.Wrap(nodeerr.IO, "read getheaders.locator_hash", err)
		}
	}
	if _, err := io.ReadFull(r, m.HashStop[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read getheaders.hash_stop", err)
	}
	return nil
}

// NewMsgGetHeaders builds a getheaders request carrying the single tip
// locator hash and a zero stop hash, per spec.
func NewMsgGetHeaders(tip chainhash.Hash) *MsgGetHeaders {
	return &MsgGetHeaders{
		ProtocolVersion:    ProtocolVersion,
		BlockLocatorHashes: []chainhash.Hash{tip},
	}
}

// MsgHeaders carries up to MaxHeadersPerMsg block headers in reply to a
// getheaders request. Each header on the wire is followed by a varint
// transaction count that is always zero in this message.
type MsgHeaders struct {
	Headers []*BlockHeader
}

func (m *MsgHeaders) Command() string { return CmdHeaders }

func (m *MsgHeaders) Encode(w io.Writer) error {
	if err := WriteVarInt(w, uint64(len(m.Headers))); err != nil {
		return err
	}
	for _, h := range m.Headers {
		if err := writeBlockHeader(w, h); err != nil {
			return err
		}
		if err := WriteVarInt(w, 0); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgHeaders) Decode(r io.Reader) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxHeadersPerMsg {
		return nodeerr.New(nodeerr.MessageTooLong, "headers message exceeds maximum count")
	}
	m.Headers = make([]*BlockHeader, count)
	for i := range m.Headers {
		h := &BlockHeader{}
		if err := readBlockHeader(r, h); err != nil {
			return err
		}
		txCount, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		if txCount != 0 {
			return nodeerr.New(nodeerr.UnexpectedMessage, "headers entry carries a non-zero transaction count")
		}
		m.Headers[i] = h
	}
	return nil
}
