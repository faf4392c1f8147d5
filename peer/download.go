// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"sync/atomic"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/nodeerr"
	"github.com/btctestnet/node/wire"
)

// DownloadBlocks sends a single getdata for every identity in chunk
// and reads back exactly len(chunk) block messages, in any order the
// peer chooses to send them in. progress is atomically incremented
// once per received block, so a caller polling it sees smooth
// per-block progress rather than one jump at the end of the chunk;
// it may be nil. Non-block messages arriving in between (pings, inv
// announcements) are ignored; read timeouts apply if the peer's
// connection deadline is set by the caller.
func (p *Peer) DownloadBlocks(chunk []chainhash.Hash, progress *int64) ([]*wire.MsgBlock, error) {
	invList := make([]wire.InvVect, len(chunk))
	for i, id := range chunk {
		invList[i] = wire.InvVect{Type: wire.InvTypeBlock, Hash: id}
	}
	if err := p.Send(&wire.MsgGetData{InvList: invList}); err != nil {
		return nil, err
	}

	blocks := make([]*wire.MsgBlock, 0, len(chunk))
	for len(blocks) < len(chunk) {
		msg, err := wire.ReadMessage(p.conn, p.net)
		if err != nil {
			return nil, nodeerr.Wrap(nodeerr.IO, "read block during download", err)
		}
		if block, ok := msg.(*wire.MsgBlock); ok {
			blocks = append(blocks, block)
			if progress != nil {
				atomic.AddInt64(progress, 1)
			}
		}
	}
	return blocks, nil
}
