// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package download implements the multi-peer block download pipeline
// (§4.9): the chain's block-timestamp window is chunked across N
// workers, each fetching its chunk from one peer in parallel, while
// the driver polls an atomically-updated progress counter once a
// second and emits Loading events until the fetch is effectively
// complete.
package download

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/chain"
	"github.com/btctestnet/node/events"
	"github.com/btctestnet/node/wire"
)

// BlockSource is the minimal per-peer capability the pipeline needs:
// fetch a chunk of blocks by identity, incrementing progress once per
// block received. peer.Peer implements this via DownloadBlocks.
type BlockSource interface {
	DownloadBlocks(chunk []chainhash.Hash, progress *int64) ([]*wire.MsgBlock, error)
}

// chunkRanges splits ids into n contiguous ranges of size
// ceil(len(ids)/n), the last range taking any remainder.
func chunkRanges(ids []chainhash.Hash, n int) [][]chainhash.Hash {
	if n <= 0 {
		n = 1
	}
	if len(ids) == 0 {
		return nil
	}
	size := (len(ids) + n - 1) / n

	var ranges [][]chainhash.Hash
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		ranges = append(ranges, ids[start:end])
	}
	return ranges
}

// Run collects every chain block with timestamp >= startTimestamp,
// splits the set across len(workers) ranges, and downloads each range
// in parallel from its assigned peer. Progress events are emitted on
// eventsCh once a second until at least 98% of blocks have arrived;
// all downloaded blocks are then applied to c under its own lock via
// chain.AddBlockTxs, and the merged result is returned.
func Run(c *chain.Chain, utxo *chain.UTXOSet, startTimestamp uint32, workers []BlockSource, eventsCh chan<- events.Event) ([]*wire.MsgBlock, error) {
	candidates := c.BlocksFrom(startTimestamp)
	ids := make([]chainhash.Hash, 0, len(candidates))
	for _, b := range candidates {
		if b.Txs == nil {
			ids = append(ids, b.Identity)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	ranges := chunkRanges(ids, len(workers))

	var progress int64
	total := int64(len(ids))

	results := make([][]*wire.MsgBlock, len(ranges))
	errs := make([]error, len(ranges))

	var wg sync.WaitGroup
	for i, chunk := range ranges {
		if i >= len(workers) {
			break
		}
		wg.Add(1)
		go func(i int, chunk []chainhash.Hash) {
			defer wg.Done()
			blocks, err := workers[i].DownloadBlocks(chunk, &progress)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = blocks
		}(i, chunk)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-done:
			break loop
		case <-ticker.C:
			fraction := float64(atomic.LoadInt64(&progress)) / float64(total)
			if eventsCh != nil {
				eventsCh <- events.Loading{Fraction: fraction}
			}
			if fraction >= 0.98 {
				break loop
			}
		}
	}
	<-done

	var all []*wire.MsgBlock
	for i, blocks := range results {
		if errs[i] != nil {
			log.Warnf("download worker %d failed: %v", i, errs[i])
			continue
		}
		all = append(all, blocks...)
	}

	for _, block := range all {
		identity := block.Header.BlockHash()
		if err := c.AddBlockTxs(identity, block.Transactions, utxo); err != nil {
			log.Warnf("apply downloaded block %v: %v", identity, err)
		}
	}

	return all, nil
}
