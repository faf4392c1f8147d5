package download

import (
	"sync/atomic"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/chain"
	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/events"
	"github.com/btctestnet/node/wire"
)

func TestChunkRanges(t *testing.T) {
	ids := make([]chainhash.Hash, 10)
	for i := range ids {
		ids[i][0] = byte(i)
	}

	ranges := chunkRanges(ids, 3)
	require.Len(t, ranges, 3)

	var total int
	for _, r := range ranges {
		total += len(r)
	}
	require.Equal(t, 10, total)
}

type fakeSource struct {
	chain *chain.Chain
}

func (f *fakeSource) DownloadBlocks(chunk []chainhash.Hash, progress *int64) ([]*wire.MsgBlock, error) {
	var out []*wire.MsgBlock
	for _, id := range chunk {
		b, ok := f.chain.BlockByIdentity(id)
		if !ok {
			continue
		}
		out = append(out, &wire.MsgBlock{Header: b.Header, Transactions: []*wire.MsgTx{}})
		if progress != nil {
			atomic.AddInt64(progress, 1)
		}
	}
	return out, nil
}

func TestRunDownloadsAndAppliesBlocks(t *testing.T) {
	c := chain.New(&chaincfg.TestNet3Params)
	utxo := chain.NewUTXOSet()

	tip := c.Tip().Identity
	for i := 0; i < 3; i++ {
		h := wire.BlockHeader{
			Version:   1,
			PrevBlock: tip,
			Timestamp: uint32(2000 + i),
			Bits:      0x207fffff,
		}
		for CheckProofOfWorkHelper(h) != nil {
			h.Nonce++
		}
		require.NoError(t, c.PushHeader(h))
		tip = h.BlockHash()
	}

	eventsCh := make(chan events.Event, 16)
	src := &fakeSource{chain: c}
	blocks, err := Run(c, utxo, 2000, []BlockSource{src}, eventsCh)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
}

func CheckProofOfWorkHelper(h wire.BlockHeader) error {
	return chain.CheckProofOfWork(h.BlockHash(), h.Bits)
}
