package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/wire"
)

func TestInsertGetRemove(t *testing.T) {
	p := New()
	tx := &wire.MsgTx{Version: 1, TxIn: []*wire.TxIn{{}}, TxOut: []*wire.TxOut{{Value: 1}}}

	id := p.Insert(tx)
	require.True(t, p.Has(id))
	require.Equal(t, 1, p.Len())

	got, ok := p.Get(id)
	require.True(t, ok)
	require.Equal(t, tx.TxHash(), got.TxHash())

	p.Remove(id)
	require.False(t, p.Has(id))
	require.Equal(t, 0, p.Len())
}

func TestIdentities(t *testing.T) {
	p := New()
	tx1 := &wire.MsgTx{Version: 1, TxOut: []*wire.TxOut{{Value: 1}}}
	tx2 := &wire.MsgTx{Version: 1, TxOut: []*wire.TxOut{{Value: 2}}}
	p.Insert(tx1)
	p.Insert(tx2)
	require.Len(t, p.Identities(), 2)
}
