package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btctestnet/node/chain"
	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/events"
	"github.com/btctestnet/node/mempool"
	"github.com/btctestnet/node/script"
	"github.com/btctestnet/node/wire"
)

const testWIF = "cSnB7AwCEDKrdq1x2XmHu8f1BHPh6KeuBjeXgssDe2cMpeGDM7oB"
const testAddr = "mgkPm4UebNCJSRGs2Kp2aVE69G8hUEf4d7"

func newTestCoordinator(t *testing.T) (*Coordinator, *chain.UTXOSet, chan events.Event) {
	t.Helper()
	utxo := chain.NewUTXOSet()
	pool := mempool.New()
	eventsCh := make(chan events.Event, 32)
	cmdCh := make(chan events.Command)
	c := New(utxo, pool, nil, &chaincfg.TestNet3Params, eventsCh, cmdCh)
	return c, utxo, eventsCh
}

func TestAddAddressEmitsBalanceAndHistory(t *testing.T) {
	c, utxo, eventsCh := newTestCoordinator(t)

	priv, err := script.DecodeWIF(testWIF, &chaincfg.TestNet3Params)
	require.NoError(t, err)
	hash20 := script.Hash160(priv.PubKey().SerializeCompressed())
	fundingScript := script.PayToPubKeyHashScript(hash20)

	fundingTx := &wire.MsgTx{
		Version: 1,
		TxIn:    []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0xffffffff}}},
		TxOut:   []*wire.TxOut{{Value: 10, PkScript: fundingScript}},
	}
	utxo.ApplyBlock([]*wire.MsgTx{fundingTx})

	c.onAddAddress(testAddr)

	var sawBalance, sawHistory bool
	for i := 0; i < 2; i++ {
		ev := <-eventsCh
		switch m := ev.(type) {
		case events.Balance:
			require.Equal(t, int64(10), m.Satoshis)
			sawBalance = true
		case events.History:
			sawHistory = true
		}
	}
	require.True(t, sawBalance)
	require.True(t, sawHistory)
}

func TestPayToInsufficientBalance(t *testing.T) {
	c, _, eventsCh := newTestCoordinator(t)

	c.onPayTo(events.PayTo{WIF: testWIF, Addr: testAddr, AmountSats: 1000, FeeSats: 0})

	ev := <-eventsCh
	errEvent, ok := ev.(events.Error)
	require.True(t, ok)
	require.Equal(t, events.ErrorKind("insufficient_balance"), errEvent.Kind)
}

func TestPayToBuildsSignedValidTx(t *testing.T) {
	c, utxo, eventsCh := newTestCoordinator(t)

	priv, err := script.DecodeWIF(testWIF, &chaincfg.TestNet3Params)
	require.NoError(t, err)
	hash20 := script.Hash160(priv.PubKey().SerializeCompressed())
	fundingScript := script.PayToPubKeyHashScript(hash20)

	fundingTx := &wire.MsgTx{
		Version: 1,
		TxIn:    []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0xffffffff}}},
		TxOut:   []*wire.TxOut{{Value: 100, PkScript: fundingScript}},
	}
	utxo.ApplyBlock([]*wire.MsgTx{fundingTx})

	c.onPayTo(events.PayTo{WIF: testWIF, Addr: testAddr, AmountSats: 10, FeeSats: 1})

	ev := <-eventsCh
	conf, ok := ev.(events.PaymentConfirmation)
	require.True(t, ok)
	require.Equal(t, int64(10), conf.AmountSats)
	require.Equal(t, testAddr, conf.PayeeAddr)

	require.NoError(t, chain.ValidateTx(utxo, conf.Tx))
}
