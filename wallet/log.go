package wallet

import "github.com/btcsuite/btclog"

var log btclog.Logger

// UseLogger sets the package-wide logger used by the wallet coordinator.
func UseLogger(logger btclog.Logger) {
	log = logger
}

func init() {
	log = btclog.Disabled
}
