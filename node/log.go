package node

import "github.com/btcsuite/btclog"

var log btclog.Logger

// UseLogger sets the package-wide logger used by the node orchestrator.
func UseLogger(logger btclog.Logger) {
	log = logger
}

func init() {
	log = btclog.Disabled
}
