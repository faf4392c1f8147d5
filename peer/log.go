package peer

import "github.com/btcsuite/btclog"

var log btclog.Logger

// UseLogger sets the package-wide logger used by peer sessions.
func UseLogger(logger btclog.Logger) {
	log = logger
}

func init() {
	log = btclog.Disabled
}
