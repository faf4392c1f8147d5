package download

import "github.com/btcsuite/btclog"

var log btclog.Logger

// UseLogger sets the package-wide logger used by the download pipeline.
func UseLogger(logger btclog.Logger) {
	log = logger
}

func init() {
	log = btclog.Disabled
}
