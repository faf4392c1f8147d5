// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nodelog provides per-subsystem btclog.Logger instances backed
// by a rotating log file, in the standard btcsuite idiom: a single
// log.Backend writes to both stdout and a jrick/logrotate.Rotator, and
// each package-level subsystem pulls its own tagged Logger from it.
package nodelog

import (
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// subsystems is the complete set of tags used across the node. Each
// corresponds to a package that calls UseLogger with the Logger
// returned by Subsystem.
const (
	SubsystemWire     = "WIRE"
	SubsystemChain    = "CHAN"
	SubsystemScript   = "SCRP"
	SubsystemPeer     = "PEER"
	SubsystemPeerSet  = "PRST"
	SubsystemDownload = "DLLD"
	SubsystemWallet   = "WALT"
	SubsystemMempool  = "MEMP"
	SubsystemNode     = "NODE"
)

var (
	backend      = btclog.NewBackend(io.Discard)
	logRotator   *rotator.Rotator
	subsystemLog = make(map[string]btclog.Logger)
)

// InitLogRotator opens (creating if necessary) the log file at logFile
// and replaces every registered subsystem logger with one that writes
// there in addition to stdout; Subsystem returns the replacements from
// then on. A Logger value already returned by Subsystem before this
// call keeps writing to the previous backend. maxRolls bounds how many
// rotated files are kept.
func InitLogRotator(logFile string, maxRolls int) error {
	r, err := rotator.New(logFile, 10*1024, false, maxRolls)
	if err != nil {
		return fmt.Errorf("failed to create log rotator: %w", err)
	}
	logRotator = r
	backend = btclog.NewBackend(io.MultiWriter(os.Stdout, logWriter{}))
	for tag, existing := range subsystemLog {
		_ = existing
		subsystemLog[tag] = backend.Logger(tag)
	}
	return nil
}

type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	if logRotator == nil {
		return len(p), nil
	}
	return logRotator.Write(p)
}

// Subsystem returns (creating on first use) the Logger tagged with
// subsystem, defaulting to btclog.LevelInfo.
func Subsystem(tag string) btclog.Logger {
	if l, ok := subsystemLog[tag]; ok {
		return l
	}
	l := backend.Logger(tag)
	l.SetLevel(btclog.LevelInfo)
	subsystemLog[tag] = l
	return l
}

// SetLevel sets the logging level for an already-created subsystem
// logger; it is a no-op for unrecognized tags.
func SetLevel(tag string, level btclog.Level) {
	if l, ok := subsystemLog[tag]; ok {
		l.SetLevel(level)
	}
}
