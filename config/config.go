// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package config loads node configuration from a plain key=value file
// and overlays command-line flags on top of it. The config file
// format and the CLI entry point that wires this package up are both
// out of scope; this package only defines the loader and the struct
// CLI flags bind onto.
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/btctestnet/node/nodeerr"
)

// Config holds every value recognized from the key=value file and
// overlaid by CLI flags.
type Config struct {
	DNSSeed                   string `long:"dns" description:"DNS seed to resolve for peer addresses"`
	Port                      uint16 `long:"port" description:"advertised addr_trans port in our version message"`
	TCPTimeoutSeconds         uint64 `long:"tcp_timeout" description:"handshake and peer I/O timeout in seconds"`
	BlockchainFile            string `long:"blockchain_file" description:"on-disk packed chain file"`
	LogFile                   string `long:"log_file" description:"append-target for the peer event log"`
	BlockDownloadingTimestamp uint32 `long:"block_downloading_timestamp" description:"oldest block timestamp to download"`
	BlockDownloadingThreads   int    `long:"block_downloading_threads" description:"parallel download workers"`
	MaxListenPeers            int    `long:"max_listen_peers" description:"how many peers enter the steady-state dispatch loop"`
	Host                      string `long:"host" description:"if set, connect to this IPv4 only and disable the listener"`
}

// LoadFile reads a key=value configuration file: one key=value pair per
// line, keys case-normalized to lowercase, unknown keys ignored. `#`
// comment lines are not a recognized feature of this format — every
// non-blank line is parsed as key=value.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nodeerr.Wrap(nodeerr.ConfigParse, "open config file", err)
	}
	defer f.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		val := strings.TrimSpace(line[idx+1:])

		if err := applyKey(cfg, key, val); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nodeerr.Wrap(nodeerr.ConfigParse, "read config file", err)
	}

	return cfg, nil
}

func applyKey(cfg *Config, key, val string) error {
	switch key {
	case "dns":
		cfg.DNSSeed = val
	case "port":
		n, err := strconv.ParseUint(val, 10, 16)
		if err != nil {
			return nodeerr.WithField(nodeerr.ConfigParse, key, "not a valid u16")
		}
		cfg.Port = uint16(n)
	case "tcp_timeout":
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return nodeerr.WithField(nodeerr.ConfigParse, key, "not a valid u64")
		}
		cfg.TCPTimeoutSeconds = n
	case "blockchain_file":
		cfg.BlockchainFile = val
	case "log_file":
		cfg.LogFile = val
	case "block_downloading_timestamp":
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return nodeerr.WithField(nodeerr.ConfigParse, key, "not a valid u32")
		}
		cfg.BlockDownloadingTimestamp = uint32(n)
	case "block_downloading_threads":
		n, err := strconv.Atoi(val)
		if err != nil {
			return nodeerr.WithField(nodeerr.ConfigParse, key, "not a valid integer")
		}
		cfg.BlockDownloadingThreads = n
	case "max_listen_peers":
		n, err := strconv.Atoi(val)
		if err != nil {
			return nodeerr.WithField(nodeerr.ConfigParse, key, "not a valid integer")
		}
		cfg.MaxListenPeers = n
	case "host":
		cfg.Host = val
	default:
		// unknown keys are ignored per the format's definition
	}
	return nil
}

// ParseFlags overlays command-line flags in args on top of cfg,
// returning the flags parser's own error (wrapped) on failure. Flags
// that were not supplied leave cfg's existing values untouched.
func ParseFlags(cfg *Config, args []string) error {
	parser := flags.NewParser(cfg, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(args); err != nil {
		return nodeerr.Wrap(nodeerr.ConfigParse, "parse command-line flags", err)
	}
	return nil
}

// Validate reports ConfigMissingField for any field this node cannot
// start without.
func (c *Config) Validate() error {
	if c.BlockchainFile == "" {
		return nodeerr.WithField(nodeerr.ConfigMissingField, "blockchain_file", "required")
	}
	if c.MaxListenPeers == 0 {
		return nodeerr.WithField(nodeerr.ConfigMissingField, "max_listen_peers", "required")
	}
	return nil
}
