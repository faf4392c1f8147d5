// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node is the top-level orchestrator: it owns the chain,
// UTXO set, mempool, peer registry and wallet coordinator, and wires
// them together per spec §5's thread model — one goroutine per
// connected peer, one per inbound listener loop, one for the block
// download pipeline, one for the wallet coordinator. It is a library
// package only; the command-line entry point that constructs a
// Config and calls Run remains out of scope.
package node

import (
	"context"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/btctestnet/node/chain"
	"github.com/btctestnet/node/chaincfg"
	"github.com/btctestnet/node/config"
	"github.com/btctestnet/node/download"
	"github.com/btctestnet/node/events"
	"github.com/btctestnet/node/internal/nodelog"
	"github.com/btctestnet/node/mempool"
	"github.com/btctestnet/node/nodeerr"
	"github.com/btctestnet/node/peer"
	"github.com/btctestnet/node/peerset"
	"github.com/btctestnet/node/wallet"
)

// listenPort is the fixed testnet P2P port the inbound listener binds,
// per §6 ("Listener binds 127.0.0.1:18333 when not in single-host mode").
const listenPort = "18333"

const userAgent = "/btctestnet:0.1.0/"

// Node bundles every shared structure spec §5 names and the UI
// event/command channels external consumers wire against.
type Node struct {
	cfg    *config.Config
	params *chaincfg.Params

	Chain    *chain.Chain
	UTXO     *chain.UTXOSet
	Mempool  *mempool.Pool
	Registry *peerset.Registry
	Wallet   *wallet.Coordinator

	eventsCh chan events.Event
	cmdCh    chan events.Command
}

// New validates cfg, opens the logging and chain-file state it names,
// and constructs the in-memory structures every other component
// shares. It does not touch the network; call Run to do that.
func New(cfg *config.Config, params *chaincfg.Params) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		if err := nodelog.InitLogRotator(cfg.LogFile, 3); err != nil {
			return nil, nodeerr.Wrap(nodeerr.IO, "init log rotator", err)
		}
	}
	UseLogger(nodelog.Subsystem(nodelog.SubsystemNode))
	chain.UseLogger(nodelog.Subsystem(nodelog.SubsystemChain))
	peer.UseLogger(nodelog.Subsystem(nodelog.SubsystemPeer))
	download.UseLogger(nodelog.Subsystem(nodelog.SubsystemDownload))
	wallet.UseLogger(nodelog.Subsystem(nodelog.SubsystemWallet))

	c, err := chain.Load(cfg.BlockchainFile, params)
	if err != nil {
		return nil, err
	}

	utxo := chain.NewUTXOSet()
	pool := mempool.New()
	registry := peerset.New()
	eventsCh := make(chan events.Event, 256)
	cmdCh := make(chan events.Command, 64)

	wc := wallet.New(utxo, pool, registry, params, eventsCh, cmdCh)

	return &Node{
		cfg:      cfg,
		params:   params,
		Chain:    c,
		UTXO:     utxo,
		Mempool:  pool,
		Registry: registry,
		Wallet:   wc,
		eventsCh: eventsCh,
		cmdCh:    cmdCh,
	}, nil
}

// Events returns the UI event channel (§6): node -> UI.
func (n *Node) Events() <-chan events.Event { return n.eventsCh }

// Commands returns the UI command channel (§6): UI -> node.
func (n *Node) Commands() chan<- events.Command { return n.cmdCh }

func (n *Node) timeout() time.Duration {
	return time.Duration(n.cfg.TCPTimeoutSeconds) * time.Second
}

func (n *Node) peerDeps() peer.Deps {
	return peer.Deps{
		Net:       n.params.Net,
		Chain:     n.Chain,
		UTXO:      n.UTXO,
		Mempool:   n.Mempool,
		Watcher:   n.Wallet,
		Registry:  n.Registry,
		Events:    n.eventsCh,
		Timeout:   n.timeout(),
		UserAgent: userAgent,
		OurPort:   n.cfg.Port,
	}
}

// register enters p into the peer registry and starts its steady-state
// dispatch loop, per §4.8's "save the peer on success".
func (n *Node) register(p *peer.Peer) {
	n.Registry.Add(p.Addr(), p.Version, p)
	go p.Run()
}

// Connect resolves every address the configured DNS seed returns (or,
// in single-host mode, dials just cfg.Host) and runs the outbound
// handshake against each in turn, registering every peer that
// completes it. It emits FinishedConnectingToPeers once the pass is
// done, per §6's UI event table.
func (n *Node) Connect() []*peer.Peer {
	addrs := n.resolveAddrs()

	peers := make([]*peer.Peer, 0, len(addrs))
	for _, addr := range addrs {
		p, err := peer.DialAndHandshake(addr, n.peerDeps())
		if err != nil {
			log.Warnf("dial %s: %v", addr, err)
			continue
		}
		n.register(p)
		peers = append(peers, p)
	}

	if n.eventsCh != nil {
		n.eventsCh <- events.FinishedConnectingToPeers{}
	}
	return peers
}

func (n *Node) resolveAddrs() []string {
	if n.cfg.Host != "" {
		return []string{net.JoinHostPort(n.cfg.Host, n.params.DefaultPort)}
	}

	var addrs []string
	for _, seed := range n.params.DNSSeeds {
		ips, err := net.LookupHost(seed.Host)
		if err != nil {
			log.Warnf("resolve dns seed %s: %v", seed.Host, err)
			continue
		}
		for _, ip := range ips {
			addrs = append(addrs, net.JoinHostPort(ip, n.params.DefaultPort))
		}
	}
	return addrs
}

// reuseAddrListenConfig sets SO_REUSEADDR on the listening socket so a
// restarted node can rebind 127.0.0.1:18333 without waiting out a
// lingering TIME_WAIT connection from its previous run.
var reuseAddrListenConfig = net.ListenConfig{
	Control: func(_, _ string, c syscall.RawConn) error {
		var sockErr error
		if err := c.Control(func(fd uintptr) {
			sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		}); err != nil {
			return err
		}
		return sockErr
	},
}

// Listen binds 127.0.0.1:18333 and runs the inbound accept loop in
// its own goroutine, bounded by max_listen_peers (§4.8, §6). It is a
// no-op in single-host mode, per §6 ("If set, connect to this IPv4
// only and disable listener").
func (n *Node) Listen() error {
	if n.cfg.Host != "" {
		return nil
	}

	lis, err := reuseAddrListenConfig.Listen(context.Background(), "tcp", "127.0.0.1:"+listenPort)
	if err != nil {
		return nodeerr.Wrap(nodeerr.IO, "bind listener", err)
	}

	go n.acceptLoop(lis)
	return nil
}

func (n *Node) acceptLoop(lis net.Listener) {
	defer lis.Close()
	for n.Registry.Len() < n.cfg.MaxListenPeers {
		conn, err := lis.Accept()
		if err != nil {
			log.Warnf("accept: %v", err)
			return
		}

		p, err := peer.AcceptAndHandshake(conn, n.peerDeps())
		if err != nil {
			log.Warnf("inbound handshake from %s: %v", conn.RemoteAddr(), err)
			continue
		}
		n.register(p)
	}
}

// Run wires the whole node together per spec §5: connect outbound,
// start the inbound listener, start the wallet coordinator, run the
// block download pipeline against every outbound peer, and signal
// NodeReady once startup is complete.
func (n *Node) Run() error {
	peers := n.Connect()

	if err := n.Listen(); err != nil {
		return err
	}

	go n.Wallet.Run()

	if len(peers) > 0 {
		go n.runDownload(peers)
	}

	if n.eventsCh != nil {
		n.eventsCh <- events.NodeReady{}
	}
	return nil
}

func (n *Node) runDownload(peers []*peer.Peer) {
	threads := n.cfg.BlockDownloadingThreads
	if threads <= 0 {
		threads = 1
	}
	if threads > len(peers) {
		threads = len(peers)
	}

	sources := make([]download.BlockSource, threads)
	for i := 0; i < threads; i++ {
		sources[i] = peers[i]
	}

	if _, err := download.Run(n.Chain, n.UTXO, n.cfg.BlockDownloadingTimestamp, sources, n.eventsCh); err != nil {
		log.Warnf("block download pipeline: %v", err)
	}
}
