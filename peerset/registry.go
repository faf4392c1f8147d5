// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peerset is the connection table: a map from a peer's
// remote address string (host:port, as reported by the connection) to
// its negotiated version message and a duplicable handle to its socket. A peer is added once, after a
// successful handshake, and is never removed during the process
// lifetime — disconnects surface as I/O errors in the per-peer
// session loop, not as registry removals.
package peerset

import (
	"sync"

	"github.com/btctestnet/node/wire"
)

// Conn is the minimal duplicable-socket-handle contract the registry
// needs from a connected peer; peer.Peer implements it.
type Conn interface {
	Addr() string
	Send(msg wire.Message) error
}

// Entry is one registered peer: its handshake-negotiated version and
// a handle to its connection.
type Entry struct {
	Version *wire.MsgVersion
	Conn    Conn
}

// Registry is the read-write-lock-guarded peer table.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Add registers addr with its negotiated version and connection
// handle. Re-adding an existing address overwrites its entry.
func (r *Registry) Add(addr string, version *wire.MsgVersion, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[addr] = Entry{Version: version, Conn: conn}
}

// Get returns the entry for addr, if registered.
func (r *Registry) Get(addr string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[addr]
	return e, ok
}

// Len returns the number of registered peers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Each calls fn once per registered peer. fn must not call back into
// the registry — Each holds the read lock for its duration.
func (r *Registry) Each(fn func(addr string, e Entry)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for addr, e := range r.entries {
		fn(addr, e)
	}
}

// Broadcast sends msg to every registered peer, collecting (but not
// stopping on) per-peer send errors.
func (r *Registry) Broadcast(msg wire.Message) []error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, e := range r.entries {
		if err := e.Conn.Send(msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
