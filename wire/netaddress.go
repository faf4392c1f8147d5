// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
	"net"

	"github.com/btctestnet/node/nodeerr"
)

// NetAddress describes a single known peer address as carried in the
// version and addr messages. IP and Port are big-endian on the wire;
// every other integer field in this protocol is little-endian.
type NetAddress struct {
	Timestamp uint32 // only meaningful (and only present on the wire) inside addr messages
	Services  ServiceFlag
	IP        net.IP // always rendered as a 16-byte IPv6-mapped address
	Port      uint16
}

// writeNetAddress writes addr. withTimestamp controls whether the leading
// 4-byte timestamp field is written, since the version message's own two
// addresses omit it while addr message entries include it.
func writeNetAddress(w io.Writer, addr *NetAddress, withTimestamp bool) error {
	if withTimestamp {
		if err := binary.Write(w, binary.LittleEndian, addr.Timestamp); err != nil {
			return nodeerr.Wrap(nodeerr.IO, "write net address timestamp", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(addr.Services)); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write net address services", err)
	}

	var ip [16]byte
	if v4 := addr.IP.To4(); v4 != nil {
		copy(ip[10:12], []byte{0xff, 0xff})
		copy(ip[12:16], v4)
	} else if v6 := addr.IP.To16(); v6 != nil {
		copy(ip[:], v6)
	}
	if _, err := w.Write(ip[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write net address ip", err)
	}

	if err := binary.Write(w, binary.BigEndian, addr.Port); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write net address port", err)
	}
	return nil
}

func readNetAddress(r io.Reader, addr *NetAddress, withTimestamp bool) error {
	if withTimestamp {
		if err := binary.Read(r, binary.LittleEndian, &addr.Timestamp); err != nil {
			return nodeerr.Wrap(nodeerr.IO, "read net address timestamp", err)
		}
	}

	var services uint64
	if err := binary.Read(r, binary.LittleEndian, &services); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read net address services", err)
	}
	addr.Services = ServiceFlag(services)

	var ip [16]byte
	if _, err := io.ReadFull(r, ip[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read net address ip", err)
	}
	addr.IP = net.IP(ip[:]).To16()

	var port uint16
	if err := binary.Read(r, binary.BigEndian, &port); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read net address port", err)
	}
	addr.Port = port
	return nil
}
