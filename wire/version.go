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

// MaxUserAgentLen bounds the user agent string this node will decode.
const MaxUserAgentLen = 256

// MsgVersion implements the version handshake message.
type MsgVersion struct {
	ProtocolVersion int32
	Services        ServiceFlag
	Timestamp       int64
	AddrRecv        NetAddress
	AddrTrans       NetAddress
	Nonce           uint64
	UserAgent       string
	StartHeight     int32
	Relay           bool
}

func (m *MsgVersion) Command() string { return CmdVersion }

func (m *MsgVersion) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, m.ProtocolVersion); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write version.protocol_version", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(m.Services)); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write version.services", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.Timestamp); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write version.timestamp", err)
	}
	if err := writeNetAddress(w, &m.AddrRecv, false); err != nil {
		return err
	}
	if err := writeNetAddress(w, &m.AddrTrans, false); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.Nonce); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write version.nonce", err)
	}
	if err := WriteVarString(w, m.UserAgent); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.StartHeight); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write version.start_height", err)
	}
	relay := byte(0)
	if m.Relay {
		relay = 1
	}
	if _, err := w.Write([]byte{relay}); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write version.relay", err)
	}
	return nil
}

func (m *MsgVersion) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &m.ProtocolVersion); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read version.protocol_version", err)
	}
	var services uint64
	if err := binary.Read(r, binary.LittleEndian, &services); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read version.services", err)
	}
	m.Services = ServiceFlag(services)
	if err := binary.Read(r, binary.LittleEndian, &m.Timestamp); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read version.timestamp", err)
	}
	if err := readNetAddress(r, &m.AddrRecv, false); err != nil {
		return err
	}
	if err := readNetAddress(r, &m.AddrTrans, false); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &m.Nonce); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read version.nonce", err)
	}
	ua, err := ReadVarString(r, MaxUserAgentLen)
	if err != nil {
		return err
	}
	m.UserAgent = ua
	if err := binary.Read(r, binary.LittleEndian, &m.StartHeight); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read version.start_height", err)
	}

	var relay [1]byte
	if _, err := io.ReadFull(r, relay[:]); err != nil {
		// The relay byte was added in BIP0037 and a strict peer may
		// omit it; its absence is not an error, just means "relay".
		m.Relay = true
		return nil
	}
	m.Relay = relay[0] != 0
	return nil
}

// NewMsgVersion builds a version message addressed to remoteAddr /
// remotePort, advertising our own addr_trans_port, a random nonce, user
// agent, chain tip height, and relay=true.
func NewMsgVersion(remoteAddr net.IP, remotePort uint16, ourPort uint16, nonce uint64, userAgent string, startHeight int32) *MsgVersion {
	return &MsgVersion{
		ProtocolVersion: int32(ProtocolVersion),
		Services:        SFNodeNetwork,
		Timestamp:       0, // set by caller with the current time
		AddrRecv: NetAddress{
			Services: SFNodeNetwork,
			IP:       remoteAddr,
			Port:     remotePort,
		},
		AddrTrans: NetAddress{
			Services: SFNodeNetwork,
			IP:       net.IPv4zero,
			Port:     ourPort,
		},
		Nonce:       nonce,
		UserAgent:   userAgent,
		StartHeight: startHeight,
		Relay:       true,
	}
}
