// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btctestnet/node/nodeerr"
)

// Message is implemented by every message type this node can send or
// receive. Command identifies the wire command string; Encode/Decode
// (de)serialize the payload only — framing is handled by WriteMessage and
// ReadMessage.
type Message interface {
	Command() string
	Encode(w io.Writer) error
	Decode(r io.Reader) error
}

// MsgUnknown is returned by ReadMessage for any command this node does
// not implement a dedicated type for. It is never sent.
type MsgUnknown struct {
	Cmd     string
	Payload []byte
}

func (m *MsgUnknown) Command() string { return m.Cmd }
func (m *MsgUnknown) Encode(w io.Writer) error {
	_, err := w.Write(m.Payload)
	return err
}
func (m *MsgUnknown) Decode(r io.Reader) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nodeerr.Wrap(nodeerr.IO, "read unknown payload", err)
	}
	m.Payload = buf
	return nil
}

// checksum returns the first four bytes of the double-SHA256 of payload.
func checksum(payload []byte) [4]byte {
	h := chainhash.DoubleHashB(payload)
	var sum [4]byte
	copy(sum[:], h[:4])
	return sum
}

// messageHeader is the fixed 24-byte framing that precedes every
// message's payload.
type messageHeader struct {
	magic       BitcoinNet
	command     string
	payloadSize uint32
	checksum    [4]byte
}

const messageHeaderSize = 4 + CommandSize + 4 + 4

func writeCommand(cmd string) [CommandSize]byte {
	var buf [CommandSize]byte
	copy(buf[:], cmd)
	return buf
}

func readCommand(buf [CommandSize]byte) string {
	n := bytes.IndexByte(buf[:], 0)
	if n == -1 {
		n = CommandSize
	}
	return string(buf[:n])
}

// WriteMessage serializes msg's payload, frames it with the message
// header for net, and writes the whole thing to w.
func WriteMessage(w io.Writer, net BitcoinNet, msg Message) error {
	var payloadBuf bytes.Buffer
	if err := msg.Encode(&payloadBuf); err != nil {
		return err
	}
	payload := payloadBuf.Bytes()

	var hdr bytes.Buffer
	if err := binary.Write(&hdr, binary.LittleEndian, uint32(net)); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write magic", err)
	}
	cmdBuf := writeCommand(msg.Command())
	if _, err := hdr.Write(cmdBuf[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write command", err)
	}
	if err := binary.Write(&hdr, binary.LittleEndian, uint32(len(payload))); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write payload size", err)
	}
	sum := checksum(payload)
	if _, err := hdr.Write(sum[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write checksum", err)
	}

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write message header", err)
	}
	if _, err := w.Write(payload); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write message payload", err)
	}
	return nil
}

// ReadMessage reads one framed message from r for the given network. An
// unrecognized command is returned as *MsgUnknown with no error; every
// other framing or checksum problem is returned as an error.
func ReadMessage(r io.Reader, net BitcoinNet) (Message, error) {
	var rawMagic uint32
	if err := binary.Read(r, binary.LittleEndian, &rawMagic); err != nil {
		return nil, nodeerr.Wrap(nodeerr.IO, "read magic", err)
	}
	if BitcoinNet(rawMagic) != net {
		return nil, nodeerr.New(nodeerr.BadMagic, "unexpected network magic")
	}

	var cmdBuf [CommandSize]byte
	if _, err := io.ReadFull(r, cmdBuf[:]); err != nil {
		return nil, nodeerr.Wrap(nodeerr.IO, "read command", err)
	}
	cmd := readCommand(cmdBuf)

	var payloadSize uint32
	if err := binary.Read(r, binary.LittleEndian, &payloadSize); err != nil {
		return nil, nodeerr.Wrap(nodeerr.IO, "read payload size", err)
	}
	if payloadSize > MaxPayloadSize {
		return nil, nodeerr.New(nodeerr.MessageTooLong, "payload_size exceeds maximum")
	}

	var wantChecksum [4]byte
	if _, err := io.ReadFull(r, wantChecksum[:]); err != nil {
		return nil, nodeerr.Wrap(nodeerr.IO, "read checksum", err)
	}

	payload := make([]byte, payloadSize)
	if payloadSize > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, nodeerr.Wrap(nodeerr.IO, "read payload", err)
		}
	}

	gotChecksum := checksum(payload)
	if gotChecksum != wantChecksum {
		return nil, nodeerr.New(nodeerr.ChecksumMismatch, "payload checksum mismatch")
	}

	msg := makeEmptyMessage(cmd)
	if msg == nil {
		return &MsgUnknown{Cmd: cmd, Payload: payload}, nil
	}
	if err := msg.Decode(bytes.NewReader(payload)); err != nil {
		return nil, err
	}
	return msg, nil
}

// makeEmptyMessage returns a zero-valued Message for a known command, or
// nil if cmd is not one this node implements.
func makeEmptyMessage(cmd string) Message {
	switch cmd {
	case CmdVersion:
		return &MsgVersion{}
	case CmdVerAck:
		return &MsgVerAck{}
	case CmdPing:
		return &MsgPing{}
	case CmdPong:
		return &MsgPong{}
	case CmdSendCmpct:
		return &MsgSendCmpct{}
	case CmdSendHeaders:
		return &MsgSendHeaders{}
	case CmdGetHeaders:
		return &MsgGetHeaders{}
	case CmdHeaders:
		return &MsgHeaders{}
	case CmdInv:
		return &MsgInv{}
	case CmdGetData:
		return &MsgGetData{}
	case CmdBlock:
		return &MsgBlock{}
	case CmdTx:
		return &MsgTx{}
	case CmdMemPool:
		return &MsgMemPool{}
	case CmdAddr:
		return &MsgAddr{}
	case CmdFeeFilter:
		return &MsgFeeFilter{}
	default:
		return nil
	}
}
