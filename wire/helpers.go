// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/btctestnet/node/nodeerr"
)

func writeUint32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return nodeerr.Wrap(nodeerr.IO, "write u32", err)
	}
	return nil
}

func readUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, nodeerr.Wrap(nodeerr.IO, "read u32", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
