package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestVarIntCanonicalEncoding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarInt(&buf, 123))
	require.Equal(t, []byte{123}, buf.Bytes())

	buf.Reset()
	require.NoError(t, WriteVarInt(&buf, 300))
	require.Equal(t, []byte{253, 0x2c, 0x01}, buf.Bytes())
}

func TestCompactSizeU16Serialize(t *testing.T) {
	cs := CompactSize{Width: CompactSizeU16, Value: 123}
	require.Equal(t, []byte{253, 0x7B, 0x00}, cs.Serialize())
}

func TestVarIntRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Uint64().Draw(rt, "v")

		var buf bytes.Buffer
		require.NoError(rt, WriteVarInt(&buf, v))
		require.Equal(rt, VarIntSerializeSize(v), buf.Len())

		got, err := ReadVarInt(&buf)
		require.NoError(rt, err)
		require.Equal(rt, v, got)
	})
}

func TestVarBytesRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(rt, "b")

		var buf bytes.Buffer
		require.NoError(rt, WriteVarBytes(&buf, b))

		got, err := ReadVarBytes(&buf, 1<<20, "test")
		require.NoError(rt, err)
		require.Equal(rt, b, got)
	})
}
