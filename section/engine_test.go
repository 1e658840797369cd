package section

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestEngine(t *testing.T) {
	engine := Engine()
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), engine.Uint32(buf))
}

func TestIsNativeOrder(t *testing.T) {
	var word uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&word))[0]

	switch first {
	case 0x02:
		require.True(t, IsNativeOrder(), "little-endian host")
	case 0x01:
		require.False(t, IsNativeOrder(), "big-endian host")
	default:
		require.Failf(t, "unexpected byte value", "got: %v", first)
	}
}
