package section

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so a single
// value can both read/write fixed slots and append to growing buffers.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Engine returns the byte order of every multi-byte field in a coltab buffer.
// The layout is little-endian on every platform.
func Engine() EndianEngine {
	return binary.LittleEndian
}

// IsNativeOrder reports whether the host byte order matches Engine, in which
// case aligned numeric blocks can be reinterpreted in place without swapping.
func IsNativeOrder() bool {
	var probe uint16 = 0x0001
	b := (*[2]byte)(unsafe.Pointer(&probe))

	return b[0] == 0x01
}
