package encoding

import (
	"unsafe"

	"github.com/arloliu/coltab/format"
	"github.com/arloliu/coltab/section"
)

// FixedSlice reinterprets the first count elements of data as a []T without copying.
//
// It only succeeds when the host byte order matches the buffer's
// (section.IsNativeOrder), data starts on a T-aligned address and holds at
// least count elements. Writes through the returned slice change data.
//
// The second result is false when any condition does not hold; callers then
// fall back to FixedDecoder.
func FixedSlice[T Fixed](data []byte, count int) ([]T, bool) {
	if count < 0 || len(data)/format.NumericStride < count || !section.IsNativeOrder() {
		return nil, false
	}

	if count == 0 {
		return []T{}, true
	}

	ptr := unsafe.Pointer(unsafe.SliceData(data))
	var zero T
	if uintptr(ptr)%unsafe.Alignof(zero) != 0 {
		return nil, false
	}

	return unsafe.Slice((*T)(ptr), count), true
}
