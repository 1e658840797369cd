package pool

import (
	"sync"
)

const (
	ColumnBufferDefaultSize  = 1024 * 4    // 4KiB, one value block of ~500 numeric elements
	ColumnBufferMaxThreshold = 1024 * 1024 // 1MiB, larger buffers are not retained
)

// ByteBuffer is a growable byte slice used to accumulate one value block.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteString appends s to the buffer without converting it to a byte slice first.
func (bb *ByteBuffer) MustWriteString(s string) {
	bb.B = append(bb.B, s...)
}

// ExtendOrGrow extends the buffer length by n bytes, growing it if necessary,
// and returns the newly exposed region.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]

	return bb.B[start : start+n]
}

// Grow makes sure the buffer can hold requiredBytes more bytes without reallocating.
//
// The growth strategy is as follows:
//   - For small buffers (<=16KiB), grow by ColumnBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ColumnBufferDefaultSize
	if cap(bb.B) > 4*ColumnBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a sync.Pool of ByteBuffers that drops buffers grown beyond
// maxThreshold instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var columnDefaultPool = NewByteBufferPool(ColumnBufferDefaultSize, ColumnBufferMaxThreshold)

// GetColumnBuffer retrieves a ByteBuffer from the default value block pool.
func GetColumnBuffer() *ByteBuffer {
	return columnDefaultPool.Get()
}

// PutColumnBuffer returns a ByteBuffer to the default value block pool.
func PutColumnBuffer(bb *ByteBuffer) {
	columnDefaultPool.Put(bb)
}
