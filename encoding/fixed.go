package encoding

import (
	"iter"
	"math"

	"github.com/arloliu/coltab/format"
	"github.com/arloliu/coltab/internal/pool"
	"github.com/arloliu/coltab/section"
)

// Fixed is the set of element types stored with a fixed 8-byte stride.
type Fixed interface {
	int64 | float64
}

// FixedEncoder writes Int64 or Float64 elements as raw 8-byte words in the
// byte order of the engine. Floats keep their exact IEEE-754 bit pattern.
type FixedEncoder[T Fixed] struct {
	buf    *pool.ByteBuffer
	engine section.EndianEngine
	count  int
}

var (
	_ ColumnarEncoder[int64]   = (*FixedEncoder[int64])(nil)
	_ ColumnarEncoder[float64] = (*FixedEncoder[float64])(nil)
)

// NewFixedEncoder creates a fixed-stride encoder backed by a pooled buffer.
func NewFixedEncoder[T Fixed](engine section.EndianEngine) *FixedEncoder[T] {
	return &FixedEncoder[T]{
		engine: engine,
		buf:    pool.GetColumnBuffer(),
	}
}

// Write encodes a single element.
//
// Panics if Finish has been called.
func (e *FixedEncoder[T]) Write(v T) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.engine.PutUint64(e.buf.ExtendOrGrow(format.NumericStride), ToBits(v))
}

// WriteSlice encodes values, growing the buffer once for the whole slice.
//
// Panics if Finish has been called.
func (e *FixedEncoder[T]) WriteSlice(values []T) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if len(values) == 0 {
		return
	}

	e.count += len(values)

	dst := e.buf.ExtendOrGrow(len(values) * format.NumericStride)
	for i, v := range values {
		e.engine.PutUint64(dst[i*format.NumericStride:], ToBits(v))
	}
}

// Bytes returns the encoded block.
//
// Panics if Finish has been called.
func (e *FixedEncoder[T]) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded elements.
func (e *FixedEncoder[T]) Len() int {
	return e.count
}

// Size returns the encoded size in bytes, always Len()*8.
//
// Panics if Finish has been called.
func (e *FixedEncoder[T]) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset drops every encoded element and keeps the buffer.
func (e *FixedEncoder[T]) Reset() {
	if e.buf != nil {
		e.buf.Reset()
	}
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *FixedEncoder[T]) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// FixedDecoder reads fixed-stride elements written by FixedEncoder.
type FixedDecoder[T Fixed] struct {
	engine section.EndianEngine
}

var (
	_ ColumnarDecoder[int64]   = FixedDecoder[int64]{}
	_ ColumnarDecoder[float64] = FixedDecoder[float64]{}
)

// NewFixedDecoder creates a stateless decoder. The engine must match the encoder's.
func NewFixedDecoder[T Fixed](engine section.EndianEngine) FixedDecoder[T] {
	return FixedDecoder[T]{engine: engine}
}

// All yields the first count elements of data.
// Nothing is yielded if data is shorter than count elements.
func (d FixedDecoder[T]) All(data []byte, count int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if count <= 0 || len(data)/format.NumericStride < count {
			return
		}

		for i := range count {
			if !yield(FromBits[T](d.engine.Uint64(data[i*format.NumericStride:]))) {
				return
			}
		}
	}
}

// At returns element index of data.
func (d FixedDecoder[T]) At(data []byte, index int, count int) (T, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * format.NumericStride
	if start+format.NumericStride > len(data) {
		return 0, false
	}

	return FromBits[T](d.engine.Uint64(data[start:])), true
}

// Put overwrites element index of data in place. It reports false if the
// element does not fit in data.
func (d FixedDecoder[T]) Put(data []byte, index int, v T) bool {
	start := index * format.NumericStride
	if index < 0 || start+format.NumericStride > len(data) {
		return false
	}

	d.engine.PutUint64(data[start:], ToBits(v))

	return true
}

// ToBits returns the 64-bit word stored for v.
func ToBits[T Fixed](v T) uint64 {
	switch x := any(v).(type) {
	case float64:
		return math.Float64bits(x)
	case int64:
		return uint64(x) //nolint: gosec
	}

	return 0
}

// FromBits converts a stored 64-bit word back to T.
func FromBits[T Fixed](bits uint64) T {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return any(math.Float64frombits(bits)).(T) //nolint: forcetypeassert
	}

	return any(int64(bits)).(T) //nolint: forcetypeassert,gosec
}
