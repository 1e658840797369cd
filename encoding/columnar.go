package encoding

import "iter"

// ColumnarEncoder accumulates the value block of one column.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded block.
	// The returned slice is valid until the next call to Write, WriteSlice or Finish
	// and must not be modified by the caller.
	Bytes() []byte

	// Len returns the number of encoded elements.
	Len() int

	// Size returns the size of the encoded block in bytes.
	Size() int

	// Reset drops all encoded elements but keeps the internal buffer for reuse.
	Reset()

	// Finish returns the internal buffer to the pool.
	//
	// After Finish the encoder is no longer usable; Write, WriteSlice, Bytes and
	// Size panic. Copy the block out with Bytes before calling it:
	//
	//	enc := NewFixedEncoder[int64](section.Engine())
	//	defer enc.Finish()
	//
	//	enc.WriteSlice(values)
	//	out = append(out, enc.Bytes()...)
	Finish()

	// Write encodes a single element.
	Write(v T)

	// WriteSlice encodes values with a single buffer growth.
	WriteSlice(values []T)
}

// ColumnarDecoder reads elements back from a value block.
//
// Decoders are stateless values; data is the value block starting at its
// first element and count is the element count recorded in the directory.
type ColumnarDecoder[T comparable] interface {
	// All yields every element in order. It stops early if data is shorter
	// than count elements.
	All(data []byte, count int) iter.Seq[T]

	// At returns element index. The second result is false if index is out of
	// [0, count) or the element does not fit in data.
	At(data []byte, index int, count int) (T, bool)
}
