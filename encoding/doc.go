// Package encoding provides the value block codecs of the coltab layout.
//
// A value block holds the elements of exactly one column. Two block shapes
// exist:
//
//   - Fixed stride (Int64, Float64): each element is one 8-byte word in the
//     buffer byte order. FixedEncoder / FixedDecoder handle both dtypes through
//     the Fixed type parameter; element i lives at i*8 so random access and
//     in-place overwrites are O(1).
//   - Length prefixed (String): each element is a u32 byte length followed by
//     the UTF-8 bytes. StringEncoder / StringDecoder handle this shape;
//     reaching element i means skipping i prefixes.
//
// Encoders accumulate into pooled buffers (internal/pool) and must be released
// with Finish once their bytes have been copied into the final buffer:
//
//	enc := encoding.NewFixedEncoder[float64](section.Engine())
//	defer enc.Finish()
//
//	enc.WriteSlice([]float64{1.5, 2.5})
//	block := append([]byte(nil), enc.Bytes()...) // 16 bytes
//
// Decoders are stateless values and never copy the block:
//
//	dec := encoding.NewFixedDecoder[float64](section.Engine())
//	v, ok := dec.At(block, 1, 2) // 2.5, true
//
// When the host is little-endian and the block is aligned, FixedSlice maps a
// numeric block to a []int64 or []float64 without copying.
//
// Most users should not need this package directly; the frame package builds
// and reads whole buffers.
package encoding
