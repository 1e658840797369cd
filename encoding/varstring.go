package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/internal/pool"
	"github.com/arloliu/coltab/section"
)

// MaxStringLength is the longest string a u32 length prefix can describe.
const MaxStringLength = section.MaxNameLength

// StringEncoder encodes strings with a u32 length prefix.
//
// Each string is encoded as:
//   - 4 bytes: byte length, in the engine's byte order
//   - N bytes: string data (UTF-8)
//
// Note: StringEncoder is NOT a ColumnarEncoder, Write reports strings whose
// length does not fit the prefix.
type StringEncoder struct {
	buf    *pool.ByteBuffer
	engine section.EndianEngine
	count  int
}

// NewStringEncoder creates a string encoder backed by a pooled buffer.
func NewStringEncoder(engine section.EndianEngine) *StringEncoder {
	return &StringEncoder{
		engine: engine,
		buf:    pool.GetColumnBuffer(),
	}
}

// Write encodes a single string.
//
// Returns:
//   - error: ErrBufferTooLarge if the string is longer than MaxStringLength
func (e *StringEncoder) Write(text string) error {
	if uint64(len(text)) > MaxStringLength {
		return fmt.Errorf("%w: string length %d exceeds maximum %d", errs.ErrBufferTooLarge, len(text), uint64(MaxStringLength))
	}

	e.count++
	e.buf.Grow(section.StringPrefixSize + len(text))
	e.engine.PutUint32(e.buf.ExtendOrGrow(section.StringPrefixSize), uint32(len(text))) //nolint: gosec
	e.buf.MustWriteString(text)

	return nil
}

// WriteSlice validates every string first, then encodes them with a single
// buffer growth. Nothing is written if any string is too long.
func (e *StringEncoder) WriteSlice(texts []string) error {
	totalSize := 0
	for _, text := range texts {
		if uint64(len(text)) > MaxStringLength {
			return fmt.Errorf("%w: string length %d exceeds maximum %d", errs.ErrBufferTooLarge, len(text), uint64(MaxStringLength))
		}
		totalSize += section.StringPrefixSize + len(text)
	}

	e.buf.Grow(totalSize)
	for _, text := range texts {
		e.engine.PutUint32(e.buf.ExtendOrGrow(section.StringPrefixSize), uint32(len(text))) //nolint: gosec
		e.buf.MustWriteString(text)
	}
	e.count += len(texts)

	return nil
}

// Bytes returns the encoded block. Do not modify the returned slice.
func (e *StringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded strings.
func (e *StringEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *StringEncoder) Size() int {
	return e.buf.Len()
}

// Reset drops every encoded string and keeps the buffer.
func (e *StringEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *StringEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// StringDecoder reads strings written by StringEncoder.
//
// A string block has no end marker, so data may extend past the block (for
// example to the end of the whole buffer); only the length prefixes delimit it.
// Element i is reached by skipping i prefixes, which makes At O(i).
type StringDecoder struct {
	engine section.EndianEngine
}

var _ ColumnarDecoder[string] = StringDecoder{}

// NewStringDecoder creates a stateless string decoder.
func NewStringDecoder(engine section.EndianEngine) StringDecoder {
	return StringDecoder{engine: engine}
}

// All yields the count strings of data in order. It stops at the first
// element whose prefix or bytes run past data.
func (d StringDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		offset := 0
		for range count {
			s, next, ok := d.next(data, offset)
			if !ok || !yield(s) {
				return
			}
			offset = next
		}
	}
}

// At returns string index of data.
func (d StringDecoder) At(data []byte, index int, count int) (string, bool) {
	if index < 0 || index >= count {
		return "", false
	}

	offset, ok := d.Skip(data, index)
	if !ok {
		return "", false
	}

	s, _, ok := d.next(data, offset)

	return s, ok
}

// Skip returns the offset of string n, that is the offset right after the
// first n strings. The second result is false if they run past data.
func (d StringDecoder) Skip(data []byte, n int) (int, bool) {
	offset := 0
	for range n {
		if len(data)-offset < section.StringPrefixSize {
			return 0, false
		}

		length := int(d.engine.Uint32(data[offset:]))
		if len(data)-offset-section.StringPrefixSize < length {
			return 0, false
		}
		offset += section.StringPrefixSize + length
	}

	return offset, true
}

// Validate walks the count strings of data and returns the block size.
//
// Returns:
//   - int: number of bytes the block occupies
//   - error: ErrMalformedBuffer naming the first element that runs past data
func (d StringDecoder) Validate(data []byte, count int) (int, error) {
	offset := 0
	for i := range count {
		_, next, ok := d.next(data, offset)
		if !ok {
			return 0, fmt.Errorf("%w: string element %d at block offset %d runs past the buffer",
				errs.ErrMalformedBuffer, i, offset)
		}
		offset = next
	}

	return offset, nil
}

func (d StringDecoder) next(data []byte, offset int) (string, int, bool) {
	if len(data)-offset < section.StringPrefixSize {
		return "", 0, false
	}

	length := int(d.engine.Uint32(data[offset:]))
	start := offset + section.StringPrefixSize
	if len(data)-start < length {
		return "", 0, false
	}

	return string(data[start : start+length]), start + length, true
}
