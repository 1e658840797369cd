package section

import (
	"fmt"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/format"
)

// DirectoryEntry describes one column: its name, dtype, element count and the
// absolute offset of its value block.
//
// On disk an entry is variable-size because the name is inlined:
//
//	Bytes      | Field    | Type   | Description
//	-----------|----------|--------|------------------------------------
//	0-3        | NameLen  | uint32 | byte length of Name
//	4-(4+N)    | Name     | []byte | UTF-8 column name
//	+0         | DType    | uint8  | 0=Int64, 1=Float64, 2=String
//	+1..+4     | Count    | uint32 | number of elements in the column
//	+5..+8     | Offset   | uint32 | absolute offset of the value block
//
// In memory Count and Offset are kept as int to avoid conversions on every access.
type DirectoryEntry struct {
	Name   string
	DType  format.DType
	Count  int
	Offset int
}

// NewDirectoryEntry creates an entry with a zero offset; the encoder fills the
// offset once the directory size is known.
func NewDirectoryEntry(name string, dtype format.DType, count int) DirectoryEntry {
	return DirectoryEntry{
		Name:  name,
		DType: dtype,
		Count: count,
	}
}

// Size returns the encoded size of the entry in bytes.
func (e DirectoryEntry) Size() int {
	return EntryFixedSize + len(e.Name)
}

// MinBlockSize returns the smallest number of bytes the value block can occupy.
// It is exact for numeric columns; string columns need at least one length
// prefix per element.
func (e DirectoryEntry) MinBlockSize() int {
	if e.DType.IsNumeric() {
		return e.Count * format.NumericStride
	}

	return e.Count * StringPrefixSize
}

// ElementOffset returns the absolute offset of element i of a numeric column.
func (e DirectoryEntry) ElementOffset(i int) int {
	return e.Offset + i*format.NumericStride
}

// WriteToSlice writes the entry at data[offset:] and returns the next write position.
// The caller must make sure Size() bytes are available and that every field
// fits its 32-bit slot.
func (e DirectoryEntry) WriteToSlice(data []byte, offset int) int {
	engine := Engine()

	engine.PutUint32(data[offset:], uint32(len(e.Name))) //nolint: gosec
	offset += entryNameLenSize
	offset += copy(data[offset:], e.Name)

	data[offset] = uint8(e.DType)
	offset += entryDTypeSize

	engine.PutUint32(data[offset:], uint32(e.Count)) //nolint: gosec
	offset += entryCountSize

	engine.PutUint32(data[offset:], uint32(e.Offset)) //nolint: gosec
	offset += entryBlockOffSize

	return offset
}

// ParseDirectoryEntry parses the entry starting at data[offset:].
//
// Returns:
//   - DirectoryEntry: the parsed entry
//   - int: offset right after the entry
//   - error: ErrMalformedBuffer if the entry is truncated or has an unknown dtype tag
func ParseDirectoryEntry(data []byte, offset int) (DirectoryEntry, int, error) {
	engine := Engine()

	if len(data)-offset < entryNameLenSize {
		return DirectoryEntry{}, 0, fmt.Errorf("%w: truncated name length at offset %d", errs.ErrMalformedBuffer, offset)
	}

	nameLen := int(engine.Uint32(data[offset:]))
	offset += entryNameLenSize

	if nameLen < 0 || len(data)-offset < nameLen+EntryFixedSize-entryNameLenSize {
		return DirectoryEntry{}, 0, fmt.Errorf("%w: truncated directory entry at offset %d (name length %d)",
			errs.ErrMalformedBuffer, offset-entryNameLenSize, nameLen)
	}

	name := string(data[offset : offset+nameLen])
	offset += nameLen

	dtype, ok := format.ParseDType(data[offset])
	if !ok {
		return DirectoryEntry{}, 0, fmt.Errorf("%w: column %q has unknown dtype tag 0x%02x",
			errs.ErrMalformedBuffer, name, data[offset])
	}
	offset += entryDTypeSize

	count := int(engine.Uint32(data[offset:]))
	offset += entryCountSize

	blockOffset := int(engine.Uint32(data[offset:]))
	offset += entryBlockOffSize

	return DirectoryEntry{
		Name:   name,
		DType:  dtype,
		Count:  count,
		Offset: blockOffset,
	}, offset, nil
}
