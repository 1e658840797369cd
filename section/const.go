package section

import "math"

// sizes and limits of the buffer layout
const (
	EntryFixedSize    = 13             // name_len(4) + dtype(1) + count(4) + offset(4), name bytes excluded
	StringPrefixSize  = 4              // u32 length prefix of every string element
	NumericAlignment  = 8              // numeric value blocks start on this boundary
	MaxOffset         = math.MaxUint32 // largest absolute offset a directory entry can hold
	MaxElementCount   = math.MaxUint32 // largest element count a directory entry can hold
	MaxNameLength     = math.MaxUint32 // largest column name a directory entry can hold
	entryNameLenSize  = 4
	entryDTypeSize    = 1
	entryCountSize    = 4
	entryBlockOffSize = 4
)

// AlignOffset rounds offset up to the next NumericAlignment boundary.
func AlignOffset(offset int) int {
	return (offset + NumericAlignment - 1) &^ (NumericAlignment - 1)
}
