// Package section defines the low-level binary structures and constants of the
// coltab buffer layout.
//
// A buffer is self-describing: a reader holding only the bytes can find, type
// and decode any column without an external schema and without scanning the
// columns before it.
//
// # Buffer Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Directory (one entry per column, table order)           │
//	│  - NameLen (4) + Name (NameLen)                         │
//	│  - DType (1) + Count (4) + Offset (4)                   │
//	├─────────────────────────────────────────────────────────┤
//	│ Padding (0-7 bytes, before any numeric block)           │
//	├─────────────────────────────────────────────────────────┤
//	│ Value block of column 0                                 │
//	├─────────────────────────────────────────────────────────┤
//	│ Value block of column 1                                 │
//	│ ...                                                     │
//	└─────────────────────────────────────────────────────────┘
//
// The buffer has no preamble and no column count. The directory ends where the
// first value block starts, so a reader parses entries until the smallest
// offset seen so far leaves no room for another entry. A zero-length buffer is
// a table without columns.
//
// Every multi-byte field is little-endian.
//
// # Value Blocks
//
// Int64 and Float64 blocks are fixed-stride: Count elements of exactly 8 bytes
// each, no padding between elements. Element i of a numeric column lives at
// Offset + i*8, which makes random access O(1) and lets values be overwritten
// in place without moving any other byte.
//
// String blocks are variable-stride: Count elements of the form
// len:uint32 followed by len bytes of UTF-8, laid out contiguously. Reaching
// element i requires skipping the i elements before it.
//
// Offsets in the directory are absolute positions from the start of the
// buffer, so a reader jumps straight to any block. Padding before numeric
// blocks keeps every numeric element 8-byte aligned relative to the buffer
// start; readers must not rely on it, since the offset alone locates a block.
package section
