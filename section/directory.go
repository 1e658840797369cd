package section

import (
	"fmt"
	"slices"

	"github.com/arloliu/coltab/errs"
)

// Directory is the ordered list of directory entries of a buffer, in table order.
type Directory []DirectoryEntry

// Size returns the encoded size of every entry.
func (d Directory) Size() int {
	size := 0
	for _, e := range d {
		size += e.Size()
	}

	return size
}

// WriteToSlice writes every entry at the start of data and returns the offset
// right after the directory.
func (d Directory) WriteToSlice(data []byte) int {
	offset := 0
	for _, e := range d {
		offset = e.WriteToSlice(data, offset)
	}

	return offset
}

// ParseDirectory parses every directory entry of data and checks that the
// value blocks they describe fit in data without overlapping the directory or
// each other.
//
// The buffer carries no column count: the directory ends where the first value
// block starts. Entries are read until fewer than EntryFixedSize bytes are left
// before the smallest value block offset seen so far (or before the end of data
// while no entry has been read). The bytes left over are padding in front of an
// aligned numeric block. An empty buffer is a table without columns.
//
// Only the minimal size of string blocks (one length prefix per element) is
// checked here; element lengths are validated lazily when elements are read.
//
// Returns:
//   - Directory: the entries in table order
//   - int: byte offset right after the directory
//   - error: ErrMalformedBuffer describing the first inconsistency found
func ParseDirectory(data []byte) (Directory, int, error) {
	var dir Directory

	limit := len(data)
	offset := 0
	for limit-offset >= EntryFixedSize {
		var entry DirectoryEntry
		var err error

		entry, offset, err = ParseDirectoryEntry(data, offset)
		if err != nil {
			return nil, 0, err
		}

		dir = append(dir, entry)
		limit = min(limit, entry.Offset)
	}

	// a buffer holding bytes but no entry can only be a truncated first entry
	if len(dir) == 0 && len(data) > 0 {
		return nil, 0, fmt.Errorf("%w: truncated directory entry at offset 0 (%d bytes)",
			errs.ErrMalformedBuffer, len(data))
	}

	if err := dir.validateBlocks(offset, len(data)); err != nil {
		return nil, 0, err
	}

	return dir, offset, nil
}

// validateBlocks checks every value block against the directory end and the
// buffer length, then checks blocks for overlap in offset order.
func (d Directory) validateBlocks(dirEnd, bufLen int) error {
	order := make([]int, len(d))
	for i, e := range d {
		if e.Offset < dirEnd {
			return fmt.Errorf("%w: column %q value block offset %d is inside the directory (ends at %d)",
				errs.ErrMalformedBuffer, e.Name, e.Offset, dirEnd)
		}

		if e.Offset > bufLen {
			return fmt.Errorf("%w: column %q value block offset %d is beyond the buffer end %d",
				errs.ErrMalformedBuffer, e.Name, e.Offset, bufLen)
		}

		if e.Count > (bufLen-e.Offset)/max(e.DType.Stride(), StringPrefixSize) {
			return fmt.Errorf("%w: column %q needs %d bytes at offset %d, buffer has %d",
				errs.ErrMalformedBuffer, e.Name, e.MinBlockSize(), e.Offset, bufLen)
		}

		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return d[a].Offset - d[b].Offset
	})

	for k := 1; k < len(order); k++ {
		prev, cur := d[order[k-1]], d[order[k]]
		if prev.Offset+prev.MinBlockSize() > cur.Offset {
			return fmt.Errorf("%w: value blocks of columns %q and %q overlap",
				errs.ErrMalformedBuffer, prev.Name, cur.Name)
		}
	}

	return nil
}
