package frame

import (
	"github.com/arloliu/coltab/encoding"
	"github.com/arloliu/coltab/format"
	"github.com/arloliu/coltab/section"
	"github.com/arloliu/coltab/table"
)

// Head opens buf and returns its first n rows, see View.Head.
func Head(buf []byte, n int, opts ...ViewOption) (*table.Table, error) {
	v, err := Open(buf, opts...)
	if err != nil {
		return nil, err
	}

	return v.Head(n)
}

// Head materializes the first n rows of every column, in column order.
//
// The row count is min(max(n, 0), NumRows()): n <= 0 gives every column with
// zero rows, and n past the shortest column truncates to it.
//
// Columns keep their buffer order and names even when a buffer written
// elsewhere repeats or omits a name, see table.FromColumns.
//
// Returns:
//   - *table.Table: the rows decoded to []int64, []float64 or []string columns
//   - error: ErrMalformedBuffer if a string element runs past the buffer
func (v *View) Head(n int) (*table.Table, error) {
	rows := min(max(n, 0), v.NumRows())

	columns := make([]table.Column, 0, len(v.dir))
	for _, entry := range v.dir {
		col, err := v.decodeColumn(entry, rows)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	return table.FromColumns(columns...), nil
}

// decodeColumn copies the first rows elements of entry into a table column.
func (v *View) decodeColumn(entry section.DirectoryEntry, rows int) (table.Column, error) {
	switch entry.DType {
	case format.Int64:
		return table.Int64s(entry.Name, decodeFixed(v.ints, v.buf[entry.Offset:], rows)), nil
	case format.Float64:
		return table.Float64s(entry.Name, decodeFixed(v.floats, v.buf[entry.Offset:], rows)), nil
	default:
		values := make([]string, 0, rows)
		err := v.scan(entry, rows, func(_ int, val format.Value) bool {
			values = append(values, val.Str())
			return true
		})
		if err != nil {
			return table.Column{}, err
		}

		return table.Strings(entry.Name, values), nil
	}
}

// decodeFixed copies the first rows elements of a numeric block, through the
// zero-copy view when the block allows it.
func decodeFixed[T encoding.Fixed](dec encoding.FixedDecoder[T], data []byte, rows int) []T {
	if view, ok := encoding.FixedSlice[T](data, rows); ok {
		return append(make([]T, 0, rows), view...)
	}

	values := make([]T, 0, rows)
	for val := range dec.All(data, rows) {
		values = append(values, val)
	}

	return values
}
