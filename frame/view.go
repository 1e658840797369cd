package frame

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/arloliu/coltab/encoding"
	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/format"
	"github.com/arloliu/coltab/internal/collision"
	"github.com/arloliu/coltab/internal/options"
	"github.com/arloliu/coltab/section"
)

// ColumnInfo describes one column of a buffer.
type ColumnInfo struct {
	Name  string
	DType format.DType
	Rows  int
}

// View is a read-only projection over an encoded buffer.
//
// A View parses and caches only the directory; element values are decoded on
// demand and never cached. The in-place mutator never changes the directory,
// so a View stays valid across MapNumericInPlace calls on the same buffer.
//
// A View does not own the buffer. Concurrent reads are safe as long as no
// mutation is in flight.
type View struct {
	buf    []byte
	dir    section.Directory
	names  *collision.Tracker
	logger *zap.Logger

	ints   encoding.FixedDecoder[int64]
	floats encoding.FixedDecoder[float64]
	strs   encoding.StringDecoder
}

// Open parses the directory of buf and returns a view over it.
//
// Open validates every directory entry and the placement of every value
// block. An empty buf is a table without columns. String element lengths are validated lazily when
// elements are read.
//
// Returns:
//   - *View: view over buf
//   - error: ErrMalformedBuffer if the directory is corrupt or inconsistent
//     with len(buf), or a configuration error if an option is invalid
func Open(buf []byte, opts ...ViewOption) (*View, error) {
	config := newViewConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	dir, _, err := section.ParseDirectory(buf)
	if err != nil {
		return nil, err
	}

	engine := section.Engine()
	v := &View{
		buf:    buf,
		dir:    dir,
		names:  collision.NewTracker(len(dir)),
		logger: config.logger,
		ints:   encoding.NewFixedDecoder[int64](engine),
		floats: encoding.NewFixedDecoder[float64](engine),
		strs:   encoding.NewStringDecoder(engine),
	}

	for i, entry := range dir {
		// buffers from other writers may repeat or omit names, the first
		// occurrence wins and unnamed columns are reachable by index only
		if _, err := v.names.TrackFirst(entry.Name); err != nil {
			v.logger.Debug("column not indexed by name", zap.Int("column", i), zap.Error(err))
		}
	}

	v.logger.Debug("opened view",
		zap.Int("columns", len(dir)),
		zap.Int("bytes", len(buf)),
	)

	return v, nil
}

// Bytes returns the underlying buffer.
func (v *View) Bytes() []byte {
	return v.buf
}

// ColumnCount returns the number of columns.
func (v *View) ColumnCount() int {
	return len(v.dir)
}

// ColumnName returns the name of column i.
func (v *View) ColumnName(i int) (string, error) {
	entry, err := v.entry(i)
	if err != nil {
		return "", err
	}

	return entry.Name, nil
}

// ColumnDType returns the dtype of column i.
func (v *View) ColumnDType(i int) (format.DType, error) {
	entry, err := v.entry(i)
	if err != nil {
		return 0, err
	}

	return entry.DType, nil
}

// RowCount returns the element count of column i.
func (v *View) RowCount(i int) (int, error) {
	entry, err := v.entry(i)
	if err != nil {
		return 0, err
	}

	return entry.Count, nil
}

// NumRows returns the smallest row count over all columns, 0 without columns.
func (v *View) NumRows() int {
	if len(v.dir) == 0 {
		return 0
	}

	rows := v.dir[0].Count
	for _, entry := range v.dir[1:] {
		rows = min(rows, entry.Count)
	}

	return rows
}

// ColumnIndex returns the index of the column called name.
func (v *View) ColumnIndex(name string) (int, bool) {
	return v.names.Lookup(name)
}

// Schema returns the name, dtype and row count of every column in order.
func (v *View) Schema() []ColumnInfo {
	schema := make([]ColumnInfo, len(v.dir))
	for i, entry := range v.dir {
		schema[i] = ColumnInfo{Name: entry.Name, DType: entry.DType, Rows: entry.Count}
	}

	return schema
}

// Element returns element row of column i.
//
// Numeric elements are read in O(1); reaching a string element skips the
// row length prefixes before it. No other column is parsed.
//
// Returns:
//   - format.Value: the element
//   - error: ErrIndexOutOfRange for a bad column or row index,
//     ErrMalformedBuffer if a string prefix runs past the buffer
func (v *View) Element(i, row int) (format.Value, error) {
	entry, err := v.element(i, row)
	if err != nil {
		return format.Value{}, err
	}

	switch entry.DType {
	case format.Int64:
		return format.Int64Value(v.int64At(entry, row)), nil
	case format.Float64:
		return format.Float64Value(v.float64At(entry, row)), nil
	default:
		s, err := v.stringAt(entry, row)
		if err != nil {
			return format.Value{}, err
		}

		return format.StringValue(s), nil
	}
}

// Int64At returns element row of Int64 column i.
//
// Returns:
//   - error: ErrTypeMismatch if column i is not Int64, see Element for the others
func (v *View) Int64At(i, row int) (int64, error) {
	entry, err := v.typedElement(i, row, format.Int64)
	if err != nil {
		return 0, err
	}

	return v.int64At(entry, row), nil
}

// Float64At returns element row of Float64 column i.
//
// Returns:
//   - error: ErrTypeMismatch if column i is not Float64, see Element for the others
func (v *View) Float64At(i, row int) (float64, error) {
	entry, err := v.typedElement(i, row, format.Float64)
	if err != nil {
		return 0, err
	}

	return v.float64At(entry, row), nil
}

// StringAt returns element row of String column i.
//
// Returns:
//   - error: ErrTypeMismatch if column i is not String, see Element for the others
func (v *View) StringAt(i, row int) (string, error) {
	entry, err := v.typedElement(i, row, format.String)
	if err != nil {
		return "", err
	}

	return v.stringAt(entry, row)
}

// Values streams the elements of column i in row order.
//
// Nothing is yielded for an out of range i. Iteration of a string column stops
// at the first element that runs past the buffer; use Element or Head to get
// the error.
func (v *View) Values(i int) iter.Seq2[int, format.Value] {
	return func(yield func(int, format.Value) bool) {
		entry, err := v.entry(i)
		if err != nil {
			return
		}

		_ = v.scan(entry, entry.Count, yield)
	}
}

// Rows projects the table row by row, up to the shortest column.
//
// The yielded slice holds one value per column in column order. It is reused
// between iterations; copy it to retain it. Iteration stops early if a string
// element runs past the buffer.
func (v *View) Rows() iter.Seq2[int, []format.Value] {
	return func(yield func(int, []format.Value) bool) {
		rows := v.NumRows()
		cursors := make([]int, len(v.dir)) // next string offset per column
		for i, entry := range v.dir {
			cursors[i] = entry.Offset
		}

		row := make([]format.Value, len(v.dir))
		for r := range rows {
			for i, entry := range v.dir {
				switch entry.DType {
				case format.Int64:
					row[i] = format.Int64Value(v.int64At(entry, r))
				case format.Float64:
					row[i] = format.Float64Value(v.float64At(entry, r))
				default:
					s, next, ok := v.nextString(cursors[i])
					if !ok {
						return
					}
					cursors[i] = next
					row[i] = format.StringValue(s)
				}
			}

			if !yield(r, row) {
				return
			}
		}
	}
}

// scan calls fn with the first rows elements of entry until fn returns false.
// It returns ErrMalformedBuffer if a string element runs past the buffer.
func (v *View) scan(entry section.DirectoryEntry, rows int, fn func(int, format.Value) bool) error {
	switch entry.DType {
	case format.Int64:
		for r := range rows {
			if !fn(r, format.Int64Value(v.int64At(entry, r))) {
				return nil
			}
		}
	case format.Float64:
		for r := range rows {
			if !fn(r, format.Float64Value(v.float64At(entry, r))) {
				return nil
			}
		}
	default:
		offset := entry.Offset
		for r := range rows {
			s, next, ok := v.nextString(offset)
			if !ok {
				return fmt.Errorf("%w: column %q string element %d at offset %d runs past the buffer",
					errs.ErrMalformedBuffer, entry.Name, r, offset)
			}
			offset = next

			if !fn(r, format.StringValue(s)) {
				return nil
			}
		}
	}

	return nil
}

func (v *View) entry(i int) (section.DirectoryEntry, error) {
	if i < 0 || i >= len(v.dir) {
		return section.DirectoryEntry{}, fmt.Errorf("%w: column %d of %d", errs.ErrIndexOutOfRange, i, len(v.dir))
	}

	return v.dir[i], nil
}

func (v *View) element(i, row int) (section.DirectoryEntry, error) {
	entry, err := v.entry(i)
	if err != nil {
		return entry, err
	}

	if row < 0 || row >= entry.Count {
		return entry, fmt.Errorf("%w: row %d of column %q with %d rows", errs.ErrIndexOutOfRange, row, entry.Name, entry.Count)
	}

	return entry, nil
}

func (v *View) typedElement(i, row int, dtype format.DType) (section.DirectoryEntry, error) {
	entry, err := v.element(i, row)
	if err != nil {
		return entry, err
	}

	if entry.DType != dtype {
		return entry, fmt.Errorf("%w: column %q is %s, not %s", errs.ErrTypeMismatch, entry.Name, entry.DType, dtype)
	}

	return entry, nil
}

// int64At and float64At rely on ParseDirectory having checked that the whole
// numeric block fits in the buffer, and on row < entry.Count.
func (v *View) int64At(entry section.DirectoryEntry, row int) int64 {
	val, _ := v.ints.At(v.buf[entry.Offset:], row, entry.Count)
	return val
}

func (v *View) float64At(entry section.DirectoryEntry, row int) float64 {
	val, _ := v.floats.At(v.buf[entry.Offset:], row, entry.Count)
	return val
}

func (v *View) stringAt(entry section.DirectoryEntry, row int) (string, error) {
	s, ok := v.strs.At(v.buf[entry.Offset:], row, entry.Count)
	if !ok {
		return "", fmt.Errorf("%w: column %q string element %d runs past the buffer",
			errs.ErrMalformedBuffer, entry.Name, row)
	}

	return s, nil
}

// nextString decodes the string at absolute offset and returns the offset of
// the following one.
func (v *View) nextString(offset int) (string, int, bool) {
	s, ok := v.strs.At(v.buf[offset:], 0, 1)
	if !ok {
		return "", 0, false
	}

	return s, offset + section.StringPrefixSize + len(s), true
}
