// Package coltab provides a self-describing columnar binary encoding for
// tabular data and a small engine that queries and mutates it in its encoded
// form.
//
// A table of named, typed columns (Int64, Float64, String) is packed into one
// byte buffer whose directory gives O(1) access to any column. The buffer can
// be read, projected, grouped and rewritten in place without decoding it into
// an intermediate representation.
//
// # Core Features
//
//   - Fixed little-endian layout, 8-byte aligned numeric blocks
//   - Lazy decoding: opening a buffer parses only its directory
//   - Head and group-by-sum operators producing plain tables
//   - In-place numeric mutation that never moves a byte of another column
//   - Column lookup by name through a 64-bit xxHash64 index
//
// # Basic Usage
//
//	import "github.com/arloliu/coltab"
//
//	t, _ := coltab.NewTable(
//	    coltab.Int64s("a", []int64{1, 2, 3}),
//	    coltab.Strings("b", []string{"x", "y", "x"}),
//	)
//	buf, _ := coltab.Encode(t)
//
//	sums, _ := coltab.GroupBySum(buf, "b", "a") // b: [x y], a: [4 2]
//	head, _ := coltab.Head(buf, 2)
//
//	_ = coltab.MapNumericInPlace(buf, "a", func(v coltab.Value) coltab.Value {
//	    return coltab.Int64Value(v.Int64() * 10)
//	})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the frame and
// table packages. For encoder options, typed accessors and streaming
// iteration, use the frame package directly.
package coltab

import (
	"github.com/arloliu/coltab/format"
	"github.com/arloliu/coltab/frame"
	"github.com/arloliu/coltab/internal/hash"
	"github.com/arloliu/coltab/table"
)

// Value is a single element of a column, see format.Value.
type Value = format.Value

// Int64Value returns a Value holding an int64.
func Int64Value(v int64) Value {
	return format.Int64Value(v)
}

// Float64Value returns a Value holding a float64.
func Float64Value(v float64) Value {
	return format.Float64Value(v)
}

// NewTable creates a table from columns, in order.
//
// Returns an error if two columns share a name or a column has no name.
func NewTable(columns ...table.Column) (*table.Table, error) {
	return table.New(columns...)
}

// Int64s returns an Int64 column.
func Int64s(name string, values []int64) table.Column {
	return table.Int64s(name, values)
}

// Float64s returns a Float64 column.
func Float64s(name string, values []float64) table.Column {
	return table.Float64s(name, values)
}

// Strings returns a String column.
func Strings(name string, values []string) table.Column {
	return table.Strings(name, values)
}

// Encode serializes t into a new buffer with default options.
//
// For strict length checking or logging, use frame.Encode with
// frame.WithStrictLength or frame.WithEncoderLogger.
//
// Example:
//
//	buf, err := coltab.Encode(t)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Encode(t *table.Table) ([]byte, error) {
	return frame.Encode(t)
}

// Open parses the directory of buf and returns a view over it.
func Open(buf []byte) (*frame.View, error) {
	return frame.Open(buf)
}

// Head returns the first n rows of every column of buf.
func Head(buf []byte, n int) (*table.Table, error) {
	return frame.Head(buf, n)
}

// GroupBySum sums sumCol per distinct value of groupCol, keys in first-seen order.
func GroupBySum(buf []byte, groupCol, sumCol string) (*table.Table, error) {
	return frame.GroupBySum(buf, groupCol, sumCol)
}

// MapNumericInPlace rewrites every element of a numeric column of buf with f.
// A missing or String column is a silent no-op.
func MapNumericInPlace(buf []byte, colName string, f func(Value) Value) error {
	return frame.MapNumericInPlace(buf, colName, f)
}

// ColumnID returns the 64-bit xxHash64 of a column name, the key of the
// name index built by Open.
//
// Example:
//
//	id := coltab.ColumnID("price")
func ColumnID(name string) uint64 {
	return hash.ID(name)
}
