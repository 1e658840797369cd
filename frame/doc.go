// Package frame encodes tables into coltab buffers and operates on them in
// their encoded form.
//
// # Encoding
//
// Encode turns a table.Table into a single byte buffer:
//
//	t, _ := table.New(
//	    table.Int64s("a", []int64{1, 2, 3}),
//	    table.Strings("b", []string{"x", "y", "x"}),
//	)
//	buf, err := frame.Encode(t)
//
// The buffer starts with a directory listing every column's name, dtype,
// element count and value block offset, followed by the value blocks in
// column order. See the section package for the exact layout.
//
// # Reading
//
// Open parses only the directory and returns a View. Structural queries
// (ColumnCount, ColumnName, ColumnDType, RowCount) read the cached directory;
// elements are decoded on demand, in O(1) for numeric columns:
//
//	v, err := frame.Open(buf)
//	n, _ := v.RowCount(0)
//	x, _ := v.Element(0, 2) // Int64Value(3)
//
// # Operators
//
//   - Head returns the first n rows of every column as a table.
//   - GroupBySum sums a numeric column per distinct value of another column,
//     keeping keys in first-seen order.
//   - MapNumericInPlace rewrites the elements of one numeric column inside the
//     buffer without changing its size or touching any other column.
//
// Each operator exists as a View method and as a function taking the buffer,
// which opens a View first.
//
// # Concurrency
//
// An Encoder is not safe for concurrent use. A View never changes after Open,
// so any number of goroutines may read through it, or through other Views of
// the same buffer, as long as no mutation runs at the same time.
package frame
