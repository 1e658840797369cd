// Package table holds the in-memory form of a coltab table: an ordered list of
// uniquely named, typed columns.
//
// A Table is the input of the encoder and the output of the Head and
// GroupBySum operators. Column order is significant and preserved end to end.
// Columns may have different lengths (a ragged table); row counts are then a
// per-column notion and NumRows reports the shortest one.
package table

import (
	"fmt"

	"github.com/arloliu/coltab/internal/collision"
)

// Table is an ordered list of columns with unique names.
//
// The zero Table is empty and ready to use.
type Table struct {
	columns []Column
	names   *collision.Tracker
}

// New creates a table from columns, in order.
//
// Returns:
//   - *Table: the new table
//   - error: ErrEmptyColumnName or ErrDuplicateColumn from the first offending column
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		names:   collision.NewTracker(len(columns)),
	}

	for _, col := range columns {
		if err := t.Add(col); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// FromColumns creates a table from columns, in order, without rejecting any
// name. A column with an empty or repeated name keeps its position but is not
// reachable through ColumnByName, which returns the first column with a name.
//
// FromColumns is meant for tables read back from a buffer written elsewhere;
// tables built by hand should use New.
func FromColumns(columns ...Column) *Table {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		names:   collision.NewTracker(len(columns)),
	}

	for _, col := range columns {
		_, _ = t.names.TrackFirst(col.Name)
		t.columns = append(t.columns, col)
	}

	return t
}

// Add appends col as the last column.
//
// Returns:
//   - error: ErrEmptyColumnName if col has no name, ErrDuplicateColumn if the
//     table already has a column with the same name
func (t *Table) Add(col Column) error {
	if t.names == nil {
		t.names = collision.NewTracker(0)
	}

	if _, err := t.names.Track(col.Name); err != nil {
		return fmt.Errorf("add column %d: %w", len(t.columns), err)
	}

	t.columns = append(t.columns, col)

	return nil
}

// Columns returns the columns in order. The slice must not be modified.
func (t *Table) Columns() []Column {
	return t.columns
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Column returns column i. It panics if i is out of range.
func (t *Table) Column(i int) Column {
	return t.columns[i]
}

// ColumnByName returns the column called name.
func (t *Table) ColumnByName(name string) (Column, bool) {
	if t.names == nil {
		return Column{}, false
	}

	i, ok := t.names.Lookup(name)
	if !ok {
		return Column{}, false
	}

	return t.columns[i], true
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}

	return names
}

// NumRows returns the length of the shortest column, or 0 for a table
// without columns.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}

	rows := t.columns[0].Len()
	for _, col := range t.columns[1:] {
		rows = min(rows, col.Len())
	}

	return rows
}

// IsRagged reports whether the columns do not all have the same length.
func (t *Table) IsRagged() bool {
	for _, col := range t.columns[min(1, len(t.columns)):] {
		if col.Len() != t.columns[0].Len() {
			return true
		}
	}

	return false
}
