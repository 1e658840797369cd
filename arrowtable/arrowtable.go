// Package arrowtable converts between Apache Arrow records and coltab tables.
//
// Only the three coltab dtypes have a mapping: int64, float64 and
// string/large_string. Arrow arrays with nulls are rejected because coltab
// has no missing values.
package arrowtable

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/table"
)

// FromRecord copies rec into a table, keeping field order and names.
//
// Returns:
//   - *table.Table: the copied columns, independent of rec's memory
//   - error: ErrUnsupportedType for a field of another Arrow type,
//     ErrNullValue for an array with nulls, ErrDuplicateColumn or
//     ErrEmptyColumnName from the field names
func FromRecord(rec arrow.Record) (*table.Table, error) {
	columns := make([]table.Column, 0, rec.NumCols())
	for i, arr := range rec.Columns() {
		name := rec.ColumnName(i)
		if arr.NullN() > 0 {
			return nil, fmt.Errorf("%w: column %q has %d nulls", errs.ErrNullValue, name, arr.NullN())
		}

		col, err := fromArray(name, arr)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	return table.New(columns...)
}

func fromArray(name string, arr arrow.Array) (table.Column, error) {
	switch a := arr.(type) {
	case *array.Int64:
		return table.Int64s(name, append(make([]int64, 0, a.Len()), a.Int64Values()...)), nil
	case *array.Float64:
		return table.Float64s(name, append(make([]float64, 0, a.Len()), a.Float64Values()...)), nil
	case *array.String:
		values := make([]string, a.Len())
		for i := range values {
			values[i] = strings.Clone(a.Value(i))
		}

		return table.Strings(name, values), nil
	case *array.LargeString:
		values := make([]string, a.Len())
		for i := range values {
			values[i] = strings.Clone(a.Value(i))
		}

		return table.Strings(name, values), nil
	default:
		return table.Column{}, fmt.Errorf("%w: column %q has arrow type %s", errs.ErrUnsupportedType, name, arr.DataType())
	}
}

// ToRecord builds an Arrow record from t, allocating from mem.
//
// The caller owns the returned record and must Release it.
//
// Returns:
//   - arrow.Record: int64, float64 and utf8 fields in column order
//   - error: ErrNilTable if t is nil, ErrRaggedTable if the columns differ
//     in length, ErrUnsupportedType for a column of another type
func ToRecord(mem memory.Allocator, t *table.Table) (arrow.Record, error) {
	if t == nil {
		return nil, errs.ErrNilTable
	}

	for _, col := range t.Columns() {
		if _, ok := col.DType(); !ok {
			return nil, fmt.Errorf("%w: column %q holds %T", errs.ErrUnsupportedType, col.Name, col.Values)
		}
	}

	if t.IsRagged() {
		return nil, fmt.Errorf("%w: arrow records need equal column lengths", errs.ErrRaggedTable)
	}

	fields := make([]arrow.Field, 0, t.NumColumns())
	arrays := make([]arrow.Array, 0, t.NumColumns())
	defer func() {
		for _, arr := range arrays {
			arr.Release()
		}
	}()

	for _, col := range t.Columns() {
		field, arr, err := toArray(mem, col)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		arrays = append(arrays, arr)
	}

	// NewRecord retains every array, the deferred Release drops our references
	return array.NewRecord(arrow.NewSchema(fields, nil), arrays, int64(t.NumRows())), nil
}

func toArray(mem memory.Allocator, col table.Column) (arrow.Field, arrow.Array, error) {
	switch values := col.Values.(type) {
	case []int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(values, nil)

		return arrow.Field{Name: col.Name, Type: arrow.PrimitiveTypes.Int64}, b.NewArray(), nil
	case []float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(values, nil)

		return arrow.Field{Name: col.Name, Type: arrow.PrimitiveTypes.Float64}, b.NewArray(), nil
	case []string:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(values, nil)

		return arrow.Field{Name: col.Name, Type: arrow.BinaryTypes.String}, b.NewArray(), nil
	default:
		return arrow.Field{}, nil, fmt.Errorf("%w: column %q holds %T", errs.ErrUnsupportedType, col.Name, col.Values)
	}
}
