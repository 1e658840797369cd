package table

import "github.com/arloliu/coltab/format"

// Column is a named sequence of values of one dtype.
//
// Values holds one of []int64, []float64 or []string. Any other type is an
// unsupported dtype; the column can still be stored in a Table but encoding it
// fails with errs.ErrUnsupportedType.
type Column struct {
	Name   string
	Values any
}

// Int64s returns an Int64 column.
func Int64s(name string, values []int64) Column {
	return Column{Name: name, Values: values}
}

// Float64s returns a Float64 column.
func Float64s(name string, values []float64) Column {
	return Column{Name: name, Values: values}
}

// Strings returns a String column.
func Strings(name string, values []string) Column {
	return Column{Name: name, Values: values}
}

// NewColumn returns a column holding values as is, whatever their type.
func NewColumn(name string, values any) Column {
	return Column{Name: name, Values: values}
}

// DType returns the dtype of the column. The second result is false when
// Values is not one of the supported slice types.
func (c Column) DType() (format.DType, bool) {
	switch c.Values.(type) {
	case []int64:
		return format.Int64, true
	case []float64:
		return format.Float64, true
	case []string:
		return format.String, true
	default:
		return 0, false
	}
}

// Len returns the number of elements, or 0 for an unsupported dtype.
func (c Column) Len() int {
	switch v := c.Values.(type) {
	case []int64:
		return len(v)
	case []float64:
		return len(v)
	case []string:
		return len(v)
	default:
		return 0
	}
}

// Value returns element i as a format.Value. It panics if i is out of range
// or the dtype is unsupported.
func (c Column) Value(i int) format.Value {
	switch v := c.Values.(type) {
	case []int64:
		return format.Int64Value(v[i])
	case []float64:
		return format.Float64Value(v[i])
	case []string:
		return format.StringValue(v[i])
	default:
		panic("table: value of a column with unsupported dtype")
	}
}

// Int64s returns the values of an Int64 column.
func (c Column) Int64s() ([]int64, bool) {
	v, ok := c.Values.([]int64)
	return v, ok
}

// Float64s returns the values of a Float64 column.
func (c Column) Float64s() ([]float64, bool) {
	v, ok := c.Values.([]float64)
	return v, ok
}

// Strings returns the values of a String column.
func (c Column) Strings() ([]string, bool) {
	v, ok := c.Values.([]string)
	return v, ok
}
