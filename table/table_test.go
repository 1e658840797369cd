package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/format"
)

func TestColumn_DType(t *testing.T) {
	tests := []struct {
		name  string
		col   Column
		dtype format.DType
		ok    bool
		len   int
	}{
		{name: "int64", col: Int64s("a", []int64{1, 2}), dtype: format.Int64, ok: true, len: 2},
		{name: "float64", col: Float64s("a", []float64{1.5}), dtype: format.Float64, ok: true, len: 1},
		{name: "string", col: Strings("a", []string{"x", "y", "z"}), dtype: format.String, ok: true, len: 3},
		{name: "nil int64", col: Int64s("a", nil), dtype: format.Int64, ok: true, len: 0},
		{name: "bool", col: NewColumn("a", []bool{true}), ok: false, len: 0},
		{name: "int32", col: NewColumn("a", []int32{1}), ok: false, len: 0},
		{name: "nil", col: NewColumn("a", nil), ok: false, len: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dtype, ok := tt.col.DType()
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.dtype, dtype)
			}
			require.Equal(t, tt.len, tt.col.Len())
		})
	}
}

func TestColumn_Value(t *testing.T) {
	require.Equal(t, format.Int64Value(7), Int64s("a", []int64{7}).Value(0))
	require.Equal(t, format.Float64Value(2.5), Float64s("a", []float64{2.5}).Value(0))
	require.Equal(t, format.StringValue("x"), Strings("a", []string{"x"}).Value(0))

	require.Panics(t, func() { NewColumn("a", []bool{true}).Value(0) })
	require.Panics(t, func() { Int64s("a", []int64{1}).Value(1) })
}

func TestColumn_TypedAccessors(t *testing.T) {
	col := Float64s("f", []float64{1, 2})

	floats, ok := col.Float64s()
	require.True(t, ok)
	require.Equal(t, []float64{1, 2}, floats)

	_, ok = col.Int64s()
	require.False(t, ok)

	_, ok = col.Strings()
	require.False(t, ok)
}

func TestNew(t *testing.T) {
	tbl, err := New(
		Int64s("a", []int64{1, 2, 3}),
		Strings("b", []string{"x", "y", "x"}),
	)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumColumns())
	require.Equal(t, []string{"a", "b"}, tbl.Names())
	require.Equal(t, 3, tbl.NumRows())
	require.False(t, tbl.IsRagged())

	col, ok := tbl.ColumnByName("b")
	require.True(t, ok)
	require.Equal(t, "b", col.Name)
	require.Equal(t, col, tbl.Column(1))

	_, ok = tbl.ColumnByName("c")
	require.False(t, ok)
}

func TestNew_DuplicateColumn(t *testing.T) {
	_, err := New(
		Int64s("a", []int64{1}),
		Float64s("a", []float64{1}),
	)
	require.ErrorIs(t, err, errs.ErrDuplicateColumn)
}

func TestTable_Add_EmptyName(t *testing.T) {
	var tbl Table

	err := tbl.Add(Int64s("", []int64{1}))
	require.ErrorIs(t, err, errs.ErrEmptyColumnName)
	require.Equal(t, 0, tbl.NumColumns())
}

func TestTable_ZeroValue(t *testing.T) {
	var tbl Table

	require.Equal(t, 0, tbl.NumColumns())
	require.Equal(t, 0, tbl.NumRows())
	require.False(t, tbl.IsRagged())
	require.Empty(t, tbl.Names())

	_, ok := tbl.ColumnByName("a")
	require.False(t, ok)

	require.NoError(t, tbl.Add(Int64s("a", []int64{1})))
	require.Equal(t, 1, tbl.NumRows())
}

func TestTable_Ragged(t *testing.T) {
	tbl, err := New(
		Int64s("long", []int64{1, 2, 3, 4}),
		Float64s("short", []float64{1.5}),
	)
	require.NoError(t, err)

	require.True(t, tbl.IsRagged())
	require.Equal(t, 1, tbl.NumRows())
}

func TestTable_MarshalJSON(t *testing.T) {
	tbl, err := New(
		Strings("b", []string{"x", "y"}),
		Int64s("a", []int64{4, 2}),
	)
	require.NoError(t, err)

	data, err := tbl.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"b":["x","y"],"a":[4,2]}`, string(data))
	require.Equal(t, `{"b":["x","y"],"a":[4,2]}`, string(data), "column order must be preserved")
}

func TestTable_MarshalJSON_Floats(t *testing.T) {
	tbl, err := New(
		Float64s("f", []float64{1.5, math.NaN(), math.Inf(1), math.Inf(-1)}),
		Float64s("empty", nil),
	)
	require.NoError(t, err)

	data, err := tbl.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"f":[1.5,"NaN","+Inf","-Inf"],"empty":[]}`, string(data))
}

func TestTable_MarshalJSON_Unsupported(t *testing.T) {
	tbl, err := New(NewColumn("bad", []bool{true}))
	require.NoError(t, err)

	_, err = tbl.MarshalJSON()
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

func TestFromColumns(t *testing.T) {
	tbl := FromColumns(
		Int64s("a", []int64{1}),
		Int64s("a", []int64{2}),
		Strings("", []string{"x"}),
		Float64s("b", []float64{0.5}),
	)

	require.Equal(t, 4, tbl.NumColumns())
	require.Equal(t, []string{"a", "a", "", "b"}, tbl.Names())

	col, ok := tbl.ColumnByName("a")
	require.True(t, ok)
	require.Equal(t, []int64{1}, col.Values)

	col, ok = tbl.ColumnByName("b")
	require.True(t, ok)
	require.Equal(t, []float64{0.5}, col.Values)

	empty := FromColumns()
	require.Zero(t, empty.NumColumns())
	require.NoError(t, empty.Add(Int64s("c", nil)))
}
