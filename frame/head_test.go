package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/table"
)

func TestHead(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Int64s("a", []int64{1, 2, 3}),
		table.Strings("b", []string{"x", "y", "z"}),
		table.Float64s("c", []float64{0.5, 1.5, 2.5}),
	))
	require.NoError(t, err)

	tests := []struct {
		name string
		n    int
		want *table.Table
	}{
		{
			name: "first two",
			n:    2,
			want: newTable(t,
				table.Int64s("a", []int64{1, 2}),
				table.Strings("b", []string{"x", "y"}),
				table.Float64s("c", []float64{0.5, 1.5}),
			),
		},
		{
			name: "larger than available",
			n:    10,
			want: newTable(t,
				table.Int64s("a", []int64{1, 2, 3}),
				table.Strings("b", []string{"x", "y", "z"}),
				table.Float64s("c", []float64{0.5, 1.5, 2.5}),
			),
		},
		{
			name: "zero",
			n:    0,
			want: newTable(t,
				table.Int64s("a", []int64{}),
				table.Strings("b", []string{}),
				table.Float64s("c", []float64{}),
			),
		},
		{
			name: "negative",
			n:    -3,
			want: newTable(t,
				table.Int64s("a", []int64{}),
				table.Strings("b", []string{}),
				table.Float64s("c", []float64{}),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Head(buf, tt.n)
			require.NoError(t, err)
			require.Equal(t, tt.want.Columns(), got.Columns())
		})
	}
}

func TestHead_Ragged(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Int64s("long", []int64{1, 2, 3, 4}),
		table.Strings("short", []string{"x", "y"}),
	))
	require.NoError(t, err)

	got, err := Head(buf, 3)
	require.NoError(t, err)
	require.Equal(t, 2, got.NumRows())
	require.False(t, got.IsRagged())

	long, ok := got.ColumnByName("long")
	require.True(t, ok)
	require.Equal(t, []int64{1, 2}, long.Values)
}

func TestHead_Malformed(t *testing.T) {
	_, err := Head([]byte{0x7b, 0xc0}, 1)
	require.ErrorIs(t, err, errs.ErrMalformedBuffer)
}

func TestHead_ResultIsIndependent(t *testing.T) {
	buf, err := Encode(newTable(t, table.Int64s("a", []int64{1, 2})))
	require.NoError(t, err)

	got, err := Head(buf, 2)
	require.NoError(t, err)

	values, ok := got.Column(0).Int64s()
	require.True(t, ok)
	values[0] = 99

	v, err := Open(buf)
	require.NoError(t, err)

	first, err := v.Int64At(0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), first, "head must copy values out of the buffer")
}
