package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/table"
)

func TestGroupBySum_StringKeys(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Int64s("a", []int64{1, 2, 3}),
		table.Strings("b", []string{"x", "y", "x"}),
	))
	require.NoError(t, err)

	got, err := GroupBySum(buf, "b", "a")
	require.NoError(t, err)
	require.Equal(t, []table.Column{
		table.Strings("b", []string{"x", "y"}),
		table.Int64s("a", []int64{4, 2}),
	}, got.Columns())
}

func TestGroupBySum_FirstSeenOrder(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Int64s("k", []int64{3, 1, 3, 2, 1}),
		table.Float64s("v", []float64{0.5, 1, 0.25, 2, 4}),
	))
	require.NoError(t, err)

	got, err := GroupBySum(buf, "k", "v")
	require.NoError(t, err)
	require.Equal(t, []table.Column{
		table.Int64s("k", []int64{3, 1, 2}),
		table.Float64s("v", []float64{0.75, 5, 2}),
	}, got.Columns())

	again, err := GroupBySum(buf, "k", "v")
	require.NoError(t, err)
	require.Equal(t, got.Columns(), again.Columns(), "group-by must be deterministic")
}

func TestGroupBySum_FloatKeys(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Float64s("k", []float64{math.Copysign(0, -1), math.NaN(), 0, math.Float64frombits(0x7ff8000000000001), 1.5}),
		table.Int64s("v", []int64{1, 10, 100, 1000, 10000}),
	))
	require.NoError(t, err)

	got, err := GroupBySum(buf, "k", "v")
	require.NoError(t, err)
	require.Equal(t, 3, got.NumRows())

	keys, ok := got.Column(0).Float64s()
	require.True(t, ok)
	require.True(t, math.Signbit(keys[0]), "the group keeps the first key seen, -0")
	require.True(t, math.IsNaN(keys[1]))
	require.InDelta(t, 1.5, keys[2], 0)

	sums, ok := got.Column(1).Int64s()
	require.True(t, ok)
	require.Equal(t, []int64{101, 1010, 10000}, sums)
}

func TestGroupBySum_SameColumn(t *testing.T) {
	buf, err := Encode(newTable(t, table.Int64s("n", []int64{2, 2, 5})))
	require.NoError(t, err)

	got, err := GroupBySum(buf, "n", "n")
	require.NoError(t, err)
	require.Equal(t, []table.Column{
		table.Int64s("n", []int64{2, 5}),
		table.Int64s("n_sum", []int64{4, 5}),
	}, got.Columns())
}

func TestGroupBySum_ShorterColumnBounds(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Strings("k", []string{"a", "b", "a", "c"}),
		table.Int64s("v", []int64{1, 2, 3}),
	))
	require.NoError(t, err)

	got, err := GroupBySum(buf, "k", "v")
	require.NoError(t, err)
	require.Equal(t, []table.Column{
		table.Strings("k", []string{"a", "b"}),
		table.Int64s("v", []int64{4, 2}),
	}, got.Columns())
}

func TestGroupBySum_IntOverflowWraps(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Strings("k", []string{"x", "x"}),
		table.Int64s("v", []int64{math.MaxInt64, 1}),
	))
	require.NoError(t, err)

	got, err := GroupBySum(buf, "k", "v")
	require.NoError(t, err)

	sums, ok := got.Column(1).Int64s()
	require.True(t, ok)
	require.Equal(t, []int64{math.MinInt64}, sums)
}

func TestGroupBySum_Empty(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Strings("k", nil),
		table.Float64s("v", nil),
	))
	require.NoError(t, err)

	got, err := GroupBySum(buf, "k", "v")
	require.NoError(t, err)
	require.Equal(t, 2, got.NumColumns())
	require.Equal(t, 0, got.NumRows())
}

func TestGroupBySum_Errors(t *testing.T) {
	buf, err := Encode(newTable(t,
		table.Int64s("a", []int64{1}),
		table.Strings("b", []string{"x"}),
	))
	require.NoError(t, err)

	_, err = GroupBySum(buf, "missing", "a")
	require.ErrorIs(t, err, errs.ErrColumnNotFound)
	require.Contains(t, err.Error(), `"missing"`)

	_, err = GroupBySum(buf, "b", "missing")
	require.ErrorIs(t, err, errs.ErrColumnNotFound)

	_, err = GroupBySum(buf, "a", "b")
	require.ErrorIs(t, err, errs.ErrNonNumericAggregation)

	_, err = GroupBySum(buf[:4], "a", "b")
	require.ErrorIs(t, err, errs.ErrMalformedBuffer)
}
