package frame

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/format"
	"github.com/arloliu/coltab/section"
	"github.com/arloliu/coltab/table"
)

// sumSuffix is appended to the sum column name when it equals the group column name.
const sumSuffix = "_sum"

// GroupBySum opens buf and aggregates it, see View.GroupBySum.
func GroupBySum(buf []byte, groupCol, sumCol string, opts ...ViewOption) (*table.Table, error) {
	v, err := Open(buf, opts...)
	if err != nil {
		return nil, err
	}

	return v.GroupBySum(groupCol, sumCol)
}

// GroupBySum sums sumCol per distinct value of groupCol.
//
// Both columns are walked once in lock-step up to the shorter of the two.
// Keys of any dtype are accepted; Float64 keys group by value, so -0 and +0
// share a group and every NaN falls into a single group. Each group keeps the
// first key value seen for it.
//
// The result has two columns: groupCol with one row per distinct key in
// first-seen order, and sumCol (sumCol+"_sum" when both names are equal) with
// the sums in the sum column's dtype. Int64 sums wrap around on overflow like
// int64 addition.
//
// Returns:
//   - *table.Table: the aggregated table
//   - error: ErrColumnNotFound naming the missing column, ErrNonNumericAggregation
//     if sumCol is a String column, ErrMalformedBuffer for a corrupt string key
func (v *View) GroupBySum(groupCol, sumCol string) (*table.Table, error) {
	groupIdx, ok := v.ColumnIndex(groupCol)
	if !ok {
		return nil, fmt.Errorf("%w: group column %q", errs.ErrColumnNotFound, groupCol)
	}

	sumIdx, ok := v.ColumnIndex(sumCol)
	if !ok {
		return nil, fmt.Errorf("%w: sum column %q", errs.ErrColumnNotFound, sumCol)
	}

	groupEntry, sumEntry := v.dir[groupIdx], v.dir[sumIdx]
	if !sumEntry.DType.IsNumeric() {
		return nil, fmt.Errorf("%w: column %q is %s", errs.ErrNonNumericAggregation, sumCol, sumEntry.DType)
	}

	acc := newGroupAccumulator(sumEntry.DType)
	rows := min(groupEntry.Count, sumEntry.Count)

	err := v.scan(groupEntry, rows, func(row int, key format.Value) bool {
		g := acc.group(key)
		if sumEntry.DType == format.Int64 {
			acc.ints[g] += v.int64At(sumEntry, row)
		} else {
			acc.floats[g] += v.float64At(sumEntry, row)
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	outName := sumCol
	if sumCol == groupCol {
		outName = sumCol + sumSuffix
	}

	v.logger.Debug("grouped column",
		zap.String("group", groupCol),
		zap.String("sum", sumCol),
		zap.Int("rows", rows),
		zap.Int("groups", len(acc.keys)),
	)

	return table.FromColumns(
		keyColumn(groupCol, groupEntry, acc.keys),
		acc.sumColumn(outName),
	), nil
}

// groupAccumulator assigns group numbers to keys in first-seen order and
// holds one running sum per group.
type groupAccumulator struct {
	index  map[format.Value]int // normalized key → group number
	keys   []format.Value       // first key value seen per group
	dtype  format.DType         // dtype of the sums
	ints   []int64
	floats []float64
}

func newGroupAccumulator(dtype format.DType) *groupAccumulator {
	return &groupAccumulator{
		index: make(map[format.Value]int),
		dtype: dtype,
	}
}

// group returns the group number of key, creating a zero-sum group for a new key.
func (a *groupAccumulator) group(key format.Value) int {
	norm := groupKey(key)
	if g, ok := a.index[norm]; ok {
		return g
	}

	g := len(a.keys)
	a.index[norm] = g
	a.keys = append(a.keys, key)

	if a.dtype == format.Int64 {
		a.ints = append(a.ints, 0)
	} else {
		a.floats = append(a.floats, 0)
	}

	return g
}

func (a *groupAccumulator) sumColumn(name string) table.Column {
	if a.dtype == format.Int64 {
		return table.Int64s(name, append(make([]int64, 0, len(a.ints)), a.ints...))
	}

	return table.Float64s(name, append(make([]float64, 0, len(a.floats)), a.floats...))
}

// groupKey maps a key to the map key of its group. Values compare by bit
// pattern, so floats are normalized: -0 becomes +0 and every NaN the same NaN.
func groupKey(key format.Value) format.Value {
	if key.DType() != format.Float64 {
		return key
	}

	f := key.Float64()
	switch {
	case math.IsNaN(f):
		return format.Float64Value(math.NaN())
	case f == 0:
		return format.Float64Value(0)
	default:
		return key
	}
}

func keyColumn(name string, entry section.DirectoryEntry, keys []format.Value) table.Column {
	switch entry.DType {
	case format.Int64:
		values := make([]int64, len(keys))
		for i, k := range keys {
			values[i] = k.Int64()
		}

		return table.Int64s(name, values)
	case format.Float64:
		values := make([]float64, len(keys))
		for i, k := range keys {
			values[i] = k.Float64()
		}

		return table.Float64s(name, values)
	default:
		values := make([]string, len(keys))
		for i, k := range keys {
			values[i] = k.Str()
		}

		return table.Strings(name, values)
	}
}
