package frame

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/coltab/encoding"
	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/format"
	"github.com/arloliu/coltab/section"
)

// twoPow63 is 2^63, the first float64 above the int64 range.
const twoPow63 = float64(1 << 63)

// MapNumericInPlace opens buf and rewrites one numeric column in place, see
// View.MapNumericInPlace.
func MapNumericInPlace(buf []byte, colName string, f func(format.Value) format.Value, opts ...ViewOption) error {
	v, err := Open(buf, opts...)
	if err != nil {
		return err
	}

	return v.MapNumericInPlace(colName, f)
}

// MapInt64InPlace opens buf and rewrites an Int64 column in place, see View.MapInt64InPlace.
func MapInt64InPlace(buf []byte, colName string, f func(int64) int64, opts ...ViewOption) error {
	v, err := Open(buf, opts...)
	if err != nil {
		return err
	}

	return v.MapInt64InPlace(colName, f)
}

// MapFloat64InPlace opens buf and rewrites a Float64 column in place, see View.MapFloat64InPlace.
func MapFloat64InPlace(buf []byte, colName string, f func(float64) float64, opts ...ViewOption) error {
	v, err := Open(buf, opts...)
	if err != nil {
		return err
	}

	return v.MapFloat64InPlace(colName, f)
}

// MapNumericInPlace replaces every element x of the numeric column colName
// with f(x), writing each result into the same 8 bytes. The buffer length, the
// directory and every other column are left untouched.
//
// A missing column or a String column is a silent no-op.
//
// Results are converted to the column dtype only when exact: an Int64 column
// accepts Int64 results and integral Float64 results within the int64 range;
// a Float64 column accepts Float64 results (NaN and ±Inf included) and Int64
// results that convert to float64 without rounding.
//
// The rewrite is not atomic: when a result is rejected, the elements before it
// stay rewritten and the rest keep their old values.
//
// Open checks string blocks by their minimal size only, so before any byte is
// written every string block placed in front of the column is walked to make
// sure it ends before the column's value block.
//
// Returns:
//   - error: ErrMalformedBuffer if a string block runs into the column,
//     ErrNumericOverflow naming the column and row of the first result that
//     cannot be represented
func (v *View) MapNumericInPlace(colName string, f func(format.Value) format.Value) error {
	entry, ok := v.numericColumn(colName, "map numeric")
	if !ok {
		return nil
	}

	if err := v.checkIsolated(entry); err != nil {
		return err
	}

	for row := range entry.Count {
		var bits uint64
		var err error

		if entry.DType == format.Int64 {
			bits, err = int64Bits(f(format.Int64Value(v.int64At(entry, row))))
		} else {
			bits, err = float64Bits(f(format.Float64Value(v.float64At(entry, row))))
		}

		if err != nil {
			if row > 0 {
				v.logger.Warn("partial in-place mutation",
					zap.String("column", colName),
					zap.Int("mutated", row),
					zap.Int("rows", entry.Count),
				)
			}

			return fmt.Errorf("column %q row %d: %w", colName, row, err)
		}

		section.Engine().PutUint64(v.buf[entry.ElementOffset(row):], bits)
	}

	return nil
}

// MapInt64InPlace replaces every element x of the Int64 column colName with
// f(x). It is a no-op if the column is missing or not Int64.
//
// Returns:
//   - error: ErrMalformedBuffer if a string block runs into the column
func (v *View) MapInt64InPlace(colName string, f func(int64) int64) error {
	entry, ok := v.numericColumn(colName, "map int64")
	if !ok || entry.DType != format.Int64 {
		return nil
	}

	if err := v.checkIsolated(entry); err != nil {
		return err
	}

	mapFixed(v.ints, v.buf[entry.Offset:], entry.Count, f)

	return nil
}

// MapFloat64InPlace replaces every element x of the Float64 column colName
// with f(x). It is a no-op if the column is missing or not Float64.
//
// Returns:
//   - error: ErrMalformedBuffer if a string block runs into the column
func (v *View) MapFloat64InPlace(colName string, f func(float64) float64) error {
	entry, ok := v.numericColumn(colName, "map float64")
	if !ok || entry.DType != format.Float64 {
		return nil
	}

	if err := v.checkIsolated(entry); err != nil {
		return err
	}

	mapFixed(v.floats, v.buf[entry.Offset:], entry.Count, f)

	return nil
}

// checkIsolated fails if a string block starting before entry's value block
// has elements reaching into it.
func (v *View) checkIsolated(entry section.DirectoryEntry) error {
	for _, other := range v.dir {
		if other.DType != format.String || other.Offset >= entry.Offset {
			continue
		}

		if _, err := v.strs.Validate(v.buf[other.Offset:entry.Offset], other.Count); err != nil {
			return fmt.Errorf("string column %q runs into column %q: %w", other.Name, entry.Name, err)
		}
	}

	return nil
}

// numericColumn looks up a numeric column for a mutation and logs why a
// mutation turns into a no-op.
func (v *View) numericColumn(colName, op string) (section.DirectoryEntry, bool) {
	i, ok := v.ColumnIndex(colName)
	if !ok {
		v.logger.Debug("in-place mutation skipped: no such column",
			zap.String("op", op), zap.String("column", colName))

		return section.DirectoryEntry{}, false
	}

	entry := v.dir[i]
	if !entry.DType.IsNumeric() {
		v.logger.Debug("in-place mutation skipped: non-numeric column",
			zap.String("op", op), zap.String("column", colName), zap.Stringer("dtype", entry.DType))

		return section.DirectoryEntry{}, false
	}

	return entry, true
}

func mapFixed[T encoding.Fixed](dec encoding.FixedDecoder[T], data []byte, count int, f func(T) T) {
	if values, ok := encoding.FixedSlice[T](data, count); ok {
		for i, x := range values {
			values[i] = f(x)
		}

		return
	}

	for i := range count {
		x, _ := dec.At(data, i, count)
		dec.Put(data, i, f(x))
	}
}

// int64Bits returns the stored word for result in an Int64 column.
func int64Bits(result format.Value) (uint64, error) {
	switch result.DType() {
	case format.Int64:
		return encoding.ToBits(result.Int64()), nil
	case format.Float64:
		f := result.Float64()
		// NaN fails every comparison and ±Inf fails the range check
		if f >= -twoPow63 && f < twoPow63 && f == math.Trunc(f) {
			return encoding.ToBits(int64(f)), nil
		}

		return 0, fmt.Errorf("%w: %v is not an int64", errs.ErrNumericOverflow, f)
	default:
		return 0, fmt.Errorf("%w: %s result for an Int64 column", errs.ErrNumericOverflow, result.DType())
	}
}

// float64Bits returns the stored word for result in a Float64 column.
func float64Bits(result format.Value) (uint64, error) {
	switch result.DType() {
	case format.Float64:
		return encoding.ToBits(result.Float64()), nil
	case format.Int64:
		i := result.Int64()
		f := float64(i)
		if f < twoPow63 && int64(f) == i {
			return encoding.ToBits(f), nil
		}

		return 0, fmt.Errorf("%w: %d has no exact float64", errs.ErrNumericOverflow, i)
	default:
		return 0, fmt.Errorf("%w: %s result for a Float64 column", errs.ErrNumericOverflow, result.DType())
	}
}
