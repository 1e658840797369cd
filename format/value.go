package format

import (
	"math"
	"strconv"
)

// Value is a single decoded element of a column.
//
// The zero Value is Int64Value(0).
type Value struct {
	s     string
	bits  uint64
	dtype DType
}

// Int64Value returns a Value holding v.
func Int64Value(v int64) Value {
	return Value{dtype: Int64, bits: uint64(v)} //nolint: gosec
}

// Float64Value returns a Value holding v. The exact bit pattern of v is kept.
func Float64Value(v float64) Value {
	return Value{dtype: Float64, bits: math.Float64bits(v)}
}

// StringValue returns a Value holding v.
func StringValue(v string) Value {
	return Value{dtype: String, s: v}
}

// DType returns the dtype of the value.
func (v Value) DType() DType {
	return v.dtype
}

// Int64 returns the integer held by v. It returns 0 if v is not an Int64 value.
func (v Value) Int64() int64 {
	if v.dtype != Int64 {
		return 0
	}

	return int64(v.bits) //nolint: gosec
}

// Float64 returns the float held by v. It returns 0 if v is not a Float64 value.
func (v Value) Float64() float64 {
	if v.dtype != Float64 {
		return 0
	}

	return math.Float64frombits(v.bits)
}

// Str returns the string held by v. It returns "" if v is not a String value.
func (v Value) Str() string {
	return v.s
}

// Any returns v as a native Go value: int64, float64 or string.
func (v Value) Any() any {
	switch v.dtype {
	case Float64:
		return v.Float64()
	case String:
		return v.s
	default:
		return v.Int64()
	}
}

// Equal reports whether v and other have the same dtype and the same content.
// Floats compare by bit pattern, so NaN equals an identical NaN and -0 differs from +0.
func (v Value) Equal(other Value) bool {
	return v.dtype == other.dtype && v.bits == other.bits && v.s == other.s
}

func (v Value) String() string {
	switch v.dtype {
	case Float64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case String:
		return strconv.Quote(v.s)
	default:
		return strconv.FormatInt(v.Int64(), 10)
	}
}
