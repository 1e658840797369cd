// Package format defines the value domain of the coltab binary layout: the
// column dtypes, their on-wire tags and a tagged scalar Value.
package format

// DType is the element type of a column. Its numeric value is the dtype tag
// written in the directory.
type DType uint8

const (
	Int64   DType = 0x0 // Int64 is a signed 64-bit integer column, 8 bytes per element.
	Float64 DType = 0x1 // Float64 is an IEEE-754 double column, 8 bytes per element.
	String  DType = 0x2 // String is a UTF-8 column, u32 length prefix per element.

	dtypeCount = 3
)

// NumericStride is the byte width of every Int64 and Float64 element.
const NumericStride = 8

var dtypeNames = [dtypeCount]string{
	Int64:   "Int64",
	Float64: "Float64",
	String:  "String",
}

func (t DType) String() string {
	if !t.IsValid() {
		return "Unknown"
	}

	return dtypeNames[t]
}

// IsValid reports whether t is one of the supported dtypes.
func (t DType) IsValid() bool {
	return t < dtypeCount
}

// IsNumeric reports whether t is laid out with a fixed stride (Int64 or Float64).
func (t DType) IsNumeric() bool {
	return t == Int64 || t == Float64
}

// Stride returns the fixed element width in bytes, or 0 for variable-stride dtypes.
func (t DType) Stride() int {
	if t.IsNumeric() {
		return NumericStride
	}

	return 0
}

// ParseDType converts a directory tag into a DType.
func ParseDType(tag uint8) (DType, bool) {
	t := DType(tag)
	return t, t.IsValid()
}
