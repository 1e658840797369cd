// Package errs declares the sentinel errors returned by coltab.
//
// Call sites wrap these errors with additional context (column names, offsets,
// indexes) using fmt.Errorf and the %w verb, so callers should match them with
// errors.Is rather than by equality.
package errs

import "errors"

// Encoding errors.
var (
	// ErrUnsupportedType is returned when a column holds values of a type the
	// binary layout cannot represent.
	ErrUnsupportedType = errors.New("unsupported column type")
	// ErrDuplicateColumn is returned when two columns of one table share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrEmptyColumnName is returned when a column has an empty name.
	ErrEmptyColumnName = errors.New("empty column name")
	// ErrRaggedTable is returned when columns of unequal length are rejected,
	// either by strict encoding or by a consumer that needs rectangular input.
	ErrRaggedTable = errors.New("columns have unequal lengths")
	// ErrBufferTooLarge is returned when an offset, a count or a length does
	// not fit in the 32-bit fields of the directory.
	ErrBufferTooLarge = errors.New("buffer exceeds 32-bit addressing")
	// ErrNullValue is returned when a source column contains null entries.
	ErrNullValue = errors.New("null values are not supported")
	// ErrEncoderFinished is returned when an encoder is used after Finish.
	ErrEncoderFinished = errors.New("encoder already finished")
	// ErrNilTable is returned when a nil table is passed for encoding or conversion.
	ErrNilTable = errors.New("table must not be nil")
	// ErrNilLogger is returned when a nil logger is passed as an option.
	ErrNilLogger = errors.New("logger must not be nil")
)

// Decoding errors.
var (
	// ErrMalformedBuffer is returned when the directory cannot be parsed or is
	// inconsistent with the buffer length.
	ErrMalformedBuffer = errors.New("malformed buffer")
	// ErrIndexOutOfRange is returned when a column or row index is out of bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrTypeMismatch is returned by typed accessors used on a column of another dtype.
	ErrTypeMismatch = errors.New("column type mismatch")
)

// Query and mutation errors.
var (
	// ErrColumnNotFound is returned when a named column is absent.
	ErrColumnNotFound = errors.New("column not found")
	// ErrNonNumericAggregation is returned when summing a non-numeric column.
	ErrNonNumericAggregation = errors.New("cannot aggregate non-numeric column")
	// ErrNumericOverflow is returned when a mapped value cannot be represented
	// in the column's dtype.
	ErrNumericOverflow = errors.New("value not representable in column type")
)
