package table

import (
	"fmt"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/coltab/errs"
)

var _ gojson.Marshaler = (*Table)(nil)

// MarshalJSON renders the table as a JSON object mapping each column name to
// the array of its values, keeping column order:
//
//	{"b":["x","y"],"a":[4,2]}
//
// Non-finite floats have no JSON number form and are written as the strings
// "NaN", "+Inf" and "-Inf".
func (t *Table) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 64)
	out = append(out, '{')

	for i, col := range t.columns {
		if i > 0 {
			out = append(out, ',')
		}

		name, err := gojson.Marshal(col.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, name...)
		out = append(out, ':')

		values, err := marshalValues(col)
		if err != nil {
			return nil, err
		}
		out = append(out, values...)
	}

	return append(out, '}'), nil
}

func marshalValues(col Column) ([]byte, error) {
	if _, ok := col.DType(); !ok {
		return nil, fmt.Errorf("%w: column %q holds %T", errs.ErrUnsupportedType, col.Name, col.Values)
	}

	if col.Len() == 0 {
		return []byte("[]"), nil
	}

	if floats, ok := col.Float64s(); ok {
		return marshalFloats(floats)
	}

	return gojson.Marshal(col.Values)
}

func marshalFloats(values []float64) ([]byte, error) {
	finite := true
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			finite = false
			break
		}
	}

	if finite {
		return gojson.Marshal(values)
	}

	mixed := make([]any, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			mixed[i] = "NaN"
		case math.IsInf(v, 0):
			mixed[i] = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			mixed[i] = v
		}
	}

	return gojson.Marshal(mixed)
}
