package pgliteral

import (
	"fmt"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// Kind identifies the semantic kind of a Value.
type Kind string

const (
	KindInvalid   Kind = ""
	KindNull      Kind = "NULL"
	KindInteger   Kind = "INTEGER"
	KindFloat     Kind = "FLOAT"
	KindText      Kind = "TEXT"
	KindTimestamp Kind = "TIMESTAMP"
	KindInterval  Kind = "INTERVAL"
	KindBoolean   Kind = "BOOLEAN"
	KindJSON      Kind = "JSON"
	KindPoint     Kind = "POINT"
	KindList      Kind = "LIST"
)

// IsNumeric returns true if the kind is a numeric kind.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat
}

// Value is a typed constant value to be encoded as a SQL literal.
//
// The Kind tag selects the encoding routine and Data carries the
// kind-specific payload. Use the constructors to build values; a Value whose
// payload does not match its kind tag fails encoding with *EncodingError.
type Value struct {
	Kind Kind
	Data any // kind-specific payload
}

// IsNull returns true if the value is the null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String returns a diagnostic representation of the value.
// It is used in error messages and is not a SQL literal.
func (v Value) String() string {
	switch v.Kind {
	case KindInvalid:
		return "<invalid>"
	case KindNull:
		return "null"
	case KindList:
		elems, ok := v.Data.([]Value)
		if !ok {
			break
		}
		parts := make([]string, len(elems))
		for i, el := range elems {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return fmt.Sprintf("%v", v.Data)
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Integer returns an integer value.
func Integer(i int64) Value { return Value{Kind: KindInteger, Data: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{Kind: KindFloat, Data: f} }

// Text returns a text value.
func Text(s string) Value { return Value{Kind: KindText, Data: s} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{Kind: KindBoolean, Data: b} }

// Timestamp returns a timestamp value. A timestamp whose time of day is
// exactly midnight encodes as a date-only literal.
func Timestamp(t time.Time) Value { return Value{Kind: KindTimestamp, Data: t} }

// Date returns a timestamp value at midnight UTC, which encodes as a
// date-only literal.
func Date(year int, month time.Month, day int) Value {
	return Timestamp(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Interval returns an interval value. Intervals encode with microsecond
// resolution; sub-microsecond precision is discarded.
func Interval(d time.Duration) Value { return Value{Kind: KindInterval, Data: d} }

// JSON returns a JSON mapping value. The payload must be representable by
// encoding/json (maps, slices, scalars, or types implementing
// json.Marshaler).
func JSON(v any) Value { return Value{Kind: KindJSON, Data: v} }

// Point returns a two-dimensional geometric point value.
func Point(p orb.Point) Value { return Value{Kind: KindPoint, Data: p} }

// List returns a list value. Lists may be empty and may mix element kinds;
// mixed-kind lists encode through JSON serialization of each element.
func List(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: KindList, Data: elems}
}

// Bind maps a natural Go value onto the closed kind set.
//
// Signed integers bind as Integer, floats as Float, strings as Text,
// time.Time as Timestamp, time.Duration as Interval, orb.Point as Point,
// maps as JSON, and slices as List (binding each element). A Value passes
// through unchanged. Unsupported Go types fail with *EncodingError.
func Bind(src any) (Value, error) {
	switch v := src.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Boolean(v), nil
	case int:
		return Integer(int64(v)), nil
	case int8:
		return Integer(int64(v)), nil
	case int16:
		return Integer(int64(v)), nil
	case int32:
		return Integer(int64(v)), nil
	case int64:
		return Integer(v), nil
	case uint:
		return bindUint(uint64(v))
	case uint8:
		return Integer(int64(v)), nil
	case uint16:
		return Integer(int64(v)), nil
	case uint32:
		return Integer(int64(v)), nil
	case uint64:
		return bindUint(v)
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return Text(v), nil
	case time.Time:
		return Timestamp(v), nil
	case time.Duration:
		return Interval(v), nil
	case orb.Point:
		return Point(v), nil
	case map[string]any:
		return JSON(v), nil
	case []Value:
		return List(v...), nil
	case []any:
		elems := make([]Value, 0, len(v))
		for i, el := range v {
			bound, err := Bind(el)
			if err != nil {
				return Value{}, fmt.Errorf("pgliteral: bind list element %d: %w", i, err)
			}
			elems = append(elems, bound)
		}
		return List(elems...), nil
	case []string:
		elems := make([]Value, 0, len(v))
		for _, el := range v {
			elems = append(elems, Text(el))
		}
		return List(elems...), nil
	case []int:
		elems := make([]Value, 0, len(v))
		for _, el := range v {
			elems = append(elems, Integer(int64(el)))
		}
		return List(elems...), nil
	case []int64:
		elems := make([]Value, 0, len(v))
		for _, el := range v {
			elems = append(elems, Integer(el))
		}
		return List(elems...), nil
	case []float64:
		elems := make([]Value, 0, len(v))
		for _, el := range v {
			elems = append(elems, Float(el))
		}
		return List(elems...), nil
	default:
		return Value{}, &EncodingError{Repr: fmt.Sprintf("%T(%v)", src, src)}
	}
}

// BindAll maps a slice of natural Go values onto the kind set.
func BindAll(src []any) ([]Value, error) {
	values := make([]Value, 0, len(src))
	for i, el := range src {
		v, err := Bind(el)
		if err != nil {
			return nil, fmt.Errorf("pgliteral: bind value %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func bindUint(v uint64) (Value, error) {
	if v > 1<<63-1 {
		return Value{}, &EncodingError{Repr: fmt.Sprintf("uint64(%d) overflows int64", v)}
	}
	return Integer(int64(v)), nil
}
