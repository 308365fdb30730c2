package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the scalar type held by a Value.
type Kind int

// Scalar kinds an attribute may hold.
const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// String returns the kind name used in logs and schema listings.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a scalar attribute value: a string, an integer, a finite float,
// or a boolean. The zero Value is the empty string.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// StringValue returns a Value holding s.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// IntValue returns a Value holding i.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a Value holding f. NaN and infinities are rejected
// with ErrUnsupportedValue because they have no JSON form.
func FloatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
	}
	return Value{kind: KindFloat, f: f}, nil
}

// BoolValue returns a Value holding b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the scalar kind of v.
func (v Value) Kind() Kind { return v.kind }

// Text returns the string held by v, or "" for non-string kinds.
func (v Value) Text() string { return v.s }

// Int returns the integer held by v, or 0 for non-int kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the float held by v, or 0 for non-float kinds.
func (v Value) Float() float64 { return v.f }

// Bool returns the boolean held by v, or false for non-bool kinds.
func (v Value) Bool() bool { return v.b }

// String returns the textual form of v. Strings are returned unquoted.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// Equal reports whether v and o hold the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	default:
		return v.s == o.s
	}
}

// MarshalJSON encodes v as a JSON scalar. Floats always carry a decimal
// point or an exponent so they decode back as floats.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return []byte(formatFloat(v.f)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return json.Marshal(v.s)
	}
}

// UnmarshalJSON decodes a JSON string, number, or boolean. Integral
// numbers written without a fraction or exponent decode as KindInt.
// Objects, arrays, and null are rejected with ErrUnsupportedValue.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty input", ErrUnsupportedValue)
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
		return nil
	case '{', '[', 'n':
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, data)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	parsed, err := ParseNumber(n.String())
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseNumber parses s as an integer when it has no fraction or exponent,
// otherwise as a finite float. Integers that overflow int64 fall back to
// float.
func ParseNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, err
	}
	return FloatValue(f)
}

// formatFloat renders f the way the console and the JSON file show it:
// plain decimal with at least one fractional digit, switching to exponent
// form for very small or very large magnitudes.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
