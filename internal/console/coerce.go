package console

import (
	"strconv"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// coerce turns an update argument into a Value. The target kind is the
// kind of the attribute's current value when it has one, else the kind the
// class schema declares for it. With neither, an unquoted argument that
// reads as a number becomes that number and anything else stays text. A
// conversion that fails keeps the text.
func coerce(tok Token, current types.Value, hasCurrent bool, declared types.Kind, hasDeclared bool) types.Value {
	switch {
	case hasCurrent:
		return convert(tok.Text, current.Kind())
	case hasDeclared:
		return convert(tok.Text, declared)
	case !tok.Quoted:
		if v, err := types.ParseNumber(tok.Text); err == nil {
			return v
		}
	}
	return types.StringValue(tok.Text)
}

func convert(text string, kind types.Kind) types.Value {
	switch kind {
	case types.KindInt:
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return types.IntValue(i)
		}
	case types.KindFloat:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			if v, err := types.FloatValue(f); err == nil {
				return v
			}
		}
	case types.KindBool:
		if b, err := strconv.ParseBool(text); err == nil {
			return types.BoolValue(b)
		}
	}
	return types.StringValue(text)
}
