package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatValueRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FloatValue(f)
		assert.ErrorIs(t, err, ErrUnsupportedValue)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string", StringValue("Betty"), "Betty"},
		{"int", IntValue(42), "42"},
		{"negative int", IntValue(-7), "-7"},
		{"bool", BoolValue(true), "true"},
		{"integral float keeps a fraction", mustFloat(t, 3), "3.0"},
		{"float", mustFloat(t, 37.7749), "37.7749"},
		{"tiny float uses exponent", mustFloat(t, 0.00001), "1e-05"},
		{"zero float", mustFloat(t, 0), "0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantText string
	}{
		{"string", `"John"`, KindString, "John"},
		{"empty string", `""`, KindString, ""},
		{"int", `89`, KindInt, "89"},
		{"float", `1.5`, KindFloat, "1.5"},
		{"exponent is float", `1e3`, KindFloat, "1000.0"},
		{"integral float stays float", `3.0`, KindFloat, "3.0"},
		{"bool", `false`, KindBool, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.wantKind, v.Kind())
			assert.Equal(t, tt.wantText, v.String())

			out, err := json.Marshal(v)
			require.NoError(t, err)
			var back Value
			require.NoError(t, json.Unmarshal(out, &back))
			assert.True(t, v.Equal(back), "round trip changed %s to %s", tt.input, out)
		})
	}
}

func TestValueJSONRejectsCollections(t *testing.T) {
	for _, input := range []string{`{}`, `[1]`, `null`} {
		var v Value
		err := json.Unmarshal([]byte(input), &v)
		assert.ErrorIs(t, err, ErrUnsupportedValue, input)
	}
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber("12")
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind())

	v, err = ParseNumber("-0.5")
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())

	v, err = ParseNumber("99999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())

	_, err = ParseNumber("twelve")
	assert.Error(t, err)

	_, err = ParseNumber("NaN")
	assert.Error(t, err)
}

func TestValueEqual(t *testing.T) {
	assert.True(t, IntValue(1).Equal(IntValue(1)))
	assert.False(t, IntValue(1).Equal(mustFloat(t, 1)))
	assert.False(t, StringValue("1").Equal(IntValue(1)))
	assert.True(t, Value{}.Equal(StringValue("")))
}

func mustFloat(t *testing.T, f float64) Value {
	t.Helper()
	v, err := FloatValue(f)
	require.NoError(t, err)
	return v
}
