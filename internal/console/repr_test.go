package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func TestCoerce(t *testing.T) {
	intVal := types.IntValue(89)
	floatVal, err := types.FloatValue(2.5)
	require.NoError(t, err)

	tests := []struct {
		name        string
		tok         Token
		current     *types.Value
		declared    *types.Kind
		wantKind    types.Kind
		wantDisplay string
	}{
		{
			name:        "unquoted integer is inferred",
			tok:         Token{Text: "89"},
			wantKind:    types.KindInt,
			wantDisplay: "89",
		},
		{
			name:        "unquoted float is inferred",
			tok:         Token{Text: "1.5"},
			wantKind:    types.KindFloat,
			wantDisplay: "1.5",
		},
		{
			name:        "quoted number stays text",
			tok:         Token{Text: "89", Quoted: true},
			wantKind:    types.KindString,
			wantDisplay: "89",
		},
		{
			name:        "bool is not inferred",
			tok:         Token{Text: "true"},
			wantKind:    types.KindString,
			wantDisplay: "true",
		},
		{
			name:        "current int kind wins",
			tok:         Token{Text: "90", Quoted: true},
			current:     &intVal,
			wantKind:    types.KindInt,
			wantDisplay: "90",
		},
		{
			name:        "failed conversion keeps text",
			tok:         Token{Text: "many"},
			current:     &intVal,
			wantKind:    types.KindString,
			wantDisplay: "many",
		},
		{
			name:        "current float kind converts integers",
			tok:         Token{Text: "3"},
			current:     &floatVal,
			wantKind:    types.KindFloat,
			wantDisplay: "3.0",
		},
		{
			name:        "declared kind applies without a current value",
			tok:         Token{Text: "4", Quoted: true},
			declared:    kindPtr(types.KindInt),
			wantKind:    types.KindInt,
			wantDisplay: "4",
		},
		{
			name:        "declared string keeps digits as text",
			tok:         Token{Text: "12345"},
			declared:    kindPtr(types.KindString),
			wantKind:    types.KindString,
			wantDisplay: "12345",
		},
		{
			name:        "declared bool converts",
			tok:         Token{Text: "false"},
			declared:    kindPtr(types.KindBool),
			wantKind:    types.KindBool,
			wantDisplay: "false",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var current types.Value
			var declared types.Kind
			if tt.current != nil {
				current = *tt.current
			}
			if tt.declared != nil {
				declared = *tt.declared
			}
			got := coerce(tt.tok, current, tt.current != nil, declared, tt.declared != nil)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, tt.wantDisplay, got.String())
		})
	}
}

func kindPtr(k types.Kind) *types.Kind { return &k }

func TestRepr(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	e := types.NewEntity(types.ClassPlace, "p1", ts)
	require.NoError(t, e.Set("name", types.StringValue("Loft")))
	require.NoError(t, e.Set("number_rooms", types.IntValue(3)))
	lat, err := types.FloatValue(37.5)
	require.NoError(t, err)
	require.NoError(t, e.Set("latitude", lat))
	require.NoError(t, e.Set("pets", types.BoolValue(true)))
	require.NoError(t, e.Set("note", types.StringValue("it's")))

	want := `[Place] (p1) {'id': 'p1', 'created_at': '2024-05-01T12:00:00.000000', ` +
		`'updated_at': '2024-05-01T12:00:00.000000', 'name': 'Loft', 'number_rooms': 3, ` +
		`'latitude': 37.5, 'pets': true, 'note': "it's"}`
	assert.Equal(t, want, Repr(e))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'plain'`, quote("plain"))
	assert.Equal(t, `"it's"`, quote("it's"))
	assert.Equal(t, `'say "hi" it\'s'`, quote(`say "hi" it's`))
	assert.Equal(t, `'a\nb'`, quote("a\nb"))
}

func TestReprList(t *testing.T) {
	assert.Equal(t, "[]", reprList(nil))
	assert.Equal(t, `["[User] (1) {'id': '1'}", "x"]`, reprList([]string{"[User] (1) {'id': '1'}", "x"}))
	assert.Equal(t, `["say \"hi\""]`, reprList([]string{`say "hi"`}))
}
