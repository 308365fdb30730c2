package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "plain words",
			input: "User 1234",
			want:  []Token{{Text: "User"}, {Text: "1234"}},
		},
		{
			name:  "quoted value keeps spaces",
			input: `User 1234 first_name "Betty Ann"`,
			want:  []Token{{Text: "User"}, {Text: "1234"}, {Text: "first_name"}, {Text: "Betty Ann", Quoted: true}},
		},
		{
			name:  "empty quoted token",
			input: `User 1234 name ""`,
			want:  []Token{{Text: "User"}, {Text: "1234"}, {Text: "name"}, {Text: "", Quoted: true}},
		},
		{
			name:  "extra whitespace",
			input: "  User \t 1234  ",
			want:  []Token{{Text: "User"}, {Text: "1234"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestSplitCallArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "double quoted",
			input: `"1234", "first_name", "John"`,
			want:  []Token{{Text: "1234", Quoted: true}, {Text: "first_name", Quoted: true}, {Text: "John", Quoted: true}},
		},
		{
			name:  "unquoted number",
			input: `"1234", "age", 89`,
			want:  []Token{{Text: "1234", Quoted: true}, {Text: "age", Quoted: true}, {Text: "89"}},
		},
		{
			name:  "single quotes and embedded comma",
			input: `'1234', 'text', 'nice, quiet'`,
			want:  []Token{{Text: "1234", Quoted: true}, {Text: "text", Quoted: true}, {Text: "nice, quiet", Quoted: true}},
		},
		{
			name:  "empty quoted argument",
			input: `"1234", "name", ""`,
			want:  []Token{{Text: "1234", Quoted: true}, {Text: "name", Quoted: true}, {Text: "", Quoted: true}},
		},
		{
			name:  "bare id",
			input: ` 1234 `,
			want:  []Token{{Text: "1234"}},
		},
		{
			name:  "no arguments",
			input: ``,
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCallArgs(tt.input))
		})
	}
}

func TestSplitCommand(t *testing.T) {
	name, rest := splitCommand("show  User 1234 ")
	assert.Equal(t, "show", name)
	assert.Equal(t, "User 1234", rest)

	name, rest = splitCommand(`User.show("1234")`)
	assert.Equal(t, "User", name)
	assert.Equal(t, `.show("1234")`, rest)

	name, rest = splitCommand("!!")
	assert.Equal(t, "", name)
	assert.Equal(t, "!!", rest)
}

func TestParseDotted(t *testing.T) {
	c, ok := parseDotted(`User.update("1234", "first_name", "John")`)
	require.True(t, ok)
	assert.Equal(t, "User", c.className)
	assert.Equal(t, "update", c.command)
	assert.Equal(t, `"1234", "first_name", "John"`, c.args)

	c, ok = parseDotted("Place.count()")
	require.True(t, ok)
	assert.Equal(t, "count", c.command)
	assert.Equal(t, "", c.args)

	for _, line := range []string{"User.count", "User count()", ".all()", "User.all() extra"} {
		_, ok := parseDotted(line)
		assert.False(t, ok, line)
	}
}

func TestParseMappingUpdate(t *testing.T) {
	mu, err := parseMappingUpdate(`"1234", {'first_name': "John", "age": 89, "height": 1.8, "active": true, "nick": ''}`)
	require.NoError(t, err)
	assert.Equal(t, []Token{{Text: "1234", Quoted: true}}, mu.id)
	assert.Equal(t, []pair{
		{name: "first_name", value: Token{Text: "John", Quoted: true}},
		{name: "age", value: Token{Text: "89"}},
		{name: "height", value: Token{Text: "1.8"}},
		{name: "active", value: Token{Text: "true"}},
		{name: "nick", value: Token{Text: "", Quoted: true}},
	}, mu.pairs)
}

func TestParseMappingUpdateInvalid(t *testing.T) {
	for _, args := range []string{
		`"1234", {'first_name': "John"`,
		`"1234", {'first_name' "John"}`,
		`"1234", {'tags': ['a', 'b']}`,
		`"1234", {'nested': {'a': 1}}`,
		`"1234", {'gone': null}`,
		`"1234", {: 1}`,
	} {
		_, err := parseMappingUpdate(args)
		assert.Error(t, err, args)
	}
}

func TestParseMappingEmpty(t *testing.T) {
	mu, err := parseMappingUpdate(`"1234", {}`)
	require.NoError(t, err)
	assert.Empty(t, mu.pairs)
}
