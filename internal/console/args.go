package console

import (
	"strings"
	"unicode"
)

// Token is one command argument. Quoted is set when any part of the token
// was written inside double quotes; quoted tokens may be empty and are
// never coerced to numbers by inference.
type Token struct {
	Text   string
	Quoted bool
}

// Tokenize splits a command's argument string on whitespace. A double
// quote toggles quoting and is dropped, so `first_name "Betty Ann"` yields
// two tokens, the second holding an embedded space.
func Tokenize(s string) []Token {
	var (
		out     []Token
		cur     strings.Builder
		inQuote bool
		quoted  bool
		started bool
	)
	flush := func() {
		if started {
			out = append(out, Token{Text: cur.String(), Quoted: quoted})
		}
		cur.Reset()
		quoted, started = false, false
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			quoted, started = true, true
		case unicode.IsSpace(r) && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return out
}

// splitCallArgs splits the argument list of a dotted call on commas that
// sit outside quotes. Single or double quotes delimit a quoted argument;
// unquoted arguments are trimmed. Empty unquoted arguments are dropped.
func splitCallArgs(s string) []Token {
	var (
		out    []Token
		cur    strings.Builder
		quote  rune
		quoted bool
	)
	flush := func() {
		text := cur.String()
		if !quoted {
			text = strings.TrimSpace(text)
		}
		if text != "" || quoted {
			out = append(out, Token{Text: text, Quoted: quoted})
		}
		cur.Reset()
		quoted = false
	}
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			if !quoted {
				cur.Reset()
			}
			quote, quoted = r, true
		case r == ',':
			flush()
		case quoted && unicode.IsSpace(r):
			// whitespace around a quoted argument
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// splitCommand separates the leading command word, a run of letters,
// digits, and underscores, from the rest of the line.
func splitCommand(line string) (name, rest string) {
	i := 0
	for i < len(line) && isIdentByte(line[i]) {
		i++
	}
	return line[:i], strings.TrimSpace(line[i:])
}

func isIdentByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
