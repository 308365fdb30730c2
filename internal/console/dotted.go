package console

import (
	"errors"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// dottedCall matches `<Type>.<command>(<args>)`.
var dottedCall = regexp.MustCompile(`^(\w+)\.(\w+)\((.*)\)$`)

// call is a parsed dotted call.
type call struct {
	className string
	command   string
	args      string
}

// parseDotted matches line against the dotted-call grammar.
func parseDotted(line string) (call, bool) {
	m := dottedCall.FindStringSubmatch(line)
	if m == nil {
		return call{}, false
	}
	return call{className: m[1], command: m[2], args: m[3]}, true
}

// mappingUpdate is the argument list of `<Type>.update(<id>, {...})`.
type mappingUpdate struct {
	id    []Token
	pairs []pair
}

// pair is one attribute assignment from a mapping literal.
type pair struct {
	name  string
	value Token
}

var errInvalidMapping = errors.New("invalid dictionary format")

// isMappingUpdate reports whether a dotted update carries a mapping literal.
func isMappingUpdate(args string) bool {
	return strings.Contains(args, "{")
}

// parseMappingUpdate splits `<id>, {<mapping>}` into the id argument and
// the ordered attribute assignments.
func parseMappingUpdate(args string) (mappingUpdate, error) {
	open := strings.Index(args, "{")
	if open < 0 {
		return mappingUpdate{}, errInvalidMapping
	}
	head := strings.TrimRight(strings.TrimSpace(args[:open]), ",")
	pairs, err := parseMapping(args[open:])
	if err != nil {
		return mappingUpdate{}, err
	}
	return mappingUpdate{id: splitCallArgs(head), pairs: pairs}, nil
}

// jsonNumber matches a JSON number literal.
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// parseMapping reads an inline mapping literal such as
// {'first_name': "John", "age": 89} and returns its entries in literal
// order. Keys must be single or double quoted. Values are quoted strings,
// JSON numbers, or true and false. Quoted values come back as quoted
// tokens; numbers and booleans as unquoted tokens carrying their literal
// text.
func parseMapping(s string) ([]pair, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, errInvalidMapping
	}
	if err := checkMappingSyntax(s); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, errInvalidMapping
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errInvalidMapping
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode || m.Style&yaml.FlowStyle == 0 {
		return nil, errInvalidMapping
	}

	pairs := make([]pair, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, errInvalidMapping
		}
		if !isQuoted(k) || k.Value == "" {
			return nil, errInvalidMapping
		}
		if !isQuoted(v) && v.Value != "true" && v.Value != "false" && !jsonNumber.MatchString(v.Value) {
			return nil, errInvalidMapping
		}
		pairs = append(pairs, pair{
			name:  k.Value,
			value: Token{Text: v.Value, Quoted: isQuoted(v)},
		})
	}
	return pairs, nil
}

func isQuoted(n *yaml.Node) bool {
	return n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0
}

// checkMappingSyntax scans the literal outside of quoted strings. Only the
// punctuation of a flat JSON object is allowed there, and a comma must
// separate two entries.
func checkMappingSyntax(s string) error {
	var prev byte // last significant byte outside quotes
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			end := closingQuote(s, i)
			if end < 0 {
				return errInvalidMapping
			}
			i = end
			prev = c
			continue
		case c == ' ' || c == '\t':
			continue
		case c == ',':
			if prev == ',' || prev == '{' {
				return errInvalidMapping
			}
		case c == '}':
			if prev == ',' {
				return errInvalidMapping
			}
		case c == '{' || c == ':' || c == '.' || c == '+' || c == '-':
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		default:
			return errInvalidMapping
		}
		prev = c
	}
	return nil
}

// closingQuote returns the index of the quote closing the string opened at
// s[open], or -1. Single-quoted strings escape a quote by doubling it;
// double-quoted strings use a backslash.
func closingQuote(s string, open int) int {
	q := s[open]
	for i := open + 1; i < len(s); i++ {
		switch {
		case q == '"' && s[i] == '\\':
			i++
		case s[i] == q:
			if q == '\'' && i+1 < len(s) && s[i+1] == '\'' {
				i++
				continue
			}
			return i
		}
	}
	return -1
}
