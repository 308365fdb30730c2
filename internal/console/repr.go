package console

import (
	"strings"

	"github.com/mesh-intelligence/hbnb/internal/codec"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Repr renders e as `[ClassName] (id) {'id': ..., 'created_at': ..., ...}`.
// Attributes follow the timestamps in insertion order; strings are quoted,
// other scalars are written bare.
func Repr(e *types.Entity) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.ClassName)
	b.WriteString("] (")
	b.WriteString(e.ID)
	b.WriteString(") {")

	writePair(&b, types.AttrID, types.StringValue(e.ID), true)
	writePair(&b, types.AttrCreatedAt, types.StringValue(codec.FormatTime(e.CreatedAt)), false)
	writePair(&b, types.AttrUpdatedAt, types.StringValue(codec.FormatTime(e.UpdatedAt)), false)
	for name, v := range e.Attrs.All() {
		writePair(&b, name, v, false)
	}
	b.WriteString("}")
	return b.String()
}

func writePair(b *strings.Builder, name string, v types.Value, first bool) {
	if !first {
		b.WriteString(", ")
	}
	b.WriteString(quote(name))
	b.WriteString(": ")
	if v.Kind() == types.KindString {
		b.WriteString(quote(v.Text()))
		return
	}
	b.WriteString(v.String())
}

// reprList renders a list of representations as ["...", "..."].
func reprList(items []string) string {
	var b strings.Builder
	b.WriteString("[")
	for i, s := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(doubleQuote(s))
	}
	b.WriteString("]")
	return b.String()
}

// quote wraps s in single quotes, or in double quotes when s holds a single
// quote and no double quote.
func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`)
		return `"` + r.Replace(s) + `"`
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`)
	return "'" + r.Replace(s) + "'"
}

func doubleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
