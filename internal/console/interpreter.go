// Package console implements the hbnb command interpreter: a line-oriented
// loop that parses commands, including the dotted-call form
// `<Type>.<command>(<args>)`, validates them against the object table, and
// applies them.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mesh-intelligence/hbnb/internal/logging"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// DefaultPrompt is the interactive prompt.
const DefaultPrompt = "(hbnb) "

// Diagnostics printed for rejected commands.
const (
	msgClassMissing     = "** class name missing **"
	msgClassUnknown     = "** class doesn't exist **"
	msgIDMissing        = "** instance id missing **"
	msgNoInstance       = "** no instance found **"
	msgAttrMissing      = "** attribute name missing **"
	msgValueMissing     = "** value missing **"
	msgInvalidMapping   = "** invalid dictionary format **"
	msgUnknownSyntaxFmt = "*** Unknown syntax: %s\n"
)

// LineReader supplies input lines. Readline returns io.EOF at end of input.
type LineReader interface {
	Readline() (string, error)
}

// Interpreter runs commands against an object table and writes results to
// an output writer. It holds no entity references between commands.
type Interpreter struct {
	table    types.ObjectTable
	registry *types.Registry
	out      io.Writer
	now      func() time.Time
}

// New returns an interpreter over table that accepts the classes in reg
// and writes command output to out.
func New(table types.ObjectTable, reg *types.Registry, out io.Writer) *Interpreter {
	return &Interpreter{
		table:    table,
		registry: reg,
		out:      out,
		now:      time.Now,
	}
}

// Run reads and executes lines until quit, end of input, or cancellation
// of ctx. End of input prints a newline.
func (i *Interpreter) Run(ctx context.Context, r LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.Readline()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(i.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}
		if i.Execute(ctx, line) {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the loop should stop.
// Empty lines do nothing.
func (i *Interpreter) Execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "?") {
		line = "help " + line[1:]
	}

	name, rest := splitCommand(line)
	logging.From(ctx).Debug("dispatch", "command", name, "args", rest)

	switch name {
	case "quit":
		return true
	case "EOF":
		fmt.Fprintln(i.out)
		return true
	case "help":
		printHelp(i.out, rest)
	case "create":
		i.create(ctx, Tokenize(rest))
	case "show":
		i.show(Tokenize(rest))
	case "destroy":
		i.destroy(ctx, Tokenize(rest))
	case "all":
		i.all(Tokenize(rest))
	case "count":
		i.count(Tokenize(rest))
	case "update":
		i.update(ctx, Tokenize(rest))
	default:
		i.dotted(ctx, line)
	}
	return false
}

// dotted handles `<Type>.<command>(<args>)`, routing it through the same
// handlers as the plain commands.
func (i *Interpreter) dotted(ctx context.Context, line string) {
	c, ok := parseDotted(line)
	if !ok {
		fmt.Fprintf(i.out, msgUnknownSyntaxFmt, line)
		return
	}
	class := Token{Text: c.className}

	switch c.command {
	case "all":
		i.all([]Token{class})
	case "count":
		i.count([]Token{class})
	case "create":
		i.create(ctx, []Token{class})
	case "show":
		i.show(append([]Token{class}, splitCallArgs(c.args)...))
	case "destroy":
		i.destroy(ctx, append([]Token{class}, splitCallArgs(c.args)...))
	case "update":
		if isMappingUpdate(c.args) {
			i.updateMapping(ctx, c.className, c.args)
			return
		}
		i.update(ctx, append([]Token{class}, splitCallArgs(c.args)...))
	default:
		fmt.Fprintf(i.out, msgUnknownSyntaxFmt, line)
	}
}

// checkClass validates the class argument, printing the diagnostic on
// failure.
func (i *Interpreter) checkClass(args []Token) bool {
	if len(args) == 0 || args[0].Text == "" {
		fmt.Fprintln(i.out, msgClassMissing)
		return false
	}
	if !i.registry.Has(args[0].Text) {
		fmt.Fprintln(i.out, msgClassUnknown)
		return false
	}
	return true
}

// lookup validates class and id arguments and fetches the entity,
// printing the first failing diagnostic.
func (i *Interpreter) lookup(args []Token) (*types.Entity, bool) {
	if !i.checkClass(args) {
		return nil, false
	}
	if len(args) < 2 {
		fmt.Fprintln(i.out, msgIDMissing)
		return nil, false
	}
	e, err := i.table.Get(args[0].Text, args[1].Text)
	if err != nil {
		fmt.Fprintln(i.out, msgNoInstance)
		return nil, false
	}
	return e, true
}

func (i *Interpreter) create(ctx context.Context, args []Token) {
	if !i.checkClass(args) {
		return
	}
	e, err := i.table.Create(args[0].Text)
	if err != nil {
		fmt.Fprintln(i.out, msgClassUnknown)
		return
	}
	if !i.save(ctx) {
		return
	}
	fmt.Fprintln(i.out, e.ID)
}

func (i *Interpreter) show(args []Token) {
	e, ok := i.lookup(args)
	if !ok {
		return
	}
	fmt.Fprintln(i.out, Repr(e))
}

func (i *Interpreter) destroy(ctx context.Context, args []Token) {
	e, ok := i.lookup(args)
	if !ok {
		return
	}
	i.table.Delete(e.Key())
	i.save(ctx)
}

func (i *Interpreter) all(args []Token) {
	prefix := ""
	if len(args) > 0 {
		if !i.registry.Has(args[0].Text) {
			fmt.Fprintln(i.out, msgClassUnknown)
			return
		}
		prefix = args[0].Text
	}
	items := []string{}
	for _, e := range i.table.All() {
		if prefix != "" && e.ClassName != prefix {
			continue
		}
		items = append(items, Repr(e))
	}
	fmt.Fprintln(i.out, reprList(items))
}

func (i *Interpreter) count(args []Token) {
	if !i.checkClass(args) {
		return
	}
	fmt.Fprintln(i.out, i.table.Count(args[0].Text))
}

func (i *Interpreter) update(ctx context.Context, args []Token) {
	e, ok := i.lookup(args)
	if !ok {
		return
	}
	if len(args) < 3 || args[2].Text == "" {
		fmt.Fprintln(i.out, msgAttrMissing)
		return
	}
	if len(args) < 4 {
		fmt.Fprintln(i.out, msgValueMissing)
		return
	}
	if i.apply(ctx, e, args[2].Text, args[3]) {
		i.save(ctx)
	}
}

// updateMapping handles `<Type>.update(<id>, {<mapping>})`: one update per
// mapping entry, in literal order, followed by a single save.
func (i *Interpreter) updateMapping(ctx context.Context, className, rawArgs string) {
	class := Token{Text: className}
	if !i.checkClass([]Token{class}) {
		return
	}
	mu, err := parseMappingUpdate(rawArgs)
	if err != nil {
		logging.From(ctx).Debug("rejected mapping literal", "args", rawArgs, "error", err)
		fmt.Fprintln(i.out, msgInvalidMapping)
		return
	}
	e, ok := i.lookup(append([]Token{class}, mu.id...))
	if !ok {
		return
	}
	changed := false
	for _, p := range mu.pairs {
		if i.apply(ctx, e, p.name, p.value) {
			changed = true
		}
	}
	if changed {
		i.save(ctx)
	}
}

// apply coerces value and sets it on e, refreshing updated_at. Reserved
// attribute names are ignored. Reports whether e changed.
func (i *Interpreter) apply(ctx context.Context, e *types.Entity, name string, value Token) bool {
	if types.IsReserved(name) {
		logging.From(ctx).Debug("ignoring update of reserved attribute", "key", e.Key(), "attribute", name)
		return false
	}
	current, hasCurrent := e.Get(name)
	declared, hasDeclared := i.registry.AttributeKind(e.ClassName, name)
	v := coerce(value, current, hasCurrent, declared, hasDeclared)
	if err := e.Set(name, v); err != nil {
		return false
	}
	e.Touch(i.now().Truncate(time.Microsecond))
	return true
}

// save persists the table. A failure is printed verbatim and logged.
func (i *Interpreter) save(ctx context.Context) bool {
	if err := i.table.Save(); err != nil {
		logging.From(ctx).Error("save failed", "error", err)
		fmt.Fprintln(i.out, err)
		return false
	}
	return true
}
