package gen

import (
	"errors"
	"strconv"
	"strings"

	"blockc/block"
	"blockc/names"
	"blockc/trace"
)

// Compilation holds the state of one program compilation. Rules receive it
// and must not keep it beyond the call.
type Compilation struct {
	gen     *Generator
	Names   *names.Registry
	Helpers *Helpers
	trace   *trace.Tracer
	path    []string
}

// Table returns the backend's precedence table.
func (c *Compilation) Table() Table {
	return c.gen.backend.Table
}

// Emit dispatches b to its rule. An expression binding weaker than
// required comes back grouped; statements come back as they are.
func (c *Compilation) Emit(b block.Block, required Level) (Result, error) {
	return c.emit("", b, required)
}

func (c *Compilation) emit(slot string, b block.Block, required Level) (Result, error) {
	c.push(slot, b.Kind())
	defer c.pop()

	rule, ok := c.gen.rules[b.Kind()]
	if !ok {
		return Result{}, &UnsupportedKindError{Kind: b.Kind(), Path: c.Path()}
	}
	t := c.Table()
	c.trace.Emit(b.Kind(), c.Path(), t.Name(required))

	res, err := rule(c, b)
	if err != nil {
		var l locatable
		if errors.As(err, &l) {
			l.locate(c.Path())
		}
		return Result{}, err
	}
	return t.Group(res, required), nil
}

// Value emits the block in slot as a raw expression. An empty slot yields
// def instead.
func (c *Compilation) Value(b block.Block, slot string, def Result) (Result, error) {
	child := b.Input(slot)
	if child == nil {
		return def, nil
	}
	res, err := c.emit(slot, child, c.Table().None)
	if err != nil {
		return Result{}, err
	}
	if res.Stmt {
		c.push(slot, child.Kind())
		defer c.pop()
		return Result{}, &ShapeError{Kind: child.Kind(), Path: c.Path()}
	}
	return res, nil
}

// ValueToCode emits the block in slot for a context requiring level. An
// empty slot yields the literal def.
func (c *Compilation) ValueToCode(b block.Block, slot string, required Level, def string) (string, error) {
	res, err := c.Value(b, slot, Expr(def, c.Table().Atomic))
	if err != nil {
		return "", err
	}
	return c.Table().Wrap(res, required), nil
}

// StatementToCode emits the statement chain in slot, indented one level.
func (c *Compilation) StatementToCode(b block.Block, slot string) (string, error) {
	child := b.Input(slot)
	if child == nil {
		return "", nil
	}
	code, err := c.statements(slot, child)
	if err != nil {
		return "", err
	}
	return indent(code, c.gen.indent), nil
}

// Statements emits a chain of statements starting at first.
func (c *Compilation) Statements(first block.Block) (string, error) {
	return c.statements("", first)
}

func (c *Compilation) statements(slot string, first block.Block) (string, error) {
	var sb strings.Builder
	i := 0
	for b := first; b != nil; b = b.Next() {
		res, err := c.emit(chained(slot, i), b, c.Table().None)
		if err != nil {
			return "", err
		}
		if res.Stmt {
			sb.WriteString(res.Code)
		} else {
			sb.WriteString(c.gen.backend.Naked(res.Code))
		}
		i++
	}
	return sb.String(), nil
}

// chained names the i-th block of a statement chain hanging off slot.
func chained(slot string, i int) string {
	switch {
	case i == 0:
		return slot
	case slot == "":
		return "next[" + strconv.Itoa(i) + "]"
	default:
		return slot + ".next[" + strconv.Itoa(i) + "]"
	}
}

// Variable returns the identifier of a user variable.
func (c *Compilation) Variable(userName string) string {
	return c.Names.Variable(userName)
}

// FreshName allocates a temporary identifier.
func (c *Compilation) FreshName(hint string) string {
	return c.Names.Allocate(hint)
}

// Path describes where emission currently is, from the program root.
func (c *Compilation) Path() string {
	return strings.Join(c.path, "/")
}

func (c *Compilation) push(slot, kind string) {
	if slot == "" {
		c.path = append(c.path, kind)
		return
	}
	c.path = append(c.path, slot+":"+kind)
}

func (c *Compilation) pop() {
	c.path = c.path[:len(c.path)-1]
}

// indent prefixes every non-empty line of code.
func indent(code, prefix string) string {
	lines := strings.SplitAfter(code, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line != "" && line != "\n" {
			sb.WriteString(prefix)
		}
		sb.WriteString(line)
	}
	return sb.String()
}
