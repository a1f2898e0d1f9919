package gen

import (
	"fmt"
	"strings"

	"blockc/block"
	"blockc/names"
	"blockc/trace"
)

// Rule emits one block kind. It may call back into the compilation to
// emit children, stating the level each child is embedded at.
type Rule func(c *Compilation, b block.Block) (Result, error)

// Backend is everything an output language supplies to the engine.
type Backend struct {
	Name  string
	Table Table
	Rules map[string]Rule

	// Reserved lists identifiers user variables and helpers must avoid.
	Reserved []string
	// VariableField names the field that holds a user variable name.
	VariableField string
	// Naked turns an expression used as a statement into a statement.
	Naked func(code string) string
}

// Options tune a generator.
type Options struct {
	Indent string // one level of indentation in statements and helpers, two spaces if empty
	Tracer *trace.Tracer
}

// Generator compiles programs for one backend. It is immutable after New
// and safe for concurrent use: every Compile call gets its own state.
type Generator struct {
	backend Backend
	rules   map[string]Rule
	indent  string
	trace   *trace.Tracer
}

// New creates a generator. The backend's rule table is copied, so later
// changes to it have no effect.
func New(b Backend, opts Options) *Generator {
	rules := make(map[string]Rule, len(b.Rules))
	for kind, rule := range b.Rules {
		rules[kind] = rule
	}
	if b.Naked == nil {
		b.Naked = func(code string) string { return code + "\n" }
	}
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	return &Generator{
		backend: b,
		rules:   rules,
		indent:  indent,
		trace:   opts.Tracer,
	}
}

// Backend returns the backend's name.
func (g *Generator) Backend() string {
	return g.backend.Name
}

// Supports reports whether a rule is registered for kind.
func (g *Generator) Supports(kind string) bool {
	_, ok := g.rules[kind]
	return ok
}

// NewCompilation starts a fresh compilation with its own name and helper
// registries.
func (g *Generator) NewCompilation() *Compilation {
	reg := names.NewRegistry(g.backend.Reserved...)
	helpers := NewHelpers(reg, g.trace)
	helpers.indent = g.indent
	return &Compilation{
		gen:     g,
		Names:   reg,
		Helpers: helpers,
		trace:   g.trace,
	}
}

// Compile translates a whole program. Helper definitions come first, in
// the order they were first requested, followed by the statements.
func (g *Generator) Compile(p block.Program) (string, error) {
	c := g.NewCompilation()
	c.declare(p)

	var sb strings.Builder
	blocks := 0
	for i, b := range p {
		if b == nil {
			continue
		}
		code, err := c.statements(fmt.Sprintf("program[%d]", i), b)
		if err != nil {
			return "", err
		}
		sb.WriteString(code)
		blocks++
	}

	defs := c.Helpers.Definitions()
	g.trace.Program(blocks, len(defs))
	if len(defs) == 0 {
		return sb.String(), nil
	}
	return strings.Join(defs, "\n\n") + "\n\n" + sb.String(), nil
}

// declare reserves every user variable before emission starts, so helper
// and temporary names can never take a name the program already uses.
func (c *Compilation) declare(p block.Program) {
	field := c.gen.backend.VariableField
	if field == "" {
		return
	}
	block.Walk(p, func(b block.Block) bool {
		if name := b.Field(field); name != "" {
			c.Names.Variable(name)
		}
		return true
	})
}
