package gen

import (
	"strings"

	"blockc/names"
	"blockc/trace"
)

// NamePlaceholder stands for a helper's own name inside its source lines.
const NamePlaceholder = "{@name}"

type helperEntry struct {
	key   string
	name  string
	lines []string
	ready bool
}

// Helpers deduplicates shared routines within one compilation. A logical
// key is registered at most once; every request for it gets the same name.
type Helpers struct {
	names   *names.Registry
	trace   *trace.Tracer
	indent  string
	entries map[string]*helperEntry
	order   []*helperEntry
}

// NewHelpers creates an empty registry allocating names from reg.
func NewHelpers(reg *names.Registry, tr *trace.Tracer) *Helpers {
	return &Helpers{
		names:   reg,
		trace:   tr,
		entries: make(map[string]*helperEntry),
	}
}

// Provide registers a helper whose source is known up front and returns
// its name. Lines may refer to the helper's own name via NamePlaceholder.
// They are written with two spaces per nesting level and re-indented to
// the compilation's indent unit.
func (h *Helpers) Provide(key string, lines ...string) string {
	name, _ := h.ProvideFunc(key, func(string) ([]string, error) {
		return lines, nil
	})
	return name
}

// ProvideFunc registers a helper whose source is built lazily. build runs
// only on the first request for key and receives the allocated name. It may
// call back into the registry, for key itself included: the name is
// reserved before build runs, so recursive requests return it at once.
func (h *Helpers) ProvideFunc(key string, build func(name string) ([]string, error)) (string, error) {
	if e, ok := h.entries[key]; ok {
		return e.name, nil
	}

	e := &helperEntry{key: key, name: h.names.Allocate(hintFor(key))}
	h.entries[key] = e
	h.order = append(h.order, e)
	h.trace.Helper(key, e.name)

	lines, err := build(e.name)
	if err != nil {
		h.forget(e)
		return "", err
	}
	e.lines = make([]string, len(lines))
	for i, line := range lines {
		e.lines[i] = reindent(strings.ReplaceAll(line, NamePlaceholder, e.name), h.indent)
	}
	e.ready = true
	return e.name, nil
}

// forget drops an entry whose source could not be built. Its name stays
// reserved.
func (h *Helpers) forget(e *helperEntry) {
	delete(h.entries, e.key)
	for i, o := range h.order {
		if o == e {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Name returns the name allocated for key, if it was requested.
func (h *Helpers) Name(key string) (string, bool) {
	e, ok := h.entries[key]
	if !ok {
		return "", false
	}
	return e.name, true
}

// Len returns the number of registered helpers.
func (h *Helpers) Len() int {
	return len(h.order)
}

// Keys returns the logical keys in registration order.
func (h *Helpers) Keys() []string {
	keys := make([]string, len(h.order))
	for i, e := range h.order {
		keys[i] = e.key
	}
	return keys
}

// Definitions renders every helper, first requested first. Helpers with
// empty source render nothing.
func (h *Helpers) Definitions() []string {
	defs := make([]string, 0, len(h.order))
	for _, e := range h.order {
		if e.ready && len(e.lines) > 0 {
			defs = append(defs, strings.Join(e.lines, "\n"))
		}
	}
	return defs
}

// reindent swaps each leading pair of spaces for one unit.
func reindent(line, unit string) string {
	if unit == "" || unit == "  " {
		return line
	}
	rest := line
	depth := 0
	for strings.HasPrefix(rest, "  ") {
		rest = rest[2:]
		depth++
	}
	return strings.Repeat(unit, depth) + rest
}

func hintFor(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}
