// Package names allocates collision-free identifiers for one compilation.
package names

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Registry hands out identifiers. Every name it returns, whether for a user
// variable or a fresh temporary, is distinct from every other name it has
// returned and from the reserved words.
type Registry struct {
	taken     map[string]bool
	variables map[string]string
}

// NewRegistry creates a registry with the given reserved words.
func NewRegistry(reserved ...string) *Registry {
	r := &Registry{
		taken:     make(map[string]bool),
		variables: make(map[string]string),
	}
	r.Reserve(reserved...)
	return r
}

// Reserve marks words as unavailable.
func (r *Registry) Reserve(words ...string) {
	for _, w := range words {
		r.taken[strings.ToLower(w)] = true
	}
}

// Has reports whether name is reserved or already handed out.
func (r *Registry) Has(name string) bool {
	return r.taken[strings.ToLower(name)]
}

// Variable returns the identifier for a user variable. The same user name
// always maps to the same identifier.
func (r *Registry) Variable(userName string) string {
	if name, ok := r.variables[userName]; ok {
		return name
	}
	name := r.Allocate(userName)
	r.variables[userName] = name
	return name
}

// Allocate returns a fresh identifier derived from hint: the sanitized hint
// itself if free, otherwise the hint with the smallest numeric suffix
// (starting at 2) that is free.
func (r *Registry) Allocate(hint string) string {
	base := SafeName(hint)
	name := base
	for i := 2; r.Has(name); i++ {
		name = base + strconv.Itoa(i)
	}
	r.taken[strings.ToLower(name)] = true
	return name
}

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SafeName turns arbitrary text into an ASCII identifier. Accented letters
// lose their accents, anything else outside [A-Za-z0-9_] becomes '_', and a
// name that is empty or starts with a digit gets a "my_" prefix.
func SafeName(s string) string {
	if plain, _, err := transform.String(stripMarks, s); err == nil {
		s = plain
	}

	var sb strings.Builder
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			sb.WriteRune(c)
		default:
			sb.WriteByte('_')
		}
	}
	name := sb.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "my_" + name
	}
	return name
}
