package block

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

const sampleProgram = `
program:
  - kind: variables_set
    fields: {VAR: list}
    inputs:
      VALUE:
        kind: lists_create_with
        inputs:
          ADD0: {kind: math_number, fields: {NUM: 1}}
          ADD2: {kind: text, fields: {TEXT: c}}
    next:
      kind: text_print
      inputs:
        TEXT: {kind: variables_get, fields: {VAR: list}}
  - kind: math_number
    fields: {NUM: 7}
`

func TestParseProgram(t *testing.T) {
	prog, err := Parse([]byte(sampleProgram))
	be.Err(t, err, nil)
	be.Equal(t, len(prog), 2)

	set := prog[0]
	be.Equal(t, set.Kind(), "variables_set")
	be.Equal(t, set.Field("VAR"), "list")

	list := set.Input("VALUE")
	be.True(t, list != nil)
	be.Equal(t, list.Kind(), "lists_create_with")
	// Item count comes from the highest ADD<n> slot, holes included.
	be.Equal(t, list.ItemCount(), 3)
	be.Equal(t, list.Input("ADD0").Field("NUM"), "1")
	be.True(t, list.Input("ADD1") == nil)

	next := set.Next()
	be.True(t, next != nil)
	be.Equal(t, next.Kind(), "text_print")
	be.True(t, next.Next() == nil)
	be.Equal(t, prog[1].Field("NUM"), "7")
}

func TestParseExplicitItems(t *testing.T) {
	prog, err := ParseBlocks([]byte("- {kind: text_join, items: 4}\n"))
	be.Err(t, err, nil)
	be.Equal(t, prog[0].ItemCount(), 4)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing kind", "program:\n  - fields: {A: b}\n", "line 2: block has no kind"},
		{"nested missing kind", "program:\n  - kind: x\n    next:\n      fields: {}\n", "block has no kind"},
		{"negative items", "program:\n  - {kind: text_join, items: -1}\n", "negative item count"},
		{"bad yaml", "program: [", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			be.Err(t, err, tt.want)
		})
	}
}

func TestLoadReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	be.Err(t, os.WriteFile(path, []byte("program:\n  - {}\n"), 0o644), nil)

	_, err := Load(path)
	be.Err(t, err, "broken.yaml")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	be.Err(t, err)
}

func TestWalkOrder(t *testing.T) {
	root := New("a")
	root.Plug("Y", New("y")).Plug("X", New("x").Plug("IN", New("x1")))
	root.Then(New("b"))

	var seen []string
	Walk(Program{root, New("c")}, func(b Block) bool {
		seen = append(seen, b.Kind())
		return true
	})
	be.Equal(t, seen, []string{"a", "x", "x1", "y", "b", "c"})
}

func TestWalkPrune(t *testing.T) {
	root := New("a").Plug("X", New("x").Plug("IN", New("x1")))

	var seen []string
	Walk(Program{root}, func(b Block) bool {
		seen = append(seen, b.Kind())
		return b.Kind() != "x"
	})
	be.Equal(t, seen, []string{"a", "x"})
}

func TestNodeString(t *testing.T) {
	n := New("lists_getIndex").With("MODE", "GET").Plug("VALUE", New("variables_get").With("VAR", "l"))
	be.Equal(t, n.String(), `(lists_getIndex MODE="GET" VALUE:(variables_get VAR="l"))`)
}
