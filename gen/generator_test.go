package gen

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"blockc/block"
	"blockc/trace"

	"github.com/nalgeon/be"
)

func printOf(x *block.Node) *block.Node {
	n := block.New("print")
	if x != nil {
		n.Plug("X", x)
	}
	return n
}

func binary(kind string, a, b *block.Node) *block.Node {
	return block.New(kind).Plug("A", a).Plug("B", b)
}

func compile(t *testing.T, p ...block.Block) string {
	t.Helper()
	out, err := New(toyBackend, Options{}).Compile(p)
	be.Err(t, err, nil)
	return out
}

func TestCompilePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		block *block.Node
		want  string
	}{
		{"grouped left", printOf(binary("mul", binary("add", num("1"), num("2")), num("3"))), "print (1 + 2) * 3;\n"},
		{"tighter left", printOf(binary("add", binary("mul", num("1"), num("2")), num("3"))), "print 1 * 2 + 3;\n"},
		{"right associative grouping", printOf(binary("sub", num("1"), binary("sub", num("2"), num("3")))), "print 1 - (2 - 3);\n"},
		{"left chain", printOf(binary("sub", binary("sub", num("1"), num("2")), num("3"))), "print 1 - 2 - 3;\n"},
		{"negative operand", printOf(binary("mul", num("-2"), num("3"))), "print -2 * 3;\n"},
		{"naked expression", binary("add", num("1"), num("2")), "1 + 2;\n"},
		{"default literal", printOf(nil), "print '';\n"},
		{"default operand", printOf(binary("add", nil, num("2"))), "print 0 + 2;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, compile(t, tt.block), tt.want)
		})
	}
}

func TestCompileStatementChains(t *testing.T) {
	first := printOf(num("1"))
	first.Then(printOf(num("2"))).Then(printOf(num("3")))
	be.Equal(t, compile(t, first), "print 1;\nprint 2;\nprint 3;\n")

	be.Equal(t, compile(t, printOf(num("1")), nil, printOf(num("2"))), "print 1;\nprint 2;\n")
	be.Equal(t, compile(t), "")
}

func TestCompileIndentation(t *testing.T) {
	inner := block.New("loop").Plug("DO", printOf(num("1")))
	inner.Then(printOf(num("2")))
	outer := block.New("loop").Plug("DO", inner)

	be.Equal(t, compile(t, outer),
		"loop {\n"+
			"  loop {\n"+
			"    print 1;\n"+
			"  }\n"+
			"  print 2;\n"+
			"}\n")

	out, err := New(toyBackend, Options{Indent: "\t"}).Compile(block.Program{
		block.New("loop").Plug("DO", printOf(num("1"))),
	})
	be.Err(t, err, nil)
	be.Equal(t, out, "loop {\n\tprint 1;\n}\n")

	out, err = New(toyBackend, Options{Indent: "\t"}).Compile(block.Program{
		access("REMOVE", "RANDOM", ref("l"), nil),
	})
	be.Err(t, err, nil)
	be.Equal(t, out,
		"func random_item(list, remove) {\n"+
			"\treturn pick(list, remove)\n"+
			"}\n"+
			"\n"+
			"random_item(l, true);\n")

	be.Equal(t, compile(t, block.New("loop")), "loop {\n}\n")
}

func TestCompileErrors(t *testing.T) {
	t.Run("unsupported kind", func(t *testing.T) {
		_, err := New(toyBackend, Options{}).Compile(block.Program{
			printOf(block.New("bogus")),
		})
		var uk *UnsupportedKindError
		be.True(t, errors.As(err, &uk))
		be.Equal(t, uk.Kind, "bogus")
		be.Equal(t, uk.Path, "program[0]:print/X:bogus")
		be.True(t, errors.Is(err, ErrFatal))
	})
	t.Run("statement in value slot", func(t *testing.T) {
		_, err := New(toyBackend, Options{}).Compile(block.Program{
			printOf(num("1")),
			printOf(printOf(num("2"))),
		})
		be.Err(t, err, `block "print" at program[1]:print/X:print produces a statement`)
		be.True(t, errors.Is(err, ErrFatal))
	})
	t.Run("bad field", func(t *testing.T) {
		loop := block.New("loop").Plug("DO", printOf(num("x")))
		_, err := New(toyBackend, Options{}).Compile(block.Program{loop})
		be.Err(t, err, `block num: invalid NUM value "x" at program[0]:loop/DO:print/X:num`)
	})
	t.Run("error in chain", func(t *testing.T) {
		first := printOf(num("1"))
		first.Then(block.New("bogus"))
		_, err := New(toyBackend, Options{}).Compile(block.Program{first})
		be.Err(t, err, "unsupported block kind \"bogus\" at program[0].next[1]:bogus")
	})
}

func TestCompileVariables(t *testing.T) {
	t.Run("reserved word", func(t *testing.T) {
		be.Equal(t, compile(t, printOf(ref("len"))), "print len2;\n")
	})
	t.Run("stable names", func(t *testing.T) {
		be.Equal(t, compile(t, printOf(binary("add", ref("x y"), ref("x y")))), "print x_y + x_y;\n")
	})
	t.Run("helper avoids user variable", func(t *testing.T) {
		out := compile(t, access("REMOVE", "RANDOM", ref("random_item"), nil))
		be.Equal(t, out,
			"func random_item2(list, remove) {\n"+
				"  return pick(list, remove)\n"+
				"}\n"+
				"\n"+
				"random_item2(random_item, true);\n")
	})
}

func TestFreshName(t *testing.T) {
	c := New(toyBackend, Options{}).NewCompilation()
	c.declare(block.Program{printOf(binary("add", ref("tmp"), ref("tmp2")))})

	be.Equal(t, c.Helpers.Provide("tmp", "func {@name}() {}"), "tmp3")
	be.Equal(t, c.FreshName("tmp"), "tmp4")
	be.Equal(t, c.FreshName("tmp"), "tmp5")
	be.Equal(t, c.FreshName("len"), "len2")
	be.Equal(t, c.FreshName(""), "my_")

	be.Equal(t, c.Variable("tmp"), "tmp")
	be.Equal(t, c.Variable("tmp2"), "tmp2")
}

func TestCompileRepeatable(t *testing.T) {
	g := New(toyBackend, Options{})
	prog := block.Program{
		access("REMOVE", "RANDOM", ref("L"), nil),
		printOf(access("GET", "FROM_END", ref("L"), ref("k"))),
	}
	want, err := g.Compile(prog)
	be.Err(t, err, nil)

	again, err := g.Compile(prog)
	be.Err(t, err, nil)
	be.Equal(t, again, want)

	var wg sync.WaitGroup
	outs := make([]string, 8)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], _ = g.Compile(prog)
		}(i)
	}
	wg.Wait()
	for _, out := range outs {
		be.Equal(t, out, want)
	}
}

func TestGeneratorRules(t *testing.T) {
	rules := map[string]Rule{"num": toyBackend.Rules["num"]}
	g := New(Backend{Name: "tiny", Table: toyTable, Rules: rules}, Options{})
	rules["print"] = toyBackend.Rules["print"]

	be.Equal(t, g.Backend(), "tiny")
	be.True(t, g.Supports("num"))
	be.True(t, !g.Supports("print"))

	out, err := g.Compile(block.Program{num("7")})
	be.Err(t, err, nil)
	be.Equal(t, out, "7\n")
}

func TestCompileTrace(t *testing.T) {
	var buf bytes.Buffer
	g := New(toyBackend, Options{Tracer: trace.New(true, nil, &buf)})
	_, err := g.Compile(block.Program{printOf(binary("add", num("1"), num("2")))})
	be.Err(t, err, nil)
	be.Equal(t, buf.String(),
		"[TRACE] EMIT print at program[0]:print level=None\n"+
			"[TRACE] EMIT add at program[0]:print/X:add level=None\n"+
			"[TRACE] EMIT num at program[0]:print/X:add/A:num level=None\n"+
			"[TRACE] EMIT num at program[0]:print/X:add/B:num level=None\n"+
			"[TRACE] DONE blocks=1 helpers=0\n")

	buf.Reset()
	g = New(toyBackend, Options{Tracer: trace.New(true, []string{"access"}, &buf)})
	_, err = g.Compile(block.Program{access("REMOVE", "RANDOM", ref("L"), nil)})
	be.Err(t, err, nil)
	be.Equal(t, buf.String(),
		"[TRACE] EMIT access at program[0]:access level=None\n"+
			"[TRACE] PLAN (REMOVE, RANDOM) -> random\n"+
			"[TRACE] HELPER random-item => random_item\n"+
			"[TRACE] DONE blocks=1 helpers=1\n")
}
