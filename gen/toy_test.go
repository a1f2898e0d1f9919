package gen

import (
	"blockc/block"
)

// A toy backend: just enough syntax to exercise the engine.
const (
	toyNone Level = iota
	toyComma
	toyAdditive
	toyMultiply
	toyUnary
	toyCall
	toyAtomic
)

var toyTable = Table{
	Open: "(", Close: ")",
	None: toyNone, Comma: toyComma, Additive: toyAdditive,
	Unary: toyUnary, Call: toyCall, Atomic: toyAtomic,
	Names: map[Level]string{
		toyNone: "None", toyComma: "Comma", toyAdditive: "Additive",
		toyMultiply: "Multiply", toyUnary: "Unary", toyCall: "Call", toyAtomic: "Atomic",
	},
}

// toySeq renders list access as seq[i], len(seq), and helper calls.
type toySeq struct{}

func (toySeq) length(seq Result) Result {
	return Expr("len("+toyTable.Wrap(seq, toyComma)+")", toyCall)
}

func (s toySeq) Item(seq Result, at Position) Result {
	idx := at.Index(toyTable, s.length(seq))
	return Expr(toyTable.Wrap(seq, toyCall)+"["+toyTable.Wrap(idx, toyNone)+"]", toyCall)
}

func (s toySeq) Take(seq Result, at Position) Result {
	idx := at.Index(toyTable, s.length(seq))
	return Expr("take("+toyTable.Wrap(seq, toyComma)+", "+toyTable.Wrap(idx, toyComma)+")", toyCall)
}

func (s toySeq) Drop(seq Result, at Position) Result {
	return Stmt(s.Take(seq, at).Code + ";\n")
}

func (s toySeq) Store(seq Result, at Position, value Result) Result {
	return Stmt(s.Item(seq, at).Code + " = " + toyTable.Wrap(value, toyComma) + ";\n")
}

func (s toySeq) Insert(seq Result, at Position, value Result) Result {
	idx := at.Index(toyTable, s.length(seq))
	return Stmt("insert(" + toyTable.Wrap(seq, toyComma) + ", " + toyTable.Wrap(idx, toyComma) + ", " + toyTable.Wrap(value, toyComma) + ");\n")
}

func (toySeq) Random(c *Compilation, a Access) (Result, error) {
	name := c.Helpers.Provide("random-item",
		"func "+NamePlaceholder+"(list, remove) {",
		"  return pick(list, remove)",
		"}")
	remove := "false"
	if a.Mode != ModeGet {
		remove = "true"
	}
	call := name + "(" + toyTable.Wrap(a.Container, toyComma) + ", " + remove + ")"
	if a.Mode == ModeRemove {
		return Stmt(call + ";\n"), nil
	}
	return Expr(call, toyCall), nil
}

func (toySeq) Slice(c *Compilation, seq Result, from, to Position) (Result, error) {
	name := c.Helpers.Provide("sublist", "func "+NamePlaceholder+"(l, a, b) {}")
	return Expr(name+"("+toyTable.Wrap(seq, toyComma)+", "+from.Anchor.String()+", "+
		toyTable.Wrap(from.Offset, toyComma)+", "+to.Anchor.String()+", "+toyTable.Wrap(to.Offset, toyComma)+")", toyCall), nil
}

// toyText can only be read.
type toyText struct{}

func (toyText) Item(seq Result, at Position) Result {
	return Expr("char("+toyTable.Wrap(seq, toyComma)+")", toyCall)
}

func toyAccess(c *Compilation, b block.Block) (Access, error) {
	mode, ok := ParseMode(b.Field("MODE"))
	if !ok {
		return Access{}, &FieldError{Kind: b.Kind(), Field: "MODE", Value: b.Field("MODE")}
	}
	where, ok := ParseAnchor(b.Field("WHERE"))
	if !ok {
		return Access{}, &FieldError{Kind: b.Kind(), Field: "WHERE", Value: b.Field("WHERE")}
	}
	list, err := c.Value(b, "LIST", Expr("[]", toyAtomic))
	if err != nil {
		return Access{}, err
	}
	at, err := c.Value(b, "AT", Expr("1", toyAtomic))
	if err != nil {
		return Access{}, err
	}
	value, err := c.Value(b, "TO", Expr("nil", toyAtomic))
	if err != nil {
		return Access{}, err
	}
	return Access{Mode: mode, Anchor: where, Container: list, At: at, Value: value}, nil
}

func toyBinary(op string, level Level) Rule {
	return func(c *Compilation, b block.Block) (Result, error) {
		left, err := c.ValueToCode(b, "A", level, "0")
		if err != nil {
			return Result{}, err
		}
		right, err := c.ValueToCode(b, "B", level+1, "0")
		if err != nil {
			return Result{}, err
		}
		return Expr(left+" "+op+" "+right, level), nil
	}
}

var toyBackend = Backend{
	Name:          "toy",
	Table:         toyTable,
	Reserved:      []string{"len", "take", "print"},
	VariableField: "VAR",
	Naked:         func(code string) string { return code + ";\n" },
	Rules: map[string]Rule{
		"num": func(c *Compilation, b block.Block) (Result, error) {
			res, ok := c.Table().Literal(b.Field("NUM"))
			if !ok {
				return Result{}, &FieldError{Kind: b.Kind(), Field: "NUM", Value: b.Field("NUM")}
			}
			return res, nil
		},
		"var": func(c *Compilation, b block.Block) (Result, error) {
			return Expr(c.Variable(b.Field("VAR")), toyAtomic), nil
		},
		"add": toyBinary("+", toyAdditive),
		"sub": toyBinary("-", toyAdditive),
		"mul": toyBinary("*", toyMultiply),
		"neg": func(c *Compilation, b block.Block) (Result, error) {
			x, err := c.ValueToCode(b, "X", toyUnary, "0")
			if err != nil {
				return Result{}, err
			}
			return Expr("-"+x, toyUnary), nil
		},
		"print": func(c *Compilation, b block.Block) (Result, error) {
			x, err := c.ValueToCode(b, "X", toyNone, "''")
			if err != nil {
				return Result{}, err
			}
			return Stmt("print " + x + ";\n"), nil
		},
		"loop": func(c *Compilation, b block.Block) (Result, error) {
			body, err := c.StatementToCode(b, "DO")
			if err != nil {
				return Result{}, err
			}
			return Stmt("loop {\n" + body + "}\n"), nil
		},
		"access": func(c *Compilation, b block.Block) (Result, error) {
			a, err := toyAccess(c, b)
			if err != nil {
				return Result{}, err
			}
			return c.Plan(toySeq{}, a)
		},
		"char": func(c *Compilation, b block.Block) (Result, error) {
			a, err := toyAccess(c, b)
			if err != nil {
				return Result{}, err
			}
			return c.Plan(toyText{}, a)
		},
		"sublist": func(c *Compilation, b block.Block) (Result, error) {
			from, _ := ParseAnchor(b.Field("WHERE1"))
			to, _ := ParseAnchor(b.Field("WHERE2"))
			list, err := c.Value(b, "LIST", Expr("[]", toyAtomic))
			if err != nil {
				return Result{}, err
			}
			at1, err := c.Value(b, "AT1", Expr("1", toyAtomic))
			if err != nil {
				return Result{}, err
			}
			at2, err := c.Value(b, "AT2", Expr("1", toyAtomic))
			if err != nil {
				return Result{}, err
			}
			return c.PlanRange(toySeq{}, Range{Container: list, From: from, FromAt: at1, To: to, ToAt: at2})
		},
	},
}

func num(v string) *block.Node {
	return block.New("num").With("NUM", v)
}

func ref(name string) *block.Node {
	return block.New("var").With("VAR", name)
}

func access(mode, where string, list, at *block.Node) *block.Node {
	n := block.New("access").With("MODE", mode).With("WHERE", where).Plug("LIST", list)
	if at != nil {
		n.Plug("AT", at)
	}
	return n
}
