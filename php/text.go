package php

import (
	"strings"

	"blockc/block"
	"blockc/gen"
)

var textRules = map[string]gen.Rule{
	"text":              text,
	"text_join":         textJoin,
	"text_append":       textAppend,
	"text_length":       textLength,
	"text_isEmpty":      textIsEmpty,
	"text_indexOf":      textIndexOf,
	"text_charAt":       textCharAt,
	"text_getSubstring": textGetSubstring,
	"text_changeCase":   textChangeCase,
	"text_trim":         textTrim,
	"text_print":        textPrint,
}

func text(c *gen.Compilation, b block.Block) (gen.Result, error) {
	return gen.Expr(quote(b.Field("TEXT")), Atomic), nil
}

// textJoin concatenates the items. A single item is cast so the result is
// always a string.
func textJoin(c *gen.Compilation, b block.Block) (gen.Result, error) {
	switch b.ItemCount() {
	case 0:
		return gen.Expr("''", Atomic), nil
	case 1:
		x, err := c.ValueToCode(b, itemSlot(0), Unary, "''")
		if err != nil {
			return gen.Result{}, err
		}
		return gen.Expr("(string) "+x, Unary), nil
	}
	parts := make([]string, b.ItemCount())
	for n := range parts {
		required := Concat + 1
		if n == 0 {
			required = Concat
		}
		code, err := c.ValueToCode(b, itemSlot(n), required, "''")
		if err != nil {
			return gen.Result{}, err
		}
		parts[n] = code
	}
	return gen.Expr(strings.Join(parts, " . "), Concat), nil
}

func textAppend(c *gen.Compilation, b block.Block) (gen.Result, error) {
	x, err := c.ValueToCode(b, "TEXT", Assignment, "''")
	if err != nil {
		return gen.Result{}, err
	}
	return gen.Stmt(variable(c, b) + " .= " + x + ";\n"), nil
}

func textLength(c *gen.Compilation, b block.Block) (gen.Result, error) {
	args, err := values(c, b, "VALUE", "''")
	if err != nil {
		return gen.Result{}, err
	}
	return call("mb_strlen", append(args, "'UTF-8'")...), nil
}

func textIsEmpty(c *gen.Compilation, b block.Block) (gen.Result, error) {
	x, err := c.ValueToCode(b, "VALUE", Equality+1, "''")
	if err != nil {
		return gen.Result{}, err
	}
	return gen.Expr(x+" === ''", Equality), nil
}

var textSearch = map[string]string{"FIRST": "mb_strpos", "LAST": "mb_strrpos"}

// textIndexOf yields the 1-based position of the first or last occurrence,
// 0 when there is none.
func textIndexOf(c *gen.Compilation, b block.Block) (gen.Result, error) {
	fn, err := choice(b, "END", "FIRST", textSearch)
	if err != nil {
		return gen.Result{}, err
	}
	key := "text-index-of-first"
	if fn == "mb_strrpos" {
		key = "text-index-of-last"
	}
	name := c.Helpers.Provide(key,
		"function "+gen.NamePlaceholder+"($text, $search) {",
		"  $index = "+fn+"($text, $search, 0, 'UTF-8');",
		"  return $index === false ? 0 : $index + 1;",
		"}")
	args, err := values(c, b, "VALUE", "''", "FIND", "''")
	if err != nil {
		return gen.Result{}, err
	}
	return call(name, args...), nil
}

func textCharAt(c *gen.Compilation, b block.Block) (gen.Result, error) {
	where, err := anchor(b, "WHERE", "FROM_START")
	if err != nil {
		return gen.Result{}, err
	}
	s, err := c.Value(b, "VALUE", gen.Expr("''", Atomic))
	if err != nil {
		return gen.Result{}, err
	}
	at, err := c.Value(b, "AT", gen.Expr("1", Atomic))
	if err != nil {
		return gen.Result{}, err
	}
	return c.Plan(textSeq{}, gen.Access{Mode: gen.ModeGet, Anchor: where, Container: s, At: at})
}

func textGetSubstring(c *gen.Compilation, b block.Block) (gen.Result, error) {
	r, err := rangeAccess(c, b, "STRING", "''")
	if err != nil {
		return gen.Result{}, err
	}
	return c.PlanRange(textSeq{}, r)
}

var textCases = map[string]string{
	"UPPERCASE": "MB_CASE_UPPER",
	"LOWERCASE": "MB_CASE_LOWER",
	"TITLECASE": "MB_CASE_TITLE",
}

func textChangeCase(c *gen.Compilation, b block.Block) (gen.Result, error) {
	caseName, err := choice(b, "CASE", "UPPERCASE", textCases)
	if err != nil {
		return gen.Result{}, err
	}
	args, err := values(c, b, "TEXT", "''")
	if err != nil {
		return gen.Result{}, err
	}
	return call("mb_convert_case", args[0], caseName, "'UTF-8'"), nil
}

var textTrims = map[string]string{"LEFT": "ltrim", "RIGHT": "rtrim", "BOTH": "trim"}

func textTrim(c *gen.Compilation, b block.Block) (gen.Result, error) {
	fn, err := choice(b, "MODE", "BOTH", textTrims)
	if err != nil {
		return gen.Result{}, err
	}
	args, err := values(c, b, "TEXT", "''")
	if err != nil {
		return gen.Result{}, err
	}
	return call(fn, args...), nil
}

func textPrint(c *gen.Compilation, b block.Block) (gen.Result, error) {
	x, err := c.ValueToCode(b, "TEXT", None, "''")
	if err != nil {
		return gen.Result{}, err
	}
	return gen.Stmt("echo " + x + ";\n"), nil
}
