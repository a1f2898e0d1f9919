package php

import (
	"strings"

	"blockc/block"
	"blockc/gen"
)

var listRules = map[string]gen.Rule{
	"lists_create_empty": listsCreateEmpty,
	"lists_create_with":  listsCreateWith,
	"lists_repeat":       listsRepeat,
	"lists_length":       listsLength,
	"lists_isEmpty":      listsIsEmpty,
	"lists_indexOf":      listsIndexOf,
	"lists_getIndex":     listsGetIndex,
	"lists_setIndex":     listsSetIndex,
	"lists_getSublist":   listsGetSublist,
}

func listsCreateEmpty(c *gen.Compilation, b block.Block) (gen.Result, error) {
	return gen.Expr("array()", Atomic), nil
}

func listsCreateWith(c *gen.Compilation, b block.Block) (gen.Result, error) {
	items := make([]string, b.ItemCount())
	for n := range items {
		code, err := c.ValueToCode(b, itemSlot(n), Comma, "null")
		if err != nil {
			return gen.Result{}, err
		}
		items[n] = code
	}
	return gen.Expr("array("+strings.Join(items, ", ")+")", Atomic), nil
}

func listsRepeat(c *gen.Compilation, b block.Block) (gen.Result, error) {
	name := c.Helpers.Provide("repeat",
		"function "+gen.NamePlaceholder+"($value, $n) {",
		"  $list = array();",
		"  for ($i = 0; $i < $n; $i++) {",
		"    $list[] = $value;",
		"  }",
		"  return $list;",
		"}")
	args, err := values(c, b, "ITEM", "null", "NUM", "0")
	if err != nil {
		return gen.Result{}, err
	}
	return call(name, args...), nil
}

func listsLength(c *gen.Compilation, b block.Block) (gen.Result, error) {
	args, err := values(c, b, "VALUE", "array()")
	if err != nil {
		return gen.Result{}, err
	}
	return call("count", args...), nil
}

func listsIsEmpty(c *gen.Compilation, b block.Block) (gen.Result, error) {
	args, err := values(c, b, "VALUE", "array()")
	if err != nil {
		return gen.Result{}, err
	}
	return call("empty", args...), nil
}

var listIndexOf = map[string][]string{
	"FIRST": {
		"function " + gen.NamePlaceholder + "($list, $item) {",
		"  $index = array_search($item, $list);",
		"  return $index === false ? 0 : $index + 1;",
		"}",
	},
	"LAST": {
		"function " + gen.NamePlaceholder + "($list, $item) {",
		"  $keys = array_keys($list, $item);",
		"  return count($keys) === 0 ? 0 : end($keys) + 1;",
		"}",
	},
}

// listsIndexOf yields the 1-based position of the first or last match, 0
// when there is none.
func listsIndexOf(c *gen.Compilation, b block.Block) (gen.Result, error) {
	end, err := choice(b, "END", "FIRST", map[string]string{"FIRST": "FIRST", "LAST": "LAST"})
	if err != nil {
		return gen.Result{}, err
	}
	name := c.Helpers.Provide("list-index-of-"+strings.ToLower(end), listIndexOf[end]...)
	args, err := values(c, b, "VALUE", "array()", "FIND", "null")
	if err != nil {
		return gen.Result{}, err
	}
	return call(name, args...), nil
}

func listsGetIndex(c *gen.Compilation, b block.Block) (gen.Result, error) {
	m, err := mode(b, "GET", gen.ModeGet, gen.ModeGetRemove, gen.ModeRemove)
	if err != nil {
		return gen.Result{}, err
	}
	a, err := listAccess(c, b, m, "VALUE")
	if err != nil {
		return gen.Result{}, err
	}
	return c.Plan(listSeq{}, a)
}

func listsSetIndex(c *gen.Compilation, b block.Block) (gen.Result, error) {
	m, err := mode(b, "SET", gen.ModeSet, gen.ModeInsert)
	if err != nil {
		return gen.Result{}, err
	}
	a, err := listAccess(c, b, m, "LIST")
	if err != nil {
		return gen.Result{}, err
	}
	if a.Value, err = c.Value(b, "TO", gen.Expr("null", Atomic)); err != nil {
		return gen.Result{}, err
	}
	return c.Plan(listSeq{}, a)
}

func listAccess(c *gen.Compilation, b block.Block, m gen.Mode, listSlot string) (gen.Access, error) {
	where, err := anchor(b, "WHERE", "FROM_START")
	if err != nil {
		return gen.Access{}, err
	}
	list, err := c.Value(b, listSlot, gen.Expr("array()", Atomic))
	if err != nil {
		return gen.Access{}, err
	}
	at, err := c.Value(b, "AT", gen.Expr("1", Atomic))
	if err != nil {
		return gen.Access{}, err
	}
	return gen.Access{Mode: m, Anchor: where, Container: list, At: at}, nil
}

func listsGetSublist(c *gen.Compilation, b block.Block) (gen.Result, error) {
	r, err := rangeAccess(c, b, "LIST", "array()")
	if err != nil {
		return gen.Result{}, err
	}
	return c.PlanRange(listSeq{}, r)
}

// rangeAccess reads the WHERE1/AT1 .. WHERE2/AT2 bounds shared by sublist
// and substring blocks.
func rangeAccess(c *gen.Compilation, b block.Block, slot, def string) (gen.Range, error) {
	from, err := anchor(b, "WHERE1", "FROM_START")
	if err != nil {
		return gen.Range{}, err
	}
	to, err := anchor(b, "WHERE2", "FROM_START")
	if err != nil {
		return gen.Range{}, err
	}
	seq, err := c.Value(b, slot, gen.Expr(def, Atomic))
	if err != nil {
		return gen.Range{}, err
	}
	r := gen.Range{Container: seq, From: from, To: to}
	if r.FromAt, err = c.Value(b, "AT1", gen.Expr("1", Atomic)); err != nil {
		return gen.Range{}, err
	}
	if r.ToAt, err = c.Value(b, "AT2", gen.Expr("1", Atomic)); err != nil {
		return gen.Range{}, err
	}
	return r, nil
}
