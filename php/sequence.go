package php

import (
	"strconv"

	"blockc/gen"
)

// listSeq is the syntax of PHP arrays used as lists.
type listSeq struct{}

func (listSeq) length(seq gen.Result) gen.Result {
	return call("count", arg(seq))
}

func (s listSeq) index(seq gen.Result, at gen.Position) gen.Result {
	return at.Index(Table, s.length(seq))
}

func (s listSeq) Item(seq gen.Result, at gen.Position) gen.Result {
	idx := s.index(seq, at)
	return gen.Expr(Table.Wrap(seq, Call)+"["+Table.Wrap(idx, None)+"]", Call)
}

func (s listSeq) Take(seq gen.Result, at gen.Position) gen.Result {
	switch at.Anchor {
	case gen.AnchorFirst:
		return call("array_shift", arg(seq))
	case gen.AnchorLast:
		return call("array_pop", arg(seq))
	}
	splice := call("array_splice", arg(seq), arg(s.index(seq, at)), "1")
	return gen.Expr(splice.Code+"[0]", Call)
}

func (s listSeq) Drop(seq gen.Result, at gen.Position) gen.Result {
	switch at.Anchor {
	case gen.AnchorFirst, gen.AnchorLast:
		return gen.Stmt(s.Take(seq, at).Code + ";\n")
	}
	return gen.Stmt(call("array_splice", arg(seq), arg(s.index(seq, at)), "1").Code + ";\n")
}

func (s listSeq) Store(seq gen.Result, at gen.Position, value gen.Result) gen.Result {
	return gen.Stmt(s.Item(seq, at).Code + " = " + Table.Wrap(value, Assignment) + ";\n")
}

func (s listSeq) Insert(seq gen.Result, at gen.Position, value gen.Result) gen.Result {
	switch at.Anchor {
	case gen.AnchorFirst:
		return gen.Stmt(call("array_unshift", arg(seq), arg(value)).Code + ";\n")
	case gen.AnchorLast:
		return gen.Stmt(Table.Wrap(seq, Call) + "[] = " + Table.Wrap(value, Assignment) + ";\n")
	}
	return gen.Stmt(call("array_splice", arg(seq), arg(s.index(seq, at)), "0", call("array", arg(value)).Code).Code + ";\n")
}

// Random goes through a helper taking the list by reference, so the list
// expression is evaluated once and removals reach the caller's array.
func (listSeq) Random(c *gen.Compilation, a gen.Access) (gen.Result, error) {
	list := arg(a.Container)
	switch a.Mode {
	case gen.ModeGet:
		name := c.Helpers.Provide("random-get",
			"function "+gen.NamePlaceholder+"($list) {",
			"  return $list[array_rand($list)];",
			"}")
		return call(name, list), nil
	case gen.ModeSet:
		name := c.Helpers.Provide("random-set",
			"function "+gen.NamePlaceholder+"(&$list, $value) {",
			"  $list[array_rand($list)] = $value;",
			"}")
		return gen.Stmt(call(name, list, arg(a.Value)).Code + ";\n"), nil
	case gen.ModeInsert:
		name := c.Helpers.Provide("random-insert",
			"function "+gen.NamePlaceholder+"(&$list, $value) {",
			"  array_splice($list, mt_rand(0, count($list)), 0, array($value));",
			"}")
		return gen.Stmt(call(name, list, arg(a.Value)).Code + ";\n"), nil
	}
	name := c.Helpers.Provide("random-item",
		"function "+gen.NamePlaceholder+"(&$list) {",
		"  return array_splice($list, array_rand($list), 1)[0];",
		"}")
	if a.Mode == gen.ModeRemove {
		return gen.Stmt(call(name, list).Code + ";\n"), nil
	}
	return call(name, list), nil
}

func (listSeq) Slice(c *gen.Compilation, seq gen.Result, from, to gen.Position) (gen.Result, error) {
	name, err := c.Helpers.ProvideFunc("sublist", func(self string) ([]string, error) {
		pos := position(c)
		return []string{
			"function " + self + "($list, $where1, $at1, $where2, $at2) {",
			"  $start = " + pos + "(count($list), $where1, $at1);",
			"  $end = " + pos + "(count($list), $where2, $at2);",
			"  return array_slice($list, $start, max(0, $end - $start + 1));",
			"}",
		}, nil
	})
	if err != nil {
		return gen.Result{}, err
	}
	return call(name, rangeArgs(seq, from, to)...), nil
}

// textSeq is the syntax of multibyte PHP strings. Strings are values, so
// text offers reads only.
type textSeq struct{}

// Item reads one character. Offsets from the end become negative starts,
// which mb_substr counts from the end, so the text is evaluated once.
func (textSeq) Item(seq gen.Result, at gen.Position) gen.Result {
	start := at.Offset
	if at.FromEnd {
		if v, ok := at.Literal(); ok {
			start = Table.Number(-1 - v)
		} else {
			start = gen.Expr("-1 - "+Table.Wrap(at.Offset, Additive+1), Additive)
		}
	}
	return call("mb_substr", arg(seq), arg(start), "1", "'UTF-8'")
}

func (textSeq) Random(c *gen.Compilation, a gen.Access) (gen.Result, error) {
	if a.Mode != gen.ModeGet {
		return gen.Result{}, &gen.AccessError{Mode: a.Mode, Anchor: a.Anchor, Container: "text"}
	}
	name := c.Helpers.Provide("random-letter",
		"function "+gen.NamePlaceholder+"($text) {",
		"  return mb_substr($text, mt_rand(0, mb_strlen($text, 'UTF-8') - 1), 1, 'UTF-8');",
		"}")
	return call(name, arg(a.Container)), nil
}

func (textSeq) Slice(c *gen.Compilation, seq gen.Result, from, to gen.Position) (gen.Result, error) {
	name, err := c.Helpers.ProvideFunc("substring", func(self string) ([]string, error) {
		pos := position(c)
		return []string{
			"function " + self + "($text, $where1, $at1, $where2, $at2) {",
			"  $length = mb_strlen($text, 'UTF-8');",
			"  $start = " + pos + "($length, $where1, $at1);",
			"  $end = " + pos + "($length, $where2, $at2);",
			"  return mb_substr($text, $start, max(0, $end - $start + 1), 'UTF-8');",
			"}",
		}, nil
	})
	if err != nil {
		return gen.Result{}, err
	}
	return call(name, rangeArgs(seq, from, to)...), nil
}

// position resolves an anchor and its 0-based offset against a length at
// run time.
func position(c *gen.Compilation) string {
	return c.Helpers.Provide("position",
		"function "+gen.NamePlaceholder+"($length, $where, $at) {",
		"  switch ($where) {",
		"    case 'FIRST':",
		"      return 0;",
		"    case 'LAST':",
		"      return $length - 1;",
		"    case 'FROM_END':",
		"      return $length - 1 - $at;",
		"  }",
		"  return $at;",
		"}")
}

func rangeArgs(seq gen.Result, from, to gen.Position) []string {
	return []string{
		arg(seq),
		quote(from.Anchor.String()), arg(from.Offset),
		quote(to.Anchor.String()), arg(to.Offset),
	}
}

// itemSlot names the n-th repeated input.
func itemSlot(n int) string {
	return "ADD" + strconv.Itoa(n)
}
