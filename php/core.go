package php

import (
	"strconv"
	"strings"

	"blockc/block"
	"blockc/gen"
)

var coreRules = map[string]gen.Rule{
	"math_number":      mathNumber,
	"math_arithmetic":  mathArithmetic,
	"logic_boolean":    logicBoolean,
	"logic_null":       logicNull,
	"logic_compare":    logicCompare,
	"logic_operation":  logicOperation,
	"logic_negate":     logicNegate,
	"variables_get":    variablesGet,
	"variables_set":    variablesSet,
	"controls_if":      controlsIf,
	"controls_forEach": controlsForEach,
}

func mathNumber(c *gen.Compilation, b block.Block) (gen.Result, error) {
	res, ok := Table.Literal(b.Field("NUM"))
	if !ok {
		return gen.Result{}, &gen.FieldError{Kind: b.Kind(), Field: "NUM", Value: b.Field("NUM")}
	}
	return res, nil
}

type operator struct {
	token string
	level gen.Level
	right bool // right-associative
	chain bool // an operand at the same level may stay ungrouped
}

var arithmetic = map[string]operator{
	"ADD":      {token: "+", level: Additive, chain: true},
	"MINUS":    {token: "-", level: Additive, chain: true},
	"MULTIPLY": {token: "*", level: Multiplicative, chain: true},
	"DIVIDE":   {token: "/", level: Multiplicative, chain: true},
	"POWER":    {token: "**", level: Exponent, right: true, chain: true},
}

var comparison = map[string]operator{
	"EQ":  {token: "==", level: Equality},
	"NEQ": {token: "!=", level: Equality},
	"LT":  {token: "<", level: Relational},
	"LTE": {token: "<=", level: Relational},
	"GT":  {token: ">", level: Relational},
	"GTE": {token: ">=", level: Relational},
}

var logical = map[string]operator{
	"AND": {token: "&&", level: LogicalAnd, chain: true},
	"OR":  {token: "||", level: LogicalOr, chain: true},
}

// binary emits A op B. Only the operand on the associative side may sit at
// the operator's own level; PHP comparisons do not chain at all.
func binary(ops map[string]operator, def string) gen.Rule {
	return func(c *gen.Compilation, b block.Block) (gen.Result, error) {
		op, ok := ops[b.Field("OP")]
		if !ok {
			return gen.Result{}, &gen.FieldError{Kind: b.Kind(), Field: "OP", Value: b.Field("OP")}
		}
		left, right := op.level+1, op.level+1
		if op.chain && op.right {
			right = op.level
		} else if op.chain {
			left = op.level
		}
		a, err := c.ValueToCode(b, "A", left, def)
		if err != nil {
			return gen.Result{}, err
		}
		z, err := c.ValueToCode(b, "B", right, def)
		if err != nil {
			return gen.Result{}, err
		}
		return gen.Expr(a+" "+op.token+" "+z, op.level), nil
	}
}

var (
	mathArithmetic = binary(arithmetic, "0")
	logicCompare   = binary(comparison, "0")
	logicOperation = binary(logical, "false")
)

func logicBoolean(c *gen.Compilation, b block.Block) (gen.Result, error) {
	code, err := choice(b, "BOOL", "TRUE", map[string]string{"TRUE": "true", "FALSE": "false"})
	if err != nil {
		return gen.Result{}, err
	}
	return gen.Expr(code, Atomic), nil
}

func logicNull(c *gen.Compilation, b block.Block) (gen.Result, error) {
	return gen.Expr("null", Atomic), nil
}

func logicNegate(c *gen.Compilation, b block.Block) (gen.Result, error) {
	x, err := c.ValueToCode(b, "BOOL", LogicalNot, "true")
	if err != nil {
		return gen.Result{}, err
	}
	return gen.Expr("!"+x, LogicalNot), nil
}

func variable(c *gen.Compilation, b block.Block) string {
	return "$" + c.Variable(b.Field("VAR"))
}

func variablesGet(c *gen.Compilation, b block.Block) (gen.Result, error) {
	return gen.Expr(variable(c, b), Atomic), nil
}

func variablesSet(c *gen.Compilation, b block.Block) (gen.Result, error) {
	v, err := c.ValueToCode(b, "VALUE", Assignment, "null")
	if err != nil {
		return gen.Result{}, err
	}
	return gen.Stmt(variable(c, b) + " = " + v + ";\n"), nil
}

// controlsIf emits IF0/DO0, IF1/DO1, ... as an if/elseif chain and ELSE as
// the final branch.
func controlsIf(c *gen.Compilation, b block.Block) (gen.Result, error) {
	var sb strings.Builder
	for n := 0; n == 0 || b.Input("IF"+strconv.Itoa(n)) != nil || b.Input("DO"+strconv.Itoa(n)) != nil; n++ {
		cond, err := c.ValueToCode(b, "IF"+strconv.Itoa(n), None, "false")
		if err != nil {
			return gen.Result{}, err
		}
		body, err := c.StatementToCode(b, "DO"+strconv.Itoa(n))
		if err != nil {
			return gen.Result{}, err
		}
		if n == 0 {
			sb.WriteString("if (" + cond + ") {\n" + body)
		} else {
			sb.WriteString("} elseif (" + cond + ") {\n" + body)
		}
	}
	if b.Input("ELSE") != nil {
		body, err := c.StatementToCode(b, "ELSE")
		if err != nil {
			return gen.Result{}, err
		}
		sb.WriteString("} else {\n" + body)
	}
	sb.WriteString("}\n")
	return gen.Stmt(sb.String()), nil
}

func controlsForEach(c *gen.Compilation, b block.Block) (gen.Result, error) {
	list, err := c.ValueToCode(b, "LIST", None, "array()")
	if err != nil {
		return gen.Result{}, err
	}
	body, err := c.StatementToCode(b, "DO")
	if err != nil {
		return gen.Result{}, err
	}
	return gen.Stmt("foreach (" + list + " as " + variable(c, b) + ") {\n" + body + "}\n"), nil
}
