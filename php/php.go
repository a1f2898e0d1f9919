// Package php is the PHP backend: its precedence ladder, reserved words,
// container syntaxes and one emission rule per supported block kind.
package php

import (
	"blockc/gen"
)

// Precedence levels, weakest first, following the PHP 8 operator table.
const (
	None gen.Level = iota
	Comma
	Assignment
	Conditional
	Coalesce
	LogicalOr
	LogicalAnd
	BitwiseOr
	BitwiseXor
	BitwiseAnd
	Equality
	Relational
	Concat
	Shift
	Additive
	Multiplicative
	LogicalNot
	Instanceof
	Unary // casts, prefix minus, negative literals
	Exponent
	Call // calls, indexing
	Atomic
)

// Table is the PHP precedence table.
var Table = gen.Table{
	Open:     "(",
	Close:    ")",
	None:     None,
	Comma:    Comma,
	Additive: Additive,
	Unary:    Unary,
	Call:     Call,
	Atomic:   Atomic,
	Names: map[gen.Level]string{
		None:           "None",
		Comma:          "Comma",
		Assignment:     "Assignment",
		Conditional:    "Conditional",
		Coalesce:       "Coalesce",
		LogicalOr:      "LogicalOr",
		LogicalAnd:     "LogicalAnd",
		BitwiseOr:      "BitwiseOr",
		BitwiseXor:     "BitwiseXor",
		BitwiseAnd:     "BitwiseAnd",
		Equality:       "Equality",
		Relational:     "Relational",
		Concat:         "Concat",
		Shift:          "Shift",
		Additive:       "Additive",
		Multiplicative: "Multiplicative",
		LogicalNot:     "LogicalNot",
		Instanceof:     "Instanceof",
		Unary:          "Unary",
		Exponent:       "Exponent",
		Call:           "Call",
		Atomic:         "Atomic",
	},
}

// OpenTag starts a PHP file.
const OpenTag = "<?php\n"

// Reserved holds the PHP keywords, the superglobals and every builtin the
// templates call. Neither variables nor helpers may take these names.
var Reserved = []string{
	// keywords
	"__halt_compiler", "abstract", "and", "array", "as", "break", "callable",
	"case", "catch", "class", "clone", "const", "continue", "declare",
	"default", "die", "do", "echo", "else", "elseif", "empty", "enddeclare",
	"endfor", "endforeach", "endif", "endswitch", "endwhile", "enum", "eval",
	"exit", "extends", "false", "final", "finally", "fn", "for", "foreach",
	"function", "global", "goto", "if", "implements", "include",
	"include_once", "instanceof", "insteadof", "interface", "isset", "list",
	"match", "namespace", "new", "null", "or", "parent", "print", "private",
	"protected", "public", "readonly", "require", "require_once", "return",
	"self", "static", "switch", "this", "throw", "trait", "true", "try",
	"unset", "use", "var", "while", "xor", "yield",
	// superglobals
	"GLOBALS", "_SERVER", "_GET", "_POST", "_FILES", "_COOKIE", "_SESSION",
	"_REQUEST", "_ENV",
	// builtins
	"array_keys", "array_pop", "array_rand", "array_search", "array_shift",
	"array_slice", "array_splice", "array_unshift", "count", "end", "ltrim",
	"max", "mb_convert_case", "mb_strlen", "mb_strpos", "mb_strrpos",
	"mb_substr", "mt_rand", "rtrim", "trim",
}

// Backend returns the PHP backend with a fresh rule table.
func Backend() gen.Backend {
	rules := make(map[string]gen.Rule)
	for _, set := range []map[string]gen.Rule{coreRules, listRules, textRules} {
		for kind, rule := range set {
			rules[kind] = rule
		}
	}
	return gen.Backend{
		Name:          "php",
		Table:         Table,
		Rules:         rules,
		Reserved:      Reserved,
		VariableField: "VAR",
		Naked:         func(code string) string { return code + ";\n" },
	}
}

// New returns a generator for PHP.
func New(opts gen.Options) *gen.Generator {
	return gen.New(Backend(), opts)
}
