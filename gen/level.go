package gen

import (
	"math"
	"strconv"
	"strings"
)

// Level ranks how tightly an expression binds (higher = tighter binding).
type Level int

// Table is a backend's precedence ladder. Besides the grouping tokens it
// names the handful of levels the engine needs when it builds offset
// arithmetic on its own.
type Table struct {
	Open  string // grouping tokens, e.g. "(" and ")"
	Close string

	None     Level // statement top, bracketed index
	Comma    Level // argument lists
	Additive Level // binary + and -
	Unary    Level // prefix minus, negative literals
	Call     Level // function call, member access, indexing
	Atomic   Level // literals and grouped expressions

	Names map[Level]string // for traces and error messages
}

// Wrap returns the code of r, grouped when r binds weaker than required.
// Statement results are returned unchanged.
func (t Table) Wrap(r Result, required Level) string {
	if r.Stmt || r.Level >= required {
		return r.Code
	}
	return t.Open + r.Code + t.Close
}

// Group wraps r for the required level and returns it as a result.
func (t Table) Group(r Result, required Level) Result {
	if r.Stmt || r.Level >= required {
		return r
	}
	return Expr(t.Open+r.Code+t.Close, t.Atomic)
}

// Name returns the registered name of a level.
func (t Table) Name(l Level) string {
	if name, ok := t.Names[l]; ok {
		return name
	}
	return "level" + strconv.Itoa(int(l))
}

// Number renders an integer literal at the level its sign requires.
func (t Table) Number(v int64) Result {
	code := strconv.FormatInt(v, 10)
	if v < 0 {
		return Expr(code, t.Unary)
	}
	return Expr(code, t.Atomic)
}

// Literal renders a numeral as written, so values the float64 range cannot
// hold exactly survive. Leading zeros are dropped, since a leading 0 reads
// as octal in C-like languages, and negative zero loses its sign.
func (t Table) Literal(code string) (Result, bool) {
	v, ok := Numeral(code)
	if !ok {
		return Result{}, false
	}
	s := strings.TrimSpace(code)
	digits := strings.TrimPrefix(s, "-")
	for len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		digits = digits[1:]
	}
	if len(digits) < len(s) && v != 0 {
		return Expr("-"+digits, t.Unary), true
	}
	return Expr(digits, t.Atomic), true
}

// Decrement returns r - 1, folded at generation time when r is an integer
// literal.
func (t Table) Decrement(r Result) Result {
	return t.subtract(r, 1)
}

// subtract returns r - k. The fold happens only when r is an int64 literal
// and the difference does not overflow.
func (t Table) subtract(r Result, k int64) Result {
	if n, ok := Integer(r.Code); ok {
		if (k >= 0 && n >= math.MinInt64+k) || (k < 0 && n <= math.MaxInt64+k) {
			return t.Number(n - k)
		}
	}
	switch {
	case k == 0:
		return r
	case k < 0:
		return Expr(t.Wrap(r, t.Additive)+" + "+strconv.FormatInt(-k, 10), t.Additive)
	default:
		return Expr(t.Wrap(r, t.Additive)+" - "+strconv.FormatInt(k, 10), t.Additive)
	}
}

// Back returns length - 1 - k: the 0-based index of the element k places
// before the last one.
func (t Table) Back(length, k Result) Result {
	if v, ok := Integer(k.Code); ok && v < math.MaxInt64 {
		return t.subtract(length, 1+v)
	}
	return Expr(t.Wrap(length, t.Additive)+" - 1 - "+t.Wrap(k, t.Additive+1), t.Additive)
}

// Numeral reports whether code is a decimal literal such as "3", "-2",
// "1.5" or "1e-7", and returns its value.
func Numeral(code string) (float64, bool) {
	s := strings.TrimSpace(code)
	if !decimal(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Integer reports whether code is a decimal integer literal that fits in
// an int64, and returns its exact value.
func Integer(code string) (int64, bool) {
	s := strings.TrimSpace(code)
	if !decimal(s) || strings.ContainsAny(s, ".eE") {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// decimal matches an optional minus, digits, an optional fraction and an
// optional exponent.
func decimal(s string) bool {
	i := 0
	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i - start
	}
	if i < len(s) && s[i] == '-' {
		i++
	}
	if digits() == 0 {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(s)
}
