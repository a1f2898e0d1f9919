package gen

// Result is the outcome of emitting one block: either an expression with
// the level of its outermost unparenthesized operator, or complete
// statements.
type Result struct {
	Code  string
	Level Level // meaningless when Stmt is set
	Stmt  bool
}

// Expr creates an expression result.
func Expr(code string, level Level) Result {
	return Result{Code: code, Level: level}
}

// Stmt creates a statement result. Code must already be terminated.
func Stmt(code string) Result {
	return Result{Code: code, Stmt: true}
}
