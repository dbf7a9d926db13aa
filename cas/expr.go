// Package cas is a small exact-arithmetic computer algebra kernel for real
// functions of one variable.
//
//   - Exact rational arithmetic (math/big.Rat)
//   - Deterministic simplification and stable, re-parseable output
//   - Derivatives and rule-based antiderivatives
//   - LaTeX and JSON forms for tool responses
package cas

import "math"

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Evalf() (float64, bool)
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

func DiffN(expr Expr, varName string, n int) Expr {
	result := expr
	for i := 0; i < n; i++ {
		result = Diff(result, varName)
	}
	return result
}

// Evalf evaluates a closed expression in float64. It reports false when the
// expression still has free symbols or its value is not a finite real.
func Evalf(e Expr) (float64, bool) { return e.Evalf() }

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.Equal(N(v))
}

func isZero(e Expr) bool { return isNumEqual(e, 0) }
