package cas

import (
	"fmt"
	"math"
)

// ============================================================
// Solvers
// ============================================================

type SolveResult struct {
	Solutions []Expr
	Error     string
}

// SolveLinear solves a*x + b = 0.
func SolveLinear(a, b *Num) SolveResult {
	if a.IsZero() {
		if b.IsZero() {
			return SolveResult{Error: "identity (0 = 0): infinite solutions"}
		}
		return SolveResult{Error: "no solution (inconsistent)"}
	}
	return SolveResult{Solutions: []Expr{numDiv(numNeg(b), a)}}
}

// SolveQuadratic solves a*x**2 + b*x + c = 0 exactly over the reals. Roots
// are ordered ascending; a double root is reported once.
func SolveQuadratic(a, b, c *Num) SolveResult {
	if a.IsZero() {
		return SolveLinear(b, c)
	}
	disc := numSub(numMul(b, b), numMul(N(4), numMul(a, c)))
	twoA := numMul(N(2), a)
	if disc.IsNegative() {
		re := numDiv(numNeg(b), twoA).Float64()
		im := math.Sqrt(-disc.Float64()) / math.Abs(twoA.Float64())
		return SolveResult{Error: fmt.Sprintf("complex roots: %g ± %gi", re, im)}
	}
	if disc.IsZero() {
		return SolveResult{Solutions: []Expr{numDiv(numNeg(b), twoA)}}
	}
	var root Expr = SqrtOf(disc)
	if r, ok := numSqrt(disc); ok {
		root = r
	}
	inv := numRecip(twoA)
	lo := MulOf(inv, AddOf(numNeg(b), MulOf(N(-1), root)))
	hi := MulOf(inv, AddOf(numNeg(b), root))
	if inv.IsNegative() {
		lo, hi = hi, lo
	}
	return SolveResult{Solutions: []Expr{lo, hi}}
}

// RealRoots returns the real roots of a polynomial of degree at most two,
// ascending. It reports false for higher degrees.
func RealRoots(p []*Num) ([]float64, bool) {
	p = polyTrim(p)
	var res SolveResult
	switch polyDegree(p) {
	case -1, 0:
		return nil, true
	case 1:
		res = SolveLinear(p[1], p[0])
	case 2:
		res = SolveQuadratic(p[2], p[1], p[0])
	default:
		return nil, false
	}
	roots := make([]float64, 0, len(res.Solutions))
	for _, s := range res.Solutions {
		if v, ok := s.Evalf(); ok {
			roots = append(roots, v)
		}
	}
	return roots, true
}
