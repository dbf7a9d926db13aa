package cas

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Printing: shared by String and LaTeX
// ============================================================

const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

func precedence(e Expr) int {
	switch v := e.(type) {
	case *Add:
		return precAdd
	case *Mul:
		return precMul
	case *Num:
		if v.IsNegative() || !v.IsInteger() {
			return precMul
		}
	case *Pow:
		if hasNegativeExp(v) {
			return precMul
		}
		if isHalf(v.exp) {
			return precAtom
		}
		return precPow
	}
	return precAtom
}

func hasNegativeExp(p *Pow) bool {
	n, ok := p.exp.(*Num)
	return ok && n.IsNegative()
}

func isHalf(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.Equal(F(1, 2))
}

// powOrBase builds base**exp for printing without simplifying it.
func powOrBase(base Expr, exp *Num) Expr {
	if exp.IsOne() {
		return base
	}
	return &Pow{base: base, exp: exp}
}

// splitFraction sorts factors into numerator and denominator, moving
// negative powers below the line with their sign flipped.
func splitFraction(factors []Expr) (num, den []Expr) {
	for _, f := range factors {
		if p, ok := f.(*Pow); ok && hasNegativeExp(p) {
			den = append(den, powOrBase(p.base, numNeg(p.exp.(*Num))))
			continue
		}
		num = append(num, f)
	}
	return num, den
}

func productString(c *Num, factors []Expr) string {
	sign := ""
	if c.IsNegative() {
		sign = "-"
		c = numNeg(c)
	}
	numF, denF := splitFraction(factors)
	var num, den []string
	if p := c.val.Num(); p.Cmp(oneInt) != 0 || len(numF) == 0 {
		num = append(num, p.String())
	}
	for _, f := range numF {
		num = append(num, wrap(f, precMul))
	}
	if q := c.val.Denom(); q.Cmp(oneInt) != 0 {
		den = append(den, q.String())
	}
	for _, f := range denF {
		den = append(den, wrap(f, precMul))
	}
	s := strings.Join(num, "*")
	if len(den) > 0 {
		d := strings.Join(den, "*")
		if len(den) > 1 {
			d = "(" + d + ")"
		}
		s += "/" + d
	}
	return sign + s
}

func productLaTeX(c *Num, factors []Expr) string {
	sign := ""
	if c.IsNegative() {
		sign = "-"
		c = numNeg(c)
	}
	numF, denF := splitFraction(factors)
	p, q := c.val.Num(), c.val.Denom()
	if len(denF) == 0 && q.Cmp(oneInt) == 0 {
		parts := latexParts(p, numF, true)
		return sign + strings.Join(parts, " ")
	}
	num := latexParts(p, numF, true)
	den := latexParts(q, denF, false)
	return sign + fmt.Sprintf("\\frac{%s}{%s}", strings.Join(num, " "), strings.Join(den, " "))
}

// latexParts renders the integer k (omitted when it is 1 and other factors
// exist) and factors. A lone factor inside \frac needs no parentheses.
func latexParts(k *big.Int, factors []Expr, keepOne bool) []string {
	var parts []string
	if k.Cmp(oneInt) != 0 || (keepOne && len(factors) == 0) {
		parts = append(parts, k.String())
	}
	if len(parts) == 0 && len(factors) == 1 {
		return []string{factors[0].LaTeX()}
	}
	for _, f := range factors {
		parts = append(parts, wrapLaTeX(f, precMul))
	}
	return parts
}

// wrap parenthesizes e when it binds looser than min.
func wrap(e Expr, min int) string {
	if precedence(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func wrapLaTeX(e Expr, min int) string {
	if precedence(e) < min {
		return "\\left(" + e.LaTeX() + "\\right)"
	}
	return e.LaTeX()
}

// signedString prints a sum term without its leading minus sign and
// reports whether it had one.
func signedString(t Expr) (string, bool) {
	switch v := t.(type) {
	case *Num:
		if v.IsNegative() {
			return numNeg(v).String(), true
		}
	case *Mul:
		if c, rest := v.split(); c.IsNegative() {
			return productString(numNeg(c), rest), true
		}
	}
	return t.String(), false
}

func signedLaTeX(t Expr) (string, bool) {
	switch v := t.(type) {
	case *Num:
		if v.IsNegative() {
			return numNeg(v).LaTeX(), true
		}
	case *Mul:
		if c, rest := v.split(); c.IsNegative() {
			return productLaTeX(numNeg(c), rest), true
		}
	}
	return t.LaTeX(), false
}
