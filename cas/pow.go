package cas

import "math"

// ============================================================
// Pow: base**exponent
// ============================================================

type Pow struct{ base, exp Expr }

// maxExactPower bounds integer powers of rationals that are folded exactly.
const maxExactPower = 1000

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	en, expIsNum := exp.(*Num)
	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}

	// 0**0 is indeterminate and 0**negative is a pole; both stay unevaluated.
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if expIsNum && en.IsPositive() {
			return N(0)
		}
		return &Pow{base: base, exp: exp}
	}
	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}
	if base.Equal(E) {
		return ExpOf(exp)
	}

	if !expIsNum {
		return &Pow{base: base, exp: exp}
	}
	k, expIsInt := en.Int64()

	switch b := base.(type) {
	case *Num:
		if expIsInt && k >= -maxExactPower && k <= maxExactPower {
			return numPowInt(b, k)
		}
		if en.val.Denom().Cmp(twoInt) == 0 {
			if root, ok := numSqrt(b); ok {
				return PowOf(root, numMul(en, N(2)))
			}
		}
	case *Pow:
		if expIsInt {
			return PowOf(b.base, MulOf(b.exp, exp))
		}
	case *Mul:
		if expIsInt {
			factors := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				factors[i] = PowOf(f, exp)
			}
			return MulOf(factors...)
		}
		if c, rest := b.split(); c.IsPositive() && !c.IsOne() {
			return MulOf(PowOf(c, exp), PowOf(productOf(rest), exp))
		}
	case *Func:
		if b.name == fnExp && expIsInt {
			return ExpOf(MulOf(b.arg, exp))
		}
	}
	return &Pow{base: base, exp: exp}
}

// productOf rebuilds an already simplified factor list without resorting it.
func productOf(factors []Expr) Expr {
	if len(factors) == 1 {
		return factors[0]
	}
	return &Mul{factors: factors}
}

func (p *Pow) String() string {
	if hasNegativeExp(p) {
		return productString(N(1), []Expr{p})
	}
	if isHalf(p.exp) {
		return "sqrt(" + p.base.String() + ")"
	}
	return wrap(p.base, precAtom) + "**" + wrap(p.exp, precAtom)
}

func (p *Pow) LaTeX() string {
	if hasNegativeExp(p) {
		return productLaTeX(N(1), []Expr{p})
	}
	if isHalf(p.exp) {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	return wrapLaTeX(p.base, precAtom) + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		newExp := AddOf(p.exp, N(-1))
		return MulOf(p.exp, PowOf(p.base, newExp), du)
	}
	if !Has(p.base, varName) {
		return MulOf(PowOf(p.base, p.exp), LogOf(p.base), dv)
	}
	logTerm := MulOf(dv, LogOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Evalf() (float64, bool) {
	b, ok1 := p.base.Evalf()
	e, ok2 := p.exp.Evalf()
	if !ok1 || !ok2 {
		return 0, false
	}
	return finite(math.Pow(b, e))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }
