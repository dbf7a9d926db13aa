package cas

// ============================================================
// Polynomial utilities
// ============================================================

// Polynomials are coefficient slices ordered from the constant term up, with
// no trailing zeros. The zero polynomial is the empty slice.

// PolyCoeffs returns the rational coefficients of e as a polynomial in
// varName. It reports false when e is not a polynomial with rational
// coefficients.
func PolyCoeffs(e Expr, varName string) ([]*Num, bool) {
	var coeffs []*Num
	for _, t := range addTerms(Expand(e)) {
		c, deg, ok := monomial(t, varName)
		if !ok {
			return nil, false
		}
		for len(coeffs) <= deg {
			coeffs = append(coeffs, N(0))
		}
		coeffs[deg] = numAdd(coeffs[deg], c)
	}
	return polyTrim(coeffs), true
}

func monomial(t Expr, varName string) (*Num, int, bool) {
	switch v := t.(type) {
	case *Num:
		return v, 0, true
	case *Sym:
		if v.name == varName {
			return N(1), 1, true
		}
	case *Pow:
		if s, ok := v.base.(*Sym); ok && s.name == varName {
			if n, ok := v.exp.(*Num); ok {
				if k, isInt := n.Int64(); isInt && k > 0 && k <= maxPolyDegree {
					return N(1), int(k), true
				}
			}
		}
	case *Mul:
		c := N(1)
		deg := 0
		for _, f := range v.factors {
			fc, fd, ok := monomial(f, varName)
			if !ok {
				return nil, 0, false
			}
			c = numMul(c, fc)
			deg += fd
		}
		return c, deg, true
	}
	return nil, 0, false
}

const maxPolyDegree = 64

func polyTrim(p []*Num) []*Num {
	for len(p) > 0 && p[len(p)-1].IsZero() {
		p = p[:len(p)-1]
	}
	return p
}

func polyDegree(p []*Num) int { return len(p) - 1 }

// polyExpr rebuilds the polynomial as an expression in varName.
func polyExpr(p []*Num, varName string) Expr {
	terms := make([]Expr, 0, len(p))
	x := S(varName)
	for k, c := range p {
		if c.IsZero() {
			continue
		}
		terms = append(terms, MulOf(c, PowOf(x, N(int64(k)))))
	}
	return AddOf(terms...)
}

func polyMul(a, b []*Num) []*Num {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]*Num, len(a)+len(b)-1)
	for i := range out {
		out[i] = N(0)
	}
	for i, ai := range a {
		for j, bj := range b {
			out[i+j] = numAdd(out[i+j], numMul(ai, bj))
		}
	}
	return polyTrim(out)
}

func polyPow(p []*Num, k int) []*Num {
	out := []*Num{N(1)}
	for i := 0; i < k; i++ {
		out = polyMul(out, p)
	}
	return out
}

// polyDivMod divides a by a non-zero b.
func polyDivMod(a, b []*Num) (q, r []*Num) {
	r = append([]*Num(nil), a...)
	db := polyDegree(b)
	lead := b[db]
	if len(r)-1 < db {
		return nil, polyTrim(r)
	}
	q = make([]*Num, len(r)-db)
	for i := range q {
		q[i] = N(0)
	}
	for len(r)-1 >= db && len(r) > 0 {
		shift := len(r) - 1 - db
		c := numDiv(r[len(r)-1], lead)
		q[shift] = c
		for j, bj := range b {
			r[shift+j] = numSub(r[shift+j], numMul(c, bj))
		}
		r = polyTrim(r[:len(r)-1])
	}
	return polyTrim(q), r
}

// polyIntegral returns the antiderivative with zero constant term.
func polyIntegral(p []*Num) []*Num {
	out := make([]*Num, len(p)+1)
	out[0] = N(0)
	for k, c := range p {
		out[k+1] = numDiv(c, N(int64(k+1)))
	}
	return polyTrim(out)
}

func polyEval(p []*Num, x float64) float64 {
	acc := 0.0
	for k := len(p) - 1; k >= 0; k-- {
		acc = acc*x + p[k].Float64()
	}
	return acc
}

// ratParts splits e into numerator and denominator polynomials in varName.
// Factors raised to a negative integer power form the denominator.
func ratParts(e Expr, varName string) (num, den []*Num, ok bool) {
	factors := []Expr{e}
	if m, isMul := e.(*Mul); isMul {
		factors = m.factors
	}
	num = []*Num{N(1)}
	den = []*Num{N(1)}
	for _, f := range factors {
		if p, isPow := f.(*Pow); isPow {
			if n, isNum := p.exp.(*Num); isNum {
				if k, isInt := n.Int64(); isInt && k < 0 && k >= -maxPolyDegree {
					base, ok := PolyCoeffs(p.base, varName)
					if !ok {
						return nil, nil, false
					}
					den = polyMul(den, polyPow(base, int(-k)))
					continue
				}
			}
		}
		c, ok := PolyCoeffs(f, varName)
		if !ok {
			return nil, nil, false
		}
		num = polyMul(num, c)
	}
	return num, den, true
}
