package cas

// ============================================================
// Expand
// ============================================================

// maxExpandPower bounds the integer powers of sums that Expand multiplies out.
const maxExpandPower = 12

func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = distribute(result, expandExpr(f))
		}
		return result
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok {
			if k, isInt := n.Int64(); isInt && k >= 2 && k <= maxExpandPower {
				if _, isSum := base.(*Add); isSum {
					result := Expr(N(1))
					for i := int64(0); i < k; i++ {
						result = distribute(result, base)
					}
					return result
				}
			}
		}
		return PowOf(base, expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

// distribute multiplies two expanded expressions term by term.
func distribute(a, b Expr) Expr {
	at, bt := addTerms(a), addTerms(b)
	out := make([]Expr, 0, len(at)*len(bt))
	for _, ta := range at {
		for _, tb := range bt {
			out = append(out, MulOf(ta, tb))
		}
	}
	return AddOf(out...)
}

func addTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// ============================================================
// Free Symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// Has reports whether varName occurs in e.
func Has(e Expr, varName string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == varName
	case *Add:
		for _, t := range v.terms {
			if Has(t, varName) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if Has(f, varName) {
				return true
			}
		}
	case *Pow:
		return Has(v.base, varName) || Has(v.exp, varName)
	case *Func:
		return Has(v.arg, varName)
	}
	return false
}

// linearIn matches u = a*x + b with a, b free of x and a non-zero.
func linearIn(u Expr, varName string) (a, b Expr, ok bool) {
	if !Has(u, varName) {
		return nil, nil, false
	}
	a = Diff(u, varName)
	if Has(a, varName) || isZero(a) {
		return nil, nil, false
	}
	b = Sub(u, varName, N(0))
	if !Expand(AddOf(MulOf(a, S(varName)), b)).Equal(Expand(u)) {
		return nil, nil, false
	}
	return a, b, true
}

// Walk calls fn for e and its subterms in depth-first order, skipping the
// children of a node when fn returns false.
func Walk(e Expr, fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			Walk(t, fn)
		}
	case *Mul:
		for _, f := range v.factors {
			Walk(f, fn)
		}
	case *Pow:
		Walk(v.base, fn)
		Walk(v.exp, fn)
	case *Func:
		Walk(v.arg, fn)
	}
}
