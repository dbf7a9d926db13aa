package cas

import "strconv"

// ============================================================
// Integration (rule-based)
// ============================================================

// maxIntegrateDepth bounds rule recursion, including nested substitutions.
const maxIntegrateDepth = 8

// Integrate returns an antiderivative of expr in varName, without the
// constant of integration. It reports false when no rule applies.
func Integrate(expr Expr, varName string) (Expr, bool) {
	return integrate(expr.Simplify(), varName, 0)
}

type integrationRule func(e Expr, varName string, depth int) (Expr, bool)

func integrate(e Expr, varName string, depth int) (Expr, bool) {
	if depth > maxIntegrateDepth {
		return nil, false
	}
	x := S(varName)
	if !Has(e, varName) {
		return MulOf(e, x), true
	}
	switch v := e.(type) {
	case *Sym:
		return MulOf(F(1, 2), PowOf(x, N(2))), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			it, ok := integrate(t, varName, depth+1)
			if !ok {
				return nil, false
			}
			terms[i] = it
		}
		return AddOf(terms...), true
	case *Mul:
		var consts, deps []Expr
		for _, f := range v.factors {
			if Has(f, varName) {
				deps = append(deps, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(consts) > 0 {
			inner, ok := integrate(MulOf(deps...), varName, depth+1)
			if !ok {
				return nil, false
			}
			return MulOf(append(consts, inner)...), true
		}
	}
	rules := []integrationRule{
		integratePow,
		integrateFunc,
		integratePoly,
		integrateRational,
		integrateExpTrig,
		integrateByParts,
		integrateSubstitution,
		integrateExpanded,
	}
	for _, rule := range rules {
		if r, ok := rule(e, varName, depth); ok {
			return r, true
		}
	}
	return nil, false
}

// ============================================================
// Powers
// ============================================================

func integratePow(e Expr, varName string, depth int) (Expr, bool) {
	p, ok := e.(*Pow)
	if !ok {
		return nil, false
	}

	// u**n with u = a*x + b
	if !Has(p.exp, varName) {
		if a, _, ok := linearIn(p.base, varName); ok {
			if n, isNum := p.exp.(*Num); isNum && n.IsNegOne() {
				return MulOf(PowOf(a, N(-1)), LogOf(AbsOf(p.base))), true
			}
			n1 := AddOf(p.exp, N(1))
			return MulOf(PowOf(MulOf(n1, a), N(-1)), PowOf(p.base, n1)), true
		}
	}

	// c**u with u = a*x + b
	if !Has(p.base, varName) {
		if c, ok := p.base.Evalf(); ok && c > 0 {
			if a, _, ok := linearIn(p.exp, varName); ok {
				return MulOf(PowOf(MulOf(a, LogOf(p.base)), N(-1)), p), true
			}
		}
		return nil, false
	}

	return integrateFuncPow(p, varName, depth)
}

// integrateFuncPow covers integer powers of sin, cos and log of a linear
// argument, plus tan(u)**2, cos(u)**-2 and sin(u)**-2. Powers above two
// reduce by two (one for log) per step.
func integrateFuncPow(p *Pow, varName string, depth int) (Expr, bool) {
	fn, ok := p.base.(*Func)
	if !ok {
		return nil, false
	}
	n, ok := p.exp.(*Num)
	if !ok {
		return nil, false
	}
	k, ok := n.Int64()
	if !ok {
		return nil, false
	}
	a, _, ok := linearIn(fn.arg, varName)
	if !ok {
		return nil, false
	}
	x := S(varName)
	u := fn.arg
	inv := PowOf(a, N(-1))
	switch {
	case k == 2 && fn.name == fnSin:
		return AddOf(MulOf(F(1, 2), x), MulOf(F(-1, 4), inv, SinOf(MulOf(N(2), u)))), true
	case k == 2 && fn.name == fnCos:
		return AddOf(MulOf(F(1, 2), x), MulOf(F(1, 4), inv, SinOf(MulOf(N(2), u)))), true
	case k == 2 && fn.name == fnTan:
		return AddOf(MulOf(inv, TanOf(u)), MulOf(N(-1), x)), true
	case k == -2 && fn.name == fnCos:
		return MulOf(inv, TanOf(u)), true
	case k == -2 && fn.name == fnSin:
		return MulOf(N(-1), inv, PowOf(TanOf(u), N(-1))), true
	case k >= 3 && (fn.name == fnSin || fn.name == fnCos):
		// sin**k: -sin**(k-1)*cos/(k*a) + (k-1)/k * integral of sin**(k-2)
		// cos**k:  cos**(k-1)*sin/(k*a) + (k-1)/k * integral of cos**(k-2)
		rest, ok := integrate(PowOf(fn, N(k-2)), varName, depth+1)
		if !ok {
			return nil, false
		}
		other, sign := CosOf(u), N(-1)
		if fn.name == fnCos {
			other, sign = SinOf(u), N(1)
		}
		head := MulOf(sign, F(1, k), inv, PowOf(fn, N(k-1)), other)
		return AddOf(head, MulOf(F(k-1, k), rest)), true
	case k >= 2 && fn.name == fnLog:
		// u*log(u)**k/a - k * integral of log(u)**(k-1)
		rest, ok := integrate(PowOf(fn, N(k-1)), varName, depth+1)
		if !ok {
			return nil, false
		}
		return AddOf(MulOf(inv, u, p), MulOf(N(-k), rest)), true
	}
	return nil, false
}

// ============================================================
// Elementary functions of a linear argument
// ============================================================

func integrateFunc(e Expr, varName string, _ int) (Expr, bool) {
	fn, ok := e.(*Func)
	if !ok {
		return nil, false
	}
	a, _, ok := linearIn(fn.arg, varName)
	if !ok {
		return nil, false
	}
	u := fn.arg
	inv := PowOf(a, N(-1))
	switch fn.name {
	case fnSin:
		return MulOf(N(-1), inv, CosOf(u)), true
	case fnCos:
		return MulOf(inv, SinOf(u)), true
	case fnTan:
		return MulOf(N(-1), inv, LogOf(AbsOf(CosOf(u)))), true
	case fnExp:
		return MulOf(inv, ExpOf(u)), true
	case fnLog:
		return MulOf(inv, AddOf(MulOf(u, LogOf(u)), MulOf(N(-1), u))), true
	case fnAbs:
		return MulOf(F(1, 2), inv, u, AbsOf(u)), true
	case fnAtan:
		return MulOf(inv, AddOf(
			MulOf(u, AtanOf(u)),
			MulOf(F(-1, 2), LogOf(AddOf(PowOf(u, N(2)), N(1)))),
		)), true
	case fnSign:
		return MulOf(inv, AbsOf(u)), true
	}
	return nil, false
}

// ============================================================
// Polynomials and rational functions
// ============================================================

func integratePoly(e Expr, varName string, _ int) (Expr, bool) {
	p, ok := PolyCoeffs(e, varName)
	if !ok {
		return nil, false
	}
	return polyExpr(polyIntegral(p), varName), true
}

// integrateRational handles P/Q with deg Q <= 2 by long division followed by
// the log, atan and repeated-root forms.
func integrateRational(e Expr, varName string, _ int) (Expr, bool) {
	num, den, ok := ratParts(e, varName)
	if !ok || len(num) == 0 {
		return nil, false
	}
	dd := polyDegree(den)
	if dd < 1 || dd > 2 {
		return nil, false
	}
	q, r := polyDivMod(num, den)
	terms := []Expr{polyExpr(polyIntegral(q), varName)}
	x := S(varName)
	denExpr := polyExpr(den, varName)

	if len(r) == 0 {
		return AddOf(terms...), true
	}
	if dd == 1 {
		terms = append(terms, MulOf(r[0], PowOf(den[1], N(-1)), LogOf(AbsOf(denExpr))))
		return AddOf(terms...), true
	}

	A, B, C := den[2], den[1], den[0]
	r0, r1 := r[0], N(0)
	if len(r) > 1 {
		r1 = r[1]
	}
	disc := numSub(numMul(B, B), numMul(N(4), numMul(A, C)))
	twoA := numMul(N(2), A)

	switch {
	case disc.IsNegative():
		// Q has no real roots and keeps the sign of A.
		logArg := denExpr
		if A.IsNegative() {
			logArg = MulOf(N(-1), denExpr)
		}
		terms = append(terms, MulOf(numDiv(r1, twoA), LogOf(logArg)))
		k := numSub(r0, numDiv(numMul(r1, B), twoA))
		if !k.IsZero() {
			s := SqrtOf(numNeg(disc))
			atanArg := MulOf(AddOf(MulOf(twoA, x), B), PowOf(s, N(-1)))
			terms = append(terms, MulOf(N(2), k, PowOf(s, N(-1)), AtanOf(atanArg)))
		}
	case disc.IsZero():
		root := numDiv(numNeg(B), twoA)
		shifted := AddOf(x, numNeg(root))
		if !r1.IsZero() {
			terms = append(terms, MulOf(numDiv(r1, A), LogOf(AbsOf(shifted))))
		}
		k := numAdd(numMul(r1, root), r0)
		if !k.IsZero() {
			terms = append(terms, MulOf(N(-1), numDiv(k, A), PowOf(shifted, N(-1))))
		}
	default:
		roots := SolveQuadratic(A, B, C).Solutions
		if len(roots) != 2 {
			return nil, false
		}
		p, s := roots[0], roots[1]
		pairs := [][2]Expr{{p, s}, {s, p}}
		for _, pq := range pairs {
			// residue at pq[0]: (r1*p + r0) / (A*(p - q))
			res := MulOf(
				AddOf(MulOf(r1, pq[0]), r0),
				PowOf(MulOf(A, AddOf(pq[0], MulOf(N(-1), pq[1]))), N(-1)),
			)
			terms = append(terms, MulOf(res, LogOf(AbsOf(AddOf(x, MulOf(N(-1), pq[0]))))))
		}
	}
	return AddOf(terms...), true
}

// integrateExpTrig handles exp(u)*sin(v) and exp(u)*cos(v) for linear u and
// v, where parts would cycle back to the integrand.
func integrateExpTrig(e Expr, varName string, _ int) (Expr, bool) {
	m, ok := e.(*Mul)
	if !ok || len(m.factors) != 2 {
		return nil, false
	}
	var ex, trig *Func
	for _, f := range m.factors {
		fn, ok := f.(*Func)
		if !ok {
			return nil, false
		}
		switch fn.name {
		case fnExp:
			ex = fn
		case fnSin, fnCos:
			trig = fn
		}
	}
	if ex == nil || trig == nil {
		return nil, false
	}
	a, _, ok := linearIn(ex.arg, varName)
	if !ok {
		return nil, false
	}
	c, _, ok := linearIn(trig.arg, varName)
	if !ok {
		return nil, false
	}
	scale := PowOf(AddOf(PowOf(a, N(2)), PowOf(c, N(2))), N(-1))
	sin, cos := SinOf(trig.arg), CosOf(trig.arg)
	var body Expr
	if trig.name == fnSin {
		// exp(u)*(a*sin(v) - c*cos(v))/(a**2 + c**2)
		body = AddOf(MulOf(a, sin), MulOf(N(-1), c, cos))
	} else {
		// exp(u)*(a*cos(v) + c*sin(v))/(a**2 + c**2)
		body = AddOf(MulOf(a, cos), MulOf(c, sin))
	}
	return MulOf(scale, ex, body), true
}

// ============================================================
// Integration by parts
// ============================================================

// integrateByParts handles P(x)*g(u) for a polynomial P and g in exp, sin,
// cos or log of a linear argument.
func integrateByParts(e Expr, varName string, depth int) (Expr, bool) {
	m, ok := e.(*Mul)
	if !ok {
		return nil, false
	}
	var polyFactors []Expr
	var g *Func
	for _, f := range m.factors {
		if _, isPoly := PolyCoeffs(f, varName); isPoly {
			polyFactors = append(polyFactors, f)
			continue
		}
		fn, isFunc := f.(*Func)
		if !isFunc || g != nil {
			return nil, false
		}
		g = fn
	}
	if g == nil || len(polyFactors) == 0 {
		return nil, false
	}
	a, _, ok := linearIn(g.arg, varName)
	if !ok {
		return nil, false
	}
	poly := MulOf(polyFactors...)

	switch g.name {
	case fnExp, fnSin, fnCos:
		// Tabular: sum of (-1)**k * P^(k) * G_(k+1).
		var terms []Expr
		G := Expr(g)
		sign := N(1)
		for k := 0; k <= maxPolyDegree && !isZero(poly); k++ {
			var ok bool
			G, ok = integrate(G, varName, depth+1)
			if !ok {
				return nil, false
			}
			terms = append(terms, MulOf(sign, poly, G))
			poly = Diff(poly, varName)
			sign = numNeg(sign)
		}
		return AddOf(terms...), true
	case fnLog:
		// Q*log(u) - integral of Q*a/u.
		Q, ok := integrate(poly, varName, depth+1)
		if !ok {
			return nil, false
		}
		rest, ok := integrate(MulOf(Q, a, PowOf(g.arg, N(-1))), varName, depth+1)
		if !ok {
			return nil, false
		}
		return AddOf(MulOf(Q, g), MulOf(N(-1), rest)), true
	}
	return nil, false
}

// ============================================================
// Substitution
// ============================================================

// integrateSubstitution tries u = g(x) for the subterms g of e, accepting the
// first one for which e/g'(x) is a function of u alone.
func integrateSubstitution(e Expr, varName string, depth int) (Expr, bool) {
	dummy := "_u" + strconv.Itoa(depth)
	t := S(dummy)
	seen := map[string]bool{}
	for _, u := range substitutionCandidates(e, varName) {
		key := u.String()
		if seen[key] || u.Equal(e) {
			continue
		}
		seen[key] = true
		du := Diff(u, varName)
		if isZero(du) {
			continue
		}
		q := MulOf(e, PowOf(du, N(-1)))
		replaced := replaceExpr(q, u, t)
		if Has(replaced, varName) {
			continue
		}
		r, ok := integrate(replaced, dummy, depth+1)
		if !ok {
			continue
		}
		return Sub(r, dummy, u), true
	}
	return nil, false
}

func substitutionCandidates(e Expr, varName string) []Expr {
	var out []Expr
	var walk func(Expr)
	walk = func(n Expr) {
		if !Has(n, varName) {
			return
		}
		switch v := n.(type) {
		case *Sym:
			return
		case *Add:
			out = append(out, v)
			for _, t := range v.terms {
				walk(t)
			}
		case *Mul:
			for _, f := range v.factors {
				walk(f)
			}
		case *Pow:
			out = append(out, v)
			walk(v.base)
			walk(v.exp)
		case *Func:
			out = append(out, v)
			walk(v.arg)
		}
	}
	walk(e)
	return out
}

// replaceExpr replaces every subterm of e equal to target.
func replaceExpr(e, target, with Expr) Expr {
	if e.Equal(target) {
		return with
	}
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = replaceExpr(t, target, with)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = replaceExpr(f, target, with)
		}
		return MulOf(factors...)
	case *Pow:
		// b**(k*m) is (b**m)**k for integer k.
		if tp, ok := target.(*Pow); ok && v.base.Equal(tp.base) {
			if vn, ok1 := v.exp.(*Num); ok1 {
				if tn, ok2 := tp.exp.(*Num); ok2 {
					if k := numDiv(vn, tn); k.IsInteger() {
						return PowOf(with, k)
					}
				}
			}
		}
		return PowOf(replaceExpr(v.base, target, with), replaceExpr(v.exp, target, with))
	case *Func:
		// exp(k*w) is exp(w)**k for integer k.
		if tf, ok := target.(*Func); ok && v.name == fnExp && tf.name == fnExp {
			if k, ok := MulOf(v.arg, PowOf(tf.arg, N(-1))).(*Num); ok && k.IsInteger() {
				return PowOf(with, k)
			}
		}
		return funcOf(v.name, replaceExpr(v.arg, target, with)).Simplify()
	}
	return e
}

// ============================================================
// Expansion fallback
// ============================================================

func integrateExpanded(e Expr, varName string, depth int) (Expr, bool) {
	expanded := Expand(e)
	if expanded.Equal(e) {
		return nil, false
	}
	return integrate(expanded, varName, depth+1)
}
