package cas

import "math"

// ============================================================
// Singularities
// ============================================================

// SingularIn reports whether e has a pole or a logarithmic singularity in
// the closed interval [lo, hi] of varName. It recognizes zeros of polynomial
// denominators and log arguments, and the zeros of sin and cos of a linear
// argument, including the poles of tan. A false result does not prove that e
// is defined on the whole interval.
func SingularIn(e Expr, varName string, lo, hi float64) bool {
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			if SingularIn(t, varName, lo, hi) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if SingularIn(f, varName, lo, hi) {
				return true
			}
		}
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsNegative() && vanishesIn(v.base, varName, lo, hi) {
			return true
		}
		return SingularIn(v.base, varName, lo, hi) || SingularIn(v.exp, varName, lo, hi)
	case *Func:
		switch v.name {
		case fnLog:
			arg := v.arg
			if inner, ok := arg.(*Func); ok && inner.name == fnAbs {
				arg = inner.arg
			}
			if vanishesIn(arg, varName, lo, hi) {
				return true
			}
		case fnTan:
			if trigZeroIn(fnCos, v.arg, varName, lo, hi) {
				return true
			}
		}
		return SingularIn(v.arg, varName, lo, hi)
	}
	return false
}

// vanishesIn reports whether e has a recognizable zero in [lo, hi].
func vanishesIn(e Expr, varName string, lo, hi float64) bool {
	if !Has(e, varName) {
		return isZero(e)
	}
	if p, ok := PolyCoeffs(e, varName); ok {
		if roots, ok := RealRoots(p); ok {
			for _, r := range roots {
				if r >= lo && r <= hi {
					return true
				}
			}
			return false
		}
		return signChangeIn(p, lo, hi)
	}
	switch v := e.(type) {
	case *Func:
		switch v.name {
		case fnSin, fnCos, fnTan:
			name := v.name
			if name == fnTan {
				name = fnSin
			}
			return trigZeroIn(name, v.arg, varName, lo, hi)
		case fnAbs:
			return vanishesIn(v.arg, varName, lo, hi)
		}
	case *Mul:
		for _, f := range v.factors {
			if vanishesIn(f, varName, lo, hi) {
				return true
			}
		}
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsPositive() {
			return vanishesIn(v.base, varName, lo, hi)
		}
	}
	return false
}

// trigZeroIn reports whether sin(u) (name "sin") or cos(u) (name "cos") has
// a zero for x in [lo, hi], for u linear in x.
func trigZeroIn(name string, u Expr, varName string, lo, hi float64) bool {
	a, b, ok := linearIn(u, varName)
	if !ok {
		return false
	}
	af, ok1 := a.Evalf()
	bf, ok2 := b.Evalf()
	if !ok1 || !ok2 {
		return false
	}
	tmin, tmax := af*lo+bf, af*hi+bf
	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}
	offset := 0.0
	if name == fnCos {
		offset = math.Pi / 2
	}
	k := math.Ceil((tmin - offset) / math.Pi)
	return k*math.Pi+offset <= tmax
}

// signChangeIn scans a polynomial of degree above two for a zero.
func signChangeIn(p []*Num, lo, hi float64) bool {
	const steps = 512
	prev := polyEval(p, lo)
	if prev == 0 {
		return true
	}
	for i := 1; i <= steps; i++ {
		cur := polyEval(p, lo+(hi-lo)*float64(i)/steps)
		if cur == 0 || (cur < 0) != (prev < 0) {
			return true
		}
		prev = cur
	}
	return false
}
