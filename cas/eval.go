package cas

import "math"

// ============================================================
// Numeric evaluation
// ============================================================

// Lambdify returns a float64 evaluator of e in varName. Other free symbols
// make every evaluation fail.
func Lambdify(e Expr, varName string) func(float64) (float64, bool) {
	return func(x float64) (float64, bool) {
		return evalAt(e, varName, x)
	}
}

func evalAt(e Expr, varName string, x float64) (float64, bool) {
	switch v := e.(type) {
	case *Sym:
		if v.name == varName {
			return x, true
		}
		return 0, false
	case *Add:
		acc := 0.0
		for _, t := range v.terms {
			tv, ok := evalAt(t, varName, x)
			if !ok {
				return 0, false
			}
			acc += tv
		}
		return finite(acc)
	case *Mul:
		acc := 1.0
		for _, f := range v.factors {
			fv, ok := evalAt(f, varName, x)
			if !ok {
				return 0, false
			}
			acc *= fv
		}
		return finite(acc)
	case *Pow:
		b, ok := evalAt(v.base, varName, x)
		if !ok {
			return 0, false
		}
		p, ok := evalAt(v.exp, varName, x)
		if !ok {
			return 0, false
		}
		return finite(math.Pow(b, p))
	case *Func:
		arg, ok := evalAt(v.arg, varName, x)
		if !ok {
			return 0, false
		}
		return evalFunc(v.name, arg)
	}
	return e.Evalf()
}
