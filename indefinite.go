package integral

import "github.com/JpHernandez277/Pendientes-John/cas"

// IndefiniteIntegral returns an antiderivative of expr in x. The constant of
// integration is implied and never part of the tree. It fails with ErrParse
// or ErrNoClosedForm.
func IndefiniteIntegral(expr string) (cas.Expr, error) {
	f, err := ParseSymbolic(expr)
	if err != nil {
		return nil, err
	}
	return antiderivative(f)
}

// Verify differentiates an antiderivative so it can be compared with the
// integrand. ok is false if differentiation fails.
func Verify(anti cas.Expr) (deriv cas.Expr, ok bool) {
	defer func() {
		if recover() != nil {
			deriv, ok = nil, false
		}
	}()
	if anti == nil {
		return nil, false
	}
	return cas.Diff(anti, Variable), true
}
