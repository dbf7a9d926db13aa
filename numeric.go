package integral

import (
	"math"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

// ============================================================
// Numeric evaluation
// ============================================================

// Func evaluates a compiled expression at x. The bool is false when the
// expression is undefined there; callers must not read the float in that
// case.
type Func func(x float64) (float64, bool)

// Map evaluates f at every x, writing undefined for points where f is
// undefined.
func (f Func) Map(xs []float64, undefined float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v, ok := f(x)
		if !ok {
			v = undefined
		}
		out[i] = v
	}
	return out
}

// numericFuncs is the complete set of functions an expression may call.
var numericFuncs = map[string]govaluate.ExpressionFunction{
	"sin":  unary("sin", math.Sin),
	"cos":  unary("cos", math.Cos),
	"tan":  unary("tan", math.Tan),
	"exp":  unary("exp", math.Exp),
	"log":  unary("log", math.Log),
	"sqrt": unary("sqrt", math.Sqrt),
	"abs":  unary("abs", math.Abs),
}

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, errors.Errorf("%s takes 1 argument, got %d", name, len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, errors.Errorf("%s: argument is %T, not a number", name, args[0])
		}
		return fn(v), nil
	}
}

// scope resolves the only variables an expression may read.
type scope float64

func (s scope) Get(name string) (interface{}, error) {
	switch name {
	case "x":
		return float64(s), nil
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}
	return nil, errors.Errorf("unknown name %q", name)
}

// MakeNumericFunc compiles expr once and returns its evaluator. The
// expression may use x, pi, e and the functions sin, cos, tan, exp, log
// (natural), sqrt and abs. Every failure, from a syntax error to a NaN or
// infinite result, makes the returned Func report undefined.
func MakeNumericFunc(expr string) Func {
	compiled, err := compileNumeric(Normalize(expr))
	if err != nil {
		return func(float64) (float64, bool) { return 0, false }
	}
	return func(x float64) (v float64, ok bool) {
		defer func() {
			if recover() != nil {
				v, ok = 0, false
			}
		}()
		out, err := compiled.Eval(scope(x))
		if err != nil {
			return 0, false
		}
		f, isNum := out.(float64)
		if !isNum || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
}

func compileNumeric(expr string) (compiled *govaluate.EvaluableExpression, err error) {
	defer func() {
		if r := recover(); r != nil {
			compiled, err = nil, errors.Errorf("compile %q: %v", expr, r)
		}
	}()
	grouped, err := groupOperators(expr)
	if err != nil {
		return nil, err
	}
	compiled, err = govaluate.NewEvaluableExpressionWithFunctions(grouped, numericFuncs)
	return compiled, errors.Wrapf(err, "compile %q", expr)
}
