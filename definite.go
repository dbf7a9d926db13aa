package integral

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/JpHernandez277/Pendientes-John/cas"
)

// ============================================================
// Method
// ============================================================

// Method selects how a definite integral is computed. The two methods are
// independent; neither falls back to the other.
type Method int

const (
	MethodNumeric Method = iota
	MethodSymbolic
)

func (m Method) String() string {
	switch m {
	case MethodNumeric:
		return "numeric"
	case MethodSymbolic:
		return "symbolic"
	}
	return "unknown"
}

// ParseMethod accepts "numeric" (alias "scipy") and "symbolic" (alias
// "sympy"), case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "scipy":
		return MethodNumeric, nil
	case "symbolic", "sympy":
		return MethodSymbolic, nil
	}
	return 0, errors.Errorf("unknown method %q (want numeric or symbolic)", s)
}

// ============================================================
// Result
// ============================================================

type AreaSign int

const (
	Zero AreaSign = iota
	Positive
	Negative
)

func (s AreaSign) String() string {
	switch s {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "zero"
}

// Result is a definite integral over [Lower, Upper]. Exact is set only by
// the symbolic method, whose AbsError is always 0.
type Result struct {
	Value    float64
	AbsError float64
	Exact    cas.Expr
	Method   Method
	Lower    float64
	Upper    float64
}

func (r *Result) AbsArea() float64 { return math.Abs(r.Value) }

// MeanValue is the average of the integrand over the interval.
func (r *Result) MeanValue() float64 { return r.Value / (r.Upper - r.Lower) }

func (r *Result) Sign() AreaSign {
	switch {
	case r.Value > 0:
		return Positive
	case r.Value < 0:
		return Negative
	}
	return Zero
}

func (r *Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Value     float64 `json:"value"`
		AbsError  float64 `json:"abs_error"`
		Exact     string  `json:"exact,omitempty"`
		Method    string  `json:"method"`
		Lower     float64 `json:"lower"`
		Upper     float64 `json:"upper"`
		AbsArea   float64 `json:"abs_area"`
		MeanValue float64 `json:"mean_value"`
		Sign      string  `json:"sign"`
	}{
		Value:     r.Value,
		AbsError:  r.AbsError,
		Method:    r.Method.String(),
		Lower:     r.Lower,
		Upper:     r.Upper,
		AbsArea:   r.AbsArea(),
		MeanValue: r.MeanValue(),
		Sign:      r.Sign().String(),
	}
	if r.Exact != nil {
		out.Exact = r.Exact.String()
	}
	return json.Marshal(out)
}

// ============================================================
// Engine
// ============================================================

// Engine computes integrals. A nil Logger logs to the logrus standard
// logger.
type Engine struct {
	Quadrature Quadrature
	Logger     logrus.FieldLogger
}

func NewEngine() *Engine {
	return &Engine{Quadrature: DefaultQuadrature(), Logger: logrus.StandardLogger()}
}

func (en *Engine) log() logrus.FieldLogger {
	if en.Logger == nil {
		return logrus.StandardLogger()
	}
	return en.Logger
}

// domainCheckPoints is the number of evenly spaced points at which the symbolic
// method checks that the integrand is defined.
const domainCheckPoints = 33

// DefiniteIntegral integrates expr over [a, b] with the default engine.
func DefiniteIntegral(expr string, a, b float64, m Method) (*Result, error) {
	return NewEngine().DefiniteIntegral(expr, a, b, m)
}

// DefiniteIntegral integrates expr over [a, b]. Callers guarantee a < b.
func (en *Engine) DefiniteIntegral(expr string, a, b float64, m Method) (*Result, error) {
	switch m {
	case MethodNumeric:
		return en.numeric(expr, a, b)
	case MethodSymbolic:
		return en.symbolic(expr, a, b)
	}
	return nil, errors.Errorf("unknown method %d", int(m))
}

func (en *Engine) numeric(expr string, a, b float64) (*Result, error) {
	value, abserr, err := en.Quadrature.Integrate(MakeNumericFunc(expr), a, b)
	if err != nil {
		en.log().WithError(err).WithFields(logrus.Fields{
			"expr": expr, "a": a, "b": b,
		}).Debug("quadrature failed")
		return nil, errors.WithMessagef(err, "integrate %q", expr)
	}
	return &Result{Value: value, AbsError: abserr, Method: MethodNumeric, Lower: a, Upper: b}, nil
}

func (en *Engine) symbolic(expr string, a, b float64) (*Result, error) {
	f, err := ParseSymbolic(expr)
	if err != nil {
		return nil, err
	}
	if cas.SingularIn(f, Variable, a, b) {
		return nil, errors.Wrapf(ErrNoClosedForm, "%q is singular on [%g, %g]", expr, a, b)
	}
	fx := cas.Lambdify(f, Variable)
	for _, p := range floats.Span(make([]float64, domainCheckPoints), a, b) {
		if _, ok := fx(p); !ok {
			return nil, errors.Wrapf(ErrNoClosedForm, "%q is undefined at x = %g", expr, p)
		}
	}
	anti, err := antiderivative(f)
	if err != nil {
		en.log().WithField("expr", expr).Debug("no antiderivative")
		return nil, errors.WithMessagef(err, "integrate %q", expr)
	}

	upper := cas.Sub(anti, Variable, cas.NFloat(b))
	lower := cas.Sub(anti, Variable, cas.NFloat(a))
	exact := cas.AddOf(upper, cas.MulOf(cas.N(-1), lower))
	value, ok := exact.Evalf()
	if !ok {
		return nil, errors.Wrapf(ErrNoClosedForm, "%s is not finite", exact)
	}
	en.log().WithFields(logrus.Fields{
		"expr": expr, "antiderivative": anti.String(), "exact": exact.String(),
	}).Debug("symbolic integral")
	return &Result{Value: value, Exact: exact, Method: MethodSymbolic, Lower: a, Upper: b}, nil
}

// antiderivative runs the CAS integrator, turning a failure or a panic into
// ErrNoClosedForm.
func antiderivative(f cas.Expr) (anti cas.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			anti, err = nil, errors.Wrapf(ErrNoClosedForm, "integrator: %v", r)
		}
	}()
	anti, ok := cas.Integrate(f, Variable)
	if !ok {
		return nil, errors.Wrapf(ErrNoClosedForm, "%s", f)
	}
	return anti, nil
}
