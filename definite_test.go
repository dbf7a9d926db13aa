package integral_test

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	integral "github.com/JpHernandez277/Pendientes-John"
)

// ============================================================
// Quadrature tests
// ============================================================

func TestQuadrature_Polynomial(t *testing.T) {
	v, abserr, err := integral.DefaultQuadrature().Integrate(integral.MakeNumericFunc("x**2"), 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, v, 1e-12)
	assert.Less(t, abserr, 1.49e-8)
}

func TestQuadrature_Adapts(t *testing.T) {
	tests := []struct {
		expr string
		a, b float64
		want float64
	}{
		{"sqrt(x)", 0, 1, 2.0 / 3},
		{"sin(x)", 0, math.Pi, 2},
		{"exp(-x**2)", -5, 5, math.Sqrt(math.Pi)},
		{"abs(x)", -1, 2, 2.5},
		{"1/(1 + 25*x**2)", -1, 1, 0.4 * math.Atan(5)},
	}
	for _, tt := range tests {
		v, abserr, err := integral.DefaultQuadrature().Integrate(integral.MakeNumericFunc(tt.expr), tt.a, tt.b)
		if assert.NoError(t, err, tt.expr) {
			assert.InDelta(t, tt.want, v, 1e-7, tt.expr)
			assert.LessOrEqual(t, abserr, 1.49e-8*math.Max(1, math.Abs(v)), tt.expr)
		}
	}
}

func TestQuadrature_PoleFails(t *testing.T) {
	_, _, err := integral.DefaultQuadrature().Integrate(integral.MakeNumericFunc("1/x"), -1, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, integral.ErrConvergence), err.Error())
}

func TestQuadrature_UndefinedEverywhere(t *testing.T) {
	_, _, err := integral.DefaultQuadrature().Integrate(integral.MakeNumericFunc("sqrt(x)"), -2, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, integral.ErrDomain), err.Error())

	_, _, err = integral.DefaultQuadrature().Integrate(integral.MakeNumericFunc("y"), 0, 1)
	assert.True(t, errors.Is(err, integral.ErrDomain))
}

func TestQuadrature_SubdivisionBudget(t *testing.T) {
	q := integral.Quadrature{AbsTol: 1e-14, RelTol: 1e-14, MaxSubdivisions: 1}
	_, _, err := q.Integrate(integral.MakeNumericFunc("sqrt(x)"), 0, 1)
	assert.True(t, errors.Is(err, integral.ErrConvergence))
}

// ============================================================
// Definite integral tests
// ============================================================

func TestDefiniteIntegral_NumericMatchesSymbolic(t *testing.T) {
	polys := []string{"x**2", "3*x**3 - x + 2", "(x - 1)**4", "-x**2"}
	bounds := [][2]float64{{0, 1}, {-2, 3}, {-0.5, 0.25}, {1, 10}}
	for _, p := range polys {
		for _, bd := range bounds {
			num, err := integral.DefiniteIntegral(p, bd[0], bd[1], integral.MethodNumeric)
			require.NoError(t, err, p)
			sym, err := integral.DefiniteIntegral(p, bd[0], bd[1], integral.MethodSymbolic)
			require.NoError(t, err, p)
			assert.InDelta(t, sym.Value, num.Value, 1e-4, "%s on %v", p, bd)
		}
	}
}

func TestDefiniteIntegral_SquareOnUnitInterval(t *testing.T) {
	num, err := integral.DefiniteIntegral("x**2", 0, 1, integral.MethodNumeric)
	require.NoError(t, err)
	assert.InDelta(t, 0.33333333, num.Value, 1e-8)
	assert.Nil(t, num.Exact)
	assert.Equal(t, integral.MethodNumeric, num.Method)

	sym, err := integral.DefiniteIntegral("x**2", 0, 1, integral.MethodSymbolic)
	require.NoError(t, err)
	require.NotNil(t, sym.Exact)
	assert.Equal(t, "1/3", sym.Exact.String())
	assert.Equal(t, 0.0, sym.AbsError)
	assert.Equal(t, "0.333333", fmt.Sprintf("%.6f", sym.Value))
}

func TestDefiniteIntegral_SymbolicExactValues(t *testing.T) {
	tests := []struct {
		expr  string
		a, b  float64
		exact string
	}{
		{"sin(x)", 0, 1, "-cos(1) + 1"},
		{"2*x + 1", 0, 2, "6"},
		{"1/x", 1, 2, "log(2)"},
		{"x^2", -1, 1, "2/3"},
	}
	for _, tt := range tests {
		r, err := integral.DefiniteIntegral(tt.expr, tt.a, tt.b, integral.MethodSymbolic)
		if assert.NoError(t, err, tt.expr) {
			assert.Equal(t, tt.exact, r.Exact.String(), tt.expr)
		}
	}
}

func TestDefiniteIntegral_PoleNeverFinite(t *testing.T) {
	for _, m := range []integral.Method{integral.MethodNumeric, integral.MethodSymbolic} {
		r, err := integral.DefiniteIntegral("1/x", -1, 1, m)
		assert.Error(t, err, m.String())
		assert.Nil(t, r, m.String())
	}
	_, err := integral.DefiniteIntegral("1/x", -1, 1, integral.MethodSymbolic)
	assert.True(t, errors.Is(err, integral.ErrNoClosedForm))
}

func TestDefiniteIntegral_SymbolicFailures(t *testing.T) {
	tests := []struct {
		expr string
		a, b float64
		kind string
	}{
		{"x +", 0, 1, "parse"},
		{"foo(x)", 0, 1, "parse"},
		{"atan(x)", 0, 1, "parse"},
		{"exp(x**2)", 0, 1, "no_closed_form"},
		{"tan(x)", 0, 2, "no_closed_form"},
		{"1/(x**2 - 4)", 0, 3, "no_closed_form"},
		{"sqrt(x)", -1, 1, "no_closed_form"},
	}
	for _, tt := range tests {
		_, err := integral.DefiniteIntegral(tt.expr, tt.a, tt.b, integral.MethodSymbolic)
		if assert.Error(t, err, tt.expr) {
			assert.Equal(t, tt.kind, integral.ErrorKind(err), "%s: %v", tt.expr, err)
		}
	}
}

func TestDefiniteIntegral_MethodsAreIndependent(t *testing.T) {
	// No antiderivative, but quadrature handles it.
	r, err := integral.DefiniteIntegral("exp(-x**2)", 0, 1, integral.MethodNumeric)
	require.NoError(t, err)
	assert.InDelta(t, 0.746824132812427, r.Value, 1e-10)

	_, err = integral.DefiniteIntegral("exp(-x**2)", 0, 1, integral.MethodSymbolic)
	assert.True(t, errors.Is(err, integral.ErrNoClosedForm))
}

func TestDefiniteIntegral_UnknownMethod(t *testing.T) {
	_, err := integral.DefiniteIntegral("x", 0, 1, integral.Method(7))
	assert.Error(t, err)
	assert.Equal(t, "internal", integral.ErrorKind(err))
}

func TestEngine_LogsQuadratureFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	en := integral.NewEngine()
	en.Logger = logger

	_, err := en.DefiniteIntegral("1/x", -1, 1, integral.MethodNumeric)
	require.Error(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "quadrature failed", hook.LastEntry().Message)
	assert.Equal(t, "1/x", hook.LastEntry().Data["expr"])
}

func TestEngine_ZeroValueLogger(t *testing.T) {
	en := &integral.Engine{Quadrature: integral.DefaultQuadrature()}
	r, err := en.DefiniteIntegral("x", 0, 2, integral.MethodNumeric)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, r.Value, 1e-12)
}

// ============================================================
// Method and Result tests
// ============================================================

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]integral.Method{
		"numeric": integral.MethodNumeric, "scipy": integral.MethodNumeric,
		"symbolic": integral.MethodSymbolic, "SymPy": integral.MethodSymbolic,
	} {
		m, err := integral.ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, m, in)
	}
	_, err := integral.ParseMethod("montecarlo")
	assert.Error(t, err)
}

func TestResult_Derived(t *testing.T) {
	r := &integral.Result{Value: -3, Lower: 1, Upper: 4}
	assert.Equal(t, 3.0, r.AbsArea())
	assert.Equal(t, -1.0, r.MeanValue())
	assert.Equal(t, integral.Negative, r.Sign())
	assert.Equal(t, integral.Zero, (&integral.Result{}).Sign())
	assert.Equal(t, "positive", (&integral.Result{Value: 1}).Sign().String())
}

func TestResult_MarshalJSON(t *testing.T) {
	r, err := integral.DefiniteIntegral("x**2", 0, 1, integral.MethodSymbolic)
	require.NoError(t, err)
	b, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "1/3", out["exact"])
	assert.Equal(t, "symbolic", out["method"])
	assert.Equal(t, "positive", out["sign"])
	assert.Equal(t, 0.0, out["abs_error"])
}
