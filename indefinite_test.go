package integral_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	integral "github.com/JpHernandez277/Pendientes-John"
	"github.com/JpHernandez277/Pendientes-John/cas"
)

// ============================================================
// Symbolic parser tests
// ============================================================

func TestParseSymbolic_Vocabulary(t *testing.T) {
	for _, s := range []string{"x^2", "ln(x)", "sqrt(x) + abs(x)", "sin(x)*cos(x)*tan(x)", "exp(pi*x) + e", "1e3*x"} {
		_, err := integral.ParseSymbolic(s)
		assert.NoError(t, err, s)
	}
}

func TestParseSymbolic_Rejects(t *testing.T) {
	for _, s := range []string{"", "x +", "y", "atan(x)", "sign(x)", "sinh(x)", "2x", "x ** ** 2", "sign(0)"} {
		_, err := integral.ParseSymbolic(s)
		if assert.Error(t, err, "%q", s) {
			assert.True(t, errors.Is(err, integral.ErrParse), "%q: %v", s, err)
		}
	}
}

// ============================================================
// Indefinite integral tests
// ============================================================

func TestIndefiniteIntegral_SinAndVerify(t *testing.T) {
	anti, err := integral.IndefiniteIntegral("sin(x)")
	require.NoError(t, err)
	assert.Equal(t, "-cos(x)", anti.String())

	deriv, ok := integral.Verify(anti)
	require.True(t, ok)
	assert.Equal(t, "sin(x)", deriv.String())
}

func TestIndefiniteIntegral_Failures(t *testing.T) {
	_, err := integral.IndefiniteIntegral("x +")
	assert.Equal(t, "parse", integral.ErrorKind(err))

	_, err = integral.IndefiniteIntegral("exp(x^2)")
	assert.Equal(t, "no_closed_form", integral.ErrorKind(err))
}

func TestIndefiniteIntegral_DerivativeMatchesVocabulary(t *testing.T) {
	integrands := []string{
		"1", "x", "x^3 - 2*x", "sin(x)", "cos(x)", "tan(x)", "exp(x)", "ln(x)",
		"sqrt(x)", "abs(x)", "1/x", "x*exp(x)", "1/sqrt(x)", "e^x", "pi*sin(2*x)",
	}
	for _, s := range integrands {
		anti, err := integral.IndefiniteIntegral(s)
		if !assert.NoError(t, err, s) {
			continue
		}
		deriv, ok := integral.Verify(anti)
		require.True(t, ok, s)
		df := cas.Lambdify(deriv, integral.Variable)
		f := integral.MakeNumericFunc(s)
		for _, x := range []float64{0.25, 0.8, 1.7} {
			want, ok := f(x)
			require.True(t, ok, "%s at %g", s, x)
			got, ok := df(x)
			require.True(t, ok, "%s at %g", deriv, x)
			assert.InDelta(t, want, got, 1e-9*math.Max(1, math.Abs(want)), "%s at %g", s, x)
		}
	}
}

func TestVerify_Nil(t *testing.T) {
	_, ok := integral.Verify(nil)
	assert.False(t, ok)
}

// ============================================================
// Examples and rendering tests
// ============================================================

func TestExamples_MatchEngine(t *testing.T) {
	exs := integral.Examples()
	require.NotEmpty(t, exs)
	for _, ex := range exs {
		anti, err := integral.IndefiniteIntegral(ex.Expr)
		if assert.NoError(t, err, ex.Expr) {
			assert.Equal(t, ex.Antiderivative, anti.String(), ex.Expr)
		}
	}
	exs[0].Expr = "changed"
	assert.NotEqual(t, "changed", integral.Examples()[0].Expr)
}

func TestRender(t *testing.T) {
	f, err := integral.ParseSymbolic("x^2")
	require.NoError(t, err)
	anti, err := integral.IndefiniteIntegral("x^2")
	require.NoError(t, err)
	deriv, _ := integral.Verify(anti)

	assert.Equal(t, `\int_{0}^{1.5} x^{2} \, dx = 1.125000`, integral.DefiniteLaTeX(f, 0, 1.5, 1.125))
	assert.Equal(t, `\int x^{2} \, dx = \frac{x^{3}}{3} + C`, integral.IndefiniteLaTeX(f, anti))
	assert.Equal(t, "∫ x**2 dx = x**3/3 + C", integral.IndefiniteText(f, anti))
	assert.Equal(t, `\frac{d}{dx}\left[\frac{x^{3}}{3}\right] = x^{2}`, integral.VerifyLaTeX(anti, deriv))

	r := &integral.Result{Value: 0.5, AbsError: 5.5e-15, Lower: 0, Upper: 1}
	assert.Equal(t, "∫[0, 1] x dx = 0.500000 ± 5.50e-15", integral.DefiniteText("x", r))
	r.Exact = cas.F(1, 2)
	assert.Equal(t, "∫[0, 1] x dx = 0.500000 (exact: 1/2)", integral.DefiniteText("x", r))
}
