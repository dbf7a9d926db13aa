package integral_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	integral "github.com/JpHernandez277/Pendientes-John"
)

// ============================================================
// Normalizer tests
// ============================================================

func TestNormalize_Substitutions(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"x^2", "x**2"},
		{"ln(x)", "log(x)"},
		{"ln(x)^2 + x^3", "log(x)**2 + x**3"},
		{"lnx + ln", "lnx + log"},
		{"sin(x)", "sin(x)"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, integral.Normalize(tt.in), tt.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range []string{"x^2", "ln(x)^^3", "x**2", "ln ln", "a^b^c", "2*x + ln(x^2)"} {
		once := integral.Normalize(s)
		assert.Equal(t, once, integral.Normalize(once), s)
	}
}

// ============================================================
// Numeric evaluator tests
// ============================================================

func TestMakeNumericFunc_Values(t *testing.T) {
	tests := []struct {
		expr string
		x    float64
		want float64
	}{
		{"x**2", 3, 9},
		{"x^2", 3, 9},
		{"-x**2", 3, -9},
		{"2**3**2", 0, 512},
		{"-2**2", 0, -4},
		{"sin(pi/2)", 0, 1},
		{"log(e)", 0, 1},
		{"ln(x)", math.E, 1},
		{"sqrt(x) + abs(-x)", 4, 6},
		{"exp(0) + cos(0) + tan(0)", 0, 2},
		{"1.5e1 * x", 2, 30},
		{"2*x + 1", 0.5, 2},
		{"x/4 - 1/2", 2, 0},
	}
	for _, tt := range tests {
		v, ok := integral.MakeNumericFunc(tt.expr)(tt.x)
		if assert.True(t, ok, tt.expr) {
			assert.InDelta(t, tt.want, v, 1e-12, tt.expr)
		}
	}
}

func TestMakeNumericFunc_Undefined(t *testing.T) {
	tests := []struct {
		expr string
		x    float64
	}{
		{"log(x)", -1},
		{"sqrt(x)", -1},
		{"1/x", 0},
		{"y + 1", 0},
		{"sinh(x)", 1},
		{"sin(x, x)", 1},
		{"2x", 1},
		{"x >", 1},
		{"x > 1", 2},
		{"", 0},
		{"exp(x)", 1000},
	}
	for _, tt := range tests {
		v, ok := integral.MakeNumericFunc(tt.expr)(tt.x)
		assert.False(t, ok, tt.expr)
		assert.Zero(t, v, tt.expr)
	}
}

func TestMakeNumericFunc_RejectsEvaluatorOperators(t *testing.T) {
	for _, expr := range []string{
		"x > 0 ? x : 0",
		"x % 3",
		"x&3",
		"x | 1",
		"x >> 1",
		"x == 3",
		"!x",
		"x ?? 1",
		"'a' + x",
		"[x]",
	} {
		v, ok := integral.MakeNumericFunc(expr)(3)
		assert.False(t, ok, expr)
		assert.Zero(t, v, expr)

		_, err := integral.ParseSymbolic(expr)
		assert.Error(t, err, expr)
	}
}

func TestFunc_Map(t *testing.T) {
	f := integral.MakeNumericFunc("1/x")
	out := f.Map([]float64{-1, 0, 2}, -7)
	assert.Equal(t, []float64{-1, -7, 0.5}, out)

	nan := f.Map([]float64{0}, math.NaN())
	require.Len(t, nan, 1)
	assert.True(t, math.IsNaN(nan[0]))
}

func TestMakeNumericFunc_Concurrent(t *testing.T) {
	f := integral.MakeNumericFunc("x**2 + sin(x)")
	done := make(chan float64)
	for i := 0; i < 8; i++ {
		go func(x float64) {
			v, _ := f(x)
			done <- v - x*x - math.Sin(x)
		}(float64(i))
	}
	for i := 0; i < 8; i++ {
		assert.InDelta(t, 0, <-done, 1e-12)
	}
}
