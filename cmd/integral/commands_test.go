package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDefiniteCommand_Symbolic(t *testing.T) {
	out, err := execute(t, "definite", "x^2", "--a", "0", "--b", "3", "--method", "sympy")
	require.NoError(t, err)
	assert.Contains(t, out, "∫[0, 3] x**2 dx = 9.000000 (exact: 9)")
	assert.Contains(t, out, "mean value:    3.000000")
	assert.Contains(t, out, "net area:      positive")
}

func TestDefiniteCommand_NumericJSON(t *testing.T) {
	out, err := execute(t, "definite", "sin(x)", "--a", "-1", "--b", "0", "--json")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "numeric", got["method"])
	assert.Equal(t, "negative", got["sign"])
	assert.InDelta(t, -0.459697694, got["value"].(float64), 1e-8)
	assert.NotContains(t, got, "exact")
}

func TestDefiniteCommand_Latex(t *testing.T) {
	out, err := execute(t, "definite", "x", "--a", "0", "--b", "2", "--latex")
	require.NoError(t, err)
	assert.Contains(t, out, `\int_{0}^{2} x \, dx = 2.000000`)
}

func TestDefiniteCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing bound", []string{"definite", "x", "--a", "0"}, `required flag(s) "b" not set`},
		{"reversed bounds", []string{"definite", "x", "--a", "2", "--b", "1"}, "lower bound must be less than upper bound"},
		{"bad method", []string{"definite", "x", "--a", "0", "--b", "1", "--method", "monte-carlo"}, "unknown method"},
		{"parse", []string{"definite", "x +* 2", "--a", "0", "--b", "1", "--method", "symbolic"}, "invalid expression"},
		{"domain", []string{"definite", "x +* 2", "--a", "0", "--b", "1"}, "integrand undefined on interval"},
		{"no closed form", []string{"definite", "1/x", "--a", "-1", "--b", "1", "--method", "symbolic"}, "no closed-form antiderivative"},
		{"bad tolerance", []string{"definite", "x", "--a", "0", "--b", "1", "--abs-tol=-1"}, "invalid configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestIndefiniteCommand_Verify(t *testing.T) {
	out, err := execute(t, "indefinite", "cos(x)", "--verify", "--latex")
	require.NoError(t, err)
	assert.Contains(t, out, "∫ cos(x) dx = sin(x) + C")
	assert.Contains(t, out, "d/dx: cos(x)")
	assert.Contains(t, out, `\frac{d}{dx}`)
}

func TestIndefiniteCommand_Tree(t *testing.T) {
	out, err := execute(t, "indefinite", "cos(x)", "--tree")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"type":"func","name":"sin","arg":{"type":"sym","name":"x"}}`, lines[1])
}

func TestIndefiniteCommand_Rejects(t *testing.T) {
	_, err := execute(t, "indefinite", "atan(x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid expression")
}

func TestSampleCommand_Text(t *testing.T) {
	out, err := execute(t, "sample", "1/x")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "# 1000 points"))
	assert.Len(t, lines, 1001)
	assert.Equal(t, "-10\t-0.1", lines[1])
}

func TestSampleCommand_FillJSON(t *testing.T) {
	out, err := execute(t, "sample", "x", "--a", "0", "--b", "1", "--fill", "--json")
	require.NoError(t, err)

	var got struct {
		X    []float64 `json:"x"`
		Fill struct {
			X []float64 `json:"x"`
		} `json:"fill"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.X, 1000)
	assert.InDelta(t, -0.2, got.X[0], 1e-12)
	assert.Len(t, got.Fill.X, 200)
}

func TestSampleCommand_FillNeedsBothBounds(t *testing.T) {
	_, err := execute(t, "sample", "x", "--a", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lower bound must be less than upper bound")
}

func TestExamplesCommand(t *testing.T) {
	out, err := execute(t, "examples")
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")
	assert.Regexp(t, `trigonometric\s+sin\(x\)\s+-cos\(x\) \+ C`, out)
}

func TestRootCommand_ConfigEnv(t *testing.T) {
	t.Setenv("INTEGRAL_QUADRATURE_MAX_SUBDIVISIONS", "1")
	_, err := execute(t, "definite", "sin(50*x)", "--a", "0", "--b", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quadrature did not converge")
}
