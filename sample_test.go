package integral_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	integral "github.com/JpHernandez277/Pendientes-John"
)

// ============================================================
// Sampler tests
// ============================================================

func TestSample_DefaultDomain(t *testing.T) {
	ps := integral.Sample("x**2", integral.SampleOptions{})
	require.Len(t, ps.X, 1000)
	require.Len(t, ps.Y, 1000)
	assert.Equal(t, -10.0, ps.X[0])
	assert.Equal(t, 10.0, ps.X[999])
	assert.Equal(t, 1000, ps.Defined())
	assert.Nil(t, ps.Fill)
	for i, y := range ps.Y {
		assert.False(t, math.IsNaN(y), "NaN at %d", i)
	}
}

func TestSample_PaddedDomainAndFill(t *testing.T) {
	ps := integral.Sample("x", integral.SampleOptions{Bounds: &integral.Bounds{A: 0, B: 10}, Fill: true})
	assert.InDelta(t, -2.0, ps.X[0], 1e-12)
	assert.InDelta(t, 12.0, ps.X[len(ps.X)-1], 1e-12)
	require.NotNil(t, ps.Fill)
	require.Len(t, ps.Fill.X, 200)
	assert.Equal(t, 0.0, ps.Fill.X[0])
	assert.Equal(t, 10.0, ps.Fill.X[199])
	assert.Equal(t, ps.Fill.X, ps.Fill.Y)
}

func TestSample_FillNeedsBounds(t *testing.T) {
	ps := integral.Sample("x", integral.SampleOptions{Fill: true})
	assert.Nil(t, ps.Fill)
	ps = integral.Sample("x", integral.SampleOptions{Bounds: &integral.Bounds{A: 0, B: 1}})
	assert.Nil(t, ps.Fill)
}

func TestSample_UndefinedPolicies(t *testing.T) {
	ps := integral.Sample("log(x)", integral.SampleOptions{Bounds: &integral.Bounds{A: -1, B: 1}, Fill: true})
	assert.True(t, math.IsNaN(ps.Y[0]), "curve gaps are NaN")
	assert.Equal(t, 0.0, ps.Fill.Y[0], "fill substitutes 0")
	assert.Less(t, ps.Defined(), len(ps.X))
	for _, y := range ps.Fill.Y {
		assert.False(t, math.IsNaN(y))
	}
}

func TestSample_InvalidExpression(t *testing.T) {
	ps := integral.Sample("x +", integral.SampleOptions{})
	assert.Len(t, ps.X, 1000)
	assert.Zero(t, ps.Defined())
}

func TestPlotSeries_MarshalJSON_NullForNaN(t *testing.T) {
	ps := &integral.PlotSeries{X: []float64{-1, 0, 1}, Y: []float64{1, math.NaN(), 1}}
	b, err := json.Marshal(ps)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":[-1,0,1],"y":[1,null,1]}`, string(b))

	ps.Fill = &integral.FillSeries{X: []float64{0}, Y: []float64{0}}
	b, err = json.Marshal(ps)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":[-1,0,1],"y":[1,null,1],"fill":{"x":[0],"y":[0]}}`, string(b))
}
