package integral

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ============================================================
// Plot data
// ============================================================

const (
	curvePoints   = 1000
	fillPoints    = 200
	domainPadding = 0.2

	defaultDomainLo = -10.0
	defaultDomainHi = 10.0
)

type Bounds struct {
	A, B float64
}

type SampleOptions struct {
	// Bounds widens the plotted domain around [A, B]; nil plots [-10, 10].
	Bounds *Bounds
	// Fill adds the region under the curve between the bounds.
	Fill bool
}

// PlotSeries is the sampled curve. Y is NaN where the function is undefined,
// which breaks the curve there.
type PlotSeries struct {
	X, Y []float64
	Fill *FillSeries
}

// FillSeries is the region under the curve. Undefined points are drawn at 0.
type FillSeries struct {
	X, Y []float64
}

// Sample evaluates expr for plotting. It never fails: an expression that
// cannot be evaluated yields an all-NaN curve.
func Sample(expr string, opts SampleOptions) *PlotSeries {
	f := MakeNumericFunc(expr)
	lo, hi := defaultDomainLo, defaultDomainHi
	if opts.Bounds != nil {
		pad := domainPadding * (opts.Bounds.B - opts.Bounds.A)
		lo, hi = opts.Bounds.A-pad, opts.Bounds.B+pad
	}
	xs := floats.Span(make([]float64, curvePoints), lo, hi)
	ps := &PlotSeries{X: xs, Y: f.Map(xs, math.NaN())}
	if opts.Bounds != nil && opts.Fill {
		fx := floats.Span(make([]float64, fillPoints), opts.Bounds.A, opts.Bounds.B)
		ps.Fill = &FillSeries{X: fx, Y: f.Map(fx, 0)}
	}
	return ps
}

// Defined counts the curve points where the function is defined.
func (p *PlotSeries) Defined() int {
	n := 0
	for _, y := range p.Y {
		if !math.IsNaN(y) {
			n++
		}
	}
	return n
}

// MarshalJSON writes undefined points as null.
func (p *PlotSeries) MarshalJSON() ([]byte, error) {
	type fill struct {
		X []float64 `json:"x"`
		Y []float64 `json:"y"`
	}
	out := struct {
		X    []float64  `json:"x"`
		Y    []*float64 `json:"y"`
		Fill *fill      `json:"fill,omitempty"`
	}{X: p.X, Y: nullable(p.Y)}
	if p.Fill != nil {
		out.Fill = &fill{X: p.Fill.X, Y: p.Fill.Y}
	}
	return json.Marshal(out)
}

func nullable(ys []float64) []*float64 {
	out := make([]*float64, len(ys))
	for i := range ys {
		if !math.IsNaN(ys[i]) && !math.IsInf(ys[i], 0) {
			out[i] = &ys[i]
		}
	}
	return out
}
