package integral

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// ============================================================
// Adaptive quadrature
// ============================================================

// Quadrature configures globally adaptive Gauss-Legendre integration. Each
// segment is estimated with a 21-point rule; the difference from a 10-point
// rule on the same segment is its error estimate.
type Quadrature struct {
	AbsTol          float64
	RelTol          float64
	MaxSubdivisions int
}

const (
	defaultTolerance       = 1.49e-8
	defaultMaxSubdivisions = 50

	fineNodes   = 21
	coarseNodes = 10
)

func DefaultQuadrature() Quadrature {
	return Quadrature{
		AbsTol:          defaultTolerance,
		RelTol:          defaultTolerance,
		MaxSubdivisions: defaultMaxSubdivisions,
	}
}

type segment struct {
	lo, hi float64
	value  float64
	abserr float64
	finite bool
}

func estimate(g func(float64) float64, lo, hi float64) segment {
	fine := quad.Fixed(g, lo, hi, fineNodes, nil, 0)
	coarse := quad.Fixed(g, lo, hi, coarseNodes, nil, 0)
	s := segment{lo: lo, hi: hi, value: fine, abserr: math.Abs(fine - coarse)}
	s.finite = !math.IsNaN(s.value) && !math.IsInf(s.value, 0) && !math.IsNaN(s.abserr) && !math.IsInf(s.abserr, 0)
	if !s.finite {
		s.abserr = math.Inf(1)
	}
	return s
}

// Integrate returns the integral of f over [a, b] and an estimate of its
// absolute error. Points where f is undefined make the enclosing segment's
// error infinite, so such segments are split first. It fails with
// ErrConvergence when MaxSubdivisions segments do not meet the tolerance and
// with ErrDomain when no segment has a finite estimate.
func (q Quadrature) Integrate(f Func, a, b float64) (value, abserr float64, err error) {
	g := func(x float64) float64 {
		if v, ok := f(x); ok {
			return v
		}
		return math.NaN()
	}
	limit := q.MaxSubdivisions
	if limit < 1 {
		limit = 1
	}

	segs := []segment{estimate(g, a, b)}
	values := make([]float64, 0, limit)
	errs := make([]float64, 0, limit)
	for {
		values, errs = values[:0], errs[:0]
		for _, s := range segs {
			values = append(values, s.value)
			errs = append(errs, s.abserr)
		}
		value, abserr = floats.Sum(values), floats.Sum(errs)
		if !math.IsInf(abserr, 0) && !math.IsNaN(value) && abserr <= math.Max(q.AbsTol, q.RelTol*math.Abs(value)) {
			return value, abserr, nil
		}
		if len(segs) >= limit {
			break
		}

		// Split the segment with the largest error.
		worst := floats.MaxIdx(errs)
		s := segs[worst]
		mid := s.lo + (s.hi-s.lo)/2
		if mid <= s.lo || mid >= s.hi {
			break
		}
		segs[worst] = estimate(g, s.lo, mid)
		segs = append(segs, estimate(g, mid, s.hi))
	}

	for _, s := range segs {
		if s.finite {
			return 0, 0, errors.Wrapf(ErrConvergence, "%d subdivisions on [%g, %g], error estimate %g",
				len(segs), a, b, abserr)
		}
	}
	return 0, 0, errors.Wrapf(ErrDomain, "no finite estimate on [%g, %g]", a, b)
}
