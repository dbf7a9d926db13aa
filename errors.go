package integral

import "github.com/pkg/errors"

// ============================================================
// Failure kinds
// ============================================================

var (
	// ErrParse reports text that is not a valid expression in x.
	ErrParse = errors.New("invalid expression")
	// ErrDomain reports an integrand that is undefined almost everywhere on
	// the interval.
	ErrDomain = errors.New("integrand undefined on interval")
	// ErrConvergence reports that adaptive quadrature ran out of subdivisions.
	ErrConvergence = errors.New("quadrature did not converge")
	// ErrNoClosedForm reports that no antiderivative was found or that it
	// cannot be evaluated over the requested interval.
	ErrNoClosedForm = errors.New("no closed-form antiderivative")
)

// ErrorKind names the failure kind of err for tool responses and metric
// labels: "parse", "domain", "convergence", "no_closed_form", "internal",
// or "" for a nil error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrDomain):
		return "domain"
	case errors.Is(err, ErrConvergence):
		return "convergence"
	case errors.Is(err, ErrNoClosedForm):
		return "no_closed_form"
	}
	return "internal"
}
