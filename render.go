package integral

import (
	"fmt"
	"strconv"

	"github.com/JpHernandez277/Pendientes-John/cas"
)

// ============================================================
// Rendering
// ============================================================

func formatBound(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// DefiniteLaTeX renders \int_{a}^{b} f \, dx = value, with the value to six
// decimals.
func DefiniteLaTeX(f cas.Expr, a, b, value float64) string {
	return fmt.Sprintf(`\int_{%s}^{%s} %s \, dx = %.6f`, formatBound(a), formatBound(b), f.LaTeX(), value)
}

// DefiniteText is the plain-text form of a definite result, including the
// error bound of a numeric result.
func DefiniteText(expr string, r *Result) string {
	s := fmt.Sprintf("∫[%s, %s] %s dx = %.6f", formatBound(r.Lower), formatBound(r.Upper), expr, r.Value)
	if r.Exact != nil {
		return s + " (exact: " + r.Exact.String() + ")"
	}
	return s + fmt.Sprintf(" ± %.2e", r.AbsError)
}

func IndefiniteLaTeX(f, anti cas.Expr) string {
	return fmt.Sprintf(`\int %s \, dx = %s + C`, f.LaTeX(), anti.LaTeX())
}

func IndefiniteText(f, anti cas.Expr) string {
	return fmt.Sprintf("∫ %s dx = %s + C", f, anti)
}

func VerifyLaTeX(anti, deriv cas.Expr) string {
	return fmt.Sprintf(`\frac{d}{dx}\left[%s\right] = %s`, anti.LaTeX(), deriv.LaTeX())
}
