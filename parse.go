package integral

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/JpHernandez277/Pendientes-John/cas"
)

// Variable is the name of the integration variable.
const Variable = "x"

var identifier = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*`)

// symbolicNames is the vocabulary a user expression may use. It matches the
// numeric evaluator's allow-list.
var symbolicNames = map[string]bool{
	Variable: true, "pi": true, "e": true,
	"sin": true, "cos": true, "tan": true, "exp": true, "log": true, "sqrt": true, "abs": true,
}

// ParseSymbolic normalizes expr and parses it into a CAS tree in x. Names
// outside the evaluator vocabulary, syntax errors and empty input fail with
// ErrParse.
func ParseSymbolic(expr string) (e cas.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, err = nil, errors.Wrapf(ErrParse, "%q: %v", expr, r)
		}
	}()
	norm := Normalize(expr)
	for _, loc := range identifier.FindAllStringIndex(norm, -1) {
		if name := norm[loc[0]:loc[1]]; !symbolicNames[name] {
			return nil, errors.Wrapf(ErrParse, "%q: parse error at %d: unknown name %q", expr, loc[0], name)
		}
	}
	e, err = cas.Parse(norm, Variable)
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "%q: %v", expr, err)
	}
	return e, nil
}
