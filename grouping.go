package integral

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ============================================================
// Operator grouping for the numeric evaluator
// ============================================================

// groupOperators rewrites expr with a parenthesis around every operator
// application, so govaluate applies the usual precedence: ** binds tighter
// than a leading minus and associates to the right ("-x**2" is -(x**2),
// "2**3**2" is 2**(3**2)). Number literals are rewritten in plain decimal
// form. Text outside the expression grammar, including govaluate's own
// comparison, ternary, modulo and bitwise operators, is rejected.
func groupOperators(expr string) (string, error) {
	toks, ok := splitTokens(expr)
	if !ok {
		return "", errors.Errorf("unsupported character in %q", expr)
	}
	if len(toks) == 0 {
		return "", errors.New("empty expression")
	}
	g := &grouper{toks: toks}
	out, ok := g.sum()
	if !ok || g.pos != len(g.toks) {
		return "", errors.Errorf("malformed expression %q", expr)
	}
	return out, nil
}

func splitTokens(s string) ([]string, bool) {
	var toks []string
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '*' && i+1 < len(s) && s[i+1] == '*':
			toks = append(toks, "**")
			i += 2
		case strings.ContainsRune("+-*/(),", c):
			toks = append(toks, string(c))
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			for j < len(s) && (unicode.IsDigit(rune(s[j])) || s[j] == '.') {
				j++
			}
			if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
				k := j + 1
				if k < len(s) && (s[k] == '+' || s[k] == '-') {
					k++
				}
				if k < len(s) && unicode.IsDigit(rune(s[k])) {
					for k < len(s) && unicode.IsDigit(rune(s[k])) {
						k++
					}
					j = k
				}
			}
			v, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, false
			}
			toks = append(toks, strconv.FormatFloat(v, 'f', -1, 64))
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		default:
			return nil, false
		}
	}
	return toks, true
}

type grouper struct {
	toks []string
	pos  int
}

func (g *grouper) peek() string {
	if g.pos < len(g.toks) {
		return g.toks[g.pos]
	}
	return ""
}

func (g *grouper) next() string {
	t := g.peek()
	g.pos++
	return t
}

func (g *grouper) sum() (string, bool) {
	left, ok := g.product()
	for ok && (g.peek() == "+" || g.peek() == "-") {
		op := g.next()
		var right string
		if right, ok = g.product(); ok {
			left = "(" + left + " " + op + " " + right + ")"
		}
	}
	return left, ok
}

func (g *grouper) product() (string, bool) {
	left, ok := g.unary()
	for ok && (g.peek() == "*" || g.peek() == "/") {
		op := g.next()
		var right string
		if right, ok = g.unary(); ok {
			left = "(" + left + " " + op + " " + right + ")"
		}
	}
	return left, ok
}

func (g *grouper) unary() (string, bool) {
	switch g.peek() {
	case "-":
		g.next()
		operand, ok := g.unary()
		return "(-" + operand + ")", ok
	case "+":
		g.next()
		return g.unary()
	}
	return g.power()
}

func (g *grouper) power() (string, bool) {
	base, ok := g.atom()
	if !ok || g.peek() != "**" {
		return base, ok
	}
	g.next()
	exp, ok := g.unary()
	return "(" + base + " ** " + exp + ")", ok
}

func (g *grouper) atom() (string, bool) {
	t := g.next()
	switch {
	case t == "(":
		inner, ok := g.sum()
		if !ok || g.next() != ")" {
			return "", false
		}
		return "(" + inner + ")", true
	case t == "" || strings.Contains("+-*/(),", t) || t == "**":
		return "", false
	case unicode.IsLetter(rune(t[0])) || t[0] == '_':
		if g.peek() != "(" {
			return t, true
		}
		g.next()
		var args []string
		if g.peek() != ")" {
			for {
				arg, ok := g.sum()
				if !ok {
					return "", false
				}
				args = append(args, arg)
				if g.peek() != "," {
					break
				}
				g.next()
			}
		}
		if g.next() != ")" {
			return "", false
		}
		return t + "(" + strings.Join(args, ", ") + ")", true
	}
	return t, true
}
