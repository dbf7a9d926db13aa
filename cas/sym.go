package cas

import "math"

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym               { return &Sym{name: name} }
func (s *Sym) Simplify() Expr          { return s }
func (s *Sym) String() string          { return s.name }
func (s *Sym) LaTeX() string           { return s.name }
func (s *Sym) Evalf() (float64, bool)  { return 0, false }
func (s *Sym) Equal(other Expr) bool   { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) exprType() string        { return "sym" }
func (s *Sym) Name() string            { return s.name }
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}
func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Const: named real constant
// ============================================================

type Const struct {
	name  string
	latex string
	val   float64
}

var (
	Pi = &Const{name: "pi", latex: "\\pi", val: math.Pi}
	E  = &Const{name: "e", latex: "e", val: math.E}
)

// ConstNamed returns the constant spelled name, or nil.
func ConstNamed(name string) *Const {
	switch name {
	case Pi.name:
		return Pi
	case E.name:
		return E
	}
	return nil
}

func (c *Const) Simplify() Expr         { return c }
func (c *Const) String() string         { return c.name }
func (c *Const) LaTeX() string          { return c.latex }
func (c *Const) Sub(string, Expr) Expr  { return c }
func (c *Const) Diff(string) Expr       { return N(0) }
func (c *Const) Evalf() (float64, bool) { return c.val, true }
func (c *Const) Equal(other Expr) bool  { o, ok := other.(*Const); return ok && c.name == o.name }
func (c *Const) exprType() string       { return "const" }
func (c *Const) Name() string           { return c.name }
func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "name": c.name}
}
