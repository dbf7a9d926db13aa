package cas

import "sort"

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	others := []Expr{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
		} else {
			others = append(others, f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}

	// exp(a) * exp(b) -> exp(a + b)
	var expArgs []Expr
	rest := make([]Expr, 0, len(others))
	for _, f := range others {
		if fn, ok := f.(*Func); ok && fn.name == fnExp {
			expArgs = append(expArgs, fn.arg)
			continue
		}
		rest = append(rest, f)
	}
	if len(expArgs) > 1 {
		return MulOf(append([]Expr{coeff, ExpOf(AddOf(expArgs...))}, rest...)...)
	}

	// Merge powers of a common base: x * x**2 -> x**3, x * x**-1 -> 1.
	exps := map[string][]Expr{}
	bases := map[string]Expr{}
	first := map[string]Expr{}
	order := []string{}
	for _, f := range others {
		base, exp := asPower(f)
		key := base.String()
		if _, seen := bases[key]; !seen {
			order = append(order, key)
			bases[key] = base
			first[key] = f
		}
		exps[key] = append(exps[key], exp)
	}
	merged := make([]Expr, 0, len(order))
	resimplify := false
	for _, key := range order {
		f := first[key]
		if len(exps[key]) > 1 {
			f = PowOf(bases[key], AddOf(exps[key]...))
		}
		switch f.(type) {
		case *Num, *Mul:
			resimplify = true
		}
		merged = append(merged, f)
	}
	if resimplify {
		return MulOf(append([]Expr{coeff}, merged...)...)
	}
	if len(merged) == 0 {
		return coeff
	}

	if len(merged) == 1 {
		if sum, ok := merged[0].(*Add); ok && !coeff.IsOne() {
			terms := make([]Expr, len(sum.terms))
			for i, t := range sum.terms {
				terms[i] = MulOf(coeff, t)
			}
			return AddOf(terms...)
		}
	}

	sortFactors(merged)
	if coeff.IsOne() {
		if len(merged) == 1 {
			return merged[0]
		}
		return &Mul{factors: merged}
	}
	return &Mul{factors: append([]Expr{coeff}, merged...)}
}

func asPower(e Expr) (base, exp Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

// sortFactors puts constants first, then powers of symbols, then everything
// else, each group ordered by printed form.
func sortFactors(factors []Expr) {
	type keyed struct {
		e     Expr
		group int
		key   string
	}
	ks := make([]keyed, len(factors))
	for i, e := range factors {
		ks[i] = keyed{e: e, group: factorGroup(e), key: e.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].group != ks[j].group {
			return ks[i].group < ks[j].group
		}
		return ks[i].key < ks[j].key
	})
	for i := range ks {
		factors[i] = ks[i].e
	}
}

func factorGroup(e Expr) int {
	base, _ := asPower(e)
	switch base.(type) {
	case *Num, *Const:
		return 0
	case *Sym:
		return 1
	}
	return 2
}

func (m *Mul) split() (*Num, []Expr) {
	if c, ok := m.factors[0].(*Num); ok {
		return c, m.factors[1:]
	}
	return N(1), m.factors
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	c, rest := m.split()
	return productString(c, rest)
}

func (m *Mul) LaTeX() string {
	if len(m.factors) == 0 {
		return "1"
	}
	c, rest := m.split()
	return productLaTeX(c, rest)
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		if len(others) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, others...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Evalf() (float64, bool) {
	acc := 1.0
	for _, f := range m.factors {
		v, ok := f.Evalf()
		if !ok {
			return 0, false
		}
		acc *= v
	}
	return finite(acc)
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return m.factors }
