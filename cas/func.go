package cas

import (
	"math"
	"sort"
)

// ============================================================
// Func: named function applications
// ============================================================

const (
	fnSin  = "sin"
	fnCos  = "cos"
	fnTan  = "tan"
	fnExp  = "exp"
	fnLog  = "log"
	fnAbs  = "abs"
	fnAtan = "atan"
	fnSign = "sign"
)

var knownFuncs = map[string]func(Expr) Expr{
	fnSin:  SinOf,
	fnCos:  CosOf,
	fnTan:  TanOf,
	fnExp:  ExpOf,
	fnLog:  LogOf,
	fnAbs:  AbsOf,
	fnAtan: AtanOf,
	fnSign: SignOf,
}

// FuncNames lists the function names the kernel knows, sorted.
func FuncNames() []string {
	names := make([]string, 0, len(knownFuncs))
	for name := range knownFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply builds name(arg) for a known function name.
func Apply(name string, arg Expr) (Expr, bool) {
	ctor, ok := knownFuncs[name]
	if !ok {
		return nil, false
	}
	return ctor(arg), true
}

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr  { return funcOf(fnSin, arg).Simplify() }
func CosOf(arg Expr) Expr  { return funcOf(fnCos, arg).Simplify() }
func TanOf(arg Expr) Expr  { return funcOf(fnTan, arg).Simplify() }
func ExpOf(arg Expr) Expr  { return funcOf(fnExp, arg).Simplify() }
func LogOf(arg Expr) Expr  { return funcOf(fnLog, arg).Simplify() }
func AbsOf(arg Expr) Expr  { return funcOf(fnAbs, arg).Simplify() }
func AtanOf(arg Expr) Expr { return funcOf(fnAtan, arg).Simplify() }
func SignOf(arg Expr) Expr { return funcOf(fnSign, arg).Simplify() }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	switch f.name {
	case fnSin:
		if isZero(arg) {
			return N(0)
		}
		if inner, ok := negated(arg); ok {
			return MulOf(N(-1), SinOf(inner))
		}
		if k, ok := piMultiple(arg); ok {
			if j, ok := numMul(k, N(2)).Int64(); ok {
				switch {
				case j%2 == 0:
					return N(0)
				case (j%4+4)%4 == 1:
					return N(1)
				default:
					return N(-1)
				}
			}
		}
	case fnCos:
		if isZero(arg) {
			return N(1)
		}
		if inner, ok := negated(arg); ok {
			return CosOf(inner)
		}
		if k, ok := piMultiple(arg); ok {
			if j, ok := numMul(k, N(2)).Int64(); ok {
				switch {
				case j%2 != 0:
					return N(0)
				case (j/2)%2 == 0:
					return N(1)
				default:
					return N(-1)
				}
			}
		}
	case fnTan:
		if isZero(arg) {
			return N(0)
		}
		if inner, ok := negated(arg); ok {
			return MulOf(N(-1), TanOf(inner))
		}
		if k, ok := piMultiple(arg); ok && k.IsInteger() {
			return N(0)
		}
	case fnExp:
		if isZero(arg) {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == fnLog {
			return inner.arg
		}
	case fnLog:
		if isNumEqual(arg, 1) {
			return N(0)
		}
		if arg.Equal(E) {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == fnExp {
			return inner.arg
		}
	case fnAbs:
		switch v := arg.(type) {
		case *Num:
			return numAbs(v)
		case *Const:
			return v
		case *Func:
			if v.name == fnExp || v.name == fnAbs {
				return v
			}
		case *Pow:
			if n, ok := v.exp.(*Num); ok {
				if k, isInt := n.Int64(); (isInt && k%2 == 0) || isHalf(n) {
					return v
				}
			}
		case *Mul:
			if c, rest := v.split(); c.IsPositive() && !c.IsOne() {
				return MulOf(c, AbsOf(productOf(rest)))
			}
		}
		if inner, ok := negated(arg); ok {
			return AbsOf(inner)
		}
	case fnAtan:
		if isZero(arg) {
			return N(0)
		}
		if inner, ok := negated(arg); ok {
			return MulOf(N(-1), AtanOf(inner))
		}
	case fnSign:
		switch v := arg.(type) {
		case *Num:
			return N(int64(v.val.Sign()))
		case *Const:
			return N(1)
		}
		if inner, ok := negated(arg); ok {
			return MulOf(N(-1), SignOf(inner))
		}
	}
	return &Func{name: f.name, arg: arg}
}

// negated reports whether e carries a negative leading coefficient and
// returns -e when it does.
func negated(e Expr) (Expr, bool) {
	switch v := e.(type) {
	case *Num:
		if v.IsNegative() {
			return numNeg(v), true
		}
	case *Mul:
		if c, rest := v.split(); c.IsNegative() {
			return MulOf(append([]Expr{numNeg(c)}, rest...)...), true
		}
	}
	return nil, false
}

// piMultiple returns k when e is exactly k*pi.
func piMultiple(e Expr) (*Num, bool) {
	switch v := e.(type) {
	case *Const:
		if v.Equal(Pi) {
			return N(1), true
		}
	case *Mul:
		if len(v.factors) == 2 && v.factors[1].Equal(Pi) {
			if c, ok := v.factors[0].(*Num); ok {
				return c, true
			}
		}
	}
	return nil, false
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case fnSin, fnCos, fnTan, fnExp, fnLog:
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case fnAtan:
		return "\\arctan\\left(" + f.arg.LaTeX() + "\\right)"
	case fnAbs:
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	case fnSign:
		return "\\operatorname{sign}\\left(" + f.arg.LaTeX() + "\\right)"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	var outer Expr
	switch f.name {
	case fnSin:
		outer = CosOf(f.arg)
	case fnCos:
		outer = MulOf(N(-1), SinOf(f.arg))
	case fnTan:
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case fnExp:
		outer = ExpOf(f.arg)
	case fnLog:
		// d/dx log|v| = v'/v, which keeps the derivative free of sign().
		if inner, ok := f.arg.(*Func); ok && inner.name == fnAbs {
			return MulOf(inner.arg.Diff(varName), PowOf(inner.arg, N(-1)))
		}
		outer = PowOf(f.arg, N(-1))
	case fnAbs:
		outer = SignOf(f.arg)
	case fnAtan:
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1))
	case fnSign:
		return N(0)
	default:
		panic("cas: unknown function " + f.name)
	}
	return MulOf(outer, du)
}

func (f *Func) Evalf() (float64, bool) {
	v, ok := f.arg.Evalf()
	if !ok {
		return 0, false
	}
	return evalFunc(f.name, v)
}

func evalFunc(name string, v float64) (float64, bool) {
	switch name {
	case fnSin:
		return finite(math.Sin(v))
	case fnCos:
		return finite(math.Cos(v))
	case fnTan:
		return finite(math.Tan(v))
	case fnExp:
		return finite(math.Exp(v))
	case fnLog:
		if v <= 0 {
			return 0, false
		}
		return finite(math.Log(v))
	case fnAbs:
		return math.Abs(v), true
	case fnAtan:
		return math.Atan(v), true
	case fnSign:
		switch {
		case v > 0:
			return 1, true
		case v < 0:
			return -1, true
		}
		return 0, true
	}
	return 0, false
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
