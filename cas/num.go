package cas

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) *Num {
	if q == 0 {
		panic("cas: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat converts f through its shortest decimal form, so 0.1 becomes 1/10
// rather than the nearest binary fraction.
func NFloat(f float64) *Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("cas: NFloat of a non-finite value")
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		r = new(big.Rat).SetFloat64(f)
	}
	return &Num{val: r}
}

// ParseNum reads a decimal literal such as "3", "2.5" or "1e-3" exactly.
func ParseNum(s string) (*Num, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &Num{val: r}, nil
}

func (n *Num) Simplify() Expr         { return n }
func (n *Num) Sub(string, Expr) Expr  { return n }
func (n *Num) Diff(string) Expr       { return N(0) }
func (n *Num) Evalf() (float64, bool) { return finite(n.Float64()) }
func (n *Num) Equal(other Expr) bool  { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string       { return "num" }
func (n *Num) Float64() float64       { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool           { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool            { return n.val.Cmp(new(big.Rat).SetInt64(1)) == 0 }
func (n *Num) IsNegOne() bool         { return n.val.Cmp(new(big.Rat).SetInt64(-1)) == 0 }
func (n *Num) IsInteger() bool        { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat          { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool       { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool       { return n.val.Sign() < 0 }

// Int64 returns the value when it is an integer that fits in an int64.
func (n *Num) Int64() (int64, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	return n.val.Num().Int64(), true
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

var (
	oneInt = big.NewInt(1)
	twoInt = big.NewInt(2)
)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("cas: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numAbs(a *Num) *Num {
	r := new(big.Rat).Set(a.val)
	if r.Sign() < 0 {
		r.Neg(r)
	}
	return &Num{val: r}
}
func numCmp(a, b *Num) int { return a.val.Cmp(b.val) }

// numPowInt raises b to an integer power exactly. b must be non-zero when e < 0.
func numPowInt(b *Num, e int64) *Num {
	neg := e < 0
	if neg {
		e = -e
	}
	num := new(big.Int).Exp(b.val.Num(), big.NewInt(e), nil)
	den := new(big.Int).Exp(b.val.Denom(), big.NewInt(e), nil)
	r := new(big.Rat).SetFrac(num, den)
	if neg {
		if r.Sign() == 0 {
			panic("cas: division by zero")
		}
		r.Inv(r)
	}
	return &Num{val: r}
}

// numSqrt returns the exact square root of a non-negative perfect square.
func numSqrt(n *Num) (*Num, bool) {
	if n.val.Sign() < 0 {
		return nil, false
	}
	p, q := n.val.Num(), n.val.Denom()
	sp, sq := new(big.Int).Sqrt(p), new(big.Int).Sqrt(q)
	if new(big.Int).Mul(sp, sp).Cmp(p) != 0 || new(big.Int).Mul(sq, sq).Cmp(q) != 0 {
		return nil, false
	}
	return &Num{val: new(big.Rat).SetFrac(sp, sq)}, true
}
