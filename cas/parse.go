package cas

import "fmt"

// ============================================================
// Parser (shunting-yard)
// ============================================================

type outQueue struct{ q []Expr }

func (o *outQueue) push(e Expr) { o.q = append(o.q, e) }
func (o *outQueue) size() int   { return len(o.q) }
func (o *outQueue) unsafePop() Expr {
	e := o.q[len(o.q)-1]
	o.q = o.q[:len(o.q)-1]
	return e
}

type operatorType int

const (
	opBinary operatorType = iota
	opPrefix
	opFunction
	opLeftParen
)

type operator struct {
	oType           operatorType
	precedence      int
	leftAssociative bool
	card            int
	pos             int
	apply           func(args []Expr) Expr
}

type opStack struct{ s []operator }

func (o *opStack) push(op operator) { o.s = append(o.s, op) }
func (o *opStack) size() int        { return len(o.s) }
func (o *opStack) unsafeTop() operator {
	return o.s[len(o.s)-1]
}
func (o *opStack) unsafePop() operator {
	op := o.s[len(o.s)-1]
	o.s = o.s[:len(o.s)-1]
	return op
}

var binaryOperators = map[tokenType]operator{
	tokPlus: {oType: opBinary, precedence: 1, leftAssociative: true, card: 2,
		apply: func(a []Expr) Expr { return AddOf(a[0], a[1]) }},
	tokMinus: {oType: opBinary, precedence: 1, leftAssociative: true, card: 2,
		apply: func(a []Expr) Expr { return AddOf(a[0], MulOf(N(-1), a[1])) }},
	tokMult: {oType: opBinary, precedence: 2, leftAssociative: true, card: 2,
		apply: func(a []Expr) Expr { return MulOf(a[0], a[1]) }},
	tokDivide: {oType: opBinary, precedence: 2, leftAssociative: true, card: 2,
		apply: func(a []Expr) Expr { return MulOf(a[0], PowOf(a[1], N(-1))) }},
	tokPower: {oType: opBinary, precedence: 4, leftAssociative: false, card: 2,
		apply: func(a []Expr) Expr { return PowOf(a[0], a[1]) }},
}

var negation = operator{oType: opPrefix, precedence: 3, card: 1,
	apply: func(a []Expr) Expr { return MulOf(N(-1), a[0]) }}

func functionOperator(name string, pos int) (operator, bool) {
	ctor, ok := knownFuncs[name]
	if name == "sqrt" {
		ctor, ok = SqrtOf, true
	}
	if !ok {
		return operator{}, false
	}
	return operator{oType: opFunction, card: 1, pos: pos,
		apply: func(a []Expr) Expr { return ctor(a[0]) }}, true
}

// Parse reads an expression in the grammar of String(): numbers, the
// variables in vars (default "x"), pi, e, + - * / **, unary signs,
// parentheses and calls of the known functions plus sqrt.
func Parse(input string, vars ...string) (Expr, error) {
	if len(vars) == 0 {
		vars = []string{"x"}
	}
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &ParseError{Pos: 0, Msg: "empty expression"}
	}

	output := &outQueue{}
	stack := &opStack{}
	expectOperand := true

	for i, t := range tokens {
		if !expectOperand {
			switch t.typ {
			case tokNumber, tokIdent, tokOParen:
				return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s %q, implicit multiplication is not supported", t.typ, t.value)}
			}
		}

		switch t.typ {
		case tokNumber:
			n, err := ParseNum(t.value)
			if err != nil {
				return nil, &ParseError{Pos: t.pos, Msg: err.Error()}
			}
			output.push(n)
			expectOperand = false

		case tokIdent:
			if i+1 < len(tokens) && tokens[i+1].typ == tokOParen {
				op, ok := functionOperator(t.value, t.pos)
				if !ok {
					return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unknown function %q", t.value)}
				}
				stack.push(op)
				continue
			}
			e, err := resolveName(t, vars)
			if err != nil {
				return nil, err
			}
			output.push(e)
			expectOperand = false

		case tokOParen:
			stack.push(operator{oType: opLeftParen, pos: t.pos})
			expectOperand = true

		case tokCParen:
			if expectOperand {
				return nil, &ParseError{Pos: t.pos, Msg: "unexpected ')'"}
			}
			for stack.size() > 0 && stack.unsafeTop().oType != opLeftParen {
				if err := popOperator(output, stack); err != nil {
					return nil, err
				}
			}
			if stack.size() == 0 {
				return nil, &ParseError{Pos: t.pos, Msg: "mismatched ')'"}
			}
			stack.unsafePop()
			if stack.size() > 0 && stack.unsafeTop().oType == opFunction {
				if err := popOperator(output, stack); err != nil {
					return nil, err
				}
			}

		default:
			if expectOperand {
				switch t.typ {
				case tokMinus:
					op := negation
					op.pos = t.pos
					stack.push(op)
					continue
				case tokPlus:
					continue
				}
				return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t.typ)}
			}
			op := binaryOperators[t.typ]
			op.pos = t.pos
			for stack.size() > 0 {
				top := stack.unsafeTop()
				if top.oType == opLeftParen || top.oType == opFunction {
					break
				}
				if top.precedence > op.precedence || (top.precedence == op.precedence && op.leftAssociative) {
					if err := popOperator(output, stack); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
			stack.push(op)
			expectOperand = true
		}
	}

	if expectOperand {
		return nil, &ParseError{Pos: len(input), Msg: "unexpected end of expression"}
	}
	for stack.size() > 0 {
		if stack.unsafeTop().oType == opLeftParen {
			return nil, &ParseError{Pos: stack.unsafeTop().pos, Msg: "mismatched '('"}
		}
		if err := popOperator(output, stack); err != nil {
			return nil, err
		}
	}
	if output.size() != 1 {
		return nil, &ParseError{Pos: 0, Msg: "malformed expression"}
	}
	return output.unsafePop(), nil
}

func resolveName(t token, vars []string) (Expr, error) {
	for _, v := range vars {
		if t.value == v {
			return S(v), nil
		}
	}
	if c := ConstNamed(t.value); c != nil {
		return c, nil
	}
	if _, ok := functionOperator(t.value, t.pos); ok {
		return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("function %q needs an argument list", t.value)}
	}
	return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unknown name %q", t.value)}
}

func popOperator(output *outQueue, stack *opStack) error {
	op := stack.unsafePop()
	if output.size() < op.card {
		return &ParseError{Pos: op.pos, Msg: "missing operand"}
	}
	args := make([]Expr, op.card)
	for i := op.card - 1; i >= 0; i-- {
		args[i] = output.unsafePop()
	}
	output.push(op.apply(args))
	return nil
}
