package cas

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON trees
// ============================================================

// A tree node is an object with a "type" of num, sym, const, add, mul, pow
// or func:
//
//	{"type":"pow","base":{"type":"sym","name":"x"},"exp":{"type":"num","value":"1/2"}}

// ToJSON encodes e as a JSON tree.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ToMap returns the JSON tree of e as plain maps, for embedding in larger
// documents.
func ToMap(e Expr) map[string]interface{} { return e.toJSON() }

// ParseJSON decodes a JSON tree produced by ToJSON.
func ParseJSON(s string) (Expr, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(data)
}

// FromJSON rebuilds an expression from a decoded tree. Nodes go through the
// simplifying constructors, so the result is canonical.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	raw, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := raw.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}
	n := node{typ: typ, data: data}

	switch typ {
	case "num":
		s, err := n.str("value")
		if err != nil {
			return nil, err
		}
		v, err := ParseNum(s)
		if err != nil {
			return nil, fmt.Errorf("num: %w", err)
		}
		return v, nil
	case "sym":
		name, err := n.str("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil
	case "const":
		name, err := n.str("name")
		if err != nil {
			return nil, err
		}
		if c := ConstNamed(name); c != nil {
			return c, nil
		}
		return nil, fmt.Errorf("unknown constant: %s", name)
	case "add", "mul":
		field := "terms"
		if typ == "mul" {
			field = "factors"
		}
		args, err := n.list(field)
		if err != nil {
			return nil, err
		}
		if typ == "add" {
			return AddOf(args...), nil
		}
		return MulOf(args...), nil
	case "pow":
		base, err := n.child("base")
		if err != nil {
			return nil, err
		}
		exp, err := n.child("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	case "func":
		name, err := n.str("name")
		if err != nil {
			return nil, err
		}
		arg, err := n.child("arg")
		if err != nil {
			return nil, err
		}
		if e, ok := Apply(name, arg); ok {
			return e, nil
		}
		return nil, fmt.Errorf("unknown function: %s", name)
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// node reads the fields of one tree object; errors name the node type.
type node struct {
	typ  string
	data map[string]interface{}
}

func (n node) field(name string) (interface{}, error) {
	v, ok := n.data[name]
	if !ok {
		return nil, fmt.Errorf("%s: missing %q", n.typ, name)
	}
	return v, nil
}

func (n node) str(name string) (string, error) {
	v, err := n.field(name)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", fmt.Errorf("%s: %q must be a non-empty string", n.typ, name)
}

func (n node) child(name string) (Expr, error) {
	v, err := n.field(name)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: %q must be an object", n.typ, name)
	}
	e, err := FromJSON(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", n.typ, name, err)
	}
	return e, nil
}

func (n node) list(name string) ([]Expr, error) {
	v, err := n.field(name)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: %q must be an array", n.typ, name)
	}
	out := make([]Expr, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q[%d] must be an object", n.typ, name, i)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s[%d]: %w", n.typ, name, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
