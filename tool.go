package integral

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/JpHernandez277/Pendientes-John/cas"
)

// ============================================================
// Tool interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	// Kind is the ErrorKind of a failed integration.
	Kind string `json:"kind,omitempty"`
}

// HandleToolCall dispatches req with the default engine.
func HandleToolCall(req ToolRequest) ToolResponse {
	return NewEngine().HandleToolCall(req)
}

func (en *Engine) HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", errors.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", errors.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, errors.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, errors.Errorf("param %s must be a number", key)
		}
		return f, nil
	}
	getBool := func(key string) (bool, error) {
		v, ok := req.Params[key]
		if !ok {
			return false, nil
		}
		b, ok := v.(bool)
		if !ok {
			return false, errors.Errorf("param %s must be a boolean", key)
		}
		return b, nil
	}
	// getExpr reads "expr", or rebuilds it from a "tree" as returned by
	// indefinite_integral.
	getExpr := func() (string, error) {
		raw, hasTree := req.Params["tree"]
		if _, hasExpr := req.Params["expr"]; hasExpr || !hasTree {
			return getString("expr")
		}
		var (
			e   cas.Expr
			err error
		)
		switch t := raw.(type) {
		case map[string]interface{}:
			e, err = cas.FromJSON(t)
		case string:
			e, err = cas.ParseJSON(t)
		default:
			return "", errors.New("param tree must be an object or a JSON string")
		}
		if err != nil {
			return "", errors.Wrap(err, "invalid tree")
		}
		return e.String(), nil
	}
	getBounds := func() (float64, float64, error) {
		a, err := getNumber("a")
		if err != nil {
			return 0, 0, err
		}
		b, err := getNumber("b")
		if err != nil {
			return 0, 0, err
		}
		return a, b, ValidateBounds(a, b)
	}
	fail := func(err error) ToolResponse {
		return ToolResponse{Error: err.Error(), Kind: ErrorKind(err)}
	}

	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}

	switch req.Tool {
	case "normalize":
		expr, err := getString("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		norm := Normalize(expr)
		return ToolResponse{Result: norm, String: norm}

	case "definite_integral":
		expr, err := getExpr()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		a, b, err := getBounds()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		method := MethodNumeric
		if _, ok := req.Params["method"]; ok {
			name, err := getString("method")
			if err != nil {
				return ToolResponse{Error: err.Error()}
			}
			if method, err = ParseMethod(name); err != nil {
				return ToolResponse{Error: err.Error()}
			}
		}
		res, err := en.DefiniteIntegral(expr, a, b, method)
		if err != nil {
			return fail(err)
		}
		resp := ToolResponse{Result: res, String: DefiniteText(Normalize(expr), res)}
		if f, err := ParseSymbolic(expr); err == nil {
			resp.LaTeX = DefiniteLaTeX(f, a, b, res.Value)
		}
		return resp

	case "indefinite_integral":
		expr, err := getExpr()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		verify, err := getBool("verify")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		f, err := ParseSymbolic(expr)
		if err != nil {
			return fail(err)
		}
		anti, err := IndefiniteIntegral(expr)
		if err != nil {
			return fail(err)
		}
		result := map[string]interface{}{
			"antiderivative": anti.String(),
			"tree":           cas.ToMap(anti),
		}
		latex := IndefiniteLaTeX(f, anti)
		if verify {
			if deriv, ok := Verify(anti); ok {
				result["derivative"] = deriv.String()
				latex += `\quad ` + VerifyLaTeX(anti, deriv)
			}
		}
		return ToolResponse{Result: result, LaTeX: latex, String: IndefiniteText(f, anti)}

	case "sample":
		expr, err := getExpr()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		var opts SampleOptions
		_, hasA := req.Params["a"]
		_, hasB := req.Params["b"]
		if hasA || hasB {
			a, b, err := getBounds()
			if err != nil {
				return ToolResponse{Error: err.Error()}
			}
			opts.Bounds = &Bounds{A: a, B: b}
		}
		if opts.Fill, err = getBool("fill"); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		ps := Sample(expr, opts)
		return ToolResponse{
			Result: ps,
			String: fmt.Sprintf("%d points, %d defined", len(ps.X), ps.Defined()),
		}

	case "examples":
		return ToolResponse{Result: Examples()}

	case "tool_spec":
		var spec interface{}
		_ = json.Unmarshal([]byte(ToolSpec()), &spec)
		return ToolResponse{Result: spec}

	default:
		return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
	}
}

// ValidateBounds rejects bounds the engine does not accept: both must be
// finite and a < b.
func ValidateBounds(a, b float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return errors.Errorf("bounds must be finite, got [%g, %g]", a, b)
	}
	if a >= b {
		return errors.Errorf("lower bound must be less than upper bound, got a=%g b=%g", a, b)
	}
	return nil
}

// ============================================================
// Tool spec
// ============================================================

func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("normalize", "Rewrite ^ as ** and ln as log", []string{"expr"},
			map[string]string{"expr": "string"}),
		ts("definite_integral", "Integrate f(x), given as expr or tree, over [a, b]. method is numeric (default) or symbolic", []string{"a", "b"},
			map[string]string{"expr": "string", "tree": "object", "a": "number", "b": "number", "method": "string"}),
		ts("indefinite_integral", "Antiderivative of f(x), given as expr or tree; verify adds its derivative", []string{},
			map[string]string{"expr": "string", "tree": "object", "verify": "boolean"}),
		ts("sample", "Plot data for expr or tree: 1000 curve points over [a-20%, b+20%] or [-10, 10], fill adds 200 points on [a, b]", []string{},
			map[string]string{"expr": "string", "tree": "object", "a": "number", "b": "number", "fill": "boolean"}),
		ts("examples", "Catalog of sample integrands and their antiderivatives", []string{}, map[string]string{}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
