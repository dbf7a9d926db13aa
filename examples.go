package integral

// Example is a catalogued integrand with the antiderivative the engine
// produces for it.
type Example struct {
	Category       string `json:"category"`
	Expr           string `json:"expr"`
	Antiderivative string `json:"antiderivative"`
}

var examples = []Example{
	{"polynomial", "x**2", "x**3/3"},
	{"polynomial", "2*x + 1", "x**2 + x"},
	{"polynomial", "x**3 - 2*x**2 + x", "x**4/4 - 2*x**3/3 + x**2/2"},
	{"trigonometric", "sin(x)", "-cos(x)"},
	{"trigonometric", "cos(x)", "sin(x)"},
	{"trigonometric", "tan(x)", "-log(abs(cos(x)))"},
	{"exponential", "exp(x)", "exp(x)"},
	{"exponential", "1/x", "log(abs(x))"},
	{"exponential", "x*exp(x)", "x*exp(x) - exp(x)"},
	{"root", "sqrt(x)", "2*x**(3/2)/3"},
	{"root", "1/sqrt(x)", "2*sqrt(x)"},
}

// Examples returns the catalog of sample integrands.
func Examples() []Example {
	return append([]Example(nil), examples...)
}
