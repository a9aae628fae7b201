package optimizer

// MathTable returns the builtin forwarding table: the single-argument math
// functions of the source language, each forwarded to its C99 libm symbol.
// The runtime links libm, so a specialized call needs no support code.
func MathTable() []Descriptor {
	return []Descriptor{
		{Name: "abs", Symbol: "fabs", Arity: 1},
		{Name: "acos", Symbol: "acos", Arity: 1},
		{Name: "acosh", Symbol: "acosh", Arity: 1},
		{Name: "asin", Symbol: "asin", Arity: 1},
		{Name: "asinh", Symbol: "asinh", Arity: 1},
		{Name: "atan", Symbol: "atan", Arity: 1},
		{Name: "atanh", Symbol: "atanh", Arity: 1},
		{Name: "cbrt", Symbol: "cbrt", Arity: 1},
		{Name: "ceil", Symbol: "ceil", Arity: 1},
		{Name: "cos", Symbol: "cos", Arity: 1},
		{Name: "cosh", Symbol: "cosh", Arity: 1},
		{Name: "exp", Symbol: "exp", Arity: 1},
		{Name: "exp2", Symbol: "exp2", Arity: 1},
		{Name: "expm1", Symbol: "expm1", Arity: 1},
		{Name: "floor", Symbol: "floor", Arity: 1},
		{Name: "log", Symbol: "log", Arity: 1},
		{Name: "log10", Symbol: "log10", Arity: 1},
		{Name: "log1p", Symbol: "log1p", Arity: 1},
		{Name: "log2", Symbol: "log2", Arity: 1},
		{Name: "round", Symbol: "round", Arity: 1},
		{Name: "sin", Symbol: "sin", Arity: 1},
		{Name: "sinh", Symbol: "sinh", Arity: 1},
		{Name: "sqrt", Symbol: "sqrt", Arity: 1},
		{Name: "tan", Symbol: "tan", Arity: 1},
		{Name: "tanh", Symbol: "tanh", Arity: 1},
		{Name: "trunc", Symbol: "trunc", Arity: 1},
	}
}

// Default builds the registry every compilation run starts from. Project
// configuration may append descriptors before the registry is built; see
// the project package.
func Default() (*Registry, error) {
	return NewRegistry(MathTable()...)
}
