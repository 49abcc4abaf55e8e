package calc

import "math"

type builtin struct {
	names []string
	arity int
	fn    func(args []float64) []float64
}

// builtinOps is the fixed native operator set. Operands arrive deepest
// first, so for a stack [.. a b] a binary fn sees (a, b).
var builtinOps = []builtin{
	{[]string{"+"}, 2, binary(func(a, b float64) float64 { return a + b })},
	{[]string{"-"}, 2, binary(func(a, b float64) float64 { return a - b })},
	{[]string{"*"}, 2, binary(func(a, b float64) float64 { return a * b })},
	{[]string{"/"}, 2, binary(func(a, b float64) float64 { return a / b })},
	{[]string{"^"}, 2, binary(math.Pow)},

	{[]string{"inv", "neg"}, 1, unary(func(a float64) float64 { return -a })},

	{[]string{"sin"}, 1, unary(math.Sin)},
	{[]string{"cos"}, 1, unary(math.Cos)},
	{[]string{"tan"}, 1, unary(math.Tan)},
	{[]string{"asin"}, 1, unary(math.Asin)},
	{[]string{"acos"}, 1, unary(math.Acos)},
	{[]string{"atan"}, 1, unary(math.Atan)},

	{[]string{"d2r"}, 1, unary(func(a float64) float64 { return a * math.Pi / 180 })},
	{[]string{"ln"}, 1, unary(math.Log)},
	{[]string{"sqrt"}, 1, unary(math.Sqrt)},
	{[]string{"cbrt"}, 1, unary(math.Cbrt)},

	{[]string{"swap"}, 2, func(args []float64) []float64 { return []float64{args[1], args[0]} }},

	{[]string{"pred"}, 1, unary(func(a float64) float64 { return a - 1 })},
	{[]string{"succ"}, 1, unary(func(a float64) float64 { return a + 1 })},

	{[]string{"pi"}, 0, func([]float64) []float64 { return []float64{math.Pi} }},
}

func unary(f func(float64) float64) func([]float64) []float64 {
	return func(args []float64) []float64 { return []float64{f(args[0])} }
}

func binary(f func(a, b float64) float64) func([]float64) []float64 {
	return func(args []float64) []float64 { return []float64{f(args[0], args[1])} }
}
