package ua

import (
	"fmt"
	"math"
)

type wordFunc func(e *Engine) error

var builtinWords = buildWords()

func buildWords() map[string]wordFunc {
	return map[string]wordFunc{
		// Pervasive arithmetic: scalars combine directly, a scalar and an
		// array broadcast, two arrays zip element by element.
		"+":   pervasive2("+", func(a, b float64) float64 { return a + b }),
		"-":   pervasive2("-", func(a, b float64) float64 { return a - b }),
		"*":   pervasive2("*", func(a, b float64) float64 { return a * b }),
		"/":   pervasive2("/", func(a, b float64) float64 { return a / b }),
		"pow": pervasive2("pow", math.Pow),
		"mod": pervasive2("mod", math.Mod),
		"min": pervasive2("min", math.Min),
		"max": pervasive2("max", math.Max),

		"neg":   pervasive1("neg", func(a float64) float64 { return -a }),
		"sqrt":  pervasive1("sqrt", math.Sqrt),
		"abs":   pervasive1("abs", math.Abs),
		"floor": pervasive1("floor", math.Floor),
		"ceil":  pervasive1("ceil", math.Ceil),
		"round": pervasive1("round", math.Round),

		"pi":  constant(math.Pi),
		"e":   constant(math.E),
		"tau": constant(2 * math.Pi),

		"dup":  wordDup,
		"drop": wordDrop,
		"swap": wordSwap,
		"over": wordOver,
		"rot":  wordRot,

		"len":  wordLen,
		"rev":  wordRev,
		"iota": wordIota,
		"sum":  fold("sum", total),
		"prod": fold("prod", product),
		"mean": fold("mean", func(xs []float64) float64 { return total(xs) / float64(len(xs)) }),
	}
}

func pervasive1(name string, f func(float64) float64) wordFunc {
	return func(e *Engine) error {
		v, err := e.pop(name)
		if err != nil {
			return err
		}
		if v.IsNum() {
			e.push(Num(f(v.Num())))
			return nil
		}
		xs := v.Array()
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = f(x)
		}
		e.push(Array(out))
		return nil
	}
}

func pervasive2(name string, f func(a, b float64) float64) wordFunc {
	return func(e *Engine) error {
		b, err := e.pop(name)
		if err != nil {
			return err
		}
		a, err := e.pop(name)
		if err != nil {
			return err
		}
		v, err := zip(name, a, b, f)
		if err != nil {
			return err
		}
		e.push(v)
		return nil
	}
}

func zip(name string, a, b Value, f func(x, y float64) float64) (Value, error) {
	switch {
	case a.IsNum() && b.IsNum():
		return Num(f(a.Num(), b.Num())), nil
	case a.IsNum():
		ys := b.Array()
		out := make([]float64, len(ys))
		for i, y := range ys {
			out[i] = f(a.Num(), y)
		}
		return Array(out), nil
	case b.IsNum():
		xs := a.Array()
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = f(x, b.Num())
		}
		return Array(out), nil
	default:
		xs, ys := a.Array(), b.Array()
		if len(xs) != len(ys) {
			return Value{}, fmt.Errorf("%s: length mismatch %d vs %d", name, len(xs), len(ys))
		}
		out := make([]float64, len(xs))
		for i := range xs {
			out[i] = f(xs[i], ys[i])
		}
		return Array(out), nil
	}
}

func constant(v float64) wordFunc {
	return func(e *Engine) error {
		e.push(Num(v))
		return nil
	}
}

// fold reduces an array to a scalar. A lone number passes through
// unchanged, so `3 sum` is `3`.
func fold(name string, f func(xs []float64) float64) wordFunc {
	return func(e *Engine) error {
		v, err := e.pop(name)
		if err != nil {
			return err
		}
		if v.IsNum() {
			e.push(v)
			return nil
		}
		e.push(Num(f(v.Array())))
		return nil
	}
}

func total(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}

func product(xs []float64) float64 {
	p := 1.0
	for _, x := range xs {
		p *= x
	}
	return p
}

func wordDup(e *Engine) error {
	v, err := e.pop("dup")
	if err != nil {
		return err
	}
	e.push(v)
	e.push(v)
	return nil
}

func wordDrop(e *Engine) error {
	_, err := e.pop("drop")
	return err
}

func wordSwap(e *Engine) error {
	b, err := e.pop("swap")
	if err != nil {
		return err
	}
	a, err := e.pop("swap")
	if err != nil {
		return err
	}
	e.push(b)
	e.push(a)
	return nil
}

func wordOver(e *Engine) error {
	b, err := e.pop("over")
	if err != nil {
		return err
	}
	a, err := e.pop("over")
	if err != nil {
		return err
	}
	e.push(a)
	e.push(b)
	e.push(a)
	return nil
}

func wordRot(e *Engine) error {
	c, err := e.pop("rot")
	if err != nil {
		return err
	}
	b, err := e.pop("rot")
	if err != nil {
		return err
	}
	a, err := e.pop("rot")
	if err != nil {
		return err
	}
	e.push(b)
	e.push(c)
	e.push(a)
	return nil
}

func wordLen(e *Engine) error {
	v, err := e.pop("len")
	if err != nil {
		return err
	}
	if v.IsNum() {
		e.push(Num(1))
		return nil
	}
	e.push(Num(float64(len(v.Array()))))
	return nil
}

func wordRev(e *Engine) error {
	v, err := e.pop("rev")
	if err != nil {
		return err
	}
	if v.IsNum() {
		e.push(v)
		return nil
	}
	xs := v.Array()
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	e.push(Array(out))
	return nil
}

func wordIota(e *Engine) error {
	n, err := e.popNum("iota")
	if err != nil {
		return err
	}
	if n != math.Trunc(n) || n < 0 {
		return fmt.Errorf("iota needs a whole non-negative count, got %s", formatNum(n))
	}
	if n > maxArrayLen {
		return fmt.Errorf("iota count %s too large", formatNum(n))
	}
	out := make([]float64, int(n))
	for i := range out {
		out[i] = float64(i)
	}
	e.push(Array(out))
	return nil
}
