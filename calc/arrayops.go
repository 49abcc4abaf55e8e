package calc

import (
	"fmt"
	"os"

	"github.com/aprzn123/RiPeN/ua"
)

// arrayFunc is an operation backed by a function bound in the array
// language runtime.
type arrayFunc struct {
	engine *ua.Engine
	fn     *ua.Function
}

// call runs the bound function with args seeding the runtime's stack,
// then converts everything the run leaves behind. A non-scalar on the
// final stack fails the whole call.
func (f *arrayFunc) call(args []float64) ([]float64, error) {
	vals, err := f.engine.Call(f.fn, args)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		if !v.IsNum() {
			return nil, fmt.Errorf("returned %s, want numbers", v)
		}
		out[i] = v.Num()
	}
	return out, nil
}

// LoadArray runs an array-language source file and registers every
// top-level binding as an operator, with arity taken from the binding's
// own stack signature. Bindings made before a failing line still
// register.
func (r *Registry) LoadArray(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e := r.arrayEngine()
	runErr := e.Run(string(src))
	e.ClearStack()
	for name, fn := range e.Functions() {
		r.register(&Operation{name: name, arity: fn.Arity(), kind: opArray, array: &arrayFunc{engine: e, fn: fn}})
	}
	return runErr
}

func (r *Registry) arrayEngine() *ua.Engine {
	if r.array == nil {
		r.array = ua.NewEngine()
	}
	return r.array
}
