package calc

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/aprzn123/RiPeN/ua"
)

type opKind int

const (
	opNative opKind = iota
	opLua
	opArray
)

// Operation is one dispatchable calculator operator. Exactly one backend
// field is set, chosen by kind; call sites switch on kind so the three
// backends stay a closed set that the compiler can check exhaustively.
type Operation struct {
	name  string
	arity int
	kind  opKind

	native func(args []float64) []float64
	lua    *luaFunc
	array  *arrayFunc
}

func (op *Operation) Name() string { return op.name }

// Arity is the number of stack values the operation consumes.
func (op *Operation) Arity() int { return op.arity }

// Source names the backend the operation came from.
func (op *Operation) Source() string {
	switch op.kind {
	case opNative:
		return "native"
	case opLua:
		return "lua"
	case opArray:
		return "array"
	}
	return "unknown"
}

// invoke runs the backend against args (deepest operand first) and returns
// the values to push in place of the consumed operands. The caller owns
// stack mutation; invoke never touches the calculator stack.
func (op *Operation) invoke(args []float64) ([]float64, error) {
	switch op.kind {
	case opNative:
		return op.native(args), nil
	case opLua:
		return op.lua.call(args)
	case opArray:
		return op.array.call(args)
	}
	return nil, fmt.Errorf("operation %s has no backend", op.name)
}

// Registry maps operator names to operations. Names are case-insensitive:
// keys are stored folded to lower case and queries fold the same way. A
// later registration replaces an earlier one of the same folded name, so
// script operators may shadow built-ins.
type Registry struct {
	ops   map[string]*Operation
	lua   *lua.LState
	array *ua.Engine
}

// NewRegistry returns a registry seeded with the built-in operator set.
func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]*Operation, 2*len(builtinOps))}
	for _, b := range builtinOps {
		for _, name := range b.names {
			r.RegisterNative(name, b.arity, b.fn)
		}
	}
	return r
}

// RegisterNative installs a Go-backed operation. fn receives exactly arity
// floats, deepest operand first, and returns the values to push; it must
// be total over floats (IEEE semantics, no errors).
func (r *Registry) RegisterNative(name string, arity int, fn func(args []float64) []float64) {
	r.register(&Operation{name: name, arity: arity, kind: opNative, native: fn})
}

func (r *Registry) register(op *Operation) {
	r.ops[strings.ToLower(op.name)] = op
}

// Lookup resolves a name, ignoring case. Absence is not an error here;
// callers decide what a miss means.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.ops[strings.ToLower(name)]
	return op, ok
}

// Names returns every registered operator name, folded and sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.ops))
}

// Close releases the script runtimes the registry holds. Script-backed
// operations must not be invoked afterwards.
func (r *Registry) Close() {
	if r.lua != nil {
		r.lua.Close()
		r.lua = nil
	}
}
