package calc

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// luaFunc is a Lua-backed operation body: a function value a script passed
// to register, called on the registry's shared interpreter state.
type luaFunc struct {
	state *lua.LState
	fn    *lua.LFunction
}

// call invokes the Lua function with args as numbers and collects every
// returned value. Any non-number return fails the whole call.
func (f *luaFunc) call(args []float64) ([]float64, error) {
	L := f.state
	base := L.GetTop()
	vals := make([]lua.LValue, len(args))
	for i, a := range args {
		vals[i] = lua.LNumber(a)
	}
	if err := L.CallByParam(lua.P{Fn: f.fn, NRet: lua.MultRet, Protect: true}, vals...); err != nil {
		L.SetTop(base)
		return nil, errors.New(firstLine(err.Error()))
	}
	top := L.GetTop()
	out := make([]float64, 0, top-base)
	for i := base + 1; i <= top; i++ {
		n, ok := L.Get(i).(lua.LNumber)
		if !ok {
			L.SetTop(base)
			return nil, fmt.Errorf("returned %s, want number", L.Get(i).Type())
		}
		out = append(out, float64(n))
	}
	L.SetTop(base)
	return out, nil
}

// LoadLua executes a Lua script that declares operators through a host
// callback register(name, arity, fn). Declarations made before a runtime
// error stick; a file that fails to parse declares nothing.
func (r *Registry) LoadLua(path string) error {
	L := r.luaState()
	L.SetGlobal("register", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		arity := L.CheckInt(2)
		fn := L.CheckFunction(3)
		if name == "" {
			L.ArgError(1, "operator name must not be empty")
		}
		if arity < 0 {
			L.ArgError(2, "arity must not be negative")
		}
		r.register(&Operation{name: name, arity: arity, kind: opLua, lua: &luaFunc{state: L, fn: fn}})
		return 0
	}))
	// The callback only exists for the load. Calling it later, from an
	// operator body, must fail.
	defer L.SetGlobal("register", lua.LNil)

	if err := L.DoFile(path); err != nil {
		return errors.New(firstLine(err.Error()))
	}
	return nil
}

func (r *Registry) luaState() *lua.LState {
	if r.lua == nil {
		r.lua = newLuaState()
	}
	return r.lua
}

// newLuaState builds an interpreter with a trimmed library set and the
// file and code loading escape hatches stubbed out.
func newLuaState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			panic(err)
		}
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// firstLine returns s up to the first newline; interpreter errors can
// carry a multi-line traceback.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
