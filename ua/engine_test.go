package ua

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunArithmetic(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("2 3 +"))
	assert.Equal(t, []Value{Num(5)}, e.Stack(), "expected stack after addition")
}

func TestStackPersistsAcrossLines(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("1\n2\n+"))
	assert.Equal(t, []Value{Num(3)}, e.Stack())
}

func TestNumberForms(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("-2 abs 1.5e2 .5"))
	assert.Equal(t, []Value{Num(2), Num(150), Num(0.5)}, e.Stack())
}

func TestCommentsIgnored(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("# full-line comment\n4 2 / # trailing comment"))
	assert.Equal(t, []Value{Num(2)}, e.Stack())
}

func TestBindingDefinesFunction(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("hyp ← |2 dup * swap dup * + sqrt"))

	fns := e.Functions()
	require.Contains(t, fns, "hyp")
	assert.Equal(t, "hyp", fns["hyp"].Name())
	assert.Equal(t, 2, fns["hyp"].Arity())
	assert.Empty(t, e.Stack(), "a binding must not touch the stack")
}

func TestBindingEqualsSign(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("double = |1 2 *"))
	require.Contains(t, e.Functions(), "double")
	assert.Equal(t, 1, e.Functions()["double"].Arity())
}

func TestBindingRequiresSignature(t *testing.T) {
	e := NewEngine()
	err := e.Run("bad ← 2 *")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature")
	assert.NotContains(t, e.Functions(), "bad")
}

func TestCallSeedsArgsInOrder(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("sub ← |2 -"))

	out, err := e.Call(e.Functions()["sub"], []float64{10, 4})
	require.NoError(t, err)
	assert.Equal(t, []Value{Num(6)}, out, "args[0] must land deepest")
}

func TestCallDrainsWholeStack(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("divmod ← |2 over over / floor rot rot mod"))

	out, err := e.Call(e.Functions()["divmod"], []float64{7, 2})
	require.NoError(t, err)
	assert.Equal(t, []Value{Num(3), Num(1)}, out)
	assert.Empty(t, e.Stack(), "call must leave the engine stack empty")
}

func TestCallErrorClearsStack(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("greedy ← |1 + +"))

	_, err := e.Call(e.Functions()["greedy"], []float64{1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackUnderflow), "expected underflow, got: %v", err)
	assert.Empty(t, e.Stack())
}

func TestUserBindingCallsBinding(t *testing.T) {
	e := NewEngine()
	src := strings.Join([]string{
		"double ← |1 2 *",
		"quad ← |1 double double",
	}, "\n")
	require.NoError(t, e.Run(src))

	out, err := e.Call(e.Functions()["quad"], []float64{3})
	require.NoError(t, err)
	assert.Equal(t, []Value{Num(12)}, out)
}

func TestLaterBindingShadowsEarlier(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("f ← |1 1 +\nf ← |1 2 +"))

	out, err := e.Call(e.Functions()["f"], []float64{10})
	require.NoError(t, err)
	assert.Equal(t, []Value{Num(12)}, out)
}

func TestPartialLoadKeepsEarlierBindings(t *testing.T) {
	e := NewEngine()
	err := e.Run("good ← |1 1 +\n1 0 nope\nnever ← |1 2 +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.True(t, errors.Is(err, ErrUnknownWord), "expected unknown word, got: %v", err)

	assert.Contains(t, e.Functions(), "good", "bindings before the failure survive")
	assert.NotContains(t, e.Functions(), "never", "nothing after the failure runs")
}

func TestArrayLiteralCollects(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("[1 2 + 4]"))
	assert.Equal(t, []Value{Array([]float64{3, 4})}, e.Stack())
}

func TestEmptyArrayLiteral(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("[]"))
	assert.Equal(t, []Value{Array([]float64{})}, e.Stack())
}

func TestArraysDoNotNest(t *testing.T) {
	e := NewEngine()
	err := e.Run("[[1 2] 3]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nest")
}

func TestArrayLiteralUnderflow(t *testing.T) {
	e := NewEngine()
	err := e.Run("1 2 [drop drop]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below its opening")
}

func TestUnclosedBracket(t *testing.T) {
	e := NewEngine()
	err := e.Run("[1 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed")
}

func TestStrayCloseBracket(t *testing.T) {
	e := NewEngine()
	err := e.Run("1 ]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without matching")
}

func TestPervasiveBroadcast(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("[1 2 3] 10 *"))
	assert.Equal(t, []Value{Array([]float64{10, 20, 30})}, e.Stack())
}

func TestPervasiveZip(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("[1 2 3] [10 20 30] +"))
	assert.Equal(t, []Value{Array([]float64{11, 22, 33})}, e.Stack())
}

func TestZipLengthMismatch(t *testing.T) {
	e := NewEngine()
	err := e.Run("[1 2] [1 2 3] +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestFoldWords(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("[1 2 3 4] sum [2 3 4] prod [2 4 6] mean"))
	assert.Equal(t, []Value{Num(10), Num(24), Num(4)}, e.Stack())
}

func TestFoldScalarPassthrough(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("3 sum"))
	assert.Equal(t, []Value{Num(3)}, e.Stack())
}

func TestIota(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("5 iota"))
	assert.Equal(t, []Value{Array([]float64{0, 1, 2, 3, 4})}, e.Stack())

	require.Error(t, NewEngine().Run("-1 iota"))
	require.Error(t, NewEngine().Run("1.5 iota"))
}

func TestLenRev(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("[5 6 7] rev dup len"))
	assert.Equal(t, []Value{Array([]float64{7, 6, 5}), Num(3)}, e.Stack())
}

func TestUnknownWord(t *testing.T) {
	e := NewEngine()
	err := e.Run("frobnicate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownWord), "expected unknown word, got: %v", err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRecursionLimit(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("loop ← |0 loop"))

	_, err := e.Call(e.Functions()["loop"], nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecursionLimit), "expected recursion limit, got: %v", err)
}

func TestStepQuota(t *testing.T) {
	e := NewEngine()
	err := e.Run(strings.Repeat("1 ", maxSteps+1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepQuota), "expected step quota, got: %v", err)
}

func TestUnderflowMentionsWord(t *testing.T) {
	e := NewEngine()
	err := e.Run("1 +")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Contains(t, err.Error(), "+")
}

func TestClearStack(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run("1 2 3"))
	require.Len(t, e.Stack(), 3)
	e.ClearStack()
	assert.Empty(t, e.Stack())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "2.5", Num(2.5).String())
	assert.Equal(t, "[1 2 3]", Array([]float64{1, 2, 3}).String())
	assert.Equal(t, "[]", Array(nil).String())
}
