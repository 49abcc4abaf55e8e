package calc

import (
	"fmt"
	"strconv"
)

// Calculator owns the operand stack and the "previous" submission text.
// It is not safe for concurrent use; the intended owner is a single event
// loop that serializes every mutation.
type Calculator struct {
	reg      *Registry
	stack    []float64
	previous string
}

func New(reg *Registry) *Calculator {
	return &Calculator{reg: reg}
}

func (c *Calculator) Registry() *Registry { return c.reg }

// Stack returns a snapshot of the operand stack, bottom first.
func (c *Calculator) Stack() []float64 {
	out := make([]float64, len(c.stack))
	copy(out, c.stack)
	return out
}

// Previous returns the last successfully submitted text.
func (c *Calculator) Previous() string { return c.previous }

func (c *Calculator) Push(v float64) {
	c.stack = append(c.stack, v)
}

// Reset clears the stack and the previous submission. Registered
// operations are kept.
func (c *Calculator) Reset() {
	c.stack = c.stack[:0]
	c.previous = ""
}

// Submit interprets one submitted line. A line that parses as a number is
// pushed and becomes the previous text. An empty line replays the previous
// text through operator dispatch, which quietly does nothing when the
// previous text was a number. Anything else dispatches as an operator
// name; only a success updates the previous text.
//
// The returned bool reports whether the line was consumed (the caller
// should clear its input on true). A non-nil error is a scripted runtime
// failure to surface; resolution and arity misses return (false, nil).
func (c *Calculator) Submit(text string) (bool, error) {
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		c.stack = append(c.stack, v)
		c.previous = text
		return true, nil
	}
	if text == "" {
		_, err := c.Apply(c.previous)
		return true, err
	}
	ok, err := c.Apply(text)
	if ok {
		c.previous = text
	}
	return ok, err
}

// Apply resolves name in the registry and applies the operation to the
// stack under an all-or-nothing contract: either exactly arity operands
// are replaced by the operation's results, or the stack is untouched.
//
// An unknown name and an arity shortfall both return (false, nil); the
// two are deliberately indistinguishable here. A failure inside a
// scripted backend returns (false, err) with the stack untouched.
func (c *Calculator) Apply(name string) (bool, error) {
	op, ok := c.reg.Lookup(name)
	if !ok {
		return false, nil
	}
	k := op.Arity()
	n := len(c.stack)
	if n < k {
		return false, nil
	}
	args := make([]float64, k)
	copy(args, c.stack[n-k:])
	out, err := op.invoke(args)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op.Name(), err)
	}
	c.stack = append(c.stack[:n-k], out...)
	return true, nil
}
