package ua

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
)

// Execution guards. Scripts run on the calculator's event goroutine, so a
// runaway definition must fail instead of hanging the program.
const (
	maxDepth    = 64
	maxSteps    = 100000
	maxArrayLen = 1 << 20
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnknownWord    = errors.New("unknown word")
	ErrRecursionLimit = errors.New("recursion limit exceeded")
	ErrStepQuota      = errors.New("step quota exceeded")
)

// Engine interprets array-language source. It owns the value stack that
// top-level expressions and hosted calls evaluate against, and the table of
// top-level bindings.
type Engine struct {
	stack    []Value
	bindings map[string]*Function

	steps int
	depth int
}

// Function is a top-level binding: a named body with a declared stack
// signature. The signature's count is the arity a host supplies when
// calling the function.
type Function struct {
	name  string
	arity int
	body  []Token
}

func (f *Function) Name() string { return f.name }

// Arity returns the operand count declared by the |n signature.
func (f *Function) Arity() int { return f.arity }

// NewEngine constructs an empty engine with the built-in word set.
func NewEngine() *Engine {
	return &Engine{bindings: make(map[string]*Function)}
}

// Run executes source one statement per line. A line starting with
// `name ← |n` (or `name = |n`) binds a function; any other non-empty line
// is evaluated immediately against the engine's stack. On error, bindings
// and stack effects from earlier lines are kept and the failing line is
// reported; nothing after it runs.
func (e *Engine) Run(source string) error {
	for _, stmt := range scan(source) {
		if err := e.runStatement(stmt); err != nil {
			return fmt.Errorf("line %d: %w", stmt[0].Pos.Line, err)
		}
	}
	return nil
}

// Functions returns a copy of the binding table.
func (e *Engine) Functions() map[string]*Function {
	out := make(map[string]*Function, len(e.bindings))
	maps.Copy(out, e.bindings)
	return out
}

// Call evaluates fn against a fresh stack seeded with args in order
// (args[0] deepest) and returns the entire resulting stack, bottom first.
// The engine stack is left empty whether or not the call succeeds.
func (e *Engine) Call(fn *Function, args []float64) ([]Value, error) {
	e.stack = e.stack[:0]
	for _, a := range args {
		e.push(Num(a))
	}
	e.steps = 0
	e.depth = 0
	if err := e.exec(fn.body); err != nil {
		e.stack = e.stack[:0]
		return nil, err
	}
	out := make([]Value, len(e.stack))
	copy(out, e.stack)
	e.stack = e.stack[:0]
	return out, nil
}

// Stack returns a snapshot of the engine stack, bottom first.
func (e *Engine) Stack() []Value {
	out := make([]Value, len(e.stack))
	copy(out, e.stack)
	return out
}

// ClearStack discards any values left by top-level expressions.
func (e *Engine) ClearStack() {
	e.stack = e.stack[:0]
}

func (e *Engine) runStatement(stmt []Token) error {
	if len(stmt) >= 2 && stmt[0].Type == tokenWord && stmt[1].Type == tokenBind {
		return e.bind(stmt)
	}
	e.steps = 0
	e.depth = 0
	return e.exec(stmt)
}

func (e *Engine) bind(stmt []Token) error {
	name := stmt[0].Literal
	if len(stmt) < 3 || stmt[2].Type != tokenSignature {
		return fmt.Errorf("binding %s needs a stack signature such as |2", name)
	}
	arity, err := strconv.Atoi(stmt[2].Literal)
	if err != nil {
		return fmt.Errorf("binding %s: bad signature |%s", name, stmt[2].Literal)
	}
	e.bindings[name] = &Function{name: name, arity: arity, body: stmt[3:]}
	return nil
}

func (e *Engine) exec(body []Token) error {
	var marks []int
	for _, tok := range body {
		e.steps++
		if e.steps > maxSteps {
			return ErrStepQuota
		}
		switch tok.Type {
		case tokenNumber:
			v, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil {
				return fmt.Errorf("bad number %q", tok.Literal)
			}
			e.push(Num(v))
		case tokenLBracket:
			marks = append(marks, len(e.stack))
		case tokenRBracket:
			if len(marks) == 0 {
				return errors.New("] without matching [")
			}
			mark := marks[len(marks)-1]
			marks = marks[:len(marks)-1]
			if err := e.collectArray(mark); err != nil {
				return err
			}
		case tokenWord:
			if err := e.call(tok.Literal); err != nil {
				return err
			}
		case tokenBind:
			return errors.New("binding arrow outside a definition")
		case tokenSignature:
			return errors.New("stack signature outside a definition")
		default:
			return fmt.Errorf("unexpected %q", tok.Literal)
		}
	}
	if len(marks) > 0 {
		return errors.New("unclosed [")
	}
	return nil
}

func (e *Engine) collectArray(mark int) error {
	if mark > len(e.stack) {
		return errors.New("array literal consumed values below its opening [")
	}
	elems := make([]float64, 0, len(e.stack)-mark)
	for _, v := range e.stack[mark:] {
		if !v.IsNum() {
			return errors.New("arrays do not nest")
		}
		elems = append(elems, v.Num())
	}
	e.stack = append(e.stack[:mark], Array(elems))
	return nil
}

// call resolves a word. User bindings shadow built-ins; names are
// case-sensitive inside the language (hosts may fold them on their side).
func (e *Engine) call(name string) error {
	if fn, ok := e.bindings[name]; ok {
		if e.depth >= maxDepth {
			return fmt.Errorf("%s: %w", name, ErrRecursionLimit)
		}
		e.depth++
		err := e.exec(fn.body)
		e.depth--
		// Prefix the word name once, at the outermost frame, so deep
		// failures do not pile up a prefix per unwound call.
		if err != nil && e.depth == 0 {
			return fmt.Errorf("%s: %w", name, err)
		}
		return err
	}
	if word, ok := builtinWords[name]; ok {
		return word(e)
	}
	return fmt.Errorf("%w %q", ErrUnknownWord, name)
}

func (e *Engine) push(v Value) {
	e.stack = append(e.stack, v)
}

func (e *Engine) pop(word string) (Value, error) {
	if len(e.stack) == 0 {
		return Value{}, fmt.Errorf("%s: %w", word, ErrStackUnderflow)
	}
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, nil
}

func (e *Engine) popNum(word string) (float64, error) {
	v, err := e.pop(word)
	if err != nil {
		return 0, err
	}
	if !v.IsNum() {
		return 0, fmt.Errorf("%s expects a number, got %s", word, v)
	}
	return v.Num(), nil
}

// scan splits source into statements at newlines, dropping empty lines.
func scan(source string) [][]Token {
	l := newLexer(source)
	var stmts [][]Token
	var cur []Token
	for {
		tok := l.NextToken()
		switch tok.Type {
		case tokenEOF:
			if len(cur) > 0 {
				stmts = append(stmts, cur)
			}
			return stmts
		case tokenNewline:
			if len(cur) > 0 {
				stmts = append(stmts, cur)
				cur = nil
			}
		default:
			cur = append(cur, tok)
		}
	}
}
