package ua

import (
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

// NextToken scans the next token. Newlines are significant: they separate
// statements, so the lexer emits them instead of skipping them.
func (l *lexer) NextToken() Token {
	l.skipSpaceAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	switch {
	case l.ch == 0:
		tok.Type = tokenEOF
	case l.ch == '\n':
		// The newline was already consumed into l.line by readRune, so
		// report it on the line it terminates.
		tok.Pos.Line = l.line - 1
		tok.Type = tokenNewline
		tok.Literal = "\n"
		l.readRune()
	case l.ch == '[':
		tok.Type = tokenLBracket
		tok.Literal = "["
		l.readRune()
	case l.ch == ']':
		tok.Type = tokenRBracket
		tok.Literal = "]"
		l.readRune()
	case l.ch == '←' || l.ch == '=': // ← or its ASCII stand-in
		tok.Type = tokenBind
		tok.Literal = string(l.ch)
		l.readRune()
	case l.ch == '|':
		l.readRune()
		start := l.offset - l.width
		for unicode.IsDigit(l.ch) {
			l.readRune()
		}
		if digits := l.literalFrom(start); digits == "" {
			tok.Type = tokenIllegal
			tok.Literal = "|"
		} else {
			tok.Type = tokenSignature
			tok.Literal = digits
		}
	case l.startsNumber():
		tok.Type = tokenNumber
		tok.Literal = l.readNumber()
	default:
		tok.Type = tokenWord
		tok.Literal = l.readWord()
	}

	return tok
}

func (l *lexer) skipSpaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readRune()
			continue
		case '#':
			l.skipComment()
			continue
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readRune()
	}
}

// startsNumber reports whether the current rune begins a numeric literal.
// A leading '-' immediately followed by a digit or '.' reads as a negative
// literal; a bare '-' is the subtraction word.
func (l *lexer) startsNumber() bool {
	if unicode.IsDigit(l.ch) {
		return true
	}
	if l.ch == '.' && unicode.IsDigit(l.peekRune()) {
		return true
	}
	if l.ch == '-' {
		next := l.peekRune()
		return unicode.IsDigit(next) || next == '.'
	}
	return false
}

func (l *lexer) readNumber() string {
	start := l.offset - l.width
	if l.ch == '-' {
		l.readRune()
	}
	for unicode.IsDigit(l.ch) || l.ch == '.' {
		l.readRune()
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekRune()
		if unicode.IsDigit(next) || next == '+' || next == '-' {
			l.readRune()
			if l.ch == '+' || l.ch == '-' {
				l.readRune()
			}
			for unicode.IsDigit(l.ch) {
				l.readRune()
			}
		}
	}
	return l.literalFrom(start)
}

func (l *lexer) readWord() string {
	start := l.offset - l.width
	for !isWordBoundary(l.ch) {
		l.readRune()
	}
	return l.literalFrom(start)
}

// literalFrom slices the input from start up to the first rune of the
// current (unconsumed) token. At EOF the width is zero, so the slice runs
// to the end of the input.
func (l *lexer) literalFrom(start int) string {
	return l.input[start : l.offset-l.width]
}

func isWordBoundary(ch rune) bool {
	switch ch {
	case 0, ' ', '\t', '\r', '\n', '#', '[', ']', '|', '=', '←':
		return true
	}
	return false
}
