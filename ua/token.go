package ua

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"
	tokenNewline TokenType = "NEWLINE"

	tokenNumber TokenType = "NUMBER"
	tokenWord   TokenType = "WORD"

	tokenBind      TokenType = "BIND" // ← or =
	tokenSignature TokenType = "SIG"  // |n
	tokenLBracket  TokenType = "["
	tokenRBracket  TokenType = "]"
)

// Token captures lexical information for the evaluator.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a location in the source file.
type Position struct {
	Line   int
	Column int
}
