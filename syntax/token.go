package syntax

import "github.com/TrainFun/cxc/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan

	// The payload of numeric literals.  IntValue is set for TOK_INTLIT and
	// DoubleValue for TOK_DOUBLELIT.
	IntValue    uint32
	DoubleValue float64
}

// Line returns the 1-based line the token starts on.
func (t *Token) Line() int {
	return t.Span.StartLine + 1
}

// Enumeration of token kinds.
const (
	TOK_INT = iota
	TOK_BOOL
	TOK_DOUBLE
	TOK_CONST

	TOK_IF
	TOK_ELSE
	TOK_SWITCH
	TOK_CASE
	TOK_DEFAULT
	TOK_WHILE
	TOK_DO
	TOK_FOR
	TOK_REPEAT
	TOK_UNTIL
	TOK_BREAK
	TOK_CONTINUE
	TOK_RETURN
	TOK_EXIT

	TOK_READ
	TOK_WRITE

	TOK_CAST
	TOK_ODD
	TOK_TRUE
	TOK_FALSE

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_NOT
	TOK_LAND
	TOK_LOR

	TOK_ASSIGN
	TOK_INC
	TOK_DEC

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_SEMI
	TOK_COLON

	TOK_IDENT
	TOK_INTLIT
	TOK_DOUBLELIT

	// TOK_INVALID is a character the lexer does not recognize.  It is passed
	// on to the parser which reports it.
	TOK_INVALID

	TOK_EOF
)

// TokenSource is the interface the parser consumes tokens through.  It is
// implemented by Lexer.
type TokenSource interface {
	// NextToken returns the next token.  Once the input is exhausted, it
	// returns TOK_EOF tokens indefinitely.
	NextToken() (*Token, error)
}
