package syntax

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/TrainFun/cxc/report"
)

// Lexer is responsible for tokenizing a CX source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok, err := l.lexCommentOrDiv(); tok != nil || err != nil {
				return tok, err
			}
		default:
			if isDecimalDigit(c) || c == '.' {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	// Division operator is handled with comment logic.
	"%": TOK_MOD,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,

	"=":  TOK_ASSIGN,
	"++": TOK_INC,
	"--": TOK_DEC,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	",": TOK_COMMA,
	";": TOK_SEMI,
	":": TOK_COLON,
}

// symbolPrefixes are single characters which only form a token as the first
// half of a two-character symbol.
var symbolPrefixes = map[rune]struct{}{
	'&': {},
	'|': {},
}

// lexPunctOrOper lexes a punctuation or operator symbol.  Unknown characters
// produce a TOK_INVALID token.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	first, err := l.eat()
	if err != nil {
		return nil, err
	}

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if _, isPrefix := symbolPrefixes[first]; !ok && !isPrefix {
		return l.makeToken(TOK_INVALID), nil
	}

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	if c != -1 {
		if _kind, ok2 := symbolPatterns[l.tokBuff.String()+string(c)]; ok2 {
			l.eat()
			return l.makeToken(_kind), nil
		}
	}

	if !ok {
		return l.makeToken(TOK_INVALID), nil
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"int":    TOK_INT,
	"bool":   TOK_BOOL,
	"double": TOK_DOUBLE,
	"const":  TOK_CONST,

	"if":       TOK_IF,
	"else":     TOK_ELSE,
	"switch":   TOK_SWITCH,
	"case":     TOK_CASE,
	"default":  TOK_DEFAULT,
	"while":    TOK_WHILE,
	"do":       TOK_DO,
	"for":      TOK_FOR,
	"repeat":   TOK_REPEAT,
	"until":    TOK_UNTIL,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
	"return":   TOK_RETURN,
	"exit":     TOK_EXIT,

	"read":  TOK_READ,
	"write": TOK_WRITE,

	"cast":  TOK_CAST,
	"ODD":   TOK_ODD,
	"true":  TOK_TRUE,
	"false": TOK_FALSE,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes an integer or a double literal.  Either side of the
// decimal point may be empty but not both.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()

	var isDouble, hasExp, expectSign, sawDigit bool
	mustHaveDigit := false

numLexLoop:
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch {
		case isDecimalDigit(c):
			l.eat()
			sawDigit = true
			expectSign = false
			mustHaveDigit = false
		case c == '.':
			if isDouble {
				break numLexLoop
			}

			l.eat()
			isDouble = true
		case c == 'e' || c == 'E':
			if !sawDigit || hasExp {
				break numLexLoop
			}

			l.eat()
			isDouble = true
			hasExp = true
			expectSign = true
			mustHaveDigit = true
		case c == '-' || c == '+':
			if !expectSign {
				break numLexLoop
			}

			l.eat()
			expectSign = false
		default:
			break numLexLoop
		}
	}

	if !sawDigit {
		// A lone `.` is not a token of the language.
		return l.makeToken(TOK_INVALID), nil
	}

	if mustHaveDigit {
		return nil, report.Raise(report.KindLexical, l.getSpan(), "incomplete numeric literal")
	}

	if isDouble {
		tok := l.makeToken(TOK_DOUBLELIT)
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, report.Raise(report.KindLexical, tok.Span, "malformed double literal `%s`", tok.Value)
		}

		tok.DoubleValue = value
		return tok, nil
	}

	tok := l.makeToken(TOK_INTLIT)
	value, err := strconv.ParseUint(tok.Value, 10, 64)
	if err != nil || value > math.MaxUint32 {
		return nil, report.Raise(report.KindLexical, tok.Span, "integer literal `%s` does not fit in an int", tok.Value)
	}

	tok.IntValue = uint32(value)
	return tok, nil
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.
func (l *Lexer) lexCommentOrDiv() (*Token, error) {
	l.mark()
	l.skip()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	switch c {
	case '/':
		for ; err == nil && c != '\n' && c != -1; c, err = l.skip() {
		}
	case '*':
		l.skip()
		for {
			c, err = l.skip()
			if err != nil {
				break
			} else if c == -1 {
				return nil, report.Raise(report.KindLexical, l.getSpan(), "unclosed block comment")
			}

			if c == '*' {
				c, err = l.peek()
				if err != nil || c == '/' {
					l.skip()
					break
				}
			}
		}
	default:
		{
			tok := l.makeToken(TOK_DIV)
			tok.Value = "/"
			return tok, nil
		}
	}

	return nil, err
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
