package syntax

import (
	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser for CX.  It pulls tokens one at a time
// from a token source and produces one top-level declaration per call to
// ParseTopLevel.  All parsing functions assume that they begin with the parser
// centered on the first token of their production and must consume all tokens
// (including the last) of their production, leaving the parser on the next
// token.
type Parser struct {
	// src is the token source the parser is reading from.
	src TokenSource

	// prec is the binary operator precedence table.
	prec PrecedenceTable

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token immediately before the current token.
	lookbehind *Token
}

// NewParser creates a new parser reading from src.  If prec is nil, the
// DefaultPrecedence table is used.
func NewParser(src TokenSource, prec PrecedenceTable) *Parser {
	if prec == nil {
		prec = DefaultPrecedence()
	}

	return &Parser{src: src, prec: prec}
}

// AtEOF returns whether the parser has reached the end of its input.
func (p *Parser) AtEOF() (eof bool, err error) {
	defer report.CatchErrors(&err)

	p.prime()
	return p.has(TOK_EOF), nil
}

// SkipSemicolon consumes the current token if it is a `;` and returns whether
// it did so.
func (p *Parser) SkipSemicolon() (skipped bool, err error) {
	defer report.CatchErrors(&err)

	p.prime()
	if p.has(TOK_SEMI) {
		p.next()
		return true, nil
	}

	return false, nil
}

// Resync discards tokens until it has consumed a `;` or a `}` or it reaches
// the end of input.  It is used to recover from a syntax error.
func (p *Parser) Resync() (err error) {
	defer report.CatchErrors(&err)

	p.prime()
	for !p.has(TOK_EOF) {
		p.next()

		if kind := p.lookbehind.Kind; kind == TOK_SEMI || kind == TOK_RBRACE {
			break
		}
	}

	return nil
}

// ParseTopLevel parses a single top-level declaration: a global variable, a
// function prototype or a function definition.
func (p *Parser) ParseTopLevel() (decl ast.Decl, err error) {
	defer report.CatchErrors(&err)

	p.prime()
	return p.parseTopLevel(), nil
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression() (expr ast.Expr, err error) {
	defer report.CatchErrors(&err)

	p.prime()
	return p.parseExpr(), nil
}

// ParseStatement parses a single statement.
func (p *Parser) ParseStatement() (stmt ast.Stmt, err error) {
	defer report.CatchErrors(&err)

	p.prime()
	return p.parseStmt(), nil
}

// -----------------------------------------------------------------------------

// prime moves the parser onto its first token if it has not read one yet.
func (p *Parser) prime() {
	if p.tok == nil {
		p.next()
	}
}

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.src.NextToken()
	if err != nil {
		panic(err)
	}

	p.lookbehind = p.tok
	p.tok = tok
}

// has returns whether the parser is on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// hasOneOf returns whether the parser is on a token of one of the given kinds.
func (p *Parser) hasOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// want asserts that the parser is on a token of the given kind and moves the
// parser forward.  It returns the matched token.  The `what` describes the
// expected token in the error message.
func (p *Parser) want(kind int, what string) *Token {
	if !p.has(kind) {
		p.rejectWithMsg("expected %s", what)
	}

	p.next()
	return p.lookbehind
}

// -----------------------------------------------------------------------------

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	switch p.tok.Kind {
	case TOK_EOF:
		panic(report.Raise(report.KindSyntax, p.tok.Span, "unexpected end of file"))
	case TOK_INVALID:
		panic(report.Raise(report.KindLexical, p.tok.Span, "unrecognized character `%s`", p.tok.Value))
	default:
		panic(report.Raise(report.KindSyntax, p.tok.Span, "unexpected token `%s`", p.tok.Value))
	}
}

// rejectWithMsg rejects the current token with a specific message.  Invalid
// characters are always reported as lexical errors.
func (p *Parser) rejectWithMsg(msg string, args ...interface{}) {
	if p.has(TOK_INVALID) {
		p.reject()
	}

	panic(report.Raise(report.KindSyntax, p.tok.Span, msg, args...))
}
