package syntax

import (
	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"
)

// PrecedenceTable maps binary operator token kinds to their precedence.
// Higher values bind tighter.  Tokens missing from the table are not binary
// operators.
type PrecedenceTable map[int]int

// DefaultPrecedence returns the standard CX operator precedence table.
func DefaultPrecedence() PrecedenceTable {
	return PrecedenceTable{
		TOK_ASSIGN: 2,

		TOK_LAND: 20,
		TOK_LOR:  20,

		TOK_LT:   30,
		TOK_GT:   30,
		TOK_LTEQ: 30,
		TOK_GTEQ: 30,
		TOK_EQ:   30,
		TOK_NEQ:  30,

		TOK_PLUS:  40,
		TOK_MINUS: 40,

		TOK_STAR: 50,
		TOK_DIV:  50,
		TOK_MOD:  50,
	}
}

// precOf returns the precedence of the current token or -1 if it is not a
// binary operator.
func (p *Parser) precOf() int {
	if _, ok := binaryOps[p.tok.Kind]; !ok {
		return -1
	}

	if prec, ok := p.prec[p.tok.Kind]; ok {
		return prec
	}

	return -1
}

// binaryOps maps binary operator tokens to their operator kinds.
var binaryOps = map[int]ast.OpKind{
	TOK_ASSIGN: ast.OpAssign,
	TOK_PLUS:   ast.OpAdd,
	TOK_MINUS:  ast.OpSub,
	TOK_STAR:   ast.OpMul,
	TOK_DIV:    ast.OpDiv,
	TOK_MOD:    ast.OpMod,
	TOK_LT:     ast.OpLT,
	TOK_GT:     ast.OpGT,
	TOK_LTEQ:   ast.OpLTEQ,
	TOK_GTEQ:   ast.OpGTEQ,
	TOK_EQ:     ast.OpEQ,
	TOK_NEQ:    ast.OpNEQ,
	TOK_LAND:   ast.OpLAnd,
	TOK_LOR:    ast.OpLOr,
}

// unaryOps maps prefix operator tokens to their operator kinds.
var unaryOps = map[int]ast.OpKind{
	TOK_NOT: ast.OpNot,
	TOK_ODD: ast.OpOdd,
	TOK_INC: ast.OpInc,
	TOK_DEC: ast.OpDec,
}

// -----------------------------------------------------------------------------

// expr := unary_expr {binop unary_expr} ;
func (p *Parser) parseExpr() ast.Expr {
	lhs := p.parseUnaryExpr()
	return p.parseBinOpRHS(0, lhs)
}

// parseBinOpRHS performs operator precedence climbing.  It folds operators of
// precedence at least minPrec onto lhs.  Operators of equal precedence
// associate to the left.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expr) ast.Expr {
	for {
		tokPrec := p.precOf()
		if tokPrec < minPrec {
			return lhs
		}

		opTok := p.tok
		p.next()

		rhs := p.parseUnaryExpr()

		if nextPrec := p.precOf(); tokPrec < nextPrec {
			rhs = p.parseBinOpRHS(tokPrec+1, rhs)
		}

		lhs = &ast.BinaryOp{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
			Op: ast.Oper{
				Kind: binaryOps[opTok.Kind],
				Name: opTok.Value,
				Span: opTok.Span,
			},
			Lhs: lhs,
			Rhs: rhs,
		}
	}
}

// unary_expr := ('!' | 'ODD' | '++' | '--') unary_expr | atom ;
func (p *Parser) parseUnaryExpr() ast.Expr {
	if opKind, ok := unaryOps[p.tok.Kind]; ok {
		opTok := p.tok
		p.next()

		operand := p.parseUnaryExpr()
		return &ast.UnaryOp{
			ExprBase: ast.NewExprBase(report.NewSpanOver(opTok.Span, operand.Span())),
			Op: ast.Oper{
				Kind: opKind,
				Name: opTok.Value,
				Span: opTok.Span,
			},
			Operand: operand,
		}
	}

	return p.parseAtom()
}

// atom := 'INTLIT' | 'DOUBLELIT' | 'true' | 'false'
//     | 'IDENT' ['(' [expr {',' expr}] ')']
//     | '(' expr ')'
//     | 'cast' '<' type '>' '(' expr ')' ;
func (p *Parser) parseAtom() ast.Expr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		p.next()
		return &ast.IntLit{
			ExprBase: ast.NewExprBase(p.lookbehind.Span),
			Value:    p.lookbehind.IntValue,
		}
	case TOK_DOUBLELIT:
		p.next()
		return &ast.DoubleLit{
			ExprBase: ast.NewExprBase(p.lookbehind.Span),
			Value:    p.lookbehind.DoubleValue,
		}
	case TOK_TRUE, TOK_FALSE:
		p.next()
		return &ast.BoolLit{
			ExprBase: ast.NewExprBase(p.lookbehind.Span),
			Value:    p.lookbehind.Kind == TOK_TRUE,
		}
	case TOK_IDENT:
		return p.parseIdentOrCall()
	case TOK_LPAREN:
		{
			p.next()
			expr := p.parseExpr()
			p.want(TOK_RPAREN, "`)`")
			return expr
		}
	case TOK_CAST:
		return p.parseCast()
	}

	if p.has(TOK_EOF) || p.has(TOK_INVALID) {
		p.reject()
	}

	p.rejectWithMsg("unknown token `%s` when expecting an expression", p.tok.Value)
	return nil
}

// parseIdentOrCall parses an identifier reference or a function call.
func (p *Parser) parseIdentOrCall() ast.Expr {
	nameTok := p.want(TOK_IDENT, "identifier")

	if !p.has(TOK_LPAREN) {
		return &ast.Identifier{
			ExprBase: ast.NewExprBase(nameTok.Span),
			Name:     nameTok.Value,
		}
	}

	p.next()

	var args []ast.Expr
	if !p.has(TOK_RPAREN) {
		for {
			args = append(args, p.parseExpr())

			if p.has(TOK_RPAREN) {
				break
			} else if !p.has(TOK_COMMA) {
				p.rejectWithMsg("expected `)` or `,` in argument list")
			}

			p.next()
		}
	}

	p.next()

	return &ast.Call{
		ExprBase: ast.NewExprBase(report.NewSpanOver(nameTok.Span, p.lookbehind.Span)),
		Callee:   nameTok.Value,
		Args:     args,
	}
}

// cast_expr := 'cast' '<' type '>' '(' expr ')' ;
func (p *Parser) parseCast() ast.Expr {
	startSpan := p.want(TOK_CAST, "`cast`").Span
	p.want(TOK_LT, "`<` after `cast`")
	target := p.parseTypeLabel()
	p.want(TOK_GT, "`>` after cast target type")
	p.want(TOK_LPAREN, "`(` before cast operand")
	src := p.parseExpr()
	p.want(TOK_RPAREN, "`)` after cast operand")

	return &ast.Cast{
		ExprBase: ast.NewExprBase(report.NewSpanOver(startSpan, p.lookbehind.Span)),
		Target:   target,
		Src:      src,
	}
}

// -----------------------------------------------------------------------------

// type := 'int' | 'bool' | 'double' ;
func (p *Parser) parseTypeLabel() typing.CXType {
	var typ typing.CXType
	switch p.tok.Kind {
	case TOK_INT:
		typ = typing.Int
	case TOK_BOOL:
		typ = typing.Bool
	case TOK_DOUBLE:
		typ = typing.Double
	default:
		p.rejectWithMsg("expected a type")
	}

	p.next()
	return typ
}

// isTypeStart returns whether the current token begins a type label.
func (p *Parser) isTypeStart() bool {
	return p.hasOneOf(TOK_INT, TOK_BOOL, TOK_DOUBLE)
}
