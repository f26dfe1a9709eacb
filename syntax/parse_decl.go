package syntax

import (
	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
)

// top_level := global_var | prototype | func_def ;
// global_var := var_head ['=' expr] ';' ;
// prototype := type 'IDENT' '(' [param {',' param}] ')' ';' ;
// func_def := type 'IDENT' '(' [param {',' param}] ')' block ;
func (p *Parser) parseTopLevel() ast.Decl {
	if !p.has(TOK_CONST) && !p.isTypeStart() {
		if p.has(TOK_EOF) || p.has(TOK_INVALID) {
			p.reject()
		}

		p.rejectWithMsg("expected a declaration but got `%s`", p.tok.Value)
	}

	head := p.parseVarHead()

	if !p.has(TOK_LPAREN) {
		if p.has(TOK_ASSIGN) {
			p.next()
			head.Init = p.parseExpr()
		}

		p.want(TOK_SEMI, "`;` after global variable declaration")
		head.ASTBase = ast.NewASTBaseOver(head.Span(), p.lookbehind.Span)
		return &ast.GlobalVarDecl{VarDecl: head}
	}

	if head.Const {
		panic(report.Raise(report.KindSyntax, head.Span(), "functions cannot be declared `const`"))
	}

	proto := p.parsePrototypeTail(head)

	switch p.tok.Kind {
	case TOK_SEMI:
		p.next()
		return proto
	case TOK_LBRACE:
		body := p.parseBlock()
		return &ast.FuncDef{
			ASTBase: ast.NewASTBaseOver(proto.Span(), body.Span()),
			Proto:   proto,
			Body:    body,
		}
	}

	p.rejectWithMsg("expected `;` or function body after prototype")
	return nil
}

// parsePrototypeTail parses the parameter list of a prototype whose return type
// and name have already been parsed into head.
// params := '(' [param {',' param}] ')' ;
// param := ['const'] type 'IDENT' ;
func (p *Parser) parsePrototypeTail(head *ast.VarDecl) *ast.Prototype {
	p.want(TOK_LPAREN, "`(` in prototype")

	var params []*ast.VarDecl
	if !p.has(TOK_RPAREN) {
		for {
			params = append(params, p.parseVarHead())

			if p.has(TOK_RPAREN) {
				break
			}

			p.want(TOK_COMMA, "`,` or `)` in parameter list")
		}
	}

	p.next()

	return &ast.Prototype{
		ASTBase:    ast.NewASTBaseOver(head.Span(), p.lookbehind.Span),
		ReturnType: head.Type,
		FuncName:   head.VarName,
		Params:     params,
	}
}
