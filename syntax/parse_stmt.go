package syntax

import (
	"github.com/TrainFun/cxc/ast"
	"github.com/TrainFun/cxc/report"
	"github.com/TrainFun/cxc/typing"
)

// stmt := expr_stmt | block | if_stmt | for_stmt | switch_stmt | while_stmt
//      | do_stmt | repeat_stmt | read_stmt | write_stmt
//      | 'continue' ';' | 'break' ';' | return_stmt | exit_stmt ;
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_SEMI, TOK_NOT, TOK_LPAREN, TOK_INC, TOK_DEC, TOK_ODD, TOK_INTLIT,
		TOK_DOUBLELIT, TOK_TRUE, TOK_FALSE, TOK_IDENT, TOK_CAST:
		return p.parseExprStmt()
	case TOK_LBRACE:
		return p.parseBlock()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_FOR:
		return p.parseForStmt()
	case TOK_SWITCH:
		return p.parseSwitchStmt()
	case TOK_WHILE:
		return p.parseWhileStmt()
	case TOK_DO:
		return p.parseDoWhileStmt()
	case TOK_REPEAT:
		return p.parseRepeatUntilStmt()
	case TOK_READ:
		{
			startSpan := p.want(TOK_READ, "`read`").Span
			target := p.parseExpr()
			p.want(TOK_SEMI, "`;` after read")
			return &ast.ReadStmt{
				StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
				Target:   target,
			}
		}
	case TOK_WRITE:
		{
			startSpan := p.want(TOK_WRITE, "`write`").Span
			value := p.parseExpr()
			p.want(TOK_SEMI, "`;` after write")
			return &ast.WriteStmt{
				StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
				Value:    value,
			}
		}
	case TOK_CONTINUE:
		{
			startSpan := p.want(TOK_CONTINUE, "`continue`").Span
			p.want(TOK_SEMI, "`;` after continue")
			return &ast.ContinueStmt{
				StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
			}
		}
	case TOK_BREAK:
		{
			startSpan := p.want(TOK_BREAK, "`break`").Span
			p.want(TOK_SEMI, "`;` after break")
			return &ast.BreakStmt{
				StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
			}
		}
	case TOK_RETURN:
		{
			startSpan := p.want(TOK_RETURN, "`return`").Span
			value := p.parseExpr()
			p.want(TOK_SEMI, "`;` after return")
			return &ast.ReturnStmt{
				StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
				Value:    value,
			}
		}
	case TOK_EXIT:
		{
			startSpan := p.want(TOK_EXIT, "`exit`").Span
			code := p.parseExpr()
			p.want(TOK_SEMI, "`;` after exit")
			return &ast.ExitStmt{
				StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
				Code:     code,
			}
		}
	}

	if p.has(TOK_EOF) || p.has(TOK_INVALID) {
		p.reject()
	}

	p.rejectWithMsg("unknown token `%s` when expecting a statement", p.tok.Value)
	return nil
}

// expr_stmt := [expr] ';' ;
func (p *Parser) parseExprStmt() ast.Stmt {
	if p.has(TOK_SEMI) {
		p.next()
		return &ast.ExprStmt{StmtBase: ast.NewStmtBase(ast.NewASTBaseOn(p.lookbehind.Span))}
	}

	expr := p.parseExpr()
	p.want(TOK_SEMI, "`;` after expression")

	return &ast.ExprStmt{
		StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(expr.Span(), p.lookbehind.Span)),
		Expr:     expr,
	}
}

// block := '{' {var_decl | stmt} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.want(TOK_LBRACE, "`{`").Span

	var elems []ast.BlockElement
	for !p.has(TOK_RBRACE) {
		if p.has(TOK_EOF) {
			p.rejectWithMsg("expected `}` to close block")
		}

		if p.has(TOK_CONST) || p.isTypeStart() {
			elems = append(elems, p.parseLocalVarDecl())
		} else {
			elems = append(elems, p.parseStmt())
		}
	}

	p.next()

	return &ast.Block{
		StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
		Elems:    elems,
	}
}

// var_decl := ['const'] type 'IDENT' ['=' expr] ';' ;
func (p *Parser) parseLocalVarDecl() *ast.VarDecl {
	vd := p.parseVarHead()

	if p.has(TOK_ASSIGN) {
		p.next()
		vd.Init = p.parseExpr()
	}

	p.want(TOK_SEMI, "`;` after variable declaration")
	vd.ASTBase = ast.NewASTBaseOver(vd.Span(), p.lookbehind.Span)
	return vd
}

// var_head := ['const'] type 'IDENT' ;
func (p *Parser) parseVarHead() *ast.VarDecl {
	startSpan := p.tok.Span

	isConst := false
	if p.has(TOK_CONST) {
		isConst = true
		p.next()
	}

	typ := p.parseTypeLabel()
	nameTok := p.want(TOK_IDENT, "identifier after type")

	return &ast.VarDecl{
		ASTBase:  ast.NewASTBaseOver(startSpan, nameTok.Span),
		Const:    isConst,
		Type:     typ,
		VarName:  nameTok.Value,
		NameSpan: nameTok.Span,
	}
}

// parseParenCond parses a parenthesized condition.  The `what` names the
// construct for error messages.
func (p *Parser) parseParenCond(what string) ast.Expr {
	p.want(TOK_LPAREN, "`(` in "+what)
	cond := p.parseExpr()
	p.want(TOK_RPAREN, "`)` in "+what)
	return cond
}

// -----------------------------------------------------------------------------

// if_stmt := 'if' '(' expr ')' stmt ['else' stmt] ;
func (p *Parser) parseIfStmt() ast.Stmt {
	startSpan := p.want(TOK_IF, "`if`").Span
	cond := p.parseParenCond("if")
	then := p.parseStmt()

	var elseStmt ast.Stmt
	if p.has(TOK_ELSE) {
		p.next()
		elseStmt = p.parseStmt()
	}

	return &ast.IfStmt{
		StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
		Cond:     cond,
		Then:     then,
		Else:     elseStmt,
	}
}

// for_stmt := 'for' '(' [type 'IDENT' ['=' expr]] ';' [expr] ';' [expr] ')' stmt ;
func (p *Parser) parseForStmt() ast.Stmt {
	startSpan := p.want(TOK_FOR, "`for`").Span
	p.want(TOK_LPAREN, "`(` in for")

	fs := &ast.ForStmt{VarType: typing.Error}
	if !p.has(TOK_SEMI) {
		fs.VarType = p.parseTypeLabel()
		fs.VarName = p.want(TOK_IDENT, "loop variable name in for").Value

		if p.has(TOK_ASSIGN) {
			p.next()
			fs.Start = p.parseExpr()
		}
	}
	p.want(TOK_SEMI, "`;` after for loop variable")

	if !p.has(TOK_SEMI) {
		fs.End = p.parseExpr()
	}
	p.want(TOK_SEMI, "`;` after for loop condition")

	if !p.has(TOK_RPAREN) {
		fs.Step = p.parseExpr()
	}
	p.want(TOK_RPAREN, "`)` in for")

	fs.Body = p.parseStmt()
	fs.StmtBase = ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span))
	return fs
}

// switch_stmt := 'switch' '(' expr ')' '{' {case_clause} '}' ;
// case_clause := case_label {case_label} {stmt} ;
// case_label := 'case' expr ':' | 'default' ':' ;
func (p *Parser) parseSwitchStmt() ast.Stmt {
	startSpan := p.want(TOK_SWITCH, "`switch`").Span
	scrutinee := p.parseParenCond("switch")
	p.want(TOK_LBRACE, "`{` in switch")

	if !p.hasOneOf(TOK_RBRACE, TOK_CASE, TOK_DEFAULT) {
		p.rejectWithMsg("expected switch body starting with `case` or `default`")
	}

	var clauses []*ast.CaseClause
	var defaultSpan *report.TextSpan
	for !p.has(TOK_RBRACE) {
		clause := &ast.CaseClause{}

		for p.hasOneOf(TOK_CASE, TOK_DEFAULT) {
			if p.has(TOK_CASE) {
				p.next()
				clause.Labels = append(clause.Labels, p.parseExpr())
			} else {
				if defaultSpan != nil {
					p.rejectWithMsg("switch has more than one `default`")
				}

				defaultSpan = p.tok.Span
				p.next()
				clause.Labels = append(clause.Labels, nil)
			}

			p.want(TOK_COLON, "`:` after `case` or `default`")
		}

		for !p.hasOneOf(TOK_CASE, TOK_DEFAULT, TOK_RBRACE) {
			if p.has(TOK_EOF) {
				p.rejectWithMsg("expected `}` to close switch")
			}

			clause.Body = append(clause.Body, p.parseStmt())
		}

		clauses = append(clauses, clause)
	}

	p.next()

	return &ast.SwitchStmt{
		StmtBase:  ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
		Scrutinee: scrutinee,
		Clauses:   clauses,
	}
}

// while_stmt := 'while' '(' expr ')' stmt ;
func (p *Parser) parseWhileStmt() ast.Stmt {
	startSpan := p.want(TOK_WHILE, "`while`").Span
	cond := p.parseParenCond("while")
	body := p.parseStmt()

	return &ast.WhileStmt{
		StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
		Cond:     cond,
		Body:     body,
	}
}

// do_stmt := 'do' stmt 'while' '(' expr ')' ';' ;
func (p *Parser) parseDoWhileStmt() ast.Stmt {
	startSpan := p.want(TOK_DO, "`do`").Span
	body := p.parseStmt()
	p.want(TOK_WHILE, "`while` after do body")
	cond := p.parseParenCond("do-while")
	p.want(TOK_SEMI, "`;` after do-while")

	return &ast.DoWhileStmt{
		StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
		Body:     body,
		Cond:     cond,
	}
}

// repeat_stmt := 'repeat' stmt 'until' '(' expr ')' ';' ;
func (p *Parser) parseRepeatUntilStmt() ast.Stmt {
	startSpan := p.want(TOK_REPEAT, "`repeat`").Span
	body := p.parseStmt()
	p.want(TOK_UNTIL, "`until` after repeat body")
	cond := p.parseParenCond("repeat-until")
	p.want(TOK_SEMI, "`;` after repeat-until")

	return &ast.RepeatUntilStmt{
		StmtBase: ast.NewStmtBase(ast.NewASTBaseOver(startSpan, p.lookbehind.Span)),
		Body:     body,
		Cond:     cond,
	}
}
