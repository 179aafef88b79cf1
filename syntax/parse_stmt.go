package syntax

import (
	"toyc/ast"
	"toyc/common"
	"toyc/report"
)

// block := '{' stmt* '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.want(TOK_LBRACE).Span

	var stmts []ast.ASTNode
	for !p.has(TOK_RBRACE) {
		if p.has(TOK_EOF) {
			p.reject("`}`")
		}

		stmts = append(stmts, p.parseStmt())
	}

	endSpan := p.want(TOK_RBRACE).Span

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Stmts:   stmts,
	}
}

// stmt := var_decl | if_stmt | while_loop | return_stmt | expr_assign_stmt ;
func (p *Parser) parseStmt() ast.ASTNode {
	switch p.tok.Kind {
	case TOK_LET:
		return p.parseVarDecl()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileLoop()
	case TOK_RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprAssignStmt()
	}
}

// var_decl := 'let' 'IDENT' '=' expr ';' ;
func (p *Parser) parseVarDecl() *ast.VarDecl {
	startSpan := p.want(TOK_LET).Span

	identTok := p.want(TOK_IDENT)

	p.want(TOK_ASSIGN)

	init := p.parseExpr()

	p.want(TOK_SEMI)

	return &ast.VarDecl{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Sym: &common.Symbol{
			Name:    identTok.Value,
			DefSpan: identTok.Span,
		},
		Initializer: init,
	}
}

// if_stmt := 'if' expr block ['else' block] ;
func (p *Parser) parseIfStmt() *ast.IfStmt {
	startSpan := p.want(TOK_IF).Span

	cond := p.parseExpr()
	then := p.parseBlock()

	var elseBlock *ast.Block
	if p.has(TOK_ELSE) {
		p.next()

		elseBlock = p.parseBlock()
	}

	return &ast.IfStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Cond:    cond,
		Then:    then,
		Else:    elseBlock,
	}
}

// while_loop := 'while' expr block ;
func (p *Parser) parseWhileLoop() *ast.WhileLoop {
	startSpan := p.want(TOK_WHILE).Span

	cond := p.parseExpr()
	body := p.parseBlock()

	return &ast.WhileLoop{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Cond:    cond,
		Body:    body,
	}
}

// return_stmt := 'return' [expr] ';' ;
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	startSpan := p.want(TOK_RETURN).Span

	var value ast.ASTExpr
	if !p.has(TOK_SEMI) {
		value = p.parseExpr()
	}

	p.want(TOK_SEMI)

	return &ast.ReturnStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Value:   value,
	}
}

// expr_assign_stmt := 'IDENT' '=' expr ';' | expr ';' ;
//
// The two productions are disambiguated after the fact: an expression
// followed by `=` must be a plain identifier, which becomes the assignment
// target.
func (p *Parser) parseExprAssignStmt() ast.ASTNode {
	expr := p.parseExpr()

	if p.has(TOK_ASSIGN) {
		ident, ok := expr.(*ast.Identifier)
		if !ok {
			panic(report.Raise(report.ErrKindSyntax, p.tok.Span, "left side of assignment must be a variable"))
		}

		p.next()

		rhs := p.parseExpr()

		p.want(TOK_SEMI)

		return &ast.Assignment{
			ASTBase: ast.NewASTBaseOver(ident.Span(), p.lookbehind.Span),
			Var:     ident,
			RHS:     rhs,
		}
	}

	p.want(TOK_SEMI)

	return &ast.ExprStmt{
		ASTBase: ast.NewASTBaseOver(expr.Span(), p.lookbehind.Span),
		Expr:    expr,
	}
}
