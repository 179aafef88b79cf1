package syntax

import (
	"strconv"

	"toyc/ast"
	"toyc/report"
)

// precTable is the operator precedence table for binary operators.  The table
// is ordered highest to lowest precedence; all binary operators are
// left-associative.
var precTable = [][]int{
	{TOK_STAR, TOK_DIV, TOK_MOD},
	{TOK_PLUS, TOK_MINUS},
	{TOK_EQ, TOK_NEQ, TOK_LT, TOK_LTEQ, TOK_GT, TOK_GTEQ},
	{TOK_LAND},
	{TOK_LOR},
}

// expr := bin_op_expr ;
func (p *Parser) parseExpr() ast.ASTExpr {
	return p.parseBinOpExpr(len(precTable))
}

// bin_op_expr := unary_expr {bin_op unary_expr} ;
//
// parseBinOpExpr performs operator precedence parsing for binary operators:
// it parses any binary expression whose operators all bind at least as
// tightly as precedence level maxPrec.
func (p *Parser) parseBinOpExpr(maxPrec int) ast.ASTExpr {
	lhs := p.parseUnaryExpr()

	for {
		// Check whether the current token is an operator at or above our
		// precedence level.
		opPrec := -1
		for prec, precLevel := range precTable[:maxPrec] {
			for _, kind := range precLevel {
				if p.has(kind) {
					opPrec = prec
					break
				}
			}

			if opPrec != -1 {
				break
			}
		}

		if opPrec == -1 {
			return lhs
		}

		opTok := p.tok
		p.next()

		// The right operand binds every operator strictly tighter than the
		// one just consumed, giving left associativity.
		rhs := p.parseBinOpExpr(opPrec)

		lhs = &ast.BinaryOp{
			ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
			OpKind:  opTok.Kind,
			LHS:     lhs,
			RHS:     rhs,
		}
	}
}

// unary_expr := ('-' | '!') unary_expr | atom_expr ;
func (p *Parser) parseUnaryExpr() ast.ASTExpr {
	if p.has(TOK_MINUS) || p.has(TOK_NOT) {
		opTok := p.tok
		p.next()

		operand := p.parseUnaryExpr()

		return &ast.UnaryOp{
			ASTBase: ast.NewASTBaseOver(opTok.Span, operand.Span()),
			OpKind:  opTok.Kind,
			Operand: operand,
		}
	}

	return p.parseAtomExpr()
}

// atom_expr := 'INTLIT' | 'IDENT' ['(' [args] ')'] | '(' expr ')' ;
// args := expr {',' expr} ;
func (p *Parser) parseAtomExpr() ast.ASTExpr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		{
			tok := p.tok
			p.next()

			value, err := strconv.ParseInt(tok.Value, 10, 64)
			if err != nil {
				panic(report.Raise(report.ErrKindSyntax, tok.Span, "integer literal out of range: `%s`", tok.Value))
			}

			return &ast.IntLit{
				ASTBase: ast.NewASTBaseOn(tok.Span),
				Value:   value,
			}
		}
	case TOK_IDENT:
		{
			identTok := p.tok
			p.next()

			if p.has(TOK_LPAREN) {
				return p.parseCallArgs(identTok)
			}

			return &ast.Identifier{
				ASTBase: ast.NewASTBaseOn(identTok.Span),
				Name:    identTok.Value,
			}
		}
	case TOK_LPAREN:
		{
			p.next()

			expr := p.parseExpr()

			p.want(TOK_RPAREN)

			return expr
		}
	default:
		p.reject("expression")
		return nil // unreachable
	}
}

// parseCallArgs parses the parenthesized argument list of a call to the
// function named by identTok, with the parser positioned on the `(`.
func (p *Parser) parseCallArgs(identTok *Token) *ast.Call {
	p.want(TOK_LPAREN)

	var args []ast.ASTExpr
	if !p.has(TOK_RPAREN) {
		for {
			args = append(args, p.parseExpr())

			if p.has(TOK_COMMA) {
				p.next()

				continue
			}

			break
		}
	}

	endSpan := p.want(TOK_RPAREN).Span

	return &ast.Call{
		ASTBase: ast.NewASTBaseOver(identTok.Span, endSpan),
		Name:    identTok.Value,
		Args:    args,
	}
}
