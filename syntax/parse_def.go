package syntax

import (
	"toyc/ast"
	"toyc/common"
)

// func_def := 'fn' 'IDENT' '(' [params] ')' block ;
// params := 'IDENT' {',' 'IDENT'} ;
func (p *Parser) parseFuncDef() *ast.FuncDecl {
	startSpan := p.want(TOK_FN).Span

	funcIdent := p.want(TOK_IDENT)

	paramToks := p.parseParams()

	var params []*common.Symbol
	for _, paramTok := range paramToks {
		params = append(params, &common.Symbol{
			Name:    paramTok.Value,
			DefSpan: paramTok.Span,
		})
	}

	body := p.parseBlock()

	return &ast.FuncDecl{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Sym: &common.FuncSymbol{
			Name:    funcIdent.Value,
			DefSpan: funcIdent.Span,
			Arity:   len(params),
		},
		Params: params,
		Body:   body,
	}
}

// extern_decl := 'extern' 'fn' 'IDENT' '(' [params] ')' ';' ;
func (p *Parser) parseExternDecl() *ast.ExternDecl {
	startSpan := p.want(TOK_EXTERN).Span
	p.want(TOK_FN)

	funcIdent := p.want(TOK_IDENT)

	paramToks := p.parseParams()

	p.want(TOK_SEMI)

	return &ast.ExternDecl{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Sym: &common.FuncSymbol{
			Name:    funcIdent.Value,
			DefSpan: funcIdent.Span,
			Arity:   len(paramToks),
			Extern:  true,
		},
	}
}

// parseParams parses a parenthesized, comma-separated (possibly empty) list
// of parameter name tokens.
func (p *Parser) parseParams() []*Token {
	p.want(TOK_LPAREN)

	var paramToks []*Token
	if !p.has(TOK_RPAREN) {
		for {
			paramToks = append(paramToks, p.want(TOK_IDENT))

			if p.has(TOK_COMMA) {
				p.next()

				continue
			}

			break
		}
	}

	p.want(TOK_RPAREN)

	return paramToks
}
