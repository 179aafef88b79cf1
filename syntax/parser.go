package syntax

import (
	"bufio"
	"fmt"

	"toyc/ast"
	"toyc/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for a toy source file.  It is a recursive descent
// parser: it moves over the file token by token and decides what to parse
// based on the token it is currently positioned on and its context (implicit
// from the callstack of parsing functions).  All parsing functions assume
// that they begin with the parser centered on the first token of their
// production and must consume all tokens (including the last) of their
// production, leaving the parser on the next token.  The first syntax error
// aborts parsing: the parser performs no error recovery.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token before the current token.
	lookbehind *Token
}

// Parse parses a source file into a compilation unit.  path is the path to
// the source file as given by the user; it is recorded on the unit for later
// diagnostics.  Parse panics with a *report.CompileError on the first lexical
// or syntactic error.
func Parse(path string, file *bufio.Reader) *ast.CompilationUnit {
	p := &Parser{lexer: NewLexer(file)}

	// Move the parser onto the first token.
	p.next()

	return p.parseFile(path)
}

// file := (func_def | extern_decl)* ;
func (p *Parser) parseFile(path string) *ast.CompilationUnit {
	unit := &ast.CompilationUnit{Path: path}

	for !p.has(TOK_EOF) {
		switch p.tok.Kind {
		case TOK_FN:
			unit.Decls = append(unit.Decls, p.parseFuncDef())
		case TOK_EXTERN:
			unit.Decls = append(unit.Decls, p.parseExternDecl())
		default:
			p.reject("`fn` or `extern`")
		}
	}

	return unit
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
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

// want asserts that the parser is on a token of the given kind, rejecting the
// token if not.  It returns the matched token and moves the parser forward.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.reject(tokenKindRepr(kind))
	}

	tok := p.tok
	p.next()
	return tok
}

// reject reports a syntax error on the current token naming the construct the
// parser expected instead.
func (p *Parser) reject(expected string) {
	var found string
	if p.tok.Kind == TOK_EOF {
		found = "end of file"
	} else {
		found = fmt.Sprintf("`%s`", p.tok.Value)
	}

	panic(report.Raise(report.ErrKindSyntax, p.tok.Span, "expected %s but found %s", expected, found))
}

// -----------------------------------------------------------------------------

// tokenKindReprs maps token kinds to the representation used in "expected X"
// syntax errors.
var tokenKindReprs = map[int]string{
	TOK_FN:     "`fn`",
	TOK_LET:    "`let`",
	TOK_IDENT:  "identifier",
	TOK_INTLIT: "integer literal",
	TOK_ASSIGN: "`=`",
	TOK_LPAREN: "`(`",
	TOK_RPAREN: "`)`",
	TOK_LBRACE: "`{`",
	TOK_RBRACE: "`}`",
	TOK_COMMA:  "`,`",
	TOK_SEMI:   "`;`",
}

// tokenKindRepr returns the display representation of a token kind.
func tokenKindRepr(kind int) string {
	if repr, ok := tokenKindReprs[kind]; ok {
		return repr
	}

	return "token"
}
