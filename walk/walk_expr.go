package walk

import (
	"toyc/ast"
	"toyc/report"
)

// walkExpr walks an expression.
func (w *Walker) walkExpr(expr ast.ASTExpr) {
	switch v := expr.(type) {
	case *ast.BinaryOp:
		w.walkExpr(v.LHS)
		w.walkExpr(v.RHS)
	case *ast.UnaryOp:
		w.walkExpr(v.Operand)
	case *ast.Call:
		w.walkCall(v)
	case *ast.Identifier:
		v.Sym = w.lookup(v.Name, v.Span())
	case *ast.IntLit:
		// Nothing to resolve.
	}
}

// walkCall walks a function call expression.
func (w *Walker) walkCall(call *ast.Call) {
	call.Sig = w.lookupFunc(call.Name, call.Span())

	if len(call.Args) != call.Sig.Arity {
		panic(raiseArityError(call))
	}

	for _, arg := range call.Args {
		w.walkExpr(arg)
	}
}

// raiseArityError builds the error for a call whose argument count does not
// match the callee's parameter count.
func raiseArityError(call *ast.Call) *report.CompileError {
	argNoun := "arguments"
	if call.Sig.Arity == 1 {
		argNoun = "argument"
	}

	return report.Raise(
		report.ErrKindArity,
		call.Span(),
		"function `%s` expects %d %s but received %d",
		call.Name, call.Sig.Arity, argNoun, len(call.Args),
	)
}
