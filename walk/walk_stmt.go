package walk

import "toyc/ast"

// walkBlock walks a block of statements in a fresh local scope.
func (w *Walker) walkBlock(block *ast.Block) {
	w.pushScope()

	for _, stmt := range block.Stmts {
		w.walkStmt(stmt)
	}

	w.popScope()
}

// walkStmt walks a single statement.
func (w *Walker) walkStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		w.walkVarDecl(v)
	case *ast.Assignment:
		// The right-hand side is resolved before the variable so that
		// `let x = 1; { x = x + 1 }` binds both sides to the same slot.
		w.walkExpr(v.RHS)
		v.Var.Sym = w.lookup(v.Var.Name, v.Var.Span())
	case *ast.IfStmt:
		w.walkExpr(v.Cond)
		w.walkBlock(v.Then)

		if v.Else != nil {
			w.walkBlock(v.Else)
		}
	case *ast.WhileLoop:
		w.walkExpr(v.Cond)
		w.walkBlock(v.Body)
	case *ast.ReturnStmt:
		if v.Value != nil {
			w.walkExpr(v.Value)
		}
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	}
}

// walkVarDecl walks a variable declaration.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) {
	// The initializer is resolved before the new variable is defined: in
	// `let x = x`, the right-hand `x` refers to any enclosing `x`, never to
	// the variable being declared.
	w.walkExpr(vd.Initializer)

	vd.Sym.Slot = w.newSlot()
	w.defineLocal(vd.Sym)
}
