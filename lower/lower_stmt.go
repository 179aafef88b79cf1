package lower

import (
	"toyc/ast"
	"toyc/ir"
)

// lowerBlock lowers a block of statements into the current insert point.
// Statements after a terminator are unreachable and are dropped.
func (l *Lowerer) lowerBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		if l.fn.InsertPoint().Terminated() {
			break
		}

		l.lowerStmt(stmt)
	}
}

// lowerStmt lowers a single statement.
func (l *Lowerer) lowerStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		init := l.lowerExpr(v.Initializer)
		l.fn.NewStore(init, l.slotOf(v.Sym))
	case *ast.Assignment:
		rhs := l.lowerExpr(v.RHS)
		l.fn.NewStore(rhs, l.slotOf(v.Var.Sym))
	case *ast.IfStmt:
		l.lowerIfStmt(v)
	case *ast.WhileLoop:
		l.lowerWhileLoop(v)
	case *ast.ReturnStmt:
		var val ir.Value = ir.ConstInt{Val: 0}
		if v.Value != nil {
			val = l.lowerExpr(v.Value)
		}

		l.fn.NewReturn(val)
	case *ast.ExprStmt:
		l.lowerExpr(v.Expr)
	}
}

// lowerIfStmt lowers an if statement into a branch diamond.  Arms that end in
// a terminator of their own do not jump to the join block, which is pruned
// entirely when both arms return.
func (l *Lowerer) lowerIfStmt(stmt *ast.IfStmt) {
	cond := l.lowerExpr(stmt.Cond)

	thenBlock := l.fn.NewBlock()
	joinBlock := l.fn.NewBlock()
	elseBlock := joinBlock
	if stmt.Else != nil {
		elseBlock = l.fn.NewBlock()
	}

	l.fn.NewCJump(cond, thenBlock, elseBlock)

	l.fn.SetInsertPoint(thenBlock)
	l.lowerBlock(stmt.Then)
	if !l.fn.InsertPoint().Terminated() {
		l.fn.NewJump(joinBlock)
	}

	if stmt.Else != nil {
		l.fn.SetInsertPoint(elseBlock)
		l.lowerBlock(stmt.Else)
		if !l.fn.InsertPoint().Terminated() {
			l.fn.NewJump(joinBlock)
		}
	}

	l.fn.SetInsertPoint(joinBlock)
}

// lowerWhileLoop lowers a while loop.  The condition gets its own header
// block so the loop back edge re-evaluates it.
func (l *Lowerer) lowerWhileLoop(loop *ast.WhileLoop) {
	headerBlock := l.fn.NewBlock()
	bodyBlock := l.fn.NewBlock()
	exitBlock := l.fn.NewBlock()

	l.fn.NewJump(headerBlock)

	l.fn.SetInsertPoint(headerBlock)
	cond := l.lowerExpr(loop.Cond)
	l.fn.NewCJump(cond, bodyBlock, exitBlock)

	l.fn.SetInsertPoint(bodyBlock)
	l.lowerBlock(loop.Body)
	if !l.fn.InsertPoint().Terminated() {
		l.fn.NewJump(headerBlock)
	}

	l.fn.SetInsertPoint(exitBlock)
}
