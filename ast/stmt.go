package ast

import "toyc/common"

// Block represents a brace-delimited list of statements.  Each block opens a
// new lexical scope.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []ASTNode
}

// VarDecl represents a `let` variable declaration.
type VarDecl struct {
	ASTBase

	// The declared variable's symbol.
	Sym *common.Symbol

	// The initializer of the variable.
	Initializer ASTExpr
}

// Assignment represents an assignment to an already-declared variable.
type Assignment struct {
	ASTBase

	// The variable being assigned.
	Var *Identifier

	// The RHS expression.
	RHS ASTExpr
}

// IfStmt represents an if statement with an optional else block.
type IfStmt struct {
	ASTBase

	// The condition of the if.
	Cond ASTExpr

	// The then branch.
	Then *Block

	// The else branch.  May be nil.
	Else *Block
}

// WhileLoop represents a while loop.
type WhileLoop struct {
	ASTBase

	// The condition of the loop.
	Cond ASTExpr

	// The body of the loop.
	Body *Block
}

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	ASTBase

	// The expression.
	Expr ASTExpr
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	ASTBase

	// The value being returned.  May be nil, in which case the function
	// returns 0.
	Value ASTExpr
}
