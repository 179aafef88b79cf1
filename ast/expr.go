package ast

import "toyc/common"

// IntLit represents an integer literal.
type IntLit struct {
	ASTBase

	// The parsed value of the literal.
	Value int64
}

// Identifier represents a reference to a variable.
type Identifier struct {
	ASTBase

	// The name of the identifier.
	Name string

	// The symbol the identifier resolves to.  Set by the resolver.
	Sym *common.Symbol
}

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ASTBase

	// The operator's token kind.
	OpKind int

	// The operand expressions.
	LHS, RHS ASTExpr
}

// UnaryOp represents a unary operator application.
type UnaryOp struct {
	ASTBase

	// The operator's token kind.
	OpKind int

	// The operand expression.
	Operand ASTExpr
}

// Call represents a function call.
type Call struct {
	ASTBase

	// The name of the callee.
	Name string

	// The argument expressions in source order.
	Args []ASTExpr

	// The function symbol the call resolves to.  Set by the resolver.
	Sig *common.FuncSymbol
}
