package ast

import "toyc/common"

// CompilationUnit is the AST of one source file: an ordered sequence of
// global declarations.  It is created at parse time and owns the whole tree
// for the duration of one compile invocation.
type CompilationUnit struct {
	// The path to the source file, as given by the user.
	Path string

	// The declarations of the unit in source order.
	Decls []ASTNode
}

// FuncDecl represents a toy function definition.
type FuncDecl struct {
	ASTBase

	// The function's global symbol.
	Sym *common.FuncSymbol

	// The parameter symbols of the function in declaration order.  The
	// resolver assigns each parameter its slot.
	Params []*common.Symbol

	// The body of the function.
	Body *Block

	// The total number of variable slots the function needs: parameters plus
	// every declared local, shadowing declarations included.  Set by the
	// resolver.
	NumSlots int
}

// ExternDecl represents an `extern fn` declaration: a function defined in
// externally linked code, callable by name.
type ExternDecl struct {
	ASTBase

	// The extern's global symbol.
	Sym *common.FuncSymbol
}
