// Package walk implements the resolver: it walks the parsed AST, builds the
// global function table and per-function scopes, and binds every identifier
// reference to a declaration.
package walk

import (
	"toyc/ast"
	"toyc/common"
	"toyc/report"
)

// Walker is responsible for walking a compilation unit and resolving the
// names within it.
type Walker struct {
	// The global function table.  It is fully populated by a first pass over
	// all declarations before any body is walked, so functions may reference
	// each other regardless of declaration order (mutual recursion included).
	funcTable map[string]*common.FuncSymbol

	// The stack of local scopes used to look up variable symbols.
	localScopes []map[string]*common.Symbol

	// The next free variable slot in the function being walked.
	nextSlot int
}

// Walk resolves the given compilation unit in place.  It panics with a
// *report.CompileError on the first name or arity error.
func Walk(unit *ast.CompilationUnit) {
	w := &Walker{funcTable: make(map[string]*common.FuncSymbol)}

	// First pass: declare all global function symbols.
	for _, decl := range unit.Decls {
		switch v := decl.(type) {
		case *ast.FuncDecl:
			w.defineGlobal(v.Sym)
		case *ast.ExternDecl:
			w.defineGlobal(v.Sym)
		}
	}

	// Second pass: resolve all function bodies.
	for _, decl := range unit.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok {
			w.walkFuncDecl(fd)
		}
	}
}

// walkFuncDecl resolves a single function definition.
func (w *Walker) walkFuncDecl(fd *ast.FuncDecl) {
	w.localScopes = nil
	w.nextSlot = 0

	// Parameters live in the function's outermost scope.
	w.pushScope()
	for _, param := range fd.Params {
		param.Slot = w.newSlot()
		w.defineLocal(param)
	}

	w.walkBlock(fd.Body)

	w.popScope()

	fd.NumSlots = w.nextSlot
}

// -----------------------------------------------------------------------------

// defineGlobal defines a global function symbol.
func (w *Walker) defineGlobal(sym *common.FuncSymbol) {
	if _, ok := w.funcTable[sym.Name]; ok {
		w.error(sym.DefSpan, "multiple functions named `%s` declared", sym.Name)
	}

	w.funcTable[sym.Name] = sym
}

// lookup looks up a variable symbol by name in all visible scopes.  If no
// symbol by the given name can be found, an error is reported.
func (w *Walker) lookup(name string, span *report.TextSpan) *common.Symbol {
	// Traverse local scopes in reverse order to implement shadowing.
	for i := len(w.localScopes) - 1; i > -1; i-- {
		if sym, ok := w.localScopes[i][name]; ok {
			return sym
		}
	}

	w.error(span, "undefined variable: `%s`", name)
	return nil
}

// lookupFunc looks up a function symbol by name in the global table.
func (w *Walker) lookupFunc(name string, span *report.TextSpan) *common.FuncSymbol {
	if sym, ok := w.funcTable[name]; ok {
		return sym
	}

	w.error(span, "undefined function: `%s`", name)
	return nil
}

// defineLocal defines a local symbol in the current local scope.  If a symbol
// by the same name already exists in that exact scope, an error is reported;
// shadowing a symbol of an enclosing scope is permitted.
func (w *Walker) defineLocal(sym *common.Symbol) {
	currScope := w.localScopes[len(w.localScopes)-1]

	if _, ok := currScope[sym.Name]; ok {
		w.error(sym.DefSpan, "multiple variables named `%s` declared in immediate local scope", sym.Name)
	}

	currScope[sym.Name] = sym
}

// newSlot allocates the next variable slot of the enclosing function.
func (w *Walker) newSlot() int {
	slot := w.nextSlot
	w.nextSlot++
	return slot
}

// pushScope pushes a new local scope onto the scope stack.
func (w *Walker) pushScope() {
	w.localScopes = append(w.localScopes, make(map[string]*common.Symbol))
}

// popScope removes the top local scope from the scope stack.
func (w *Walker) popScope() {
	w.localScopes = w.localScopes[:len(w.localScopes)-1]
}

// -----------------------------------------------------------------------------

// error reports a name error on the given span.  All resolution errors abort
// the walk immediately.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(report.ErrKindName, span, msg, args...))
}
