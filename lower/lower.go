// Package lower translates the resolved AST into the block-structured IR.
package lower

import (
	"toyc/ast"
	"toyc/common"
	"toyc/ir"
)

// Lowerer lowers one function at a time into IR.
type Lowerer struct {
	// The function being built.
	fn *ir.Func

	// The alloca address of each variable slot, indexed by common.Symbol.Slot.
	slots []*ir.Register
}

// Lower lowers a fully resolved compilation unit into an IR module.
func Lower(unit *ast.CompilationUnit) *ir.Module {
	mod := &ir.Module{}

	for _, decl := range unit.Decls {
		switch v := decl.(type) {
		case *ast.FuncDecl:
			mod.Funcs = append(mod.Funcs, lowerFunc(v))
		case *ast.ExternDecl:
			mod.Externs = append(mod.Externs, &ir.ExternFunc{
				Name:  v.Sym.Name,
				Arity: v.Sym.Arity,
			})
		}
	}

	return mod
}

// lowerFunc lowers a single function definition.
func lowerFunc(fd *ast.FuncDecl) *ir.Func {
	l := &Lowerer{fn: ir.NewFunc(fd.Sym.Name, len(fd.Params))}

	// All variable slots are allocated up front in the entry block: the
	// resolver has already counted them, shadowed variables included.
	for i := 0; i < fd.NumSlots; i++ {
		l.slots = append(l.slots, l.fn.NewAlloca())
	}

	// Spill the incoming parameters into their slots so that assignments to
	// parameters need no special handling.
	for i, param := range fd.Params {
		l.fn.NewStore(l.fn.Params[i], l.slotOf(param))
	}

	l.lowerBlock(fd.Body)

	// A body that falls off the end returns zero.
	if !l.fn.InsertPoint().Terminated() {
		l.fn.NewReturn(ir.ConstInt{Val: 0})
	}

	l.fn.Prune()
	return l.fn
}

// slotOf returns the alloca address backing the given variable symbol.
func (l *Lowerer) slotOf(sym *common.Symbol) *ir.Register {
	return l.slots[sym.Slot]
}
