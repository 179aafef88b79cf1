package lower

import (
	"toyc/ast"
	"toyc/ir"
	"toyc/report"
	"toyc/syntax"
)

// binaryOps maps binary operator token kinds to IR opcodes.  The logical
// operators are absent: they lower to control flow, not to an instruction.
var binaryOps = map[int]ir.OpCode{
	syntax.TOK_PLUS:  ir.OpAdd,
	syntax.TOK_MINUS: ir.OpSub,
	syntax.TOK_STAR:  ir.OpMul,
	syntax.TOK_DIV:   ir.OpDiv,
	syntax.TOK_MOD:   ir.OpMod,
	syntax.TOK_EQ:    ir.OpEq,
	syntax.TOK_NEQ:   ir.OpNe,
	syntax.TOK_LT:    ir.OpLt,
	syntax.TOK_LTEQ:  ir.OpLe,
	syntax.TOK_GT:    ir.OpGt,
	syntax.TOK_GTEQ:  ir.OpGe,
}

// lowerExpr lowers an expression and returns the value holding its result.
func (l *Lowerer) lowerExpr(expr ast.ASTExpr) ir.Value {
	switch v := expr.(type) {
	case *ast.IntLit:
		return ir.ConstInt{Val: v.Value}
	case *ast.Identifier:
		return l.fn.NewLoad(l.slotOf(v.Sym))
	case *ast.BinaryOp:
		return l.lowerBinaryOp(v)
	case *ast.UnaryOp:
		return l.lowerUnaryOp(v)
	case *ast.Call:
		args := make([]ir.Value, len(v.Args))
		for i, arg := range v.Args {
			args[i] = l.lowerExpr(arg)
		}

		return l.fn.NewCall(v.Sig.Name, args)
	default:
		report.ReportICE("lowering unknown expression kind")
		return nil
	}
}

// lowerBinaryOp lowers a binary operator application.
func (l *Lowerer) lowerBinaryOp(bop *ast.BinaryOp) ir.Value {
	switch bop.OpKind {
	case syntax.TOK_LAND, syntax.TOK_LOR:
		return l.lowerShortCircuit(bop)
	default:
		lhs := l.lowerExpr(bop.LHS)
		rhs := l.lowerExpr(bop.RHS)
		return l.fn.NewBinary(binaryOps[bop.OpKind], lhs, rhs)
	}
}

// lowerUnaryOp lowers a unary operator application.  Negation is subtraction
// from zero; logical not is a comparison against zero.
func (l *Lowerer) lowerUnaryOp(uop *ast.UnaryOp) ir.Value {
	operand := l.lowerExpr(uop.Operand)

	switch uop.OpKind {
	case syntax.TOK_MINUS:
		return l.fn.NewBinary(ir.OpSub, ir.ConstInt{Val: 0}, operand)
	case syntax.TOK_NOT:
		return l.fn.NewBinary(ir.OpEq, operand, ir.ConstInt{Val: 0})
	default:
		report.ReportICE("lowering unknown unary operator")
		return nil
	}
}

// lowerShortCircuit lowers `&&` and `||`, which must not evaluate their right
// operand when the left operand already decides the result.  The result is
// carried through a hidden stack slot: the left operand either settles it to
// a constant or branches into a block that evaluates the right operand.
// Either way the loaded result is normalized to $0 or $1.  The hidden slot
// joins the variable slots in the entry block so it is allocated once even
// when the operator sits in a loop.
func (l *Lowerer) lowerShortCircuit(bop *ast.BinaryOp) ir.Value {
	result := l.fn.NewEntryAlloca()

	lhs := l.lowerExpr(bop.LHS)

	rhsBlock := l.fn.NewBlock()
	joinBlock := l.fn.NewBlock()

	if bop.OpKind == syntax.TOK_LAND {
		// A false left operand settles `&&` to 0 without evaluating the right.
		l.fn.NewStore(ir.ConstInt{Val: 0}, result)
		l.fn.NewCJump(lhs, rhsBlock, joinBlock)
	} else {
		// A true left operand settles `||` to 1 without evaluating the right.
		l.fn.NewStore(ir.ConstInt{Val: 1}, result)
		l.fn.NewCJump(lhs, joinBlock, rhsBlock)
	}

	l.fn.SetInsertPoint(rhsBlock)
	rhs := l.lowerExpr(bop.RHS)
	norm := l.fn.NewBinary(ir.OpNe, rhs, ir.ConstInt{Val: 0})
	l.fn.NewStore(norm, result)
	l.fn.NewJump(joinBlock)

	l.fn.SetInsertPoint(joinBlock)
	return l.fn.NewLoad(result)
}
