// Package llvmgen translates the compiler's IR into LLVM IR text.  It backs
// the alternative output mode that hands optimization and native emission to
// an external LLVM toolchain instead of the built-in AArch64 generator.
package llvmgen

import (
	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	llvalue "github.com/llir/llvm/ir/value"

	"toyc/ir"
	"toyc/report"
)

// icmpPreds maps IR comparison opcodes to LLVM integer predicates.
var icmpPreds = map[ir.OpCode]enum.IPred{
	ir.OpEq: enum.IPredEQ,
	ir.OpNe: enum.IPredNE,
	ir.OpLt: enum.IPredSLT,
	ir.OpLe: enum.IPredSLE,
	ir.OpGt: enum.IPredSGT,
	ir.OpGe: enum.IPredSGE,
}

// Generator converts one IR module into one LLVM module.
type Generator struct {
	// mod is the LLVM module being generated.
	mod *llir.Module

	// funcs maps function names to their LLVM declarations so calls can be
	// resolved regardless of definition order.
	funcs map[string]*llir.Func

	// values maps IR registers of the function being generated to their LLVM
	// counterparts.
	values map[*ir.Register]llvalue.Value

	// blocks maps IR blocks of the function being generated to their LLVM
	// counterparts.
	blocks map[*ir.Block]*llir.Block
}

// Generate translates the module and returns its LLVM assembly text.
func Generate(mod *ir.Module) string {
	g := &Generator{
		mod:   llir.NewModule(),
		funcs: make(map[string]*llir.Func),
	}

	// Declare everything first so that calls never dangle.
	for _, ext := range mod.Externs {
		g.funcs[ext.Name] = g.declareFunc(ext.Name, ext.Arity)
	}

	for _, fn := range mod.Funcs {
		llFunc := g.declareFunc(fn.Name, len(fn.Params))
		llFunc.Linkage = enum.LinkageExternal
		g.funcs[fn.Name] = llFunc
	}

	for _, fn := range mod.Funcs {
		g.genFunc(fn)
	}

	return g.mod.String()
}

// declareFunc creates an i64 function taking the given number of i64
// parameters.  A function left without blocks renders as a declaration.
func (g *Generator) declareFunc(name string, arity int) *llir.Func {
	params := make([]*llir.Param, arity)
	for i := range params {
		params[i] = llir.NewParam("", lltypes.I64)
	}

	return g.mod.NewFunc(name, lltypes.I64, params...)
}

// genFunc fills in the body of an already declared function.
func (g *Generator) genFunc(fn *ir.Func) {
	llFunc := g.funcs[fn.Name]

	g.values = make(map[*ir.Register]llvalue.Value)
	for i, param := range fn.Params {
		g.values[param] = llFunc.Params[i]
	}

	g.blocks = make(map[*ir.Block]*llir.Block)
	for _, block := range fn.Blocks {
		g.blocks[block] = llFunc.NewBlock(block.Name())
	}

	for _, block := range fn.Blocks {
		for _, inst := range block.Insts {
			g.genInst(g.blocks[block], inst)
		}
	}
}

// genInst translates a single IR instruction into the given LLVM block.
func (g *Generator) genInst(b *llir.Block, inst *ir.Inst) {
	switch inst.Op {
	case ir.OpAlloca:
		g.values[inst.Result] = b.NewAlloca(lltypes.I64)
	case ir.OpStore:
		b.NewStore(g.operand(inst.Operands[0]), g.operand(inst.Operands[1]))
	case ir.OpLoad:
		g.values[inst.Result] = b.NewLoad(lltypes.I64, g.operand(inst.Operands[0]))
	case ir.OpAdd:
		g.values[inst.Result] = b.NewAdd(g.operand(inst.Operands[0]), g.operand(inst.Operands[1]))
	case ir.OpSub:
		g.values[inst.Result] = b.NewSub(g.operand(inst.Operands[0]), g.operand(inst.Operands[1]))
	case ir.OpMul:
		g.values[inst.Result] = b.NewMul(g.operand(inst.Operands[0]), g.operand(inst.Operands[1]))
	case ir.OpDiv:
		g.values[inst.Result] = b.NewSDiv(g.operand(inst.Operands[0]), g.operand(inst.Operands[1]))
	case ir.OpMod:
		g.values[inst.Result] = b.NewSRem(g.operand(inst.Operands[0]), g.operand(inst.Operands[1]))
	case ir.OpEq, ir.OpNe, ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe:
		// Comparisons are i64-valued 0/1, so the i1 gets widened back.
		cmp := b.NewICmp(icmpPreds[inst.Op], g.operand(inst.Operands[0]), g.operand(inst.Operands[1]))
		g.values[inst.Result] = b.NewZExt(cmp, lltypes.I64)
	case ir.OpCall:
		args := make([]llvalue.Value, len(inst.Operands))
		for i, arg := range inst.Operands {
			args[i] = g.operand(arg)
		}

		g.values[inst.Result] = b.NewCall(g.funcs[inst.Callee], args...)
	case ir.OpJump:
		b.NewBr(g.blocks[inst.Targets[0]])
	case ir.OpCJump:
		cond := b.NewICmp(enum.IPredNE, g.operand(inst.Operands[0]), constant.NewInt(lltypes.I64, 0))
		b.NewCondBr(cond, g.blocks[inst.Targets[0]], g.blocks[inst.Targets[1]])
	case ir.OpReturn:
		b.NewRet(g.operand(inst.Operands[0]))
	default:
		report.ReportICE("llvmgen: unhandled instruction %s", inst.Op)
	}
}

// operand converts an IR operand to its LLVM value.
func (g *Generator) operand(val ir.Value) llvalue.Value {
	switch v := val.(type) {
	case ir.ConstInt:
		return constant.NewInt(lltypes.I64, v.Val)
	case *ir.Register:
		return g.values[v]
	default:
		report.ReportICE("llvmgen: unknown value kind %s", val.Repr())
		return nil
	}
}
