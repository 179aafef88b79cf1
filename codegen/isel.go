package codegen

import (
	"toyc/ir"
	"toyc/report"
)

// condCodes maps IR comparison opcodes to AArch64 condition codes for cset.
var condCodes = map[ir.OpCode]string{
	ir.OpEq: "eq",
	ir.OpNe: "ne",
	ir.OpLt: "lt",
	ir.OpLe: "le",
	ir.OpGt: "gt",
	ir.OpGe: "ge",
}

// emitInst selects and emits the machine code for a single IR instruction.
func (g *generator) emitInst(inst *ir.Inst) {
	switch inst.Op {
	case ir.OpAlloca:
		// The alloca's own frame slot is the storage it reserves, so no code
		// is emitted: loads and stores through its result address the slot
		// directly.
	case ir.OpStore:
		g.materialize(inst.Operands[0], "x8")
		g.store("x8", inst.Operands[1].(*ir.Register))
	case ir.OpLoad:
		g.materialize(inst.Operands[0], "x8")
		g.store("x8", inst.Result)
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod:
		g.emitArith(inst)
	case ir.OpEq, ir.OpNe, ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe:
		g.materialize(inst.Operands[0], "x8")
		g.materialize(inst.Operands[1], "x9")
		g.emit("cmp\tx8, x9")
		g.emit("cset\tx8, %s", condCodes[inst.Op])
		g.store("x8", inst.Result)
	case ir.OpCall:
		g.emitCall(inst)
	case ir.OpJump:
		g.emit("b\t%s", g.blockLabel(inst.Targets[0]))
	case ir.OpCJump:
		g.materialize(inst.Operands[0], "x8")
		g.emit("cbnz\tx8, %s", g.blockLabel(inst.Targets[0]))
		g.emit("b\t%s", g.blockLabel(inst.Targets[1]))
	case ir.OpReturn:
		g.materialize(inst.Operands[0], "x0")
		g.emit("b\t%s", g.retLabel())
	default:
		report.ReportICE("codegen: unhandled instruction %s", inst.Op)
	}
}

// emitArith emits a binary arithmetic instruction.
func (g *generator) emitArith(inst *ir.Inst) {
	g.materialize(inst.Operands[0], "x8")
	g.materialize(inst.Operands[1], "x9")

	switch inst.Op {
	case ir.OpAdd:
		g.emit("add\tx8, x8, x9")
	case ir.OpSub:
		g.emit("sub\tx8, x8, x9")
	case ir.OpMul:
		g.emit("mul\tx8, x8, x9")
	case ir.OpDiv:
		g.emit("sdiv\tx8, x8, x9")
	case ir.OpMod:
		// x8 mod x9 = x8 - (x8 / x9) * x9
		g.emit("sdiv\tx10, x8, x9")
		g.emit("msub\tx8, x10, x9, x8")
	}

	g.store("x8", inst.Result)
}

// emitCall marshals arguments per AAPCS64, emits the call, and captures the
// result.  The first eight arguments go in x0-x7 and the rest are written to
// the outgoing argument area at the stack pointer.
func (g *generator) emitCall(inst *ir.Inst) {
	for i, arg := range inst.Operands {
		if i < 8 {
			g.materialize(arg, regName(i))
		} else {
			g.materialize(arg, "x8")
			g.emit("str\tx8, [sp, #%d]", 8*(i-8))
		}
	}

	g.emit("bl\t%s", inst.Callee)
	g.store("x0", inst.Result)
}

var argRegs = []string{"x0", "x1", "x2", "x3", "x4", "x5", "x6", "x7"}

func regName(i int) string {
	return argRegs[i]
}
