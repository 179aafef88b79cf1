// Package codegen emits AArch64 assembly text from the IR.
//
// The generator performs no register allocation: every IR value is assigned a
// dedicated stack slot addressed off the frame pointer, and each instruction
// is selected as a short fixed sequence using x8-x10 as scratch registers.
// The output is fully deterministic and corresponds block for block to the
// textual IR dump.
package codegen

import (
	"fmt"
	"strings"

	"toyc/ir"
	"toyc/report"
)

// Generate emits the assembly text for an entire module.
func Generate(mod *ir.Module) string {
	sb := &strings.Builder{}

	for i, fn := range mod.Funcs {
		if i > 0 {
			sb.WriteRune('\n')
		}

		g := &generator{out: sb, fn: fn}
		g.generate()
	}

	return sb.String()
}

// generator holds the per-function emission state.
type generator struct {
	out *strings.Builder
	fn  *ir.Func

	// The x29-relative offset of each IR value's stack slot.  Offsets are
	// negative: the first value lives at [x29, #-8].
	offsets map[*ir.Register]int

	// The total prologue stack adjustment, 16-byte aligned.  It covers one
	// slot per IR value plus the outgoing stack-argument area of the largest
	// call in the function.
	frameSize int
}

// generate emits one complete function: directives, prologue, body blocks,
// and the shared epilogue.
func (g *generator) generate() {
	g.layOutFrame()

	fmt.Fprintf(g.out, "\t.global\t%s\n", g.fn.Name)
	fmt.Fprintf(g.out, "\t.p2align\t2\n")
	fmt.Fprintf(g.out, "%s:\n", g.fn.Name)

	g.emitPrologue()

	for _, block := range g.fn.Blocks {
		fmt.Fprintf(g.out, "%s:\n", g.blockLabel(block))

		for _, inst := range block.Insts {
			g.emitInst(inst)
		}
	}

	fmt.Fprintf(g.out, "%s:\n", g.retLabel())
	g.emitEpilogue()
}

// layOutFrame assigns every IR value a frame slot and computes the total
// frame size.
func (g *generator) layOutFrame() {
	g.offsets = make(map[*ir.Register]int)

	nextOffset := 0
	assign := func(r *ir.Register) {
		nextOffset -= 8
		g.offsets[r] = nextOffset
	}

	for _, param := range g.fn.Params {
		assign(param)
	}

	maxStackArgs := 0
	for _, block := range g.fn.Blocks {
		for _, inst := range block.Insts {
			if inst.Result != nil {
				assign(inst.Result)
			}

			if inst.Op == ir.OpCall && len(inst.Operands) > 8 {
				if n := len(inst.Operands) - 8; n > maxStackArgs {
					maxStackArgs = n
				}
			}
		}
	}

	// The outgoing argument area sits at the bottom of the frame, directly
	// at sp, so callees find their stack arguments at [their x29, #16...].
	g.frameSize = alignUp16(-nextOffset + 8*maxStackArgs)
}

// emitPrologue saves the frame pointer and link register, establishes the new
// frame, and spills the incoming parameters into their slots.
func (g *generator) emitPrologue() {
	g.emit("stp\tx29, x30, [sp, #-16]!")
	g.emit("mov\tx29, sp")

	if g.frameSize > 0 {
		if g.frameSize <= 4095 {
			g.emit("sub\tsp, sp, #%d", g.frameSize)
		} else {
			g.loadImm("x8", int64(g.frameSize))
			g.emit("sub\tsp, sp, x8")
		}
	}

	for i, param := range g.fn.Params {
		if i < 8 {
			g.emit("str\tx%d, [x29, #%d]", i, g.offsets[param])
		} else {
			// Stack parameters sit above the saved x29/x30 pair.
			g.emit("ldr\tx8, [x29, #%d]", 16+8*(i-8))
			g.emit("str\tx8, [x29, #%d]", g.offsets[param])
		}
	}
}

// emitEpilogue tears down the frame and returns.
func (g *generator) emitEpilogue() {
	g.emit("mov\tsp, x29")
	g.emit("ldp\tx29, x30, [sp], #16")
	g.emit("ret")
}

// -----------------------------------------------------------------------------

// blockLabel returns the function-local assembly label of an IR block.
func (g *generator) blockLabel(block *ir.Block) string {
	return fmt.Sprintf(".L%s_%s", g.fn.Name, block.Name())
}

// retLabel returns the label of the function's shared epilogue.
func (g *generator) retLabel() string {
	return fmt.Sprintf(".L%s_ret", g.fn.Name)
}

// slotOf returns the x29-relative offset of a register's frame slot.
func (g *generator) slotOf(r *ir.Register) int {
	offset, ok := g.offsets[r]
	if !ok {
		report.ReportICE("codegen: value %s has no frame slot", r.Repr())
	}

	return offset
}

// materialize loads the given IR value into the named machine register.
func (g *generator) materialize(val ir.Value, reg string) {
	switch v := val.(type) {
	case ir.ConstInt:
		g.loadImm(reg, v.Val)
	case *ir.Register:
		g.emit("ldr\t%s, [x29, #%d]", reg, g.slotOf(v))
	default:
		report.ReportICE("codegen: unknown value kind %s", val.Repr())
	}
}

// loadImm materializes an integer constant.  Values representable by a single
// mov use it; anything wider comes from the literal pool.
func (g *generator) loadImm(reg string, val int64) {
	if val >= 0 && val <= 65535 {
		g.emit("mov\t%s, #%d", reg, val)
	} else {
		g.emit("ldr\t%s, =%d", reg, val)
	}
}

// store spills the named machine register into an IR value's frame slot.
func (g *generator) store(reg string, r *ir.Register) {
	g.emit("str\t%s, [x29, #%d]", reg, g.slotOf(r))
}

// emit writes one tab-indented instruction line.
func (g *generator) emit(format string, args ...interface{}) {
	fmt.Fprintf(g.out, "\t"+format+"\n", args...)
}

func alignUp16(n int) int {
	return (n + 15) &^ 15
}
