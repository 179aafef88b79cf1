package ir

// OpCode enumerates the IR instruction kinds.
type OpCode int

const (
	// %r = alloca : reserve one stack slot; the result is its address.
	OpAlloca OpCode = iota
	// store <val>, <ptr>
	OpStore
	// %r = load <ptr>
	OpLoad

	// %r = <op> <a>, <b> : comparisons produce $0 or $1.
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	// %r = call @<callee>(<args...>)
	OpCall

	// Terminators.
	OpJump
	OpCJump
	OpReturn
)

var opCodeNames = map[OpCode]string{
	OpAlloca: "alloca",
	OpStore:  "store",
	OpLoad:   "load",
	OpEq:     "eq",
	OpNe:     "ne",
	OpLt:     "lt",
	OpLe:     "le",
	OpGt:     "gt",
	OpGe:     "ge",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpDiv:    "div",
	OpMod:    "mod",
	OpCall:   "call",
	OpJump:   "jump",
	OpCJump:  "cjump",
	OpReturn: "return",
}

func (op OpCode) String() string {
	return opCodeNames[op]
}

// Inst is a single IR instruction.
type Inst struct {
	Op OpCode

	// The register the instruction defines, if any.
	Result *Register

	// The value operands in positional order.
	Operands []Value

	// The successor blocks of a jump (one) or cjump (two: taken when the
	// condition is nonzero, then fallthrough).
	Targets []*Block

	// The callee name of a call.
	Callee string
}

// IsTerminator returns whether the instruction ends a basic block.
func (inst *Inst) IsTerminator() bool {
	switch inst.Op {
	case OpJump, OpCJump, OpReturn:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// append adds an instruction to the current insert point.
func (f *Func) append(inst *Inst) {
	f.insertPoint.Insts = append(f.insertPoint.Insts, inst)
}

// NewAlloca reserves a stack slot and returns its address.
func (f *Func) NewAlloca() *Register {
	inst := &Inst{Op: OpAlloca, Result: f.newReg()}
	f.append(inst)
	return inst.Result
}

// NewEntryAlloca reserves a stack slot in the entry block regardless of the
// current insert point.  Backends that realize allocas at runtime rely on
// every alloca executing exactly once on function entry, so slots created
// mid-lowering (eg. inside a loop) must still land there.
func (f *Func) NewEntryAlloca() *Register {
	inst := &Inst{Op: OpAlloca, Result: f.newReg()}

	entry := f.Blocks[0]
	if entry.Terminated() {
		// Slide the terminator down one position.
		term := entry.Insts[len(entry.Insts)-1]
		entry.Insts[len(entry.Insts)-1] = inst
		entry.Insts = append(entry.Insts, term)
	} else {
		entry.Insts = append(entry.Insts, inst)
	}

	return inst.Result
}

// NewStore writes val through ptr.
func (f *Func) NewStore(val, ptr Value) {
	f.append(&Inst{Op: OpStore, Operands: []Value{val, ptr}})
}

// NewLoad reads the value ptr points to.
func (f *Func) NewLoad(ptr Value) *Register {
	inst := &Inst{Op: OpLoad, Result: f.newReg(), Operands: []Value{ptr}}
	f.append(inst)
	return inst.Result
}

// NewBinary applies a binary arithmetic or comparison operator.
func (f *Func) NewBinary(op OpCode, a, b Value) *Register {
	inst := &Inst{Op: op, Result: f.newReg(), Operands: []Value{a, b}}
	f.append(inst)
	return inst.Result
}

// NewCall calls the named function with the given arguments.
func (f *Func) NewCall(callee string, args []Value) *Register {
	inst := &Inst{Op: OpCall, Result: f.newReg(), Operands: args, Callee: callee}
	f.append(inst)
	return inst.Result
}

// NewJump transfers control unconditionally to target.
func (f *Func) NewJump(target *Block) {
	f.append(&Inst{Op: OpJump, Targets: []*Block{target}})
}

// NewCJump transfers control to ifNonzero when cond is nonzero and to
// ifZero otherwise.
func (f *Func) NewCJump(cond Value, ifNonzero, ifZero *Block) {
	f.append(&Inst{Op: OpCJump, Operands: []Value{cond}, Targets: []*Block{ifNonzero, ifZero}})
}

// NewReturn returns val to the caller.
func (f *Func) NewReturn(val Value) {
	f.append(&Inst{Op: OpReturn, Operands: []Value{val}})
}
