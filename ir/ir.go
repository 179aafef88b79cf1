// Package ir defines the intermediate representation the compiler lowers
// functions into before code generation.  The IR is a conventional basic-block
// CFG: mutable variables are stack slots created by `alloca` and accessed via
// `load` and `store`, and all other values are single-assignment virtual
// registers.  There are no phi nodes.
//
// The same structures serve both the textual dump and the backends, so the
// two can never drift apart.
package ir

import "fmt"

// Value is any operand an instruction may consume: a virtual register or an
// integer constant.
type Value interface {
	// Repr returns the operand's textual form (`%3` or `$42`).
	Repr() string
}

// Register is a single-assignment virtual register.  Function parameters
// occupy registers %0 through %n-1; instruction results are numbered after
// them in emission order.
type Register struct {
	ID int
}

func (r *Register) Repr() string {
	return fmt.Sprintf("%%%d", r.ID)
}

// ConstInt is an integer constant operand.
type ConstInt struct {
	Val int64
}

func (c ConstInt) Repr() string {
	return fmt.Sprintf("$%d", c.Val)
}

// -----------------------------------------------------------------------------

// Module is the IR for one compilation unit.
type Module struct {
	// The functions defined in the unit, in declaration order.
	Funcs []*Func

	// The external functions the unit declares but does not define.
	Externs []*ExternFunc
}

// ExternFunc records an externally defined function the module may call.
type ExternFunc struct {
	Name  string
	Arity int
}

// Func is the IR for a single function definition.
type Func struct {
	// The function's unmangled link name.
	Name string

	// The registers holding the function's parameters on entry.
	Params []*Register

	// The function's basic blocks.  Blocks[0] is always the entry block.
	Blocks []*Block

	// The ID of the next virtual register to allocate.
	nextReg int

	// The block new instructions are appended to.
	insertPoint *Block
}

// NewFunc creates a new function with the given name and parameter count.
// The entry block is created and set as the insert point.
func NewFunc(name string, numParams int) *Func {
	f := &Func{Name: name}

	for i := 0; i < numParams; i++ {
		f.Params = append(f.Params, &Register{ID: f.nextReg})
		f.nextReg++
	}

	f.insertPoint = f.NewBlock()
	return f
}

// NewBlock appends a new empty block to the function.  The insert point is
// unchanged.
func (f *Func) NewBlock() *Block {
	block := &Block{ID: len(f.Blocks)}
	f.Blocks = append(f.Blocks, block)
	return block
}

// InsertPoint returns the block new instructions are appended to.
func (f *Func) InsertPoint() *Block {
	return f.insertPoint
}

// SetInsertPoint makes the given block receive all newly built instructions.
func (f *Func) SetInsertPoint(block *Block) {
	f.insertPoint = block
}

// newReg allocates a fresh virtual register.
func (f *Func) newReg() *Register {
	r := &Register{ID: f.nextReg}
	f.nextReg++
	return r
}

// -----------------------------------------------------------------------------

// Block is a basic block: a straight-line run of instructions ending in a
// single terminator.
type Block struct {
	// The block's ID, dense within its function.  The textual name is bbID.
	ID int

	// The block's instructions in order.  Once a terminator is appended the
	// block is complete.
	Insts []*Inst
}

// Name returns the block's label in the textual dump.
func (b *Block) Name() string {
	return fmt.Sprintf("bb%d", b.ID)
}

// Terminated returns whether the block already ends in a terminator.
func (b *Block) Terminated() bool {
	return len(b.Insts) > 0 && b.Insts[len(b.Insts)-1].IsTerminator()
}

// Term returns the block's terminator.
func (b *Block) Term() *Inst {
	return b.Insts[len(b.Insts)-1]
}

// Successors returns the blocks control may transfer to from this block.
func (b *Block) Successors() []*Block {
	return b.Term().Targets
}

// -----------------------------------------------------------------------------

// Prune removes all blocks unreachable from the entry block and renumbers the
// remainder densely, preserving emission order.
func (f *Func) Prune() {
	reached := map[*Block]bool{f.Blocks[0]: true}
	worklist := []*Block{f.Blocks[0]}

	for len(worklist) > 0 {
		block := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, succ := range block.Successors() {
			if !reached[succ] {
				reached[succ] = true
				worklist = append(worklist, succ)
			}
		}
	}

	kept := f.Blocks[:0]
	for _, block := range f.Blocks {
		if reached[block] {
			block.ID = len(kept)
			kept = append(kept, block)
		}
	}

	f.Blocks = kept
}
