package ir

import (
	"fmt"
	"strings"
)

// The textual dump is stable and diff-friendly: it is the golden-output
// format the compiler's regression tests compare against.

func (m *Module) String() string {
	sb := strings.Builder{}

	for _, ext := range m.Externs {
		sb.WriteString(ext.String())
		sb.WriteRune('\n')
	}

	for i, f := range m.Funcs {
		if i > 0 || len(m.Externs) > 0 {
			sb.WriteRune('\n')
		}

		sb.WriteString(f.String())
		sb.WriteRune('\n')
	}

	return sb.String()
}

func (ext *ExternFunc) String() string {
	sb := strings.Builder{}

	fmt.Fprintf(&sb, "extern @%s(", ext.Name)
	for i := 0; i < ext.Arity; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%%%d", i)
	}
	sb.WriteRune(')')

	return sb.String()
}

func (f *Func) String() string {
	sb := strings.Builder{}

	fmt.Fprintf(&sb, "define @%s(", f.Name)
	for i, param := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param.Repr())
	}
	sb.WriteString(") {")

	for _, block := range f.Blocks {
		sb.WriteRune('\n')
		sb.WriteString(block.String())
	}

	sb.WriteString("\n}")
	return sb.String()
}

func (b *Block) String() string {
	sb := strings.Builder{}

	sb.WriteString(b.Name())
	sb.WriteRune(':')

	for _, inst := range b.Insts {
		sb.WriteString("\n\t")
		sb.WriteString(inst.String())
	}

	return sb.String()
}

func (inst *Inst) String() string {
	sb := strings.Builder{}

	if inst.Result != nil {
		fmt.Fprintf(&sb, "%s = ", inst.Result.Repr())
	}

	sb.WriteString(inst.Op.String())

	switch inst.Op {
	case OpCall:
		fmt.Fprintf(&sb, " @%s(", inst.Callee)
		for i, arg := range inst.Operands {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(arg.Repr())
		}
		sb.WriteRune(')')
	case OpJump:
		fmt.Fprintf(&sb, " %s", inst.Targets[0].Name())
	case OpCJump:
		fmt.Fprintf(&sb, " %s, %s, %s",
			inst.Operands[0].Repr(), inst.Targets[0].Name(), inst.Targets[1].Name())
	case OpAlloca:
		// No operands.
	default:
		for i, opv := range inst.Operands {
			if i > 0 {
				sb.WriteRune(',')
			}

			fmt.Fprintf(&sb, " %s", opv.Repr())
		}
	}

	return sb.String()
}
