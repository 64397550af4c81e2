package intcode

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction with its operands already resolved.
// Instructions are plain values; decoding the same unmodified cells twice
// yields equal Instructions.
type Instruction struct {
	Op    Opcode
	At    Address  // address of the opcode cell
	Modes [3]Mode  // addressing mode per parameter
	Raw   [3]int64 // operand cells as stored
	Args  [2]int64 // resolved input values, in parameter order
	Dest  Address  // resolved destination for writing instructions
}

// Len returns the instruction length in cells.
func (ins Instruction) Len() int {
	return ins.Op.Len()
}

// String renders the instruction in listing form, e.g. "ADD [9], #3, rb+2".
func (ins Instruction) String() string {
	info, ok := opcodeInfoTable[ins.Op]
	if !ok {
		return ins.Op.String()
	}
	var sb strings.Builder
	sb.WriteString(info.Name)
	for i := range info.Operands {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(operandString(ins.Modes[i], ins.Raw[i]))
	}
	return sb.String()
}

func operandString(mode Mode, raw int64) string {
	switch mode {
	case ModeImmediate:
		return fmt.Sprintf("#%d", raw)
	case ModeRelative:
		if raw < 0 {
			return fmt.Sprintf("rb%d", raw)
		}
		return fmt.Sprintf("rb+%d", raw)
	default:
		return fmt.Sprintf("[%d]", raw)
	}
}

// Decode decodes the instruction at the instruction pointer.
func (m *Memory) Decode() (Instruction, error) {
	return m.DecodeAt(m.ptr)
}

// DecodeAt decodes the instruction whose opcode cell is at addr, resolving
// operands against the current contents of memory and the relative base.
func (m *Memory) DecodeAt(at Address) (Instruction, error) {
	cell := m.Read(at)
	op := Opcode(cell % 100)
	info, ok := opcodeInfoTable[op]
	if !ok {
		return Instruction{}, &Error{Code: CodeInvalidOpcode, Addr: at, Value: int64(op)}
	}

	ins := Instruction{Op: op, At: at}
	nargs := 0
	for i, kind := range info.Operands {
		n := i + 1
		mode, ok := modeOf(cell, n)
		if !ok {
			return Instruction{}, &Error{Code: CodeInvalidMode, Addr: at, Value: (cell / pow10[n]) % 10}
		}
		raw := m.Read(at + Address(n))
		ins.Modes[i] = mode
		ins.Raw[i] = raw

		if kind == Out {
			switch mode {
			case ModePosition:
				ins.Dest = Address(raw)
			case ModeRelative:
				ins.Dest = offset(m.base, raw)
			default:
				return Instruction{}, &Error{Code: CodeInvalidDestination, Addr: at, Value: int64(mode)}
			}
			continue
		}

		ins.Args[nargs] = m.resolve(mode, raw)
		nargs++
	}
	return ins, nil
}

// resolve returns the value of an input operand.
func (m *Memory) resolve(mode Mode, raw int64) int64 {
	switch mode {
	case ModeImmediate:
		return raw
	case ModeRelative:
		return m.Read(offset(m.base, raw))
	default:
		return m.Read(Address(raw))
	}
}
