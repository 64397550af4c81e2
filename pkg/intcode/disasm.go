package intcode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of a program.
func Disassemble(p *Program) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("; Intcode program, %d cells\n", p.Len()))
	sb.WriteString(NewMemory(p.Code).Disassemble(0, Address(p.Len())))
	return sb.String()
}

// Disassemble lists the cells in [from, to). The listing is linear: cells
// that do not decode are printed as DATA and skipped one at a time, and an
// instruction that would run past to is printed as DATA as well.
func (m *Memory) Disassemble(from, to Address) string {
	var sb strings.Builder
	addr := from
	for addr < to {
		line, n := m.disassembleInstruction(addr, to)
		sb.WriteString(fmt.Sprintf("%06d  %s\n", addr, line))
		addr += Address(n)
	}
	return sb.String()
}

// disassembleInstruction formats the instruction at addr and returns its
// length in cells.
func (m *Memory) disassembleInstruction(addr, limit Address) (string, int) {
	ins, err := m.DecodeAt(addr)
	if err != nil || addr+Address(ins.Len()) > limit {
		return fmt.Sprintf("DATA %d", m.Read(addr)), 1
	}

	line := ins.String()
	if ins.Op.IsJump() && ins.Modes[1] == ModeImmediate {
		line = fmt.Sprintf("%-24s ; -> %06d", line, ins.Raw[1])
	}
	return line, ins.Len()
}
