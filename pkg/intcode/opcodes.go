package intcode

import "fmt"

// Opcode is the low two decimal digits of an instruction cell.
type Opcode int64

const (
	OpAdd         Opcode = 1  // add a b -> c
	OpMultiply    Opcode = 2  // multiply a b -> c
	OpInput       Opcode = 3  // read one record -> a
	OpOutput      Opcode = 4  // write a as one record
	OpJumpIfTrue  Opcode = 5  // if a != 0, ptr = b
	OpJumpIfFalse Opcode = 6  // if a == 0, ptr = b
	OpLessThan    Opcode = 7  // c = a < b ? 1 : 0
	OpEquals      Opcode = 8  // c = a == b ? 1 : 0
	OpAdjustBase  Opcode = 9  // base += a
	OpHalt        Opcode = 99 // stop
)

// Operand says whether a parameter is read or written.
type Operand uint8

const (
	In  Operand = iota // value, dereferenced by mode
	Out                // destination address
)

// OpcodeInfo provides metadata about each opcode for decoding and listings.
type OpcodeInfo struct {
	Name     string    // Mnemonic
	Operands []Operand // Parameter shapes, in order
}

// Len returns the instruction length in cells, opcode cell included.
func (i OpcodeInfo) Len() int {
	return 1 + len(i.Operands)
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	// Arithmetic
	OpAdd:      {"ADD", []Operand{In, In, Out}},
	OpMultiply: {"MUL", []Operand{In, In, Out}},

	// I/O
	OpInput:  {"IN", []Operand{Out}},
	OpOutput: {"OUT", []Operand{In}},

	// Control flow
	OpJumpIfTrue:  {"JT", []Operand{In, In}},
	OpJumpIfFalse: {"JF", []Operand{In, In}},

	// Comparison
	OpLessThan: {"LT", []Operand{In, In, Out}},
	OpEquals:   {"EQ", []Operand{In, In, Out}},

	// Registers
	OpAdjustBase: {"ARB", []Operand{In}},

	OpHalt: {"HALT", nil},
}

// GetOpcodeInfo returns metadata for an opcode and whether it is defined.
func GetOpcodeInfo(op Opcode) (OpcodeInfo, bool) {
	info, ok := opcodeInfoTable[op]
	return info, ok
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	if info, ok := opcodeInfoTable[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int64(op))
}

// Len returns the instruction length in cells, or 0 for an undefined opcode.
func (op Opcode) Len() int {
	if info, ok := opcodeInfoTable[op]; ok {
		return info.Len()
	}
	return 0
}

// IsJump reports whether op may redirect the instruction pointer.
func (op Opcode) IsJump() bool {
	return op == OpJumpIfTrue || op == OpJumpIfFalse
}

// Writes reports whether op stores to memory.
func (op Opcode) Writes() bool {
	info, ok := opcodeInfoTable[op]
	return ok && len(info.Operands) > 0 && info.Operands[len(info.Operands)-1] == Out
}

// AllOpcodes returns every defined opcode in ascending order.
func AllOpcodes() []Opcode {
	return []Opcode{
		OpAdd, OpMultiply, OpInput, OpOutput, OpJumpIfTrue,
		OpJumpIfFalse, OpLessThan, OpEquals, OpAdjustBase, OpHalt,
	}
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return len(opcodeInfoTable)
}
