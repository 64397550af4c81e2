package intcode

import "fmt"

// Mode is the addressing mode of one instruction parameter.
type Mode uint8

const (
	ModePosition  Mode = 0 // operand is an address
	ModeImmediate Mode = 1 // operand is the value
	ModeRelative  Mode = 2 // operand is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// pow10 holds 10^(n+1) for parameter n, 1-based.
var pow10 = [...]int64{1, 100, 1000, 10000}

// modeOf extracts the mode digit for 1-based parameter n from an opcode cell.
func modeOf(cell int64, n int) (Mode, bool) {
	d := (cell / pow10[n]) % 10
	if d < 0 || d > int64(ModeRelative) {
		return 0, false
	}
	return Mode(d), true
}
