package intcode

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Program is a parsed Intcode program. A Program is never modified; each
// execution runs against its own copy.
type Program struct {
	Code []int64
}

// NewProgram wraps code as a Program.
func NewProgram(code ...int64) *Program {
	return &Program{Code: code}
}

// Parse reads the comma-separated text form of a program. Whitespace around
// the text and around each value is ignored.
func Parse(text string) (*Program, error) {
	fields := strings.Split(strings.TrimSpace(text), ",")
	code := make([]int64, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, &Error{Code: CodeInvalidInput, Addr: Address(i), Err: err}
		}
		code = append(code, v)
	}
	return &Program{Code: code}, nil
}

// ParseFile reads and parses the program stored at path.
func ParseFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	p, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return p, nil
}

// Len returns the number of cells in the program.
func (p *Program) Len() int {
	return len(p.Code)
}

// String returns the canonical text form of the program.
func (p *Program) String() string {
	var sb strings.Builder
	for i, v := range p.Code {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}

// Exec starts a fresh execution of p with empty input and discarded output.
func (p *Program) Exec() *Exec {
	return NewExec(NewMemory(p.Code))
}
