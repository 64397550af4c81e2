package intcode

import (
	"strings"
	"testing"
)

func TestDisassemble(t *testing.T) {
	out := Disassemble(NewProgram(1002, 4, 3, 4, 33))

	for _, want := range []string{
		"; Intcode program, 5 cells",
		"000000  MUL [4], #3, [4]",
		"000004  DATA 33",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestDisassembleQuine(t *testing.T) {
	p := NewProgram(109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99)
	out := Disassemble(p)

	for _, want := range []string{
		"000000  ARB #1",
		"000002  OUT rb-1",
		"000004  ADD [100], #1, [100]",
		"000008  EQ [100], #16, [101]",
		"000012  JF [101], #0",
		"; -> 000000",
		"000015  HALT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestDisassembleTruncatedInstruction(t *testing.T) {
	// An add needs four cells; only two remain in range.
	out := NewMemory([]int64{99, 1, 0}).Disassemble(0, 3)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[1] != "000001  DATA 1" {
		t.Errorf("line 1 = %q, want DATA", lines[1])
	}
}
