package intcode

import (
	"cmp"
	"math"
	"slices"
)

// MaxDump is the largest number of cells Dump copies.
const MaxDump = 1 << 20

// Address indexes a memory cell.
type Address uint64

// Memory is a sparse int64 address space together with the registers that
// index into it. Cells that were never written read as zero.
type Memory struct {
	cells map[Address]int64
	top   Address // one past the highest address ever written, saturating
	ptr   Address // instruction pointer
	base  int64   // relative base
}

// NewMemory creates a memory whose low cells hold a copy of code.
func NewMemory(code []int64) *Memory {
	m := &Memory{cells: make(map[Address]int64, len(code))}
	for i, v := range code {
		m.Write(Address(i), v)
	}
	return m
}

// Read returns the value at addr.
func (m *Memory) Read(addr Address) int64 {
	return m.cells[addr]
}

// Write stores value at addr.
func (m *Memory) Write(addr Address, value int64) {
	m.cells[addr] = value
	if addr >= m.top {
		m.top = addr + 1
		if m.top == 0 {
			m.top = math.MaxUint64
		}
	}
}

// Ptr returns the instruction pointer.
func (m *Memory) Ptr() Address {
	return m.ptr
}

// Base returns the relative base.
func (m *Memory) Base() int64 {
	return m.base
}

// Len returns one past the highest address ever written, clamped to
// math.MaxInt.
func (m *Memory) Len() int {
	if m.top > math.MaxInt {
		return math.MaxInt
	}
	return int(m.top)
}

// Dump returns a dense copy of cells [0, min(Len(), MaxDump)). Cells at or
// above MaxDump are left out; Cells lists every written cell.
func (m *Memory) Dump() []int64 {
	n := min(m.top, MaxDump)
	out := make([]int64, n)
	for addr, v := range m.cells {
		if addr < n {
			out[addr] = v
		}
	}
	return out
}

// Cell is one written memory cell.
type Cell struct {
	Addr  Address
	Value int64
}

// Cells returns every written cell in ascending address order.
func (m *Memory) Cells() []Cell {
	cells := make([]Cell, 0, len(m.cells))
	for addr, v := range m.cells {
		cells = append(cells, Cell{Addr: addr, Value: v})
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		return cmp.Compare(a.Addr, b.Addr)
	})
	return cells
}

// offset converts a signed address computation to an Address. Negative
// results wrap around.
func offset(base, v int64) Address {
	return Address(base + v)
}
