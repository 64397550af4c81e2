// Package intcode implements a virtual machine for Intcode programs: a
// self-modifying, variable-length instruction stream over a sparse int64
// memory, with blocking input and suspendable output.
//
// # Architecture Overview
//
// The package consists of a handful of small components:
//
//   - Program: an immutable, parsed sequence of int64 cells. Every execution
//     copies it into a fresh Memory.
//
//   - Memory: a sparse address space (never-written cells read as 0) that also
//     owns the instruction pointer and the relative base register.
//
//   - Decoder: reads the opcode cell at the instruction pointer and produces a
//     fully resolved Instruction. Input operands are dereferenced according to
//     their addressing mode; output operands are resolved to a target address.
//
//   - Exec: the execution engine. Step applies exactly one instruction; Run,
//     RunWith and RunToOutput drive Step in a loop.
//
//   - Channels: input is any io.Reader and output any io.Writer. Values travel
//     as 8-byte little-endian records. Buffer is an in-memory seekable channel
//     that accepts new input after some has already been consumed.
//
// # Instruction Format
//
// The low two decimal digits of a cell select the opcode. Each further digit,
// counting from the hundreds place, gives the addressing mode of the
// corresponding parameter:
//
//	1002,4,3,4  ->  op 02 (multiply), modes: position, immediate, position
//
// Modes are position (0, the operand is an address), immediate (1, the
// operand is the value) and relative (2, the operand is an offset from the
// relative base). Immediate mode is never valid for a destination.
//
// # Suspension
//
// An Exec never suspends mid-instruction. Every output step leaves the
// machine in StateSuspendedOutput, and RunToOutput returns right after one
// with the instruction pointer, base and memory intact, so a caller can feed
// new input and resume. Several machines can be chained
// this way; see package amp.
//
// Memory is not protected against self-modification. Instructions are decoded
// from live memory on every visit, so a program may rewrite its own code.
package intcode
