package intcode

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.exec")

// State is the lifecycle state of an execution.
type State uint8

const (
	StateRunning         State = iota // ready to step
	StateSuspendedOutput              // paused right after an output
	StateSuspendedInput               // blocked reading an input record
	StateHalted                       // executed a halt instruction
	StateFaulted                      // failed; the fault is sticky
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspendedOutput:
		return "suspended-output"
	case StateSuspendedInput:
		return "suspended-input"
	case StateHalted:
		return "halted"
	case StateFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// StepKind says what a single step produced.
type StepKind uint8

const (
	StepContinue StepKind = iota // instruction applied, nothing produced
	StepOutput                   // instruction produced Value
	StepHalt                     // machine is halted
)

// StepResult is the outcome of one Step.
type StepResult struct {
	Kind  StepKind
	Value int64
}

// Patch overrides one memory cell before execution.
type Patch struct {
	Addr  Address
	Value int64
}

func (p Patch) String() string {
	return fmt.Sprintf("%d=%d", p.Addr, p.Value)
}

// Exec is one execution session: a Memory bound to an input and an output
// channel. An Exec is not safe for concurrent use.
type Exec struct {
	id    string
	mem   *Memory
	in    io.Reader
	out   io.Writer
	state State
	fault error
	steps uint64

	// Trace logs every decoded instruction at debug level.
	Trace bool
}

// NewExec creates an execution over mem with empty input and discarded
// output.
func NewExec(mem *Memory) *Exec {
	return &Exec{
		id:  uuid.NewString(),
		mem: mem,
		in:  empty{},
		out: io.Discard,
	}
}

// WithInput binds the input channel. A nil reader means no input.
func (e *Exec) WithInput(r io.Reader) *Exec {
	if r == nil {
		r = empty{}
	}
	e.in = r
	return e
}

// WithInputs binds a fresh Buffer holding vals as the input channel.
func (e *Exec) WithInputs(vals ...int64) *Exec {
	return e.WithInput(NewBuffer(vals...))
}

// WithOutput binds the output channel. A nil writer discards output.
func (e *Exec) WithOutput(w io.Writer) *Exec {
	if w == nil {
		w = io.Discard
	}
	e.out = w
	return e
}

// Feed appends records to the input channel without moving its read
// position. The input must be an io.ReadWriteSeeker.
func (e *Exec) Feed(vals ...int64) error {
	if b, ok := e.in.(*Buffer); ok {
		b.Append(vals...)
		return nil
	}
	rws, ok := e.in.(io.ReadWriteSeeker)
	if !ok {
		return &Error{Code: CodeNotSeekable}
	}
	if err := appendRecords(rws, vals); err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	return nil
}

// ID returns the unique name of this execution.
func (e *Exec) ID() string {
	return e.id
}

// Memory returns the memory the execution runs against.
func (e *Exec) Memory() *Memory {
	return e.mem
}

// At returns the memory cell at addr.
func (e *Exec) At(addr Address) int64 {
	return e.mem.Read(addr)
}

// State returns the current lifecycle state.
func (e *Exec) State() State {
	return e.state
}

// Steps returns the number of instructions executed so far.
func (e *Exec) Steps() uint64 {
	return e.steps
}

// Err returns the fault that stopped the machine, if any.
func (e *Exec) Err() error {
	return e.fault
}

// ApplyPatches writes patches directly into memory.
func (e *Exec) ApplyPatches(patches ...Patch) {
	for _, p := range patches {
		e.mem.Write(p.Addr, p.Value)
	}
}

// Step decodes and applies the instruction at the instruction pointer.
//
// A halted machine keeps reporting StepHalt. A faulted machine keeps
// returning its fault and does nothing else.
func (e *Exec) Step() (StepResult, error) {
	switch e.state {
	case StateHalted:
		return StepResult{Kind: StepHalt}, nil
	case StateFaulted:
		return StepResult{}, e.fault
	}
	e.state = StateRunning

	ins, err := e.mem.Decode()
	if err != nil {
		return e.faultWith(err)
	}
	if e.Trace && log.AllowLevel(commonlog.Debug) {
		log.Debugf("%s [%06d] base=%d %s", e.id[:8], ins.At, e.mem.base, ins)
	}
	e.steps++

	res := StepResult{Kind: StepContinue}
	jumped := false

	switch ins.Op {
	case OpAdd:
		e.mem.Write(ins.Dest, ins.Args[0]+ins.Args[1])

	case OpMultiply:
		e.mem.Write(ins.Dest, ins.Args[0]*ins.Args[1])

	case OpInput:
		e.state = StateSuspendedInput
		v, err := readRecord(e.in)
		if err != nil {
			return e.faultWith(&Error{Code: CodeInvalidRead, Addr: ins.At, Err: err})
		}
		e.state = StateRunning
		e.mem.Write(ins.Dest, v)

	case OpOutput:
		if err := writeRecord(e.out, ins.Args[0]); err != nil {
			return e.faultWith(&Error{Code: CodeInvalidWrite, Addr: ins.At, Err: err})
		}
		e.state = StateSuspendedOutput
		res = StepResult{Kind: StepOutput, Value: ins.Args[0]}

	case OpJumpIfTrue, OpJumpIfFalse:
		if (ins.Op == OpJumpIfTrue) == (ins.Args[0] != 0) {
			e.mem.ptr = Address(ins.Args[1])
			jumped = true
		}

	case OpLessThan:
		e.mem.Write(ins.Dest, boolInt(ins.Args[0] < ins.Args[1]))

	case OpEquals:
		e.mem.Write(ins.Dest, boolInt(ins.Args[0] == ins.Args[1]))

	case OpAdjustBase:
		e.mem.base += ins.Args[0]

	case OpHalt:
		e.state = StateHalted
		res = StepResult{Kind: StepHalt}
	}

	if !jumped {
		e.mem.ptr += Address(ins.Len())
	}
	return res, nil
}

func (e *Exec) faultWith(err error) (StepResult, error) {
	e.state = StateFaulted
	e.fault = err
	log.Debugf("%s faulted: %v", e.id[:8], err)
	return StepResult{}, err
}

// Run steps until the machine halts and returns every output in order.
func (e *Exec) Run() ([]int64, error) {
	var outs []int64
	for {
		res, err := e.Step()
		if err != nil {
			return nil, err
		}
		switch res.Kind {
		case StepOutput:
			outs = append(outs, res.Value)
		case StepHalt:
			return outs, nil
		}
	}
}

// RunWith applies patches to memory, then runs to completion.
func (e *Exec) RunWith(patches ...Patch) ([]int64, error) {
	e.ApplyPatches(patches...)
	return e.Run()
}

// RunToOutput steps until the next output and returns it with ok set. If the
// machine halts first, ok is false. After an output the machine is paused
// immediately after the output instruction; calling RunToOutput again
// resumes from there.
func (e *Exec) RunToOutput() (value int64, ok bool, err error) {
	for {
		res, err := e.Step()
		if err != nil {
			return 0, false, err
		}
		switch res.Kind {
		case StepOutput:
			return res.Value, true, nil
		case StepHalt:
			return 0, false, nil
		}
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
