// Package amp chains Intcode machines into amplifier pipelines.
//
// Each stage is an independent machine seeded with a phase setting. In a
// serial chain every stage runs once and its output becomes the next
// stage's input. In a feedback loop the last stage feeds the first again and
// the stages are driven round-robin, one output at a time, until the last
// stage halts.
package amp

import (
	"errors"
	"fmt"

	"github.com/chazu/intcode/pkg/intcode"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("amp")

// ErrNoOutput is returned when a stage halts without producing the signal
// the pipeline needs.
var ErrNoOutput = errors.New("amp: stage produced no output")

// Pipeline is a chain of amplifier stages that turns an input signal into an
// output signal.
type Pipeline interface {
	Run(signal int64) (int64, error)
	SetTrace(on bool)
	Stages() []*intcode.Exec
}

// Chain is a serial pipeline. Every stage runs once.
type Chain struct {
	stages []*intcode.Exec
}

// NewChain creates one machine per phase, each with its phase queued as the
// first input.
func NewChain(prog *intcode.Program, phases []int64) *Chain {
	return &Chain{stages: newStages(prog, phases)}
}

// SetTrace enables instruction tracing on every stage.
func (c *Chain) SetTrace(on bool) {
	setTrace(c.stages, on)
}

// Stages returns the machines of the chain in order.
func (c *Chain) Stages() []*intcode.Exec {
	return c.stages
}

// Run feeds signal to the first stage. Each stage's first output is fed to
// the next, and the last stage's first output is returned.
func (c *Chain) Run(signal int64) (int64, error) {
	for i, s := range c.stages {
		if err := s.Feed(signal); err != nil {
			return 0, fmt.Errorf("stage %d: %w", i, err)
		}
		v, ok, err := s.RunToOutput()
		if err != nil {
			return 0, fmt.Errorf("stage %d: %w", i, err)
		}
		if !ok {
			return 0, fmt.Errorf("stage %d: %w", i, ErrNoOutput)
		}
		signal = v
	}
	return signal, nil
}

// Serial builds a Chain over phases and runs it with the given signal.
// Stage i reads its phase and then the signal from stage i-1 (or signal for
// the first stage).
func Serial(prog *intcode.Program, phases []int64, signal int64) (int64, error) {
	return NewChain(prog, phases).Run(signal)
}

func newStages(prog *intcode.Program, phases []int64) []*intcode.Exec {
	stages := make([]*intcode.Exec, len(phases))
	for i, phase := range phases {
		stages[i] = prog.Exec().WithInputs(phase)
	}
	return stages
}

func setTrace(stages []*intcode.Exec, on bool) {
	for _, s := range stages {
		s.Trace = on
	}
}

// Loop is a feedback pipeline. Stages keep their state between rounds.
type Loop struct {
	stages []*intcode.Exec
}

// NewLoop creates one machine per phase, each with its phase queued as the
// first input.
func NewLoop(prog *intcode.Program, phases []int64) *Loop {
	return &Loop{stages: newStages(prog, phases)}
}

// SetTrace enables instruction tracing on every stage.
func (l *Loop) SetTrace(on bool) {
	setTrace(l.stages, on)
}

// Stages returns the machines of the loop in order.
func (l *Loop) Stages() []*intcode.Exec {
	return l.stages
}

// Run feeds signal to the first stage and drives the stages round-robin.
// Each stage runs to its next output, which is fed to the following stage.
// A stage that halts passes nothing on. Run returns the last output of the
// final stage once that stage halts.
func (l *Loop) Run(signal int64) (int64, error) {
	if len(l.stages) == 0 {
		return signal, nil
	}
	terminal := len(l.stages) - 1
	var last int64
	haveLast := false
	fresh := true

	for round := 0; ; round++ {
		for i, s := range l.stages {
			if fresh {
				if err := s.Feed(signal); err != nil {
					return 0, fmt.Errorf("stage %d: %w", i, err)
				}
			}
			v, ok, err := s.RunToOutput()
			if err != nil {
				return 0, fmt.Errorf("stage %d round %d: %w", i, round, err)
			}
			if !ok {
				fresh = false
				if i == terminal {
					if !haveLast {
						return 0, fmt.Errorf("stage %d: %w", i, ErrNoOutput)
					}
					log.Debugf("loop halted after %d rounds, signal %d", round+1, last)
					return last, nil
				}
				continue
			}
			signal, fresh = v, true
			if i == terminal {
				last, haveLast = v, true
			}
		}
	}
}

// Feedback builds a Loop over phases and runs it with the given signal.
func Feedback(prog *intcode.Program, phases []int64, signal int64) (int64, error) {
	return NewLoop(prog, phases).Run(signal)
}
