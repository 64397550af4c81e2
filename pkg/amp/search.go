package amp

import (
	"context"
	"fmt"
	"runtime"

	"github.com/chazu/intcode/pkg/intcode"
	"golang.org/x/sync/errgroup"
)

// Topology selects how the stages of a pipeline are wired.
type Topology uint8

const (
	TopologySerial   Topology = iota // each stage runs once, in order
	TopologyFeedback                 // the last stage feeds the first
)

func (t Topology) String() string {
	switch t {
	case TopologySerial:
		return "serial"
	case TopologyFeedback:
		return "feedback"
	default:
		return fmt.Sprintf("Topology(%d)", uint8(t))
	}
}

// New builds a pipeline with the given topology.
func (t Topology) New(prog *intcode.Program, phases []int64) Pipeline {
	if t == TopologyFeedback {
		return NewLoop(prog, phases)
	}
	return NewChain(prog, phases)
}

// Run evaluates one pipeline with the given topology.
func (t Topology) Run(prog *intcode.Program, phases []int64, signal int64) (int64, error) {
	return t.New(prog, phases).Run(signal)
}

// SearchOptions configures MaxSignal.
type SearchOptions struct {
	Topology Topology
	Signal   int64 // input to the first stage
	Workers  int   // concurrent pipelines; 0 means GOMAXPROCS
	Trace    bool  // trace every stage of every pipeline
}

// Result is the best pipeline found by MaxSignal.
type Result struct {
	Signal int64
	Phases []int64
}

// MaxSignal tries every ordering of phases and returns the one producing the
// highest final signal. Ties go to the ordering Permutations lists first.
//
// Pipelines are evaluated concurrently, but each pipeline owns its machines;
// nothing is shared between goroutines except the result slots.
func MaxSignal(ctx context.Context, prog *intcode.Program, phases []int64, opts SearchOptions) (Result, error) {
	perms := Permutations(phases)
	signals := make([]int64, len(perms))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, perm := range perms {
		i, perm := i, perm
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := opts.Topology.New(prog, perm)
			p.SetTrace(opts.Trace)
			v, err := p.Run(opts.Signal)
			if err != nil {
				return fmt.Errorf("phases %v: %w", perm, err)
			}
			signals[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for i, v := range signals {
		if v > signals[best] {
			best = i
		}
	}
	log.Infof("best %s signal %d with phases %v (%d orderings)", opts.Topology, signals[best], perms[best], len(perms))
	return Result{Signal: signals[best], Phases: perms[best]}, nil
}

// Permutations returns every ordering of vals in lexicographic order of
// positions. vals is not modified.
func Permutations(vals []int64) [][]int64 {
	var out [][]int64
	used := make([]bool, len(vals))
	cur := make([]int64, 0, len(vals))

	var walk func()
	walk = func() {
		if len(cur) == len(vals) {
			out = append(out, append([]int64(nil), cur...))
			return
		}
		for i, v := range vals {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, v)
			walk()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	walk()
	return out
}
