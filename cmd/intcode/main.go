// Intcode CLI - runs, amplifies and disassembles Intcode programs
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/intcode/manifest"
	"github.com/chazu/intcode/pkg/amp"
	"github.com/chazu/intcode/pkg/intcode"
)

var log = commonlog.GetLogger("intcode.cli")

// options is the merged manifest and command-line configuration.
type options struct {
	program  *intcode.Program
	source   string
	inputs   []int64
	patches  []intcode.Patch
	inspect  []intcode.Address
	trace    bool
	disasm   bool
	phases   []int64
	feedback bool
	search   bool
	signal   int64
	workers  int
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("intcode", flag.ContinueOnError)
	var verbose verbosity
	fs.Var(&verbose, "v", "Verbose output (repeat for debug logging)")
	dir := fs.String("C", "", "Directory containing intcode.toml (default: search upward from the working directory)")
	in := fs.String("in", "", "Comma-separated input values")
	patch := fs.String("patch", "", "Memory patches applied before running, e.g. 1=12,2=2")
	inspect := fs.String("inspect", "", "Comma-separated addresses to print after the run")
	trace := fs.Bool("trace", false, "Log every executed instruction (implies -v -v)")
	disasm := fs.Bool("disasm", false, "Print a disassembly listing instead of running")
	phases := fs.String("phases", "", "Run an amplifier pipeline with these phase settings")
	feedback := fs.Bool("feedback", false, "Wire the amplifier pipeline as a feedback loop")
	search := fs.Bool("search", false, "Try every ordering of -phases and report the best")
	signal := fs.Int64("signal", 0, "Input signal for the first amplifier")
	workers := fs.Int("workers", 0, "Concurrent pipelines for -search (default: GOMAXPROCS)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: intcode [options] [program]\n\n")
		fmt.Fprintf(out, "Runs an Intcode program. Without a program argument the program named in\n")
		fmt.Fprintf(out, "intcode.toml is used.\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  intcode -in 1 prog.txt                       # Run with input 1\n")
		fmt.Fprintf(out, "  intcode -patch 1=12,2=2 -inspect 0 prog.txt  # Patch, run, print cell 0\n")
		fmt.Fprintf(out, "  intcode -phases 5,6,7,8,9 -feedback -search prog.txt\n")
		fmt.Fprintf(out, "  intcode -disasm prog.txt                     # Print a listing\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	commonlog.Configure(int(verbose), nil)

	opts, err := loadManifest(*dir, fs.NArg() == 0)
	if err != nil {
		return err
	}

	// Command-line flags override the manifest.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		if flagErr != nil {
			return
		}
		switch f.Name {
		case "in":
			opts.inputs, flagErr = parseInts(*in)
		case "patch":
			opts.patches, flagErr = parsePatches(*patch)
		case "inspect":
			opts.inspect, flagErr = parseAddrs(*inspect)
		case "trace":
			opts.trace = *trace
		case "phases":
			opts.phases, flagErr = parseInts(*phases)
		case "feedback":
			opts.feedback = *feedback
		case "search":
			opts.search = *search
		case "signal":
			opts.signal = *signal
		case "workers":
			opts.workers = *workers
		}
		if flagErr != nil {
			flagErr = fmt.Errorf("-%s: %w", f.Name, flagErr)
		}
	})
	if flagErr != nil {
		return flagErr
	}
	opts.disasm = *disasm

	// Tracing logs at debug level, whichever source enabled it.
	if opts.trace && verbose < 2 {
		verbose = 2
		commonlog.Configure(int(verbose), nil)
	}

	if fs.NArg() > 1 {
		return fmt.Errorf("expected one program, got %d", fs.NArg())
	}
	if fs.NArg() == 1 {
		opts.source = fs.Arg(0)
		if opts.program, err = intcode.ParseFile(opts.source); err != nil {
			return err
		}
	}
	if opts.program == nil {
		return errors.New("no program given and no intcode.toml found")
	}
	log.Infof("loaded %d cells from %s", opts.program.Len(), opts.source)

	switch {
	case opts.disasm:
		_, err = io.WriteString(stdout, intcode.Disassemble(opts.program))
		return err
	case len(opts.phases) > 0:
		return runAmplifier(opts, stdout)
	default:
		return runProgram(opts, stdout)
	}
}

// loadManifest reads intcode.toml from dir, or searches upward from the
// working directory when dir is empty. The program it names is loaded only
// when no program argument was given; otherwise the manifest is optional.
func loadManifest(dir string, needProgram bool) (*options, error) {
	opts := &options{}

	var m *manifest.Manifest
	var err error
	if dir != "" {
		m, err = manifest.Load(dir)
		if !needProgram && errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
	} else {
		m, err = manifest.FindAndLoad(".")
	}
	if err != nil {
		return nil, err
	}
	if m == nil {
		return opts, nil
	}
	log.Infof("using %s in %s", manifest.FileName, m.Dir)

	opts.inputs = m.Run.Inputs
	opts.patches = m.PatchList()
	opts.inspect = m.InspectList()
	opts.trace = m.Run.Trace
	opts.phases = m.Amplifier.Phases
	opts.feedback = m.Amplifier.Feedback
	opts.search = m.Amplifier.Search
	opts.signal = m.Amplifier.Signal
	opts.workers = m.Amplifier.Workers

	if needProgram {
		if opts.program, err = m.LoadProgram(); err != nil {
			return nil, err
		}
		opts.source = m.ProgramPath()
		if m.Program.Code != "" {
			opts.source = manifest.FileName
		}
	}
	return opts, nil
}

func runProgram(opts *options, stdout io.Writer) error {
	e := opts.program.Exec().WithInputs(opts.inputs...)
	e.Trace = opts.trace

	outs, err := e.RunWith(opts.patches...)
	if err != nil {
		return fmt.Errorf("execution %s failed after %d steps: %w", e.ID()[:8], e.Steps(), err)
	}
	log.Infof("halted after %d steps", e.Steps())

	if len(outs) > 0 {
		fmt.Fprintln(stdout, joinInts(outs))
	}
	for _, addr := range opts.inspect {
		fmt.Fprintf(stdout, "[%d] = %d\n", addr, e.At(addr))
	}
	return nil
}

func runAmplifier(opts *options, stdout io.Writer) error {
	topology := amp.TopologySerial
	if opts.feedback {
		topology = amp.TopologyFeedback
	}

	if opts.search {
		res, err := amp.MaxSignal(context.Background(), opts.program, opts.phases, amp.SearchOptions{
			Topology: topology,
			Signal:   opts.signal,
			Workers:  opts.workers,
			Trace:    opts.trace,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d %s\n", res.Signal, joinInts(res.Phases))
		return nil
	}

	p := topology.New(opts.program, opts.phases)
	p.SetTrace(opts.trace)
	v, err := p.Run(opts.signal)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, v)
	return nil
}
