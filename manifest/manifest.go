// Package manifest handles intcode.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/intcode/pkg/amp"
	"github.com/chazu/intcode/pkg/intcode"
)

// FileName is the manifest file looked up in a directory.
const FileName = "intcode.toml"

// Manifest represents an intcode.toml run configuration.
type Manifest struct {
	Program   Program   `toml:"program"`
	Run       Run       `toml:"run"`
	Amplifier Amplifier `toml:"amplifier"`

	// Dir is the directory containing the intcode.toml file (set at load time).
	Dir string `toml:"-"`
}

// Program locates the program text. Code takes precedence over Path.
type Program struct {
	Path string `toml:"path"`
	Code string `toml:"code"`
}

// Run configures a single execution.
type Run struct {
	Inputs  []int64 `toml:"inputs"`
	Patches []Patch `toml:"patch"`
	Inspect []int64 `toml:"inspect"`
	Trace   bool    `toml:"trace"`
}

// Patch is one memory override applied before the run.
type Patch struct {
	Addr  int64 `toml:"addr"`
	Value int64 `toml:"value"`
}

// Amplifier configures an amplifier pipeline. The pipeline is used only
// when Phases is non-empty.
type Amplifier struct {
	Phases   []int64 `toml:"phases"`
	Feedback bool    `toml:"feedback"`
	Search   bool    `toml:"search"`
	Signal   int64   `toml:"signal"`
	Workers  int     `toml:"workers"`
}

// Load parses an intcode.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Defaults
	if m.Program.Path == "" && m.Program.Code == "" {
		m.Program.Path = "input.txt"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find an intcode.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	for _, p := range m.Run.Patches {
		if p.Addr < 0 {
			return fmt.Errorf("patch address %d is negative", p.Addr)
		}
	}
	for _, a := range m.Run.Inspect {
		if a < 0 {
			return fmt.Errorf("inspect address %d is negative", a)
		}
	}
	if m.Amplifier.Workers < 0 {
		return fmt.Errorf("amplifier workers %d is negative", m.Amplifier.Workers)
	}
	return nil
}

// ProgramPath returns the absolute path of the program file.
func (m *Manifest) ProgramPath() string {
	if filepath.IsAbs(m.Program.Path) {
		return m.Program.Path
	}
	return filepath.Join(m.Dir, m.Program.Path)
}

// LoadProgram parses the inline code, or the program file if there is none.
func (m *Manifest) LoadProgram() (*intcode.Program, error) {
	if m.Program.Code != "" {
		return intcode.Parse(m.Program.Code)
	}
	return intcode.ParseFile(m.ProgramPath())
}

// PatchList converts the configured patches.
func (m *Manifest) PatchList() []intcode.Patch {
	patches := make([]intcode.Patch, len(m.Run.Patches))
	for i, p := range m.Run.Patches {
		patches[i] = intcode.Patch{Addr: intcode.Address(p.Addr), Value: p.Value}
	}
	return patches
}

// InspectList converts the configured inspection addresses.
func (m *Manifest) InspectList() []intcode.Address {
	addrs := make([]intcode.Address, len(m.Run.Inspect))
	for i, a := range m.Run.Inspect {
		addrs[i] = intcode.Address(a)
	}
	return addrs
}

// SearchOptions returns the phase search configuration.
func (m *Manifest) SearchOptions() amp.SearchOptions {
	opts := amp.SearchOptions{
		Signal:  m.Amplifier.Signal,
		Workers: m.Amplifier.Workers,
		Trace:   m.Run.Trace,
	}
	if m.Amplifier.Feedback {
		opts.Topology = amp.TopologyFeedback
	}
	return opts
}
