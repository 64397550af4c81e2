package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/chazu/intcode/pkg/amp"
	"github.com/chazu/intcode/pkg/intcode"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
path = "prog.txt"

[run]
inputs = [1, -2]
inspect = [0, 4]
trace = true

[[run.patch]]
addr = 1
value = 12

[[run.patch]]
addr = 2
value = 2

[amplifier]
phases = [5, 6, 7, 8, 9]
feedback = true
search = true
signal = 3
workers = 2
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.ProgramPath() != filepath.Join(m.Dir, "prog.txt") {
		t.Errorf("program path = %q", m.ProgramPath())
	}
	if !reflect.DeepEqual(m.Run.Inputs, []int64{1, -2}) {
		t.Errorf("inputs = %v, want [1 -2]", m.Run.Inputs)
	}
	if !m.Run.Trace {
		t.Error("run trace = false, want true")
	}
	wantPatches := []intcode.Patch{{Addr: 1, Value: 12}, {Addr: 2, Value: 2}}
	if !reflect.DeepEqual(m.PatchList(), wantPatches) {
		t.Errorf("patches = %v, want %v", m.PatchList(), wantPatches)
	}
	if !reflect.DeepEqual(m.InspectList(), []intcode.Address{0, 4}) {
		t.Errorf("inspect = %v, want [0 4]", m.InspectList())
	}
	if len(m.Amplifier.Phases) != 5 || !m.Amplifier.Search {
		t.Errorf("amplifier = %+v", m.Amplifier)
	}
	opts := m.SearchOptions()
	if opts.Topology != amp.TopologyFeedback || opts.Signal != 3 || opts.Workers != 2 || !opts.Trace {
		t.Errorf("search options = %+v", opts)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[run]\ninputs = [5]\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Program.Path != "input.txt" {
		t.Errorf("program path = %q, want input.txt", m.Program.Path)
	}
	if m.Amplifier.Feedback || len(m.Amplifier.Phases) != 0 {
		t.Errorf("amplifier = %+v, want zero value", m.Amplifier)
	}
	if m.SearchOptions().Topology != amp.TopologySerial {
		t.Error("default topology should be serial")
	}
}

func TestLoadManifestInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":          "[run\n",
		"negative patch":  "[[run.patch]]\naddr = -1\nvalue = 0\n",
		"negative addr":   "[run]\ninspect = [-3]\n",
		"negative worker": "[amplifier]\nworkers = -1\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, content)
			if _, err := Load(dir); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "input.txt"), []byte("3,0,4,0,99\n"), 0644); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, dir, "[run]\ninputs = [7]\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p, err := m.LoadProgram()
	if err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}
	out, err := p.Exec().WithInputs(m.Run.Inputs...).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !reflect.DeepEqual(out, []int64{7}) {
		t.Errorf("output = %v, want [7]", out)
	}
}

func TestLoadProgramInline(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[program]\ncode = \"104,42,99\"\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p, err := m.LoadProgram()
	if err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}
	if p.String() != "104,42,99" {
		t.Errorf("program = %q", p.String())
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[program]\npath = \"prog.txt\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil, want manifest")
	}
	abs, _ := filepath.Abs(root)
	if m.Dir != abs {
		t.Errorf("dir = %q, want %q", m.Dir, abs)
	}
}

func TestFindAndLoadMissing(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m != nil {
		// A manifest above the temp dir would be found; skip rather than fail.
		t.Skipf("found unrelated manifest in %s", m.Dir)
	}
}
