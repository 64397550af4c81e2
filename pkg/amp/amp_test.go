package amp

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/chazu/intcode/pkg/intcode"
)

const (
	serialProg1 = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	serialProg2 = "3,23,3,24,1002,24,10,24,1002,23,-1,23," +
		"101,5,23,23,1,24,23,23,4,23,99,0,0"
	serialProg3 = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33," +
		"1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0"

	feedbackProg1 = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26," +
		"27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	feedbackProg2 = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54," +
		"-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4," +
		"53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
)

func mustParse(t *testing.T, text string) *intcode.Program {
	t.Helper()
	p, err := intcode.Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return p
}

// ============ Single pipelines ============

func TestSerial(t *testing.T) {
	tests := []struct {
		prog   string
		phases []int64
		want   int64
	}{
		{serialProg1, []int64{4, 3, 2, 1, 0}, 43210},
		{serialProg2, []int64{0, 1, 2, 3, 4}, 54321},
		{serialProg3, []int64{1, 0, 4, 3, 2}, 65210},
	}

	for _, tt := range tests {
		got, err := Serial(mustParse(t, tt.prog), tt.phases, 0)
		if err != nil {
			t.Fatalf("Serial(%v) failed: %v", tt.phases, err)
		}
		if got != tt.want {
			t.Errorf("Serial(%v) = %d, want %d", tt.phases, got, tt.want)
		}
	}
}

func TestFeedback(t *testing.T) {
	tests := []struct {
		prog   string
		phases []int64
		want   int64
	}{
		{feedbackProg1, []int64{9, 8, 7, 6, 5}, 139629729},
		{feedbackProg2, []int64{9, 7, 8, 5, 6}, 18216},
	}

	for _, tt := range tests {
		got, err := Feedback(mustParse(t, tt.prog), tt.phases, 0)
		if err != nil {
			t.Fatalf("Feedback(%v) failed: %v", tt.phases, err)
		}
		if got != tt.want {
			t.Errorf("Feedback(%v) = %d, want %d", tt.phases, got, tt.want)
		}
	}
}

func TestFeedbackStagesHalt(t *testing.T) {
	l := NewLoop(mustParse(t, feedbackProg1), []int64{9, 8, 7, 6, 5})
	l.SetTrace(true)
	if _, err := l.Run(0); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i, s := range l.Stages() {
		if s.State() != intcode.StateHalted {
			t.Errorf("stage %d state = %v, want halted", i, s.State())
		}
	}
}

func TestTopologyNew(t *testing.T) {
	prog := mustParse(t, serialProg1)
	if _, ok := TopologySerial.New(prog, []int64{1}).(*Chain); !ok {
		t.Error("serial topology should build a Chain")
	}
	if _, ok := TopologyFeedback.New(prog, []int64{1}).(*Loop); !ok {
		t.Error("feedback topology should build a Loop")
	}
}

func TestChainTrace(t *testing.T) {
	c := NewChain(mustParse(t, serialProg1), []int64{4, 3, 2, 1, 0})
	c.SetTrace(true)
	for i, s := range c.Stages() {
		if !s.Trace {
			t.Errorf("stage %d trace = false, want true", i)
		}
	}
	got, err := c.Run(0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got != 43210 {
		t.Errorf("Run = %d, want 43210", got)
	}
}

func TestSerialNoOutput(t *testing.T) {
	// Reads both inputs, then halts without output.
	_, err := Serial(intcode.NewProgram(3, 0, 3, 0, 99), []int64{1, 2}, 0)
	if !errors.Is(err, ErrNoOutput) {
		t.Errorf("error = %v, want ErrNoOutput", err)
	}
}

func TestFeedbackNoOutput(t *testing.T) {
	// Each stage reads its phase and halts.
	_, err := Feedback(intcode.NewProgram(3, 0, 99), []int64{1, 2}, 0)
	if !errors.Is(err, ErrNoOutput) {
		t.Errorf("error = %v, want ErrNoOutput", err)
	}
}

func TestSerialFault(t *testing.T) {
	_, err := Serial(intcode.NewProgram(3, 0, 3, 0, 3, 0, 99), []int64{1}, 0)
	if !errors.Is(err, intcode.ErrInvalidRead) {
		t.Errorf("error = %v, want ErrInvalidRead", err)
	}
}

// ============ Phase search ============

func TestPermutations(t *testing.T) {
	got := Permutations([]int64{1, 2, 3})
	want := [][]int64{{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Permutations = %v, want %v", got, want)
	}
	if n := len(Permutations([]int64{5, 6, 7, 8, 9})); n != 120 {
		t.Errorf("len(Permutations(5)) = %d, want 120", n)
	}
}

func TestMaxSignal(t *testing.T) {
	tests := []struct {
		prog     string
		topology Topology
		phases   []int64
		want     int64
		wantPerm []int64
	}{
		{serialProg1, TopologySerial, []int64{0, 1, 2, 3, 4}, 43210, []int64{4, 3, 2, 1, 0}},
		{serialProg2, TopologySerial, []int64{0, 1, 2, 3, 4}, 54321, []int64{0, 1, 2, 3, 4}},
		{serialProg3, TopologySerial, []int64{0, 1, 2, 3, 4}, 65210, []int64{1, 0, 4, 3, 2}},
		{feedbackProg1, TopologyFeedback, []int64{5, 6, 7, 8, 9}, 139629729, []int64{9, 8, 7, 6, 5}},
		{feedbackProg2, TopologyFeedback, []int64{5, 6, 7, 8, 9}, 18216, []int64{9, 7, 8, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.topology.String(), func(t *testing.T) {
			res, err := MaxSignal(context.Background(), mustParse(t, tt.prog), tt.phases,
				SearchOptions{Topology: tt.topology, Workers: 4, Trace: true})
			if err != nil {
				t.Fatalf("MaxSignal failed: %v", err)
			}
			if res.Signal != tt.want {
				t.Errorf("signal = %d, want %d", res.Signal, tt.want)
			}
			if !reflect.DeepEqual(res.Phases, tt.wantPerm) {
				t.Errorf("phases = %v, want %v", res.Phases, tt.wantPerm)
			}
		})
	}
}

func TestMaxSignalPropagatesFault(t *testing.T) {
	_, err := MaxSignal(context.Background(), intcode.NewProgram(98), []int64{0, 1},
		SearchOptions{Topology: TopologySerial})
	if !errors.Is(err, intcode.ErrInvalidOpcode) {
		t.Errorf("error = %v, want ErrInvalidOpcode", err)
	}
}

func TestMaxSignalCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := MaxSignal(ctx, mustParse(t, serialProg1), []int64{0, 1, 2}, SearchOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
