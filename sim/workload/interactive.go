package workload

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/inference-sim/mlfq-sim/sim"
)

// MaxInteractiveProcesses bounds the process count accepted at the prompt.
const MaxInteractiveProcesses = 11

// Prompter asks for scenario values line by line, re-asking until an entry is valid.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// PromptScenario asks for the scheduler parameters and then every process
// description. Running out of input before the scenario is complete is an error.
func PromptScenario(in io.Reader, out io.Writer) (*Scenario, error) {
	return NewPrompter(in, out).Scenario()
}

// Scenario runs the full prompt sequence.
func (p *Prompter) Scenario() (*Scenario, error) {
	fmt.Fprintln(p.out, "# Enter Scheduler Details #")
	count, err := p.Int("Number of processes", 1, MaxInteractiveProcesses)
	if err != nil {
		return nil, err
	}
	s := &Scenario{Processes: make([]sim.ProcessSpec, 0, count)}
	if s.Scheduler.Level1Allotment, err = p.Int("Level-1 time allotment", sim.DefaultQuantum, math.MaxInt64); err != nil {
		return nil, err
	}
	if s.Scheduler.Level2Allotment, err = p.Int("Level-2 time allotment", 1, math.MaxInt64); err != nil {
		return nil, err
	}
	if s.Scheduler.ContextSwitch, err = p.Int("Context switch time", 0, sim.MaxContextSwitch); err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "# Enter %d Process Details #\n", count)
	seen := make(map[string]bool, count)
	for i := int64(0); i < count; i++ {
		spec, err := p.Process(seen)
		if err != nil {
			return nil, err
		}
		seen[spec.Name] = true
		s.Processes = append(s.Processes, spec)
	}
	return s, nil
}

// Int asks for an integer in [lo, hi].
func (p *Prompter) Int(label string, lo, hi int64) (int64, error) {
	for {
		if hi == math.MaxInt64 {
			fmt.Fprintf(p.out, "%s (>= %d): ", label, lo)
		} else {
			fmt.Fprintf(p.out, "%s (%d-%d): ", label, lo, hi)
		}
		text, err := p.line()
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			fmt.Fprintf(p.out, "not an integer: %q\n", text)
			continue
		}
		if v < lo || v > hi {
			fmt.Fprintf(p.out, "out of range: %d\n", v)
			continue
		}
		return v, nil
	}
}

// Process asks for one "name;arrival;cpu1;io1;cpu2;..." description whose
// name is not already in seen.
func (p *Prompter) Process(seen map[string]bool) (sim.ProcessSpec, error) {
	for {
		fmt.Fprint(p.out, "name;arrival;cpu;io;cpu... : ")
		text, err := p.line()
		if err != nil {
			return sim.ProcessSpec{}, fmt.Errorf("reading process: %w", err)
		}
		spec, err := ParseProcessLine(text)
		if err == nil {
			err = spec.Validate()
		}
		if err == nil && seen[spec.Name] {
			err = fmt.Errorf("duplicate process name %q", spec.Name)
		}
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return spec, nil
	}
}

// line returns the next non-blank answer, or io.ErrUnexpectedEOF.
func (p *Prompter) line() (string, error) {
	for p.in.Scan() {
		if text := strings.TrimSpace(p.in.Text()); text != "" {
			return text, nil
		}
	}
	if err := p.in.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}
