package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/mlfq-sim/sim"
)

// ErrInvalidScenario is wrapped by every scenario validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Format identifies a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatText Format = "text" // count, allotments, context switch, then name;arrival;bursts lines
)

// Scenario is a complete simulation input: scheduler parameters and processes.
// Loaded from YAML via LoadScenario(path), from the text format via ParseText,
// or interactively via PromptScenario.
type Scenario struct {
	Scheduler SchedulerSpec     `yaml:"scheduler"`
	Processes []sim.ProcessSpec `yaml:"processes,omitempty"`
	Generate  *GeneratorSpec    `yaml:"generate,omitempty"` // replaces processes with a generated workload
}

// SchedulerSpec holds the scheduler parameters of a scenario.
// Pointer fields distinguish "not set" (nil) from an explicit zero.
type SchedulerSpec struct {
	Quantum         *int64 `yaml:"quantum,omitempty"` // nil = sim.DefaultQuantum
	Level1Allotment int64  `yaml:"level1_allotment"`
	Level2Allotment int64  `yaml:"level2_allotment"`
	ContextSwitch   int64  `yaml:"context_switch"`
	Level1RoundCap  *int   `yaml:"level1_round_cap,omitempty"` // nil = derived from allotment and quantum
	DemoteOnBlock   bool   `yaml:"demote_on_block,omitempty"`
	Readmit         string `yaml:"readmit,omitempty"`
	WaitingTime     string `yaml:"waiting_time,omitempty"`
	MaxTicks        int64  `yaml:"max_ticks,omitempty"` // 0 = sim.DefaultMaxTicks
}

// FormatForPath infers the scenario format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unrecognized scenario file extension %q; valid: .yaml, .yml, .txt", filepath.Ext(path))
	}
}

// LoadScenario reads a scenario file, choosing the parser by extension.
// The result is not validated.
func LoadScenario(path string) (*Scenario, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	defer f.Close()
	return ReadScenario(f, format)
}

// ReadScenario parses a scenario in the given format.
func ReadScenario(r io.Reader, format Format) (*Scenario, error) {
	switch format {
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading scenario: %w", err)
		}
		return DecodeYAML(data)
	case FormatText:
		return ParseText(r)
	default:
		return nil, fmt.Errorf("unknown scenario format %q; valid: yaml, text", format)
	}
}

// DecodeYAML parses a YAML scenario.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func DecodeYAML(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing scenario: empty document")
		}
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.expand(); err != nil {
		return nil, err
	}
	return &s, nil
}

// expand replaces a generate block with the processes it describes.
func (s *Scenario) expand() error {
	if s.Generate == nil {
		return nil
	}
	if len(s.Processes) > 0 {
		return fmt.Errorf("%w: processes and generate are mutually exclusive", ErrInvalidScenario)
	}
	procs, err := GenerateProcesses(s.Generate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	logrus.Infof("Generated %d processes from seed %d", len(procs), s.Generate.Seed)
	s.Processes = procs
	s.Generate = nil
	return nil
}

// EncodeYAML writes the scenario in the format DecodeYAML reads.
func EncodeYAML(w io.Writer, s *Scenario) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	return enc.Close()
}

// Config builds the simulator configuration, applying defaults for unset fields.
func (s *Scenario) Config() sim.Config {
	spec := s.Scheduler
	cfg := sim.NewConfig(spec.Level1Allotment, spec.Level2Allotment, spec.ContextSwitch)
	if spec.Quantum != nil {
		cfg.Quantum = *spec.Quantum
	}
	if spec.Level1RoundCap != nil {
		roundCap := *spec.Level1RoundCap
		cfg.Level1RoundCap = &roundCap
	}
	cfg.DemoteOnBlock = spec.DemoteOnBlock
	if spec.Readmit != "" {
		cfg.Readmit = sim.ReadmitPolicy(spec.Readmit)
	}
	if spec.WaitingTime != "" {
		cfg.WaitingTime = sim.WaitingTimePolicy(spec.WaitingTime)
	}
	return cfg
}

// Validate checks the scheduler parameters and every process description.
// All failures wrap ErrInvalidScenario.
func (s *Scenario) Validate() error {
	if s.Scheduler.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks must be non-negative, got %d", ErrInvalidScenario, s.Scheduler.MaxTicks)
	}
	if err := s.Config().Validate(); err != nil {
		return fmt.Errorf("%w: scheduler: %v", ErrInvalidScenario, err)
	}
	if len(s.Processes) == 0 {
		return fmt.Errorf("%w: at least one process required", ErrInvalidScenario)
	}
	seen := make(map[string]bool, len(s.Processes))
	for i, p := range s.Processes {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: processes[%d]: %v", ErrInvalidScenario, i, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: processes[%d]: duplicate process name %q", ErrInvalidScenario, i, p.Name)
		}
		seen[p.Name] = true
	}
	warnSimultaneousArrivals(s.Processes)
	return nil
}

// warnSimultaneousArrivals logs ticks on which several processes arrive;
// they are admitted in name order, which may differ from input order.
func warnSimultaneousArrivals(procs []sim.ProcessSpec) {
	byTick := make(map[int64][]string)
	for _, p := range procs {
		byTick[p.ArrivalTime] = append(byTick[p.ArrivalTime], p.Name)
	}
	ticks := make([]int64, 0, len(byTick))
	for tick, names := range byTick {
		if len(names) > 1 {
			ticks = append(ticks, tick)
		}
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })
	for _, tick := range ticks {
		names := byTick[tick]
		if !sort.StringsAreSorted(names) {
			logrus.Warnf("processes %v arrive together at tick %d and are admitted in name order", names, tick)
		}
	}
}
