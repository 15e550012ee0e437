package sim

import "fmt"

// NumLevels is the number of feedback queue levels.
const NumLevels = 3

// DefaultQuantum is the level-1 Round-Robin time slice.
const DefaultQuantum = 4

// MaxContextSwitch is the largest accepted context-switch overhead.
const MaxContextSwitch = 5

// DefaultMaxTicks bounds a run when the caller does not choose a ceiling.
const DefaultMaxTicks = 1_000_000

// ReadmitPolicy decides the level a process re-enters at after I/O.
type ReadmitPolicy string

const (
	ReadmitSameLevel ReadmitPolicy = "same-level" // the level it blocked at (default)
	ReadmitTopLevel  ReadmitPolicy = "top-level"  // always level 1
)

// WaitingTimePolicy decides which burst time is subtracted from turnaround.
type WaitingTimePolicy string

const (
	WaitCPUOnly  WaitingTimePolicy = "cpu-only"   // turnaround - sum(cpu) (default)
	WaitCPUAndIO WaitingTimePolicy = "cpu-and-io" // turnaround - sum(cpu) - sum(io)
)

// ValidReadmitPolicies is the set of recognized re-admission policy names.
var ValidReadmitPolicies = map[string]bool{"": true, "same-level": true, "top-level": true}

// ValidWaitingTimePolicies is the set of recognized waiting-time policy names.
var ValidWaitingTimePolicies = map[string]bool{"": true, "cpu-only": true, "cpu-and-io": true}

// Config groups the scheduler parameters.
type Config struct {
	Quantum         int64 // level-1 Round-Robin quantum (must be > 0)
	Level1Allotment int64 // ticks a process may spend at level 1 per CPU burst (>= Quantum)
	Level2Allotment int64 // ticks a process may spend at level 2 per CPU burst (> 0)
	ContextSwitch   int64 // overhead ticks charged when the CPU occupant changes, [0, MaxContextSwitch]

	// Level1RoundCap is the number of full quanta a process may consume at
	// level 1 before it is cycled to the back of the level-1 queue. Nil derives
	// it as Level1Allotment/Quantum; 0 disables cycling.
	Level1RoundCap *int

	// DemoteOnBlock also demotes a process whose burst ends on the same tick
	// its allotment runs out, before it moves to I/O.
	DemoteOnBlock bool

	Readmit     ReadmitPolicy
	WaitingTime WaitingTimePolicy
}

// NewConfig returns a Config with the default quantum and policies.
func NewConfig(level1Allotment, level2Allotment, contextSwitch int64) Config {
	return Config{
		Quantum:         DefaultQuantum,
		Level1Allotment: level1Allotment,
		Level2Allotment: level2Allotment,
		ContextSwitch:   contextSwitch,
		Readmit:         ReadmitSameLevel,
		WaitingTime:     WaitCPUOnly,
	}
}

// Validate checks parameter ranges. The engine assumes a validated Config.
func (c Config) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("quantum must be positive, got %d", c.Quantum)
	}
	if c.Level1Allotment < c.Quantum {
		return fmt.Errorf("level-1 allotment must be at least the quantum (%d), got %d", c.Quantum, c.Level1Allotment)
	}
	if c.Level2Allotment <= 0 {
		return fmt.Errorf("level-2 allotment must be positive, got %d", c.Level2Allotment)
	}
	if c.ContextSwitch < 0 || c.ContextSwitch > MaxContextSwitch {
		return fmt.Errorf("context switch must be in [0, %d], got %d", MaxContextSwitch, c.ContextSwitch)
	}
	if c.Level1RoundCap != nil && *c.Level1RoundCap < 0 {
		return fmt.Errorf("level-1 round cap must be non-negative, got %d", *c.Level1RoundCap)
	}
	if !ValidReadmitPolicies[string(c.Readmit)] {
		return fmt.Errorf("unknown readmit policy %q", c.Readmit)
	}
	if !ValidWaitingTimePolicies[string(c.WaitingTime)] {
		return fmt.Errorf("unknown waiting-time policy %q", c.WaitingTime)
	}
	return nil
}

// RoundCap returns the effective level-1 round cap.
func (c Config) RoundCap() int {
	if c.Level1RoundCap != nil {
		return *c.Level1RoundCap
	}
	if c.Quantum <= 0 {
		return 0
	}
	return int(c.Level1Allotment / c.Quantum)
}

// Allotment returns the time allotment of a level; 0 means unlimited.
func (c Config) Allotment(level int) int64 {
	switch level {
	case 1:
		return c.Level1Allotment
	case 2:
		return c.Level2Allotment
	case 3:
		return 0
	default:
		panic(fmt.Sprintf("level %d out of range [1, %d]", level, NumLevels))
	}
}
