// Defines the Process struct that models a single schedulable process in the simulation.
// Tracks arrival time, the CPU/I-O burst sequence, progress through it, and queue level.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StatePending ProcessState = "pending" // not yet arrived
	StateReady   ProcessState = "ready"   // waiting in one of the level queues
	StateRunning ProcessState = "running" // installed on the CPU
	StateBlocked ProcessState = "blocked" // performing I/O
	StateDone    ProcessState = "done"
)

// ProcessSpec is the validated description of a process handed to the simulator.
// Bursts alternate CPU and I/O durations, starting and ending with a CPU burst.
type ProcessSpec struct {
	Name        string  `yaml:"name" json:"name"`
	ArrivalTime int64   `yaml:"arrival" json:"arrival"`
	Bursts      []int64 `yaml:"bursts" json:"bursts"`
}

// Validate checks the burst sequence shape and value ranges.
func (ps ProcessSpec) Validate() error {
	if ps.Name == "" {
		return fmt.Errorf("process name must not be empty")
	}
	if ps.ArrivalTime < 0 {
		return fmt.Errorf("process %s: arrival time must be non-negative, got %d", ps.Name, ps.ArrivalTime)
	}
	if len(ps.Bursts) == 0 || len(ps.Bursts)%2 == 0 {
		return fmt.Errorf("process %s: burst sequence must alternate CPU/I-O and start and end with a CPU burst, got %d values",
			ps.Name, len(ps.Bursts))
	}
	for i, b := range ps.Bursts {
		if i%2 == 0 && b <= 0 {
			return fmt.Errorf("process %s: CPU burst %d must be positive, got %d", ps.Name, i/2+1, b)
		}
		if i%2 == 1 && b < 0 {
			return fmt.Errorf("process %s: I/O burst %d must be non-negative, got %d", ps.Name, i/2+1, b)
		}
	}
	return nil
}

// Process holds the immutable description of a process and its mutable scheduling state.
type Process struct {
	Name        string
	ArrivalTime int64
	CPUBursts   []int64
	IOBursts    []int64 // always one shorter than CPUBursts

	State      ProcessState
	BurstIndex int   // index of the current CPU burst (and of the I/O burst that follows it)
	PhaseTicks int64 // ticks consumed in the current CPU or I/O burst
	LevelTicks int64 // ticks consumed at the current level during the current CPU burst (allotment counter)
	Level      int   // 1 (highest) to 3 (lowest)

	// Level1Rounds counts full quanta consumed at level 1 since the process
	// was last cycled to the back of the level-1 queue.
	Level1Rounds int
	Demotions    int

	RemainingBurst int64
	RemainingIO    int64

	CompletionTime int64
	completed      bool
}

// NewProcess splits the alternating burst sequence of a spec into CPU and I/O bursts.
func NewProcess(spec ProcessSpec) (*Process, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	p := &Process{
		Name:        spec.Name,
		ArrivalTime: spec.ArrivalTime,
		CPUBursts:   make([]int64, 0, len(spec.Bursts)/2+1),
		IOBursts:    make([]int64, 0, len(spec.Bursts)/2),
		State:       StatePending,
		Level:       1,
	}
	for i, b := range spec.Bursts {
		if i%2 == 0 {
			p.CPUBursts = append(p.CPUBursts, b)
		} else {
			p.IOBursts = append(p.IOBursts, b)
		}
	}
	p.RecomputeRemainingBurst()
	return p, nil
}

// RecomputeRemainingBurst refreshes the time left in the current CPU burst.
func (p *Process) RecomputeRemainingBurst() {
	p.RemainingBurst = p.CPUBursts[p.BurstIndex] - p.PhaseTicks
	if p.RemainingBurst < 0 {
		panic(fmt.Sprintf("process %s: negative remaining CPU burst %d", p.Name, p.RemainingBurst))
	}
}

// RecomputeRemainingIO refreshes the time left in the current I/O burst.
func (p *Process) RecomputeRemainingIO() {
	p.RemainingIO = p.IOBursts[p.BurstIndex] - p.PhaseTicks
	if p.RemainingIO < 0 {
		panic(fmt.Sprintf("process %s: negative remaining I/O burst %d", p.Name, p.RemainingIO))
	}
}

// IsLastBurst reports whether the current CPU burst is the final one.
func (p *Process) IsLastBurst() bool {
	return p.BurstIndex == len(p.CPUBursts)-1
}

// TotalCPU returns the sum of all CPU bursts.
func (p *Process) TotalCPU() int64 {
	var total int64
	for _, b := range p.CPUBursts {
		total += b
	}
	return total
}

// TotalIO returns the sum of all I/O bursts.
func (p *Process) TotalIO() int64 {
	var total int64
	for _, b := range p.IOBursts {
		total += b
	}
	return total
}

// complete marks the process done. CompletionTime is write-once.
func (p *Process) complete(now int64) {
	if p.completed {
		panic(fmt.Sprintf("process %s completed twice (at %d and %d)", p.Name, p.CompletionTime, now))
	}
	p.completed = true
	p.CompletionTime = now
	p.State = StateDone
}

// TurnaroundTime is completion time minus arrival time.
func (p *Process) TurnaroundTime() int64 {
	return p.CompletionTime - p.ArrivalTime
}

// WaitingTime is turnaround time minus the burst time the policy counts as active.
func (p *Process) WaitingTime(policy WaitingTimePolicy) int64 {
	switch policy {
	case WaitCPUAndIO:
		return p.TurnaroundTime() - p.TotalCPU() - p.TotalIO()
	default:
		return p.TurnaroundTime() - p.TotalCPU()
	}
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (Name: %s, State: %s, Level: %d, BurstIndex: %d, PhaseTicks: %d)",
		p.Name, p.State, p.Level, p.BurstIndex, p.PhaseTicks)
}
