// Package trace provides per-tick timeline recording for MLFQ simulation analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TickRecord captures the observable scheduler state for one tick.
// Queues, CPU and IO reflect the state while the tick executes; Demoted,
// Preempted and Cycled are the decisions taken during the tick.
type TickRecord struct {
	Time          int64       `json:"time"`
	Arrived       []string    `json:"arrived"`
	Completed     []string    `json:"completed"` // processes that finished since the previous tick
	Queues        [3][]string `json:"queues"`
	CPU           string      `json:"cpu"` // empty while idle or context switching
	CPULevel      int         `json:"cpu_level,omitempty"`
	ContextSwitch bool        `json:"context_switch"`
	IO            []string    `json:"io"` // sorted by name
	Demoted       string      `json:"demoted,omitempty"`
	Preempted     string      `json:"preempted,omitempty"`
	Cycled        string      `json:"cycled,omitempty"` // sent to the back of level 1 on quantum expiry
	Final         bool        `json:"final,omitempty"`  // termination record; no CPU tick was consumed
}

// Idle reports whether the CPU neither executed nor switched during the tick.
func (r TickRecord) Idle() bool {
	return r.CPU == "" && !r.ContextSwitch
}
