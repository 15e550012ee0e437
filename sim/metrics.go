// Tracks per-process and simulation-wide scheduling metrics:
// turnaround time, waiting time and their averages.

package sim

import (
	"math"
	"sort"
)

// ProcessMetrics is the final report line for one process.
type ProcessMetrics struct {
	Name           string `json:"name"`
	ArrivalTime    int64  `json:"arrival_time"`
	CompletionTime int64  `json:"completion_time"`
	TotalCPU       int64  `json:"total_cpu"`
	TotalIO        int64  `json:"total_io"`
	Turnaround     int64  `json:"turnaround_time"`
	Waiting        int64  `json:"waiting_time"`
	FinalLevel     int    `json:"final_level"`
	Demotions      int    `json:"demotions"`
}

// Metrics aggregates the final report of a simulation.
type Metrics struct {
	Processes         []ProcessMetrics  `json:"processes"` // sorted by name, completed processes only
	AverageTurnaround float64           `json:"average_turnaround_time"`
	AverageWaiting    float64           `json:"average_waiting_time"`
	Makespan          int64             `json:"makespan"` // latest completion time
	WaitingTimePolicy WaitingTimePolicy `json:"waiting_time_policy"`
	Unfinished        []string          `json:"unfinished,omitempty"`
}

// NewMetrics computes the report for the given processes.
// Processes that have not completed are listed in Unfinished and excluded from averages.
func NewMetrics(procs []*Process, policy WaitingTimePolicy) *Metrics {
	if policy == "" {
		policy = WaitCPUOnly
	}
	m := &Metrics{
		Processes:         make([]ProcessMetrics, 0, len(procs)),
		WaitingTimePolicy: policy,
	}
	var tatSum, waitSum int64
	for _, p := range procs {
		if p.State != StateDone {
			m.Unfinished = append(m.Unfinished, p.Name)
			continue
		}
		pm := ProcessMetrics{
			Name:           p.Name,
			ArrivalTime:    p.ArrivalTime,
			CompletionTime: p.CompletionTime,
			TotalCPU:       p.TotalCPU(),
			TotalIO:        p.TotalIO(),
			Turnaround:     p.TurnaroundTime(),
			Waiting:        p.WaitingTime(policy),
			FinalLevel:     p.Level,
			Demotions:      p.Demotions,
		}
		tatSum += pm.Turnaround
		waitSum += pm.Waiting
		m.Makespan = max(m.Makespan, pm.CompletionTime)
		m.Processes = append(m.Processes, pm)
	}
	sort.Slice(m.Processes, func(i, j int) bool { return m.Processes[i].Name < m.Processes[j].Name })
	sort.Strings(m.Unfinished)
	if n := len(m.Processes); n > 0 {
		m.AverageTurnaround = Round2(float64(tatSum) / float64(n))
		m.AverageWaiting = Round2(float64(waitSum) / float64(n))
	}
	return m
}

// Lookup returns the metrics of the named process.
func (m *Metrics) Lookup(name string) (ProcessMetrics, bool) {
	for _, pm := range m.Processes {
		if pm.Name == name {
			return pm, true
		}
	}
	return ProcessMetrics{}, false
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
