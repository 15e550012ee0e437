package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTicks         int64   `json:"total_ticks"`
	BusyTicks          int64   `json:"busy_ticks"`
	IdleTicks          int64   `json:"idle_ticks"`
	ContextSwitchTicks int64   `json:"context_switch_ticks"`
	CPUUtilization     float64 `json:"cpu_utilization"` // busy / total
	Demotions          int64   `json:"demotions"`
	Preemptions        int64   `json:"preemptions"`
	QuantumCycles      int64   `json:"quantum_cycles"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}
	summary.BusyTicks = st.busy
	summary.IdleTicks = st.idle
	summary.ContextSwitchTicks = st.switching
	summary.TotalTicks = st.busy + st.idle + st.switching
	summary.Demotions = st.demotions
	summary.Preemptions = st.preemptions
	summary.QuantumCycles = st.cycles
	if summary.TotalTicks > 0 {
		summary.CPUUtilization = float64(summary.BusyTicks) / float64(summary.TotalTicks)
	}
	return summary
}
