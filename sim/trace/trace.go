package trace

// TraceLevel controls the verbosity of timeline tracing.
type TraceLevel string

const (
	// TraceLevelNone records nothing except the final record.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTicks records every tick.
	TraceLevelTicks TraceLevel = "ticks"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelTicks: true,
	"":              true, // empty defaults to ticks
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects tick records during a simulation.
type SimulationTrace struct {
	Config TraceConfig
	Ticks  []TickRecord

	// counters are kept even when ticks are not retained
	busy, idle, switching, demotions, preemptions, cycles int64
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Ticks:  make([]TickRecord, 0),
	}
}

// Record appends a tick record and updates the running counters.
func (st *SimulationTrace) Record(record TickRecord) {
	if !record.Final {
		switch {
		case record.ContextSwitch:
			st.switching++
		case record.CPU != "":
			st.busy++
		default:
			st.idle++
		}
	}
	if record.Demoted != "" {
		st.demotions++
	}
	if record.Preempted != "" {
		st.preemptions++
	}
	if record.Cycled != "" {
		st.cycles++
	}
	if st.Config.Level == TraceLevelNone && !record.Final {
		return
	}
	st.Ticks = append(st.Ticks, record)
}

// Len returns the number of retained records.
func (st *SimulationTrace) Len() int {
	return len(st.Ticks)
}

// Last returns the most recent retained record, or false if there is none.
func (st *SimulationTrace) Last() (TickRecord, bool) {
	if len(st.Ticks) == 0 {
		return TickRecord{}, false
	}
	return st.Ticks[len(st.Ticks)-1], true
}
