package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalTicks != 0 || summary.CPUUtilization != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTicks})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalTicks != 0 {
		t.Errorf("expected 0 total ticks, got %d", summary.TotalTicks)
	}
	if summary.Demotions != 0 || summary.Preemptions != 0 || summary.QuantumCycles != 0 {
		t.Error("expected no decisions")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with busy, idle, switching and final records
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTicks})
	st.Record(TickRecord{Time: 0, CPU: "A"})
	st.Record(TickRecord{Time: 1, CPU: "A", Cycled: "A"})
	st.Record(TickRecord{Time: 2, ContextSwitch: true})
	st.Record(TickRecord{Time: 3, CPU: "B", Preempted: "C"})
	st.Record(TickRecord{Time: 4, Demoted: "B", CPU: "B"})
	st.Record(TickRecord{Time: 5})
	st.Record(TickRecord{Time: 6, Final: true, Completed: []string{"A", "B"}})

	// WHEN summarized
	summary := Summarize(st)

	// THEN the final record does not count as a tick
	if summary.TotalTicks != 6 {
		t.Errorf("expected 6 total ticks, got %d", summary.TotalTicks)
	}
	if summary.BusyTicks != 4 {
		t.Errorf("expected 4 busy ticks, got %d", summary.BusyTicks)
	}
	if summary.IdleTicks != 1 || summary.ContextSwitchTicks != 1 {
		t.Errorf("expected 1 idle and 1 switch tick, got %d and %d", summary.IdleTicks, summary.ContextSwitchTicks)
	}
	if summary.Demotions != 1 || summary.Preemptions != 1 || summary.QuantumCycles != 1 {
		t.Errorf("unexpected decision counts: %+v", summary)
	}
	want := 4.0 / 6.0
	if summary.CPUUtilization < want-0.001 || summary.CPUUtilization > want+0.001 {
		t.Errorf("expected utilization ~%.4f, got %.4f", want, summary.CPUUtilization)
	}
}
