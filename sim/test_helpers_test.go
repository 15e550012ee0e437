package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mlfq-sim/sim/trace"
)

// proc builds a ProcessSpec from an alternating CPU/I-O burst list.
func proc(name string, arrival int64, bursts ...int64) ProcessSpec {
	return ProcessSpec{Name: name, ArrivalTime: arrival, Bursts: bursts}
}

// testConfig returns a validated config with the default quantum.
func testConfig(t *testing.T, level1, level2, contextSwitch int64) Config {
	t.Helper()
	cfg := NewConfig(level1, level2, contextSwitch)
	require.NoError(t, cfg.Validate())
	return cfg
}

func intPtr(v int) *int { return &v }

// mustRun runs a scenario to completion and fails the test on error.
func mustRun(t *testing.T, cfg Config, specs ...ProcessSpec) *Result {
	t.Helper()
	res, err := Simulate(cfg, specs, 10_000)
	require.NoError(t, err)
	return res
}

// mustMetrics looks up one process's metrics.
func mustMetrics(t *testing.T, res *Result, name string) ProcessMetrics {
	t.Helper()
	pm, ok := res.Metrics.Lookup(name)
	require.True(t, ok, "no metrics for %s", name)
	return pm
}

// tickAt returns the record for a simulated time.
func tickAt(t *testing.T, res *Result, time int64) trace.TickRecord {
	t.Helper()
	for _, rec := range res.Trace.Ticks {
		if rec.Time == time && !rec.Final {
			return rec
		}
	}
	t.Fatalf("no tick record at time %d", time)
	return trace.TickRecord{}
}

// finalRecord returns the termination record.
func finalRecord(t *testing.T, res *Result) trace.TickRecord {
	t.Helper()
	last, ok := res.Trace.Last()
	require.True(t, ok)
	require.True(t, last.Final, "last record is not the termination record")
	return last
}
