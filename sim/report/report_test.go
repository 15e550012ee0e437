package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/internal/testutil"
	"github.com/inference-sim/mlfq-sim/sim/trace"
	"github.com/inference-sim/mlfq-sim/sim/workload"
)

// twoProcessRun runs P1(0, [8]) and P2(1, [4]) under the default config.
func twoProcessRun(t *testing.T) (sim.Config, *sim.Result) {
	t.Helper()
	cfg := sim.NewConfig(8, 8, 0)
	specs := []sim.ProcessSpec{
		{Name: "P1", ArrivalTime: 0, Bursts: []int64{8}},
		{Name: "P2", ArrivalTime: 1, Bursts: []int64{4}},
	}
	res, err := sim.Simulate(cfg, specs, 1000)
	require.NoError(t, err)
	return cfg, res
}

func TestWriteTimeline_SingleProcess(t *testing.T) {
	// GIVEN one process with a 2-tick burst
	res, err := sim.Simulate(sim.NewConfig(8, 8, 0), []sim.ProcessSpec{{Name: "P1", Bursts: []int64{2}}}, 100)
	require.NoError(t, err)
	var buf bytes.Buffer

	// WHEN the timeline is written
	require.NoError(t, WriteTimeline(&buf, res.Trace))

	// THEN every tick and the termination record are rendered
	want := strings.Join([]string{
		"# Scheduling Results #",
		"At Time = 0",
		"Arriving : [P1]",
		"Queues : [];[];[]",
		"CPU : P1",
		"I/O : []",
		"",
		"At Time = 1",
		"Queues : [];[];[]",
		"CPU : P1",
		"I/O : []",
		"",
		"At Time = 2",
		"P1 DONE",
		"Queues : [];[];[]",
		"CPU : ",
		"I/O : []",
		"",
		"SIMULATION DONE",
		"",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTimeline_QueuesContextSwitchAndDemotion(t *testing.T) {
	// GIVEN P1 demoted at tick 3 and preempted at tick 5 by P2, with a 1-tick switch
	cfg := sim.NewConfig(4, 10, 1)
	specs := []sim.ProcessSpec{
		{Name: "P1", Bursts: []int64{10}},
		{Name: "P2", ArrivalTime: 5, Bursts: []int64{2}},
	}
	res, err := sim.Simulate(cfg, specs, 1000)
	require.NoError(t, err)
	var buf bytes.Buffer

	require.NoError(t, WriteTimeline(&buf, res.Trace))

	out := buf.String()
	assert.Contains(t, out, "At Time = 3\nQueues : [];[];[]\nCPU : P1\nI/O : []\nP1 DEMOTED\n")
	assert.Contains(t, out, "At Time = 5\nArriving : [P2]\nQueues : [];[P1];[]\nCPU : \nI/O : []\n")
	assert.Contains(t, out, "At Time = 8\nP2 DONE\nQueues : [];[];[]\nCPU : \n")
}

func TestWriteMetrics_TwoProcesses(t *testing.T) {
	_, res := twoProcessRun(t)
	var buf bytes.Buffer

	require.NoError(t, WriteMetrics(&buf, res.Metrics))

	want := strings.Join([]string{
		"Turn-around time for Process P1 : 8 - 0 = 8 ms",
		"Turn-around time for Process P2 : 12 - 1 = 11 ms",
		"Average Turn-around time = 9.5 ms",
		"Waiting time for Process P1 : 0 ms",
		"Waiting time for Process P2 : 7 ms",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteMetrics_ListsUnfinished(t *testing.T) {
	m := &sim.Metrics{Unfinished: []string{"Z"}}
	var buf bytes.Buffer

	require.NoError(t, WriteMetrics(&buf, m))

	assert.Contains(t, buf.String(), "Process Z did not finish")
}

func TestFormatAverage(t *testing.T) {
	tests := map[float64]string{
		9.5:        "9.5",
		7:          "7.0",
		14.0 / 3.0: "4.67",
		0:          "0.0",
		12.25:      "12.25",
	}
	for v, want := range tests {
		assert.Equal(t, want, FormatAverage(v), "FormatAverage(%v)", v)
	}
}

func TestWriteMetricsTable_RendersRowsAndSummary(t *testing.T) {
	_, res := twoProcessRun(t)
	var buf bytes.Buffer

	WriteMetricsTable(&buf, res.Metrics, res.Summary)

	out := buf.String()
	assert.Contains(t, out, "Process metrics")
	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "P2")
	assert.Contains(t, out, "9.50")
	assert.Contains(t, out, "CPU summary")
	assert.Contains(t, out, "100.00%")
}

func TestWriteMetricsTable_NilSummary(t *testing.T) {
	_, res := twoProcessRun(t)
	var buf bytes.Buffer

	WriteMetricsTable(&buf, res.Metrics, nil)

	assert.NotContains(t, buf.String(), "CPU summary")
}

func TestWriteJSON_Document(t *testing.T) {
	// GIVEN a finished run
	cfg, res := twoProcessRun(t)
	runID := NewRunID()

	// WHEN the result document is encoded
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewDocument(runID, cfg, res, nil)))

	// THEN it round-trips with the run id, config, metrics and timeline
	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, runID, doc.RunID)
	_, err := uuid.Parse(strings.TrimPrefix(doc.RunID, "run_"))
	assert.NoError(t, err)
	assert.Equal(t, int64(4), doc.Config.Quantum)
	assert.Equal(t, 2, doc.Config.Level1RoundCap)
	assert.Equal(t, "same-level", doc.Config.Readmit)
	assert.Equal(t, int64(12), doc.Ticks)
	assert.Equal(t, 9.5, doc.Metrics.AverageTurnaround)
	assert.Len(t, doc.Metrics.Processes, 2)
	assert.Equal(t, res.Trace.Len(), len(doc.Timeline))
	assert.Empty(t, doc.Error)
}

func TestNewDocument_RecordsRunError(t *testing.T) {
	cfg, res := twoProcessRun(t)

	doc := NewDocument(NewRunID(), cfg, res, errors.New("tick limit exceeded"))

	assert.Equal(t, "tick limit exceeded", doc.Error)
}

func TestNewRunID_Unique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}

func TestSaveTimeline(t *testing.T) {
	_, res := twoProcessRun(t)
	path := filepath.Join(t.TempDir(), "timeline.json")

	require.NoError(t, SaveTimeline(path, res.Trace))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var ticks []trace.TickRecord
	require.NoError(t, json.Unmarshal(data, &ticks))
	assert.Equal(t, res.Trace.Ticks, ticks)
}

func TestTextReport_IORoundTrip_Golden(t *testing.T) {
	// GIVEN the I/O round-trip example scenario
	s, err := workload.LoadScenario(testutil.ExamplePath(t, "io-round-trip.yaml"))
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	res, err := sim.Simulate(s.Config(), s.Processes, s.Scheduler.MaxTicks)
	require.NoError(t, err)

	// WHEN the timeline and metrics are rendered
	var buf bytes.Buffer
	require.NoError(t, WriteTimeline(&buf, res.Trace))
	require.NoError(t, WriteMetrics(&buf, res.Metrics))

	// THEN the output matches the recorded log
	testutil.AssertGolden(t, "io-round-trip.golden", buf.Bytes())
}
