package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/trace"
)

// ConfigDocument is the scheduler configuration as recorded in a result document.
type ConfigDocument struct {
	Quantum         int64  `json:"quantum"`
	Level1Allotment int64  `json:"level1_allotment"`
	Level2Allotment int64  `json:"level2_allotment"`
	ContextSwitch   int64  `json:"context_switch"`
	Level1RoundCap  int    `json:"level1_round_cap"` // effective value
	DemoteOnBlock   bool   `json:"demote_on_block"`
	Readmit         string `json:"readmit"`
	WaitingTime     string `json:"waiting_time"`
}

// Document is the machine-readable result of one run.
type Document struct {
	RunID    string              `json:"run_id"`
	Config   ConfigDocument      `json:"config"`
	Ticks    int64               `json:"ticks"`
	Metrics  *sim.Metrics        `json:"metrics"`
	Summary  *trace.TraceSummary `json:"summary"`
	Timeline []trace.TickRecord  `json:"timeline,omitempty"`
	Error    string              `json:"error,omitempty"` // set when the run was cut short
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return "run_" + uuid.New().String()
}

// NewDocument assembles the result document. runErr, if non-nil, is recorded
// alongside the partial result.
func NewDocument(runID string, cfg sim.Config, res *sim.Result, runErr error) *Document {
	doc := &Document{
		RunID: runID,
		Config: ConfigDocument{
			Quantum:         cfg.Quantum,
			Level1Allotment: cfg.Level1Allotment,
			Level2Allotment: cfg.Level2Allotment,
			ContextSwitch:   cfg.ContextSwitch,
			Level1RoundCap:  cfg.RoundCap(),
			DemoteOnBlock:   cfg.DemoteOnBlock,
			Readmit:         string(cfg.Readmit),
			WaitingTime:     string(cfg.WaitingTime),
		},
		Ticks:    res.Ticks,
		Metrics:  res.Metrics,
		Summary:  res.Summary,
		Timeline: res.Trace.Ticks,
	}
	if runErr != nil {
		doc.Error = runErr.Error()
	}
	return doc
}

// WriteJSON encodes the document with two-space indentation.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// SaveTimeline writes the tick records alone to path as a JSON array.
func SaveTimeline(path string, st *trace.SimulationTrace) error {
	data, err := json.MarshalIndent(st.Ticks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding timeline: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing timeline: %w", err)
	}
	return nil
}
