package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mlfq-sim/sim/trace"
)

// ErrTickLimitExceeded is returned by Run when processes remain after the tick ceiling.
var ErrTickLimitExceeded = errors.New("tick limit exceeded")

// Result is the outcome of a complete run.
type Result struct {
	Trace   *trace.SimulationTrace
	Metrics *Metrics
	Summary *trace.TraceSummary
	Ticks   int64 // simulated ticks consumed
}

// Controller drives the engine one tick at a time in a fixed order:
// arrivals, re-admission, preemption and dispatch, clock, CPU, I/O, and
// finally retirement, demotion or quantum expiry of the process that ran.
type Controller struct {
	engine *Engine
	trace  *trace.SimulationTrace
}

// NewController builds an engine for the given processes.
func NewController(config Config, specs []ProcessSpec, traceConfig trace.TraceConfig) (*Controller, error) {
	engine, err := NewEngine(config, specs)
	if err != nil {
		return nil, err
	}
	return &Controller{
		engine: engine,
		trace:  trace.NewSimulationTrace(traceConfig),
	}, nil
}

// Engine exposes the underlying engine for inspection.
func (c *Controller) Engine() *Engine {
	return c.engine
}

// Trace returns the records collected so far.
func (c *Controller) Trace() *trace.SimulationTrace {
	return c.trace
}

// Tick processes one simulated time unit and returns its record. When every
// process is already done it returns the termination record and true without
// consuming a tick.
func (c *Controller) Tick() (trace.TickRecord, bool) {
	e := c.engine
	rec := trace.TickRecord{
		Time:      e.Clock(),
		Arrived:   make([]string, 0),
		Completed: e.TakeCompleted(),
	}

	if e.AllDone() {
		rec.Final = true
		rec.Queues = e.QueueSnapshot()
		rec.IO = processNames(e.IO())
		c.trace.Record(rec)
		return rec, true
	}

	rec.Arrived = e.AdmitArrivals(e.Clock())
	e.ReadmitPending()
	if preempted := e.PreemptIfHigherPriorityReady(); preempted != nil {
		rec.Preempted = preempted.Name
	}
	e.Dispatch()

	rec.Queues = e.QueueSnapshot()
	if cpu := e.CPU(); cpu != nil {
		if e.Switching() {
			rec.ContextSwitch = true
		} else {
			rec.CPU = cpu.Name
			rec.CPULevel = cpu.Level
		}
	}
	rec.IO = processNames(e.IO())

	e.AdvanceClock()
	e.AdvanceCPU()
	e.AdvanceIO()

	outcome := e.RetireOrDemote()
	if outcome.Demoted {
		rec.Demoted = outcome.Process.Name
	}
	if outcome.Kind == OutcomeCycled {
		rec.Cycled = outcome.Process.Name
	}

	e.assertInvariants()
	c.trace.Record(rec)
	return rec, false
}

// Run ticks until every process is done. maxTicks <= 0 uses DefaultMaxTicks.
// Exceeding the ceiling returns the partial result and an error wrapping
// ErrTickLimitExceeded.
func (c *Controller) Run(maxTicks int64) (*Result, error) {
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	logrus.Infof("Starting simulation of %d processes (quantum=%d, allotments=%d/%d, context switch=%d)",
		len(c.engine.Processes()), c.engine.Config.Quantum, c.engine.Config.Level1Allotment,
		c.engine.Config.Level2Allotment, c.engine.Config.ContextSwitch)

	for {
		if _, done := c.Tick(); done {
			break
		}
		if c.engine.Clock() >= maxTicks && !c.engine.AllDone() {
			unfinished := c.engine.Unfinished()
			logrus.Warnf("[tick %04d] tick limit reached with %d processes unfinished", c.engine.Clock(), len(unfinished))
			return c.result(), fmt.Errorf("%w: %d ticks, unfinished processes %v", ErrTickLimitExceeded, maxTicks, unfinished)
		}
	}
	logrus.Infof("[tick %04d] Simulation ended", c.engine.Clock())
	return c.result(), nil
}

func (c *Controller) result() *Result {
	return &Result{
		Trace:   c.trace,
		Metrics: NewMetrics(c.engine.Processes(), c.engine.Config.WaitingTime),
		Summary: trace.Summarize(c.trace),
		Ticks:   c.engine.Clock(),
	}
}

// Simulate runs a fresh controller to completion with full tick tracing.
// The config is assumed to be validated.
func Simulate(config Config, specs []ProcessSpec, maxTicks int64) (*Result, error) {
	c, err := NewController(config, specs, trace.TraceConfig{Level: trace.TraceLevelTicks})
	if err != nil {
		return nil, err
	}
	return c.Run(maxTicks)
}
