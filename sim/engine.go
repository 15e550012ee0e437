// sim/engine.go
package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// CPUActivity describes what the CPU did during one tick.
type CPUActivity int

const (
	CPUIdle      CPUActivity = iota // no occupant
	CPUSwitching                    // occupant installed, context-switch overhead consumed
	CPUExecuted                     // occupant consumed one tick of its burst
)

// OutcomeKind is the post-execution decision for the process that ran this tick.
type OutcomeKind string

const (
	OutcomeNone    OutcomeKind = ""
	OutcomeDone    OutcomeKind = "done"    // last CPU burst exhausted
	OutcomeBlocked OutcomeKind = "blocked" // burst exhausted, moved to I/O
	OutcomeDemoted OutcomeKind = "demoted" // allotment exhausted, moved one level down
	OutcomeCycled  OutcomeKind = "cycled"  // level-1 quantum expired, back of level 1
)

// Outcome reports what RetireOrDemote decided.
type Outcome struct {
	Kind    OutcomeKind
	Process *Process
	Demoted bool // level increased this tick (OutcomeDemoted, or OutcomeBlocked with DemoteOnBlock)
}

// Engine owns the level queues, the CPU slot, the I/O set and the clock.
// All process and queue mutation goes through its methods.
type Engine struct {
	Config Config

	clock  int64
	queues [NumLevels]ReadyQueue

	// cpu is nil when the slot is empty.
	cpu *Process
	// switchRemaining is the context-switch overhead still owed before cpu executes.
	switchRemaining int64
	// lastRan is the process that most recently executed a CPU tick.
	lastRan *Process
	// executed is the process that executed during the current tick, if any.
	executed *Process

	io      []*Process // blocked processes, in blocking order
	pending []*Process // quantum-cycled and I/O-completed processes awaiting re-admission next tick

	arrivals  []*Process // not yet arrived, sorted by (arrival time, name)
	processes []*Process // all processes, in input order
	completed []string   // completions not yet reported
	doneCount int
}

// NewEngine builds the processes from their specs and an empty set of level queues.
// The Config is assumed to be validated.
func NewEngine(config Config, specs []ProcessSpec) (*Engine, error) {
	e := &Engine{
		Config:    config,
		io:        make([]*Process, 0),
		pending:   make([]*Process, 0),
		processes: make([]*Process, 0, len(specs)),
		completed: make([]string, 0),
	}
	for i := range e.queues {
		e.queues[i] = NewReadyQueue(LevelDisciplines[i])
	}
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate process name %q", spec.Name)
		}
		seen[spec.Name] = true
		p, err := NewProcess(spec)
		if err != nil {
			return nil, err
		}
		e.processes = append(e.processes, p)
	}
	e.arrivals = append([]*Process(nil), e.processes...)
	sort.SliceStable(e.arrivals, func(i, j int) bool {
		if e.arrivals[i].ArrivalTime != e.arrivals[j].ArrivalTime {
			return e.arrivals[i].ArrivalTime < e.arrivals[j].ArrivalTime
		}
		return e.arrivals[i].Name < e.arrivals[j].Name
	})
	return e, nil
}

// Clock returns the current simulation time in ticks.
func (e *Engine) Clock() int64 {
	return e.clock
}

// AdvanceClock moves simulation time forward by one tick.
func (e *Engine) AdvanceClock() {
	e.clock++
}

// AdmitArrivals moves every process arriving at tick into level 1, in name order.
func (e *Engine) AdmitArrivals(tick int64) []string {
	arrived := make([]string, 0)
	for len(e.arrivals) > 0 && e.arrivals[0].ArrivalTime <= tick {
		p := e.arrivals[0]
		e.arrivals = e.arrivals[1:]
		if p.ArrivalTime < tick {
			panic(fmt.Sprintf("process %s arriving at %d was not admitted before tick %d", p.Name, p.ArrivalTime, tick))
		}
		p.Level = 1
		e.queues[0].Enqueue(p)
		arrived = append(arrived, p.Name)
		logrus.Debugf("[tick %04d] arrival %s", tick, p.Name)
	}
	return arrived
}

// ReadmitPending enqueues the processes collected on the previous tick.
func (e *Engine) ReadmitPending() []string {
	names := processNames(e.pending)
	for _, p := range e.pending {
		if e.Config.Readmit == ReadmitTopLevel {
			p.Level = 1
		}
		e.queue(p.Level).Enqueue(p)
		logrus.Debugf("[tick %04d] readmit %s to Q%d", e.clock, p.Name, p.Level)
	}
	e.pending = e.pending[:0]
	return names
}

// Dispatch installs the head of the highest non-empty level if the CPU is empty.
// Returns the installed process, or nil if nothing was dispatched.
func (e *Engine) Dispatch() *Process {
	if e.cpu != nil {
		return nil
	}
	for level := 1; level <= NumLevels; level++ {
		q := e.queue(level)
		if q.Len() == 0 {
			continue
		}
		p, err := q.Dequeue()
		if err != nil {
			panic(fmt.Sprintf("dispatch from Q%d: %v", level, err))
		}
		e.install(p)
		return p
	}
	return nil
}

func (e *Engine) install(p *Process) {
	if e.cpu != nil {
		panic(fmt.Sprintf("install %s: CPU already occupied by %s", p.Name, e.cpu.Name))
	}
	e.cpu = p
	p.State = StateRunning
	if e.lastRan != nil && e.lastRan != p {
		e.switchRemaining = e.Config.ContextSwitch
	} else {
		e.switchRemaining = 0
	}
	logrus.Debugf("[tick %04d] dispatch %s from Q%d (switch=%d)", e.clock, p.Name, p.Level, e.switchRemaining)
}

// PreemptIfHigherPriorityReady returns the occupant to its own level when a
// strictly higher level has a waiting process, then dispatches again.
// Returns the preempted process, or nil.
func (e *Engine) PreemptIfHigherPriorityReady() *Process {
	if e.cpu == nil {
		return nil
	}
	for level := 1; level < e.cpu.Level; level++ {
		if e.queue(level).Len() == 0 {
			continue
		}
		preempted := e.cpu
		e.cpu = nil
		e.switchRemaining = 0
		e.queue(preempted.Level).Enqueue(preempted)
		logrus.Debugf("[tick %04d] preempt %s (Q%d ready)", e.clock, preempted.Name, level)
		e.Dispatch()
		return preempted
	}
	return nil
}

// AdvanceCPU consumes one tick of context-switch overhead, or one tick of the
// occupant's current burst.
func (e *Engine) AdvanceCPU() CPUActivity {
	e.executed = nil
	if e.cpu == nil {
		return CPUIdle
	}
	if e.switchRemaining > 0 {
		e.switchRemaining--
		return CPUSwitching
	}
	p := e.cpu
	p.PhaseTicks++
	p.LevelTicks++
	p.RecomputeRemainingBurst()
	e.lastRan = p
	e.executed = p
	return CPUExecuted
}

// AdvanceIO gives every blocked process one tick of I/O. Processes whose I/O
// burst is complete move to the next CPU burst and are collected for
// re-admission on the next tick. Returns their names in name order.
func (e *Engine) AdvanceIO() []string {
	finished := make([]*Process, 0)
	still := e.io[:0]
	for _, p := range e.io {
		p.PhaseTicks++
		p.RecomputeRemainingIO()
		if p.RemainingIO == 0 {
			finished = append(finished, p)
			continue
		}
		still = append(still, p)
	}
	e.io = still
	sort.SliceStable(finished, func(i, j int) bool { return finished[i].Name < finished[j].Name })
	for _, p := range finished {
		e.finishIO(p)
	}
	return processNames(finished)
}

func (e *Engine) finishIO(p *Process) {
	p.BurstIndex++
	p.PhaseTicks = 0
	p.RemainingIO = 0
	p.RecomputeRemainingBurst()
	p.State = StateReady
	e.pending = append(e.pending, p)
	logrus.Debugf("[tick %04d] %s finished I/O, next CPU burst %d", e.clock, p.Name, p.RemainingBurst)
}

// RetireOrDemote evaluates the process that executed this tick, in priority
// order: burst exhaustion, allotment exhaustion, level-1 quantum exhaustion.
func (e *Engine) RetireOrDemote() Outcome {
	p := e.executed
	if p == nil {
		return Outcome{}
	}
	e.executed = nil

	if p.RemainingBurst == 0 {
		e.cpu = nil
		if p.IsLastBurst() {
			p.complete(e.clock)
			e.doneCount++
			e.completed = append(e.completed, p.Name)
			logrus.Debugf("[tick %04d] %s done", e.clock, p.Name)
			return Outcome{Kind: OutcomeDone, Process: p}
		}
		demoted := false
		if e.Config.DemoteOnBlock && e.allotmentExhausted(p) {
			e.demote(p)
			demoted = true
		}
		e.block(p)
		return Outcome{Kind: OutcomeBlocked, Process: p, Demoted: demoted}
	}

	if e.allotmentExhausted(p) {
		e.cpu = nil
		e.demote(p)
		e.queue(p.Level).Enqueue(p)
		return Outcome{Kind: OutcomeDemoted, Process: p, Demoted: true}
	}

	if p.Level == 1 && p.LevelTicks%e.Config.Quantum == 0 {
		p.Level1Rounds++
		if roundCap := e.Config.RoundCap(); roundCap > 0 && p.Level1Rounds >= roundCap {
			e.cpu = nil
			p.Level1Rounds = 0
			p.State = StateReady
			e.pending = append(e.pending, p)
			logrus.Debugf("[tick %04d] %s quantum expired, back of Q1", e.clock, p.Name)
			return Outcome{Kind: OutcomeCycled, Process: p}
		}
	}
	return Outcome{Kind: OutcomeNone, Process: p}
}

func (e *Engine) allotmentExhausted(p *Process) bool {
	allotment := e.Config.Allotment(p.Level)
	return allotment > 0 && p.LevelTicks >= allotment
}

func (e *Engine) demote(p *Process) {
	if p.Level >= NumLevels {
		panic(fmt.Sprintf("demote %s: already at lowest level", p.Name))
	}
	p.Level++
	p.LevelTicks = 0
	p.Level1Rounds = 0
	p.Demotions++
	logrus.Debugf("[tick %04d] %s demoted to Q%d", e.clock, p.Name, p.Level)
}

func (e *Engine) block(p *Process) {
	p.State = StateBlocked
	p.PhaseTicks = 0
	p.LevelTicks = 0
	p.Level1Rounds = 0
	if p.IOBursts[p.BurstIndex] == 0 {
		logrus.Warnf("[tick %04d] %s has a zero-length I/O burst; readmitting next tick", e.clock, p.Name)
		e.finishIO(p)
		return
	}
	p.RecomputeRemainingIO()
	e.io = append(e.io, p)
	logrus.Debugf("[tick %04d] %s blocked on I/O for %d", e.clock, p.Name, p.RemainingIO)
}

func (e *Engine) queue(level int) ReadyQueue {
	if level < 1 || level > NumLevels {
		panic(fmt.Sprintf("level %d out of range [1, %d]", level, NumLevels))
	}
	return e.queues[level-1]
}

// Queue returns the ready queue of a level (1-based).
func (e *Engine) Queue(level int) ReadyQueue {
	return e.queue(level)
}

// QueueSnapshot returns the names waiting at every level, in queue order.
func (e *Engine) QueueSnapshot() [NumLevels][]string {
	var snap [NumLevels][]string
	for i, q := range e.queues {
		snap[i] = processNames(q.Items())
	}
	return snap
}

// CPU returns the current occupant, or nil.
func (e *Engine) CPU() *Process {
	return e.cpu
}

// Switching reports whether the occupant still owes context-switch overhead.
func (e *Engine) Switching() bool {
	return e.cpu != nil && e.switchRemaining > 0
}

// IO returns the blocked processes sorted by name.
func (e *Engine) IO() []*Process {
	procs := append([]*Process(nil), e.io...)
	sort.SliceStable(procs, func(i, j int) bool { return procs[i].Name < procs[j].Name })
	return procs
}

// TakeCompleted returns the processes completed since the previous call.
func (e *Engine) TakeCompleted() []string {
	done := e.completed
	e.completed = make([]string, 0)
	return done
}

// AllDone reports whether every process has completed.
func (e *Engine) AllDone() bool {
	return e.doneCount == len(e.processes)
}

// Processes returns every process in input order.
func (e *Engine) Processes() []*Process {
	return e.processes
}

// Unfinished returns the names of processes that have not completed.
func (e *Engine) Unfinished() []string {
	names := make([]string, 0)
	for _, p := range e.processes {
		if p.State != StateDone {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	return names
}

// assertInvariants panics if the engine state is inconsistent: every process
// in exactly one place, levels in range, level 3 in SJF order.
func (e *Engine) assertInvariants() {
	where := make(map[*Process]string, len(e.processes))
	place := func(p *Process, loc string) {
		if prev, ok := where[p]; ok {
			panic(fmt.Sprintf("process %s is in both %s and %s", p.Name, prev, loc))
		}
		where[p] = loc
		if p.Level < 1 || p.Level > NumLevels {
			panic(fmt.Sprintf("process %s has level %d", p.Name, p.Level))
		}
	}
	for _, p := range e.arrivals {
		place(p, "arrivals")
	}
	for i, q := range e.queues {
		for _, p := range q.Items() {
			place(p, fmt.Sprintf("Q%d", i+1))
		}
	}
	if e.cpu != nil {
		place(e.cpu, "cpu")
	}
	for _, p := range e.io {
		place(p, "io")
	}
	for _, p := range e.pending {
		place(p, "pending")
	}
	for _, p := range e.processes {
		if p.State == StateDone {
			place(p, "done")
		}
	}
	if len(where) != len(e.processes) {
		panic(fmt.Sprintf("%d of %d processes accounted for", len(where), len(e.processes)))
	}
	if e.switchRemaining < 0 {
		panic(fmt.Sprintf("negative context-switch countdown %d", e.switchRemaining))
	}
	sjf := e.queues[NumLevels-1].Items()
	for i := 1; i < len(sjf); i++ {
		a, b := sjf[i-1], sjf[i]
		if a.RemainingBurst > b.RemainingBurst || (a.RemainingBurst == b.RemainingBurst && a.Name > b.Name) {
			panic(fmt.Sprintf("Q%d out of SJF order: %s before %s", NumLevels, a.Name, b.Name))
		}
	}
}
