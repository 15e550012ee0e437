package sim

import (
	"fmt"
	"sort"
)

// Discipline names the ordering policy of a ready queue.
type Discipline string

const (
	DisciplineRoundRobin Discipline = "round-robin"
	DisciplineFCFS       Discipline = "fcfs"
	DisciplineSJF        Discipline = "sjf"
)

// validDisciplines is the set of recognized discipline names.
var validDisciplines = map[Discipline]bool{
	DisciplineRoundRobin: true,
	DisciplineFCFS:       true,
	DisciplineSJF:        true,
}

// IsValidDiscipline returns true if name is a recognized queue discipline.
func IsValidDiscipline(name string) bool {
	return validDisciplines[Discipline(name)]
}

// RoundRobinQueue keeps arrival order. The quantum is enforced by the engine, not the queue.
type RoundRobinQueue struct{ fifo }

func (q *RoundRobinQueue) Enqueue(p *Process) { q.push(p) }

func (q *RoundRobinQueue) Dequeue() (*Process, error) { return q.pop(DisciplineRoundRobin) }

func (q *RoundRobinQueue) Discipline() Discipline { return DisciplineRoundRobin }

// FCFSQueue preserves First-Come-First-Served order; a dispatched process runs
// until its burst ends, its allotment runs out, or it is preempted.
type FCFSQueue struct{ fifo }

func (q *FCFSQueue) Enqueue(p *Process) { q.push(p) }

func (q *FCFSQueue) Dequeue() (*Process, error) { return q.pop(DisciplineFCFS) }

func (q *FCFSQueue) Discipline() Discipline { return DisciplineFCFS }

// SJFQueue keeps processes sorted by remaining CPU burst (ascending),
// then by name (ascending) for determinism.
type SJFQueue struct{ fifo }

// Enqueue inserts p and re-sorts the whole queue.
func (q *SJFQueue) Enqueue(p *Process) {
	p.RecomputeRemainingBurst()
	q.push(p)
	sort.SliceStable(q.queue, func(i, j int) bool {
		ri, rj := q.queue[i].RemainingBurst, q.queue[j].RemainingBurst
		if ri != rj {
			return ri < rj
		}
		return q.queue[i].Name < q.queue[j].Name
	})
}

func (q *SJFQueue) Dequeue() (*Process, error) { return q.pop(DisciplineSJF) }

func (q *SJFQueue) Discipline() Discipline { return DisciplineSJF }

// NewReadyQueue creates a ReadyQueue by discipline.
// Panics on unrecognized names.
func NewReadyQueue(d Discipline) ReadyQueue {
	if !IsValidDiscipline(string(d)) {
		panic(fmt.Sprintf("unknown queue discipline %q", d))
	}
	switch d {
	case DisciplineRoundRobin:
		return &RoundRobinQueue{}
	case DisciplineFCFS:
		return &FCFSQueue{}
	case DisciplineSJF:
		return &SJFQueue{}
	default:
		panic(fmt.Sprintf("unhandled queue discipline %q", d))
	}
}

// LevelDisciplines is the fixed discipline of each level, indexed by level-1.
var LevelDisciplines = [NumLevels]Discipline{DisciplineRoundRobin, DisciplineFCFS, DisciplineSJF}
