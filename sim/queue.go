// Implements the ready queues, which hold processes waiting for the CPU at one level.
// Processes are enqueued on arrival, on return from I/O, on quantum expiry and on demotion.

package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyQueue is wrapped by every EmptyQueueError.
var ErrEmptyQueue = errors.New("dequeue from empty ready queue")

// EmptyQueueError reports a Dequeue on an empty queue. Callers are expected to
// check Len() first, so receiving one is a programming error.
type EmptyQueueError struct {
	Discipline Discipline
}

func (e *EmptyQueueError) Error() string {
	return fmt.Sprintf("%s queue: %v", e.Discipline, ErrEmptyQueue)
}

func (e *EmptyQueueError) Unwrap() error {
	return ErrEmptyQueue
}

// ReadyQueue is an ordered collection of processes waiting at one level.
// Implementations differ only in how Enqueue re-establishes ordering.
type ReadyQueue interface {
	Enqueue(p *Process)
	Dequeue() (*Process, error)
	Peek() *Process
	Len() int
	Items() []*Process
	Remove(p *Process) bool
	Discipline() Discipline
}

// fifo is the storage shared by all disciplines.
type fifo struct {
	queue []*Process
}

func (q *fifo) push(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	p.State = StateReady
	q.queue = append(q.queue, p)
}

func (q *fifo) pop(d Discipline) (*Process, error) {
	if len(q.queue) == 0 {
		return nil, &EmptyQueueError{Discipline: d}
	}
	head := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return head, nil
}

// Len returns the number of waiting processes.
func (q *fifo) Len() int {
	return len(q.queue)
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *fifo) Peek() *Process {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (q *fifo) Items() []*Process {
	return q.queue
}

// Remove deletes p from the queue, preserving the order of the rest.
func (q *fifo) Remove(p *Process) bool {
	for i, cur := range q.queue {
		if cur == p {
			q.queue = append(q.queue[:i], q.queue[i+1:]...)
			return true
		}
	}
	return false
}

func (q *fifo) String() string {
	return "[" + strings.Join(processNames(q.queue), ", ") + "]"
}

func processNames(procs []*Process) []string {
	names := make([]string, len(procs))
	for i, p := range procs {
		names[i] = p.Name
	}
	return names
}
