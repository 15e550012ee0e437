// Package report renders simulation results: the per-tick text log, the final
// metrics in text and table form, and the JSON result document.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inference-sim/mlfq-sim/sim/trace"
)

// WriteTimeline writes the per-tick event log, one block per record:
//
//	At Time = 5
//	Arriving : [B]
//	A DONE
//	Queues : [B];[];[]
//	CPU : B
//	I/O : [C]
//	D DEMOTED
//
// The CPU line is empty while the CPU is idle or switching. Arriving and
// DEMOTED lines appear only when there is something to report.
func WriteTimeline(w io.Writer, st *trace.SimulationTrace) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# Scheduling Results #")
	for _, rec := range st.Ticks {
		writeTick(bw, rec)
	}
	fmt.Fprintln(bw, "SIMULATION DONE")
	fmt.Fprintln(bw)
	return bw.Flush()
}

func writeTick(w io.Writer, rec trace.TickRecord) {
	fmt.Fprintf(w, "At Time = %d\n", rec.Time)
	if len(rec.Arrived) > 0 {
		fmt.Fprintf(w, "Arriving : [%s]\n", joinNames(rec.Arrived))
	}
	for _, name := range rec.Completed {
		fmt.Fprintf(w, "%s DONE\n", name)
	}
	queues := make([]string, len(rec.Queues))
	for i, q := range rec.Queues {
		queues[i] = "[" + joinNames(q) + "]"
	}
	fmt.Fprintf(w, "Queues : %s\n", strings.Join(queues, ";"))
	fmt.Fprintf(w, "CPU : %s\n", rec.CPU)
	fmt.Fprintf(w, "I/O : [%s]\n", joinNames(rec.IO))
	if rec.Demoted != "" {
		fmt.Fprintf(w, "%s DEMOTED\n", rec.Demoted)
	}
	fmt.Fprintln(w)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
