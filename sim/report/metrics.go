package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/trace"
)

// WriteMetrics writes the per-process turnaround and waiting times in name
// order, with the average turnaround in between.
func WriteMetrics(w io.Writer, m *sim.Metrics) error {
	bw := bufio.NewWriter(w)
	for _, pm := range m.Processes {
		fmt.Fprintf(bw, "Turn-around time for Process %s : %d - %d = %d ms\n",
			pm.Name, pm.CompletionTime, pm.ArrivalTime, pm.Turnaround)
	}
	fmt.Fprintf(bw, "Average Turn-around time = %s ms\n", FormatAverage(m.AverageTurnaround))
	for _, pm := range m.Processes {
		fmt.Fprintf(bw, "Waiting time for Process %s : %d ms\n", pm.Name, pm.Waiting)
	}
	for _, name := range m.Unfinished {
		fmt.Fprintf(bw, "Process %s did not finish\n", name)
	}
	return bw.Flush()
}

// FormatAverage prints a two-decimal average the short way: 9.5, 4.67, 7.0.
func FormatAverage(v float64) string {
	s := strconv.FormatFloat(sim.Round2(v), 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// WriteMetricsTable writes the per-process metrics and the trace summary as tables.
func WriteMetricsTable(w io.Writer, m *sim.Metrics, summary *trace.TraceSummary) {
	rows := make([][]string, 0, len(m.Processes))
	for _, pm := range m.Processes {
		rows = append(rows, []string{
			pm.Name,
			strconv.FormatInt(pm.ArrivalTime, 10),
			strconv.FormatInt(pm.TotalCPU, 10),
			strconv.FormatInt(pm.TotalIO, 10),
			strconv.FormatInt(pm.CompletionTime, 10),
			strconv.FormatInt(pm.Turnaround, 10),
			strconv.FormatInt(pm.Waiting, 10),
			strconv.Itoa(pm.FinalLevel),
			strconv.Itoa(pm.Demotions),
		})
	}
	fmt.Fprintln(w, "Process metrics")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "Arrival", "CPU", "I/O", "Completion", "Turnaround", "Waiting", "Level", "Demotions"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AverageTurnaround),
		fmt.Sprintf("Average\n%.2f", m.AverageWaiting),
		"", ""})
	table.Render()

	if summary == nil {
		return
	}
	fmt.Fprintln(w, "CPU summary")
	st := tablewriter.NewWriter(w)
	st.SetHeader([]string{"Ticks", "Busy", "Idle", "Switching", "Utilization", "Demotions", "Preemptions", "Quantum cycles"})
	st.Append([]string{
		strconv.FormatInt(summary.TotalTicks, 10),
		strconv.FormatInt(summary.BusyTicks, 10),
		strconv.FormatInt(summary.IdleTicks, 10),
		strconv.FormatInt(summary.ContextSwitchTicks, 10),
		fmt.Sprintf("%.2f%%", summary.CPUUtilization*100),
		strconv.FormatInt(summary.Demotions, 10),
		strconv.FormatInt(summary.Preemptions, 10),
		strconv.FormatInt(summary.QuantumCycles, 10),
	})
	st.Render()
}
