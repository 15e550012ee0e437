package workload

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inference-sim/mlfq-sim/sim"
)

// ParseText reads the line-oriented scenario format:
//
//	3          number of processes
//	8          level-1 allotment
//	8          level-2 allotment
//	0          context switch
//	A;0;5;2;3  name;arrival;cpu1;io1;cpu2;...
//
// Blank lines are skipped. The result is not validated.
func ParseText(r io.Reader) (*Scenario, error) {
	lines, err := nonBlankLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	if len(lines) < 4 {
		return nil, fmt.Errorf("parsing scenario: expected 4 header lines, got %d", len(lines))
	}
	header := make([]int64, 4)
	names := []string{"process count", "level-1 allotment", "level-2 allotment", "context switch"}
	for i := range header {
		v, err := strconv.ParseInt(lines[i].text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing scenario: line %d: %s must be an integer, got %q", lines[i].num, names[i], lines[i].text)
		}
		header[i] = v
	}
	count := header[0]
	if count < 0 {
		return nil, fmt.Errorf("parsing scenario: line %d: process count must be non-negative, got %d", lines[0].num, count)
	}
	body := lines[4:]
	if int64(len(body)) != count {
		return nil, fmt.Errorf("parsing scenario: declared %d processes, found %d process lines", count, len(body))
	}

	s := &Scenario{
		Scheduler: SchedulerSpec{
			Level1Allotment: header[1],
			Level2Allotment: header[2],
			ContextSwitch:   header[3],
		},
		Processes: make([]sim.ProcessSpec, 0, count),
	}
	for _, l := range body {
		p, err := ParseProcessLine(l.text)
		if err != nil {
			return nil, fmt.Errorf("parsing scenario: line %d: %w", l.num, err)
		}
		s.Processes = append(s.Processes, p)
	}
	return s, nil
}

// ParseProcessLine parses one "name;arrival;cpu1;io1;cpu2;..." description.
// A trailing separator is tolerated.
func ParseProcessLine(line string) (sim.ProcessSpec, error) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	fields := strings.Split(line, ";")
	if len(fields) < 3 {
		return sim.ProcessSpec{}, fmt.Errorf("process line %q: expected name;arrival;cpu[;io;cpu...]", line)
	}
	spec := sim.ProcessSpec{
		Name:   strings.TrimSpace(fields[0]),
		Bursts: make([]int64, 0, len(fields)-2),
	}
	arrival, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return sim.ProcessSpec{}, fmt.Errorf("process %s: arrival time must be an integer, got %q", spec.Name, fields[1])
	}
	spec.ArrivalTime = arrival
	for i, f := range fields[2:] {
		b, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return sim.ProcessSpec{}, fmt.Errorf("process %s: burst %d must be an integer, got %q", spec.Name, i+1, f)
		}
		spec.Bursts = append(spec.Bursts, b)
	}
	return spec, nil
}

type textLine struct {
	num  int
	text string
}

func nonBlankLines(r io.Reader) ([]textLine, error) {
	var lines []textLine
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, textLine{num: num, text: text})
	}
	return lines, scanner.Err()
}
