package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcess_SplitsAlternatingBursts(t *testing.T) {
	// GIVEN a burst sequence cpu 5, io 3, cpu 2, io 0, cpu 1
	p, err := NewProcess(proc("A", 2, 5, 3, 2, 0, 1))
	require.NoError(t, err)

	// THEN CPU and I/O bursts are split by position
	assert.Equal(t, []int64{5, 2, 1}, p.CPUBursts)
	assert.Equal(t, []int64{3, 0}, p.IOBursts)
	assert.Equal(t, StatePending, p.State)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(5), p.RemainingBurst)
	assert.Equal(t, int64(8), p.TotalCPU())
	assert.Equal(t, int64(3), p.TotalIO())
}

func TestProcessSpec_Validate_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		spec ProcessSpec
	}{
		{"empty name", proc("", 0, 1)},
		{"negative arrival", proc("A", -1, 1)},
		{"no bursts", proc("A", 0)},
		{"ends with I/O", proc("A", 0, 1, 2)},
		{"zero CPU burst", proc("A", 0, 0)},
		{"negative I/O burst", proc("A", 0, 1, -1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.spec.Validate())
			_, err := NewProcess(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestProcess_RecomputeRemaining(t *testing.T) {
	p, err := NewProcess(proc("A", 0, 6, 4, 2))
	require.NoError(t, err)

	p.PhaseTicks = 2
	p.RecomputeRemainingBurst()
	assert.Equal(t, int64(4), p.RemainingBurst)

	p.PhaseTicks = 1
	p.RecomputeRemainingIO()
	assert.Equal(t, int64(3), p.RemainingIO)
}

func TestProcess_RecomputeRemainingBurst_NegativePanics(t *testing.T) {
	p, err := NewProcess(proc("A", 0, 2))
	require.NoError(t, err)
	p.PhaseTicks = 3
	assert.Panics(t, p.RecomputeRemainingBurst)
}

func TestProcess_Complete_IsWriteOnce(t *testing.T) {
	p, err := NewProcess(proc("A", 1, 3))
	require.NoError(t, err)

	p.complete(10)
	assert.Equal(t, StateDone, p.State)
	assert.Equal(t, int64(10), p.CompletionTime)
	assert.Equal(t, int64(9), p.TurnaroundTime())

	assert.Panics(t, func() { p.complete(11) })
}

func TestProcess_WaitingTime_Policies(t *testing.T) {
	// GIVEN a process with 4 CPU ticks and 3 I/O ticks that turned around in 10
	p, err := NewProcess(proc("A", 0, 2, 3, 2))
	require.NoError(t, err)
	p.complete(10)

	assert.Equal(t, int64(6), p.WaitingTime(WaitCPUOnly))
	assert.Equal(t, int64(6), p.WaitingTime(""), "empty policy defaults to cpu-only")
	assert.Equal(t, int64(3), p.WaitingTime(WaitCPUAndIO))
}

func TestProcess_IsLastBurst(t *testing.T) {
	p, err := NewProcess(proc("A", 0, 1, 1, 1))
	require.NoError(t, err)
	assert.False(t, p.IsLastBurst())
	p.BurstIndex = 1
	assert.True(t, p.IsLastBurst())
}
