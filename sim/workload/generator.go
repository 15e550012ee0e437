package workload

import (
	"fmt"
	"strconv"

	"github.com/inference-sim/mlfq-sim/sim"
)

// GeneratorSpec describes a randomly generated workload. Deterministic given
// the same spec and seed.
type GeneratorSpec struct {
	Seed      int64       `yaml:"seed"`
	Processes int         `yaml:"processes"`
	Arrival   ArrivalSpec `yaml:"arrival"`
	CPUBursts int         `yaml:"cpu_bursts"` // maximum CPU bursts per process; each process draws 1..CPUBursts
	CPUBurst  DistSpec    `yaml:"cpu_burst"`
	IOBurst   DistSpec    `yaml:"io_burst"`
}

// Validate checks counts and builds every sampler once to surface parameter errors.
func (g *GeneratorSpec) Validate() error {
	if g.Processes <= 0 {
		return fmt.Errorf("generate.processes must be positive, got %d", g.Processes)
	}
	if g.CPUBursts <= 0 {
		return fmt.Errorf("generate.cpu_bursts must be positive, got %d", g.CPUBursts)
	}
	if err := g.Arrival.Validate(); err != nil {
		return fmt.Errorf("generate.arrival: %w", err)
	}
	if _, err := NewDurationSampler(g.CPUBurst, 1); err != nil {
		return fmt.Errorf("generate.cpu_burst: %w", err)
	}
	if g.CPUBursts > 1 {
		if _, err := NewDurationSampler(g.IOBurst, 0); err != nil {
			return fmt.Errorf("generate.io_burst: %w", err)
		}
	}
	return nil
}

// GenerateProcesses draws process descriptions from a GeneratorSpec.
// Processes are named P1..Pn, zero-padded so that name order matches
// arrival order for processes generated at the same tick.
func GenerateProcesses(g *GeneratorSpec) ([]sim.ProcessSpec, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(g.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	burstRNG := rng.ForSubsystem(sim.SubsystemBursts)
	shapeRNG := rng.ForSubsystem(sim.SubsystemShape)

	arrivals := NewArrivalSampler(g.Arrival)
	cpuSampler, _ := NewDurationSampler(g.CPUBurst, 1)
	var ioSampler DurationSampler = &ConstantSampler{}
	if g.CPUBursts > 1 {
		ioSampler, _ = NewDurationSampler(g.IOBurst, 0)
	}

	width := len(strconv.Itoa(g.Processes))
	specs := make([]sim.ProcessSpec, 0, g.Processes)
	now := int64(0)
	for i := 0; i < g.Processes; i++ {
		if i > 0 {
			now += arrivals.SampleGap(arrivalRNG)
		}
		n := 1 + shapeRNG.Intn(g.CPUBursts)
		bursts := make([]int64, 0, 2*n-1)
		for b := 0; b < n; b++ {
			if b > 0 {
				bursts = append(bursts, ioSampler.Sample(burstRNG))
			}
			bursts = append(bursts, cpuSampler.Sample(burstRNG))
		}
		specs = append(specs, sim.ProcessSpec{
			Name:        fmt.Sprintf("P%0*d", width, i+1),
			ArrivalTime: now,
			Bursts:      bursts,
		})
	}
	return specs, nil
}
