package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/mlfq-sim/sim/workload"
)

var (
	// CLI flags for workload generation
	genSeed          int64   // Seed for the generator RNG
	genProcesses     int     // Number of processes to generate
	genArrival       string  // Arrival process (poisson, gamma, constant)
	genMeanGap       float64 // Mean ticks between arrivals
	genCPUBursts     int     // Maximum CPU bursts per process
	genCPUMin        int64   // Minimum CPU burst
	genCPUMax        int64   // Maximum CPU burst
	genIOMin         int64   // Minimum I/O burst
	genIOMax         int64   // Maximum I/O burst
	genLevel1        int64   // Level-1 allotment written to the scenario
	genLevel2        int64   // Level-2 allotment written to the scenario
	genContextSwitch int64   // Context switch written to the scenario
)

// generateCmd writes a randomly generated scenario as YAML to stdout
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if err := writeGeneratedScenario(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// generatorSpecFromFlags maps the generate flags onto a GeneratorSpec with
// uniform CPU and I/O burst distributions.
func generatorSpecFromFlags() *workload.GeneratorSpec {
	return &workload.GeneratorSpec{
		Seed:      genSeed,
		Processes: genProcesses,
		Arrival:   workload.ArrivalSpec{Process: genArrival, MeanGap: genMeanGap},
		CPUBursts: genCPUBursts,
		CPUBurst: workload.DistSpec{Type: "uniform", Params: map[string]float64{
			"min": float64(genCPUMin), "max": float64(genCPUMax),
		}},
		IOBurst: workload.DistSpec{Type: "uniform", Params: map[string]float64{
			"min": float64(genIOMin), "max": float64(genIOMax),
		}},
	}
}

func writeGeneratedScenario(out io.Writer) error {
	procs, err := workload.GenerateProcesses(generatorSpecFromFlags())
	if err != nil {
		return fmt.Errorf("invalid generator settings: %w", err)
	}
	s := &workload.Scenario{
		Scheduler: workload.SchedulerSpec{
			Level1Allotment: genLevel1,
			Level2Allotment: genLevel2,
			ContextSwitch:   genContextSwitch,
		},
		Processes: procs,
	}
	if err := s.Validate(); err != nil {
		return err
	}
	logrus.Infof("Generated %d processes (seed %d)", len(procs), genSeed)
	return workload.EncodeYAML(out, s)
}

func init() {
	generateCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for workload generation")
	generateCmd.Flags().IntVar(&genProcesses, "processes", 5, "Number of processes")
	generateCmd.Flags().StringVar(&genArrival, "arrival", "poisson", "Arrival process (poisson, gamma, constant)")
	generateCmd.Flags().Float64Var(&genMeanGap, "mean-gap", 2, "Mean ticks between arrivals")
	generateCmd.Flags().IntVar(&genCPUBursts, "cpu-bursts", 3, "Maximum CPU bursts per process")
	generateCmd.Flags().Int64Var(&genCPUMin, "cpu-min", 1, "Minimum CPU burst")
	generateCmd.Flags().Int64Var(&genCPUMax, "cpu-max", 10, "Maximum CPU burst")
	generateCmd.Flags().Int64Var(&genIOMin, "io-min", 0, "Minimum I/O burst")
	generateCmd.Flags().Int64Var(&genIOMax, "io-max", 5, "Maximum I/O burst")
	generateCmd.Flags().Int64Var(&genLevel1, "level1-allotment", 8, "Level-1 allotment")
	generateCmd.Flags().Int64Var(&genLevel2, "level2-allotment", 8, "Level-2 allotment")
	generateCmd.Flags().Int64Var(&genContextSwitch, "context-switch", 0, "Context-switch overhead")

	rootCmd.AddCommand(generateCmd)
}
