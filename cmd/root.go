package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/report"
	"github.com/inference-sim/mlfq-sim/sim/trace"
	"github.com/inference-sim/mlfq-sim/sim/workload"
)

var (
	// CLI flags for scenario input
	scenarioPath   string // Scenario file path, "-" for stdin, empty for interactive prompts
	scenarioFormat string // Scenario encoding override (yaml, text)

	// CLI flags overriding scenario scheduler values
	quantum       int64  // Level-1 Round-Robin quantum
	contextSwitch int64  // Context-switch overhead in ticks
	maxTicks      int64  // Tick ceiling before the run is aborted
	readmit       string // Level a process re-enters at after I/O
	waitingTime   string // Burst time subtracted from turnaround for waiting time

	// CLI flags for output
	outputFormat string // Report format (text, table, json)
	traceOut     string // Optional path for the JSON timeline
	traceLevel   string // Timeline retention (none, ticks)
	logLevel     string // Log verbosity level
)

// Valid report formats for --format.
var validOutputFormats = map[string]bool{"text": true, "table": true, "json": true}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mlfq-sim",
	Short: "Tick-driven simulator for a three-level MLFQ CPU scheduler",
}

// runCmd executes the simulation using the scenario and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an MLFQ scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if !validOutputFormats[outputFormat] {
			logrus.Fatalf("Unknown output format %q; valid: text, table, json", outputFormat)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, ticks", traceLevel)
		}
		if trace.TraceLevel(traceLevel) == trace.TraceLevelNone && outputFormat == "text" {
			logrus.Fatalf("--trace-level none drops the timeline; use --format table or json")
		}

		s, err := loadScenario(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		applyOverrides(cmd, s)
		if err := s.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}

		runErr := runScenario(s, cmd.OutOrStdout())
		if runErr != nil {
			logrus.Fatalf("Simulation failed: %v", runErr)
		}
		logrus.Info("Simulation complete.")
	},
}

// validateCmd loads and validates a scenario without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a scenario file for errors",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if scenarioPath == "" {
			logrus.Fatalf("--scenario is required")
		}
		s, err := loadScenario(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		if err := s.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "scenario OK: %d processes\n", len(s.Processes))
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadScenario reads the scenario named by --scenario, or prompts for one on
// in/out when no path was given.
func loadScenario(in io.Reader, out io.Writer) (*workload.Scenario, error) {
	switch scenarioPath {
	case "":
		return workload.PromptScenario(in, out)
	case "-":
		format := workload.FormatYAML
		if scenarioFormat != "" {
			format = workload.Format(scenarioFormat)
		}
		return workload.ReadScenario(in, format)
	default:
		if scenarioFormat == "" {
			return workload.LoadScenario(scenarioPath)
		}
		f, err := os.Open(scenarioPath)
		if err != nil {
			return nil, fmt.Errorf("reading scenario: %w", err)
		}
		defer f.Close()
		return workload.ReadScenario(f, workload.Format(scenarioFormat))
	}
}

// applyOverrides copies explicitly set CLI flags over the scenario's values.
func applyOverrides(cmd *cobra.Command, s *workload.Scenario) {
	if cmd.Flags().Changed("quantum") {
		q := quantum
		s.Scheduler.Quantum = &q
	}
	if cmd.Flags().Changed("context-switch") {
		s.Scheduler.ContextSwitch = contextSwitch
	}
	if cmd.Flags().Changed("max-ticks") {
		s.Scheduler.MaxTicks = maxTicks
	}
	if cmd.Flags().Changed("readmit") {
		s.Scheduler.Readmit = readmit
	}
	if cmd.Flags().Changed("waiting-time") {
		s.Scheduler.WaitingTime = waitingTime
	}
}

// runScenario simulates a validated scenario and writes the report in the
// selected format. A run cut short by the tick ceiling is still reported
// before its error is returned.
func runScenario(s *workload.Scenario, out io.Writer) error {
	cfg := s.Config()
	runID := report.NewRunID()
	logrus.Infof("Run %s: %d processes", runID, len(s.Processes))

	c, err := sim.NewController(cfg, s.Processes, trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
	if err != nil {
		return err
	}
	res, runErr := c.Run(s.Scheduler.MaxTicks)
	if res == nil {
		return runErr
	}
	if runErr != nil && !errors.Is(runErr, sim.ErrTickLimitExceeded) {
		return runErr
	}

	switch outputFormat {
	case "json":
		err = report.WriteJSON(out, report.NewDocument(runID, cfg, res, runErr))
	case "table":
		report.WriteMetricsTable(out, res.Metrics, res.Summary)
	default:
		if err = report.WriteTimeline(out, res.Trace); err == nil {
			err = report.WriteMetrics(out, res.Metrics)
		}
	}
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if traceOut != "" {
		if err := report.SaveTimeline(traceOut, res.Trace); err != nil {
			return err
		}
		logrus.Infof("Timeline written to %s", traceOut)
	}
	return runErr
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario file (.yaml, .yml, .txt), or - for stdin")
		c.Flags().StringVar(&scenarioFormat, "scenario-format", "", "Scenario encoding (yaml, text); inferred from the extension by default")
		c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}

	// Scheduler overrides
	runCmd.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Level-1 Round-Robin quantum")
	runCmd.Flags().Int64Var(&contextSwitch, "context-switch", 0, "Context-switch overhead in ticks")
	runCmd.Flags().Int64Var(&maxTicks, "max-ticks", sim.DefaultMaxTicks, "Abort the run after this many ticks")
	runCmd.Flags().StringVar(&readmit, "readmit", string(sim.ReadmitSameLevel), "Level after I/O (same-level, top-level)")
	runCmd.Flags().StringVar(&waitingTime, "waiting-time", string(sim.WaitCPUOnly), "Waiting time definition (cpu-only, cpu-and-io)")

	// Output
	runCmd.Flags().StringVar(&outputFormat, "format", "text", "Report format (text, table, json)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the per-tick timeline as JSON to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelTicks), "Timeline retention (none, ticks); none keeps only the final record")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
