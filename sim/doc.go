// Package sim provides the core tick-driven simulation engine for a three-level
// Multi-Level Feedback Queue (MLFQ) CPU scheduler.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (pending → ready ⇄ running ⇄ blocked → done)
//   - engine.go: level queues, CPU slot, I/O set, and the operations that move processes between them
//   - controller.go: the fixed per-tick order in which engine operations are applied
//
// # Levels
//
//   - Q1: Round-Robin with Config.Quantum, bounded by Config.Level1Allotment
//   - Q2: FCFS, bounded by Config.Level2Allotment
//   - Q3: SJF by remaining burst then name, no allotment
//
// A process demoted by allotment exhaustion never climbs back up, except through
// the ReadmitTopLevel policy after I/O. There is no priority boosting.
//
// # Sub-packages
//   - sim/trace/: per-tick timeline records and their summary
//   - sim/workload/: scenario loading (YAML, the legacy text format, interactive prompts)
//   - sim/report/: text timeline, metrics table and JSON result rendering
package sim
