// Package sim provides the slotted random-access contention simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - device.go: Device lifecycle (waiting → ready → done) and the Fleet population
//   - resolver.go: Per-slot preamble contention and collision resolution
//   - simulator.go: The slot loop that drives one algorithm run end to end
//
// # Architecture
//
// The sim package holds the kernel; supporting concerns live in sub-packages:
//   - sim/trace/: Per-slot trace recording and summarization
//   - sim/report/: Comparison rendering (labeled text and ASCII bar charts)
//
// A comparison (compare.go) runs one Simulator per backoff algorithm against
// the same Config. Every run draws from its own RNG stream, derived in rng.go
// from the master seed and the algorithm's name, so runs are reproducible and
// independent of execution order.
//
// # Key Interfaces
//
// The extension point is a single small interface:
//   - BackoffPolicy: reacts to one device's success or collision by moving
//     its contention window and redrawing its backoff timer
//
// Policies register in ValidBackoffPolicies and are built by NewBackoffPolicy;
// beb, lild, and adaptive ship in backoff.go.
package sim
