package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/rach-sim/rach-sim/sim"
	"github.com/rach-sim/rach-sim/sim/report"
	"github.com/rach-sim/rach-sim/sim/trace"
)

var (
	// CLI flags for the contention channel
	numDevices   int   // Fixed device population
	numSlots     int64 // Contention slots to simulate
	minCW        int   // Lower contention window bound
	maxCW        int   // Upper contention window bound
	numPreambles int   // Orthogonal preambles per slot

	// CLI flags for run control
	algorithms   []string // Backoff policies to compare
	seed         int64    // Master seed for the whole comparison
	logLevel     string   // Log verbosity level
	scenarioPath string   // YAML scenario file, overrides the channel flags
	parallel     bool     // Run the algorithms in concurrent goroutines
	traceLevel   string   // Slot trace level (none, slots)
	outputPath   string   // JSON results file
	charts       bool     // Render ASCII bar charts
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "rach-sim",
	Short: "Slotted random-access contention simulator",
}

// runCmd executes the backoff comparison using parameters from CLI flags
// or a scenario file.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the backoff policy comparison",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.NewConfig(numDevices, numSlots, minCW, maxCW, numPreambles)
		runAlgorithms := algorithms
		runSeed := seed
		runTrace := traceLevel

		// A scenario file is a complete run description; it replaces the
		// channel flags rather than merging with them.
		if scenarioPath != "" {
			sc, err := sim.LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("Could not load scenario: %v", err)
			}
			if err := sc.Validate(); err != nil {
				logrus.Fatalf("Invalid scenario: %v", err)
			}
			cfg = sc.Config()
			runAlgorithms = sc.Algorithms
			runSeed = sc.Seed
			if sc.Trace != "" {
				runTrace = sc.Trace
			}
		}

		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(runTrace) {
			logrus.Fatalf("Invalid trace level %q (valid: none, slots)", runTrace)
		}

		logrus.Infof("Starting comparison: %d devices, %d slots, cw [%d, %d], %d preambles, algorithms %v, seed %d",
			cfg.NumDevices, cfg.NumSlots, cfg.MinCW, cfg.MaxCW, cfg.NumPreambles, runAlgorithms, runSeed)

		opts := sim.CompareOptions{
			Parallel:   parallel,
			TraceLevel: trace.TraceLevel(runTrace),
		}
		results, err := sim.RunComparison(cfg, runAlgorithms, runSeed, opts)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}

		report.Render(os.Stdout, cfg, runSeed, results, charts)

		metrics := make([]sim.RunMetrics, 0, len(results))
		for _, r := range results {
			metrics = append(metrics, r.Metrics)
		}
		if err := sim.SaveResults(cfg, runSeed, metrics, outputPath); err != nil {
			logrus.Fatalf("Could not save results: %v", err)
		}

		logrus.Info("Comparison complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&numDevices, "devices", 100, "Number of contending devices")
	runCmd.Flags().Int64Var(&numSlots, "slots", 10000, "Number of contention slots to simulate")
	runCmd.Flags().IntVar(&minCW, "min-cw", 8, "Minimum contention window")
	runCmd.Flags().IntVar(&maxCW, "max-cw", 256, "Maximum contention window")
	runCmd.Flags().IntVar(&numPreambles, "preambles", 54, "Orthogonal preambles available per slot")
	runCmd.Flags().StringSliceVar(&algorithms, "algorithms", sim.DefaultAlgorithms(), "Comma-separated backoff policies to compare (beb, lild, adaptive)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed; each algorithm run derives its own stream")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (replaces the channel flags)")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "Run the algorithms concurrently")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Slot trace level (none, slots)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write JSON results to this path")
	runCmd.Flags().BoolVar(&charts, "charts", false, "Render ASCII bar charts")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
