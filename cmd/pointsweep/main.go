package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "pointsweep"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Competition scoring-rule sweep simulator",
		Version: version,
		Long: `pointsweep simulates a 6-stage, 3-team competition under randomized
challenge outcomes and sweeps the (X, Y, Z, C) scoring rules for the
configuration with the best competitive dynamics: close races, live
late-stage contention, and few unresolved ties at the top-6 cutoff.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the full optimization sweep",
		Long:  "Enumerates all valid (X, Y, Z, C) tuples, runs the configured number of competitions per tuple, and writes ranked reports",
		RunE:  runSweep,
	}
	sweepCmd.Flags().String("config", "", "Path to sweep YAML config (defaults apply if omitted)")
	sweepCmd.Flags().String("output", "", "Artifact output directory (overrides config)")
	sweepCmd.Flags().Int("runs", 0, "Competitions per parameter tuple (overrides config)")
	sweepCmd.Flags().Int("workers", 0, "Parallel competition runs (overrides config)")
	sweepCmd.Flags().Int64("seed", 0, "Root seed for reproducible sweeps (overrides config)")
	sweepCmd.Flags().Bool("run-logs", true, "Write per-competition detailed log files")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single competition",
		Long:  "Runs one 6-stage competition for a fixed (X, Y, Z, C) tuple and writes its detailed narrative log",
		RunE:  runSingle,
	}
	runCmd.Flags().Int("x", 3, "Team challenge 1 reward")
	runCmd.Flags().Int("y", 5, "Team challenge 2 reward")
	runCmd.Flags().Int("z", 1, "Team challenge 3 team reward")
	runCmd.Flags().Int("c", 1, "Individual bonus/penalty for challenge 3")
	runCmd.Flags().Float64("challenge-rand", 0.4, "Challenge randomness weight [0,1]")
	runCmd.Flags().Float64("rep-rand", 0.3, "Representative selection randomness weight [0,1]")
	runCmd.Flags().Int64("seed", 0, "Seed for the run (0 draws a random seed)")
	runCmd.Flags().String("output", "./artifacts", "Artifact output directory")

	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
