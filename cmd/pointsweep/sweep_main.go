package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/raidv/pointsweep/internal/config"
	"github.com/raidv/pointsweep/internal/report"
	"github.com/raidv/pointsweep/internal/sweep"
)

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadSweepConfig(cmd.Flags())
	if err != nil {
		return err
	}

	coord, err := sweep.NewCoordinator(&sweep.Config{
		X:                sweep.Bounds{Min: cfg.X.Min, Max: cfg.X.Max},
		Y:                sweep.Bounds{Min: cfg.Y.Min, Max: cfg.Y.Max},
		Z:                sweep.Bounds{Min: cfg.Z.Min, Max: cfg.Z.Max},
		C:                sweep.Bounds{Min: cfg.C.Min, Max: cfg.C.Max},
		ChallengeRand:    cfg.ChallengeRand,
		RepRand:          cfg.RepRand,
		NumRuns:          cfg.NumRuns,
		Workers:          cfg.Workers,
		Seed:             cfg.Seed,
		StabilityTopN:    cfg.StabilityTopN,
		StabilityTargetM: cfg.StabilityTargetM,
		Roster:           cfg.Roster,
	})
	if err != nil {
		return fmt.Errorf("configure sweep: %w", err)
	}

	writer := report.NewWriter(cfg.OutputDir, report.Meta{
		SessionID:     coord.SessionID(),
		ChallengeRand: cfg.ChallengeRand,
		RepRand:       cfg.RepRand,
		NumRuns:       cfg.NumRuns,
		StabilityTopN: cfg.StabilityTopN,
	})
	if cfg.WriteRunLogs {
		coord.SetRunLogProvider(writer)
	}
	coord.SetTupleCallback(writer.WriteTupleSummary)

	results, err := coord.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run sweep: %w", err)
	}

	if err := writer.WriteLeaderboard(results); err != nil {
		return fmt.Errorf("write sweep leaderboard: %w", err)
	}

	logTopResults(results)
	log.Info().
		Str("output", cfg.OutputDir).
		Int("tuples", len(results)).
		Msg("sweep artifacts written")
	return nil
}

// loadSweepConfig reads the config file (or defaults) and applies any flag
// overrides
func loadSweepConfig(flags *pflag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("runs") {
		cfg.NumRuns, _ = flags.GetInt("runs")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("run-logs") {
		cfg.WriteRunLogs, _ = flags.GetBool("run-logs")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep configuration: %w", err)
	}
	return cfg, nil
}

// logTopResults summarizes the best tuples on the console
func logTopResults(results []sweep.TupleResult) {
	top := len(results)
	if top > 10 {
		top = 10
	}
	for i := 0; i < top; i++ {
		res := results[i]
		log.Info().
			Int("rank", i+1).
			Str("tuple", res.Params.Dir()).
			Float64("score", res.OptimizationScore).
			Float64("stability", res.AvgStabilitySuccesses).
			Float64("collision", res.AvgCollisionSize).
			Float64("contenders", res.AvgContenders).
			Msg("sweep result")
	}
}
