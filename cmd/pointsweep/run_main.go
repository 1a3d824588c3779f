package main

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/raidv/pointsweep/internal/random"
	"github.com/raidv/pointsweep/internal/report"
	"github.com/raidv/pointsweep/internal/sim"
	"github.com/raidv/pointsweep/internal/sweep"
)

func runSingle(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	x, _ := flags.GetInt("x")
	y, _ := flags.GetInt("y")
	z, _ := flags.GetInt("z")
	c, _ := flags.GetInt("c")
	challengeRand, _ := flags.GetFloat64("challenge-rand")
	repRand, _ := flags.GetFloat64("rep-rand")
	seed, _ := flags.GetInt64("seed")
	output, _ := flags.GetString("output")

	if challengeRand < 0 || challengeRand > 1 {
		return fmt.Errorf("challenge-rand must be in [0,1], got %g", challengeRand)
	}
	if repRand < 0 || repRand > 1 {
		return fmt.Errorf("rep-rand must be in [0,1], got %g", repRand)
	}

	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return fmt.Errorf("seed run: %w", err)
		}
		seed = s
	}

	params := sweep.Params{X: x, Y: y, Z: z, C: c}
	writer := report.NewWriter(output, report.Meta{
		ChallengeRand: challengeRand,
		RepRand:       repRand,
		NumRuns:       1,
		StabilityTopN: sim.DefaultStabilityTopN,
	})

	runLog, closeLog, err := writer.OpenRunLog(params.Dir(), 1)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}

	comp := sim.NewCompetition(sim.Config{
		ID:            1,
		Points:        params.PointConfig(),
		ChallengeRand: challengeRand,
		RepRand:       repRand,
	}, rand.New(rand.NewSource(seed)), runLog)
	comp.Run()

	if err := closeLog(); err != nil {
		return err
	}

	stability, successes, err := comp.EvaluateStability(sim.DefaultStabilityTopN, sim.DefaultStabilityTargetM)
	if err != nil {
		return fmt.Errorf("evaluate stability: %w", err)
	}

	log.Info().
		Str("tuple", params.Dir()).
		Int64("seed", seed).
		Float64("stability", stability).
		Int("successes", successes).
		Int("collision", comp.EvaluateCutoffCollision()).
		Int("contenders", comp.EvaluateFinalContenders()).
		Msg("competition complete")

	for i, entry := range comp.FinalLeaderboard() {
		log.Info().
			Int("rank", i+1).
			Str("name", entry.Name).
			Float64("points", entry.TotalPoints).
			Float64("skill", entry.InitialSkill).
			Msg("final standing")
	}

	log.Info().
		Str("log", report.LogFileName(1)).
		Str("output", output).
		Msg("detailed log written")
	return nil
}
