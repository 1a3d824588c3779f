package sweep

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/raidv/pointsweep/internal/sim"
)

// Optimization score target constants. Each metric average is centered on a
// hand-chosen target: at least 4 of 6 extreme players retained, at most 3
// competitors colliding at the cutoff, at least 9 live contenders.
const (
	targetStabilitySuccesses = 4.0
	targetMaxCollision       = 3.0
	targetMinContenders      = 9.0
)

// aggregate reduces one tuple's run records to arithmetic means and the
// scalar optimization score
func aggregate(p Params, records []runRecord, roster []sim.RosterEntry, lastRunID int) (TupleResult, error) {
	stability := make([]float64, len(records))
	successes := make([]float64, len(records))
	collisions := make([]float64, len(records))
	contenders := make([]float64, len(records))
	for i, rec := range records {
		stability[i] = rec.stabilityScore
		successes[i] = float64(rec.successes)
		collisions[i] = float64(rec.collision)
		contenders[i] = float64(rec.contenders)
	}

	res := TupleResult{Params: p, LastRunID: lastRunID}
	var err error
	if res.AvgStabilityScore, err = stats.Mean(stability); err != nil {
		return res, fmt.Errorf("aggregate stability: %w", err)
	}
	if res.AvgStabilitySuccesses, err = stats.Mean(successes); err != nil {
		return res, fmt.Errorf("aggregate successes: %w", err)
	}
	if res.AvgCollisionSize, err = stats.Mean(collisions); err != nil {
		return res, fmt.Errorf("aggregate collisions: %w", err)
	}
	if res.AvgContenders, err = stats.Mean(contenders); err != nil {
		return res, fmt.Errorf("aggregate contenders: %w", err)
	}

	res.OptimizationScore = (res.AvgStabilitySuccesses - targetStabilitySuccesses) +
		(targetMaxCollision - res.AvgCollisionSize) +
		(res.AvgContenders - targetMinContenders)

	res.AverageLeaderboard, err = averageLeaderboard(records, roster)
	if err != nil {
		return res, err
	}
	return res, nil
}

// averageLeaderboard computes each competitor's mean final score across the
// tuple's runs, sorted descending (ties keep roster order)
func averageLeaderboard(records []runRecord, roster []sim.RosterEntry) ([]LeaderboardEntry, error) {
	board := make([]LeaderboardEntry, len(roster))
	scores := make([]float64, len(records))
	for i, entry := range roster {
		for j, rec := range records {
			scores[j] = rec.scores[entry.Name]
		}
		avg, err := stats.Mean(scores)
		if err != nil {
			return nil, fmt.Errorf("aggregate leaderboard for %s: %w", entry.Name, err)
		}
		board[i] = LeaderboardEntry{Name: entry.Name, AvgScore: avg, InitialSkill: entry.Skill}
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].AvgScore > board[j].AvgScore
	})
	return board, nil
}
