package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidv/pointsweep/internal/sim"
)

var testRoster = []sim.RosterEntry{
	{Name: "A", Skill: 30},
	{Name: "B", Skill: 20},
	{Name: "C", Skill: 10},
}

func TestAggregate_SingleRunIdentity(t *testing.T) {
	// With one run, every average must equal that run's metrics exactly.
	rec := runRecord{
		stabilityScore: 5.0 / 6.0,
		successes:      5,
		collision:      2,
		contenders:     10,
		scores:         map[string]float64{"A": 18, "B": 7, "C": 12},
	}

	res, err := aggregate(Params{X: 3, Y: 5, Z: 1, C: 1}, []runRecord{rec}, testRoster, 1)
	require.NoError(t, err)

	assert.Equal(t, 5.0/6.0, res.AvgStabilityScore)
	assert.Equal(t, 5.0, res.AvgStabilitySuccesses)
	assert.Equal(t, 2.0, res.AvgCollisionSize)
	assert.Equal(t, 10.0, res.AvgContenders)
	assert.Equal(t, 1, res.LastRunID)

	// (5-4) + (3-2) + (10-9) = 3
	assert.InDelta(t, 3.0, res.OptimizationScore, 1e-12)
}

func TestAggregate_MeansOverRuns(t *testing.T) {
	records := []runRecord{
		{successes: 4, collision: 0, contenders: 8, scores: map[string]float64{"A": 10, "B": 4, "C": 0}},
		{successes: 6, collision: 4, contenders: 12, scores: map[string]float64{"A": 14, "B": 2, "C": 6}},
	}

	res, err := aggregate(Params{X: 3, Y: 5, Z: 1, C: 1}, records, testRoster, 2)
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.AvgStabilitySuccesses)
	assert.Equal(t, 2.0, res.AvgCollisionSize)
	assert.Equal(t, 10.0, res.AvgContenders)
	assert.InDelta(t, 3.0, res.OptimizationScore, 1e-12)
}

func TestAverageLeaderboard_SortedDescending(t *testing.T) {
	records := []runRecord{
		{scores: map[string]float64{"A": 2, "B": 10, "C": 6}},
		{scores: map[string]float64{"A": 4, "B": 12, "C": 6}},
	}

	board, err := averageLeaderboard(records, testRoster)
	require.NoError(t, err)
	require.Len(t, board, 3)

	assert.Equal(t, LeaderboardEntry{Name: "B", AvgScore: 11, InitialSkill: 20}, board[0])
	assert.Equal(t, LeaderboardEntry{Name: "C", AvgScore: 6, InitialSkill: 10}, board[1])
	assert.Equal(t, LeaderboardEntry{Name: "A", AvgScore: 3, InitialSkill: 30}, board[2])
}

func TestAverageLeaderboard_TiesKeepRosterOrder(t *testing.T) {
	records := []runRecord{
		{scores: map[string]float64{"A": 5, "B": 5, "C": 5}},
	}

	board, err := averageLeaderboard(records, testRoster)
	require.NoError(t, err)

	assert.Equal(t, "A", board[0].Name)
	assert.Equal(t, "B", board[1].Name)
	assert.Equal(t, "C", board[2].Name)
}

func TestParamsDir(t *testing.T) {
	p := Params{X: 3, Y: 5, Z: 2, C: 1}
	assert.Equal(t, "C1_Z2_X3_Y5", p.Dir())
}

func TestRank_Descending(t *testing.T) {
	results := []TupleResult{
		{Params: Params{X: 2, Y: 3, Z: 1, C: 1}, OptimizationScore: 1.5},
		{Params: Params{X: 3, Y: 4, Z: 1, C: 1}, OptimizationScore: 4.0},
		{Params: Params{X: 2, Y: 4, Z: 1, C: 1}, OptimizationScore: 2.5},
	}

	Rank(results)
	assert.Equal(t, 4.0, results[0].OptimizationScore)
	assert.Equal(t, 2.5, results[1].OptimizationScore)
	assert.Equal(t, 1.5, results[2].OptimizationScore)
}
