package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompetition(points PointConfig) *Competition {
	return NewCompetition(Config{ID: 1, Points: points}, rand.New(rand.NewSource(1)), nil)
}

func setScores(c *Competition, scores ...float64) {
	for i, s := range scores {
		c.roster[i].TotalPoints = s
	}
}

func TestEvaluateCutoffCollision_StrictDropIsZero(t *testing.T) {
	c := testCompetition(PointConfig{})
	setScores(c, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1)

	assert.Equal(t, 0, c.EvaluateCutoffCollision())
}

func TestEvaluateCutoffCollision_CountsWholeTieGroup(t *testing.T) {
	c := testCompetition(PointConfig{})
	// Ranks 6 and 7 share score 7; four competitors hold it in total.
	setScores(c, 12, 11, 10, 9, 7, 7, 7, 7, 4, 3, 2, 1)

	assert.Equal(t, 4, c.EvaluateCutoffCollision())
}

func TestEvaluateCutoffCollision_SmallRoster(t *testing.T) {
	roster := make([]RosterEntry, 6)
	for i := range roster {
		roster[i] = RosterEntry{Name: "P", Skill: float64(10 - i)}
	}
	c := NewCompetition(Config{ID: 1, Roster: roster}, rand.New(rand.NewSource(1)), nil)

	assert.Equal(t, 0, c.EvaluateCutoffCollision(), "fewer than 7 competitors never collide")
}

func TestEvaluateFinalContenders_NoSnapshot(t *testing.T) {
	c := testCompetition(PointConfig{Y: 5, Z: 2, C: 1})
	assert.Equal(t, 0, c.EvaluateFinalContenders(), "missing snapshot reports zero")
}

func TestEvaluateFinalContenders_InclusiveBoundary(t *testing.T) {
	c := testCompetition(PointConfig{Y: 5, Z: 2, C: 1}) // ceiling 8
	// Rank-6 snapshot score is 20. A competitor at 12 reaches exactly 20
	// with the ceiling and must count; one at 11.5 must not.
	setScores(c, 40, 35, 30, 25, 22, 20, 12, 11.5, 5, 4, 3, 2)
	c.takeSnapshot()

	// Contenders: the top six plus the competitor at 12.
	assert.Equal(t, 7, c.EvaluateFinalContenders())
}

func TestEvaluateFinalContenders_IgnoresStageSixMutation(t *testing.T) {
	c := testCompetition(PointConfig{Y: 5, Z: 2, C: 1})
	setScores(c, 40, 35, 30, 25, 22, 20, 12, 11, 5, 4, 3, 2)
	c.takeSnapshot()

	before := c.EvaluateFinalContenders()
	// Stage-6 style mutation of the live roster must not move the metric:
	// both the target and the per-competitor lookup read the frozen snapshot.
	c.roster[11].AddPoints(100)
	assert.Equal(t, before, c.EvaluateFinalContenders())
}

func TestEvaluateStability_PerfectRetention(t *testing.T) {
	c := testCompetition(PointConfig{})
	// Final order matches initial skill order exactly.
	setScores(c, 120, 110, 100, 90, 80, 70, 60, 50, 40, 30, 20, 10)

	score, successes, err := c.EvaluateStability(3, 6)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, 6, successes)
}

func TestEvaluateStability_FullInversion(t *testing.T) {
	c := testCompetition(PointConfig{})
	// Final order is the exact reverse of the initial skill order.
	setScores(c, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120)

	score, successes, err := c.EvaluateStability(3, 6)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0, successes)
}

func TestEvaluateStability_PartialRetention(t *testing.T) {
	c := testCompetition(PointConfig{})
	// Initial top 3: ids 1,2,3. Put id 3 below the final top 6.
	setScores(c, 120, 110, 1, 100, 90, 80, 70, 0, 0, 0, 0, 0)

	// Bottom band: initial bottom 3 (ids 10,11,12, scores 0) are inside the
	// final bottom 6 (scores 1 and below plus ties), top band keeps 2 of 3.
	score, successes, err := c.EvaluateStability(3, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, successes)
	assert.InDelta(t, 5.0/6.0, score, 1e-12)
}

func TestEvaluateStability_Preconditions(t *testing.T) {
	c := testCompetition(PointConfig{})

	_, _, err := c.EvaluateStability(0, 6)
	assert.Error(t, err, "topN below 1 is a precondition failure")

	_, _, err = c.EvaluateStability(7, 6)
	assert.Error(t, err, "overlapping top/bottom bands are rejected")

	// targetM beyond the roster size is clamped, not an error.
	score, successes, err := c.EvaluateStability(3, 50)
	require.NoError(t, err)
	assert.Equal(t, 6, successes)
	assert.Equal(t, 1.0, score)
}
