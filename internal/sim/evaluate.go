package sim

import "fmt"

// cutoffRank is the qualification boundary: the top 6 advance
const cutoffRank = 6

// EvaluateStability measures how many of the initially extreme-ranked
// competitors stay extreme-ranked: the count of the initial top-topN found in
// the final top-targetM plus the initial bottom-topN found in the final
// bottom-targetM, divided by 2*topN. targetM is clamped to the roster size.
// Returns an error when topN < 1 or the top and bottom bands would overlap.
func (c *Competition) EvaluateStability(topN, targetM int) (float64, int, error) {
	n := len(c.roster)
	if topN < 1 {
		return 0, 0, fmt.Errorf("stability topN must be >= 1, got %d", topN)
	}
	if 2*topN > n {
		return 0, 0, fmt.Errorf("stability topN %d exceeds half the roster size %d", topN, n)
	}
	if targetM > n {
		targetM = n
	}
	if targetM < 0 {
		targetM = 0
	}

	initial := c.InitialLeaderboard()
	final := c.FinalLeaderboard()

	finalTop := idSet(final[:targetM])
	finalBottom := idSet(final[n-targetM:])

	successes := 0
	for _, comp := range initial[:topN] {
		if finalTop[comp.ID] {
			successes++
		}
	}
	for _, comp := range initial[n-topN:] {
		if finalBottom[comp.ID] {
			successes++
		}
	}

	return float64(successes) / float64(2*topN), successes, nil
}

// EvaluateCutoffCollision measures ambiguity at the qualification boundary.
// With the final leaderboard sorted descending, a strict score drop between
// rank 6 and rank 7 means no collision (0). If the two ranks share a score,
// the result is the count of all competitors in the roster holding that
// score. Rosters smaller than 7 report 0.
func (c *Competition) EvaluateCutoffCollision() int {
	final := c.FinalLeaderboard()
	if len(final) < cutoffRank+1 {
		return 0
	}

	boundary := final[cutoffRank-1].TotalPoints
	if boundary > final[cutoffRank].TotalPoints {
		return 0
	}

	size := 0
	for _, comp := range final {
		if comp.TotalPoints == boundary {
			size++
		}
	}
	return size
}

// EvaluateFinalContenders counts competitors who could still mathematically
// reach the top-6 cutoff after stage 5: those whose snapshot score plus the
// per-stage ceiling (Y+Z+C) meets or beats the snapshot's rank-6 score.
// Missing snapshot ids count as 0. Returns 0 without a snapshot of >= 6
// entries.
func (c *Competition) EvaluateFinalContenders() int {
	if len(c.snapshot) < cutoffRank {
		return 0
	}

	target := c.snapshot[cutoffRank-1].TotalPoints
	ceiling := c.cfg.Points.MaxStagePoints()

	scores := make(map[int]float64, len(c.snapshot))
	for _, comp := range c.snapshot {
		scores[comp.ID] = comp.TotalPoints
	}

	contenders := 0
	for _, comp := range c.roster {
		if scores[comp.ID]+ceiling >= target {
			contenders++
		}
	}
	return contenders
}

func idSet(comps []*Competitor) map[int]bool {
	set := make(map[int]bool, len(comps))
	for _, c := range comps {
		set[c.ID] = true
	}
	return set
}
