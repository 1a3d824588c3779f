package sim

// PointConfig holds the four scoring-rule values fixed for one competition
type PointConfig struct {
	X float64 // team challenge 1 reward
	Y float64 // team challenge 2 reward
	Z float64 // team challenge 3 team reward
	C float64 // individual bonus/penalty for challenge 3
}

// MaxStagePoints returns the per-stage gain ceiling Y+Z+C used by the
// final-contenders metric.
func (p PointConfig) MaxStagePoints() float64 {
	return p.Y + p.Z + p.C
}

// Stage executes the fixed three-challenge sequence of one round, applying
// point deltas directly to the shared competitors
type Stage struct {
	points PointConfig
}

// NewStage creates a stage executor for the given point configuration
func NewStage(points PointConfig) *Stage {
	return &Stage{points: points}
}

// Challenge3Result reports the individual challenge outcome
type Challenge3Result struct {
	Winner          *Competitor
	WinnerTeam      Team
	Representatives []*Competitor // one per team, in team order
}

// RunChallenge1 resolves the first team challenge and awards X points to
// every member of the winning team
func (s *Stage) RunChallenge1(teams []Team, res *Resolver) Team {
	winner := teams[res.TeamWinner(teams)]
	for _, c := range winner {
		c.AddPoints(s.points.X)
	}
	return winner
}

// RunChallenge2 resolves the second team challenge with independent draws and
// awards Y points to every member of the winning team
func (s *Stage) RunChallenge2(teams []Team, res *Resolver) Team {
	winner := teams[res.TeamWinner(teams)]
	for _, c := range winner {
		c.AddPoints(s.points.Y)
	}
	return winner
}

// RunChallenge3 runs the two-part individual challenge: each team selects a
// representative, one representative wins overall. The winner's whole team
// gains Z, the winner additionally gains C, and every losing representative
// loses C (zero floor applies). Nobody else is touched.
func (s *Stage) RunChallenge3(teams []Team, res *Resolver) Challenge3Result {
	reps := make([]*Competitor, len(teams))
	for i, t := range teams {
		reps[i] = res.TeamRepresentative(t)
	}

	winnerIdx := res.RepresentativeWinner(reps)
	winner := reps[winnerIdx]
	winnerTeam := teams[winnerIdx]

	for _, c := range winnerTeam {
		c.AddPoints(s.points.Z)
	}
	winner.AddPoints(s.points.C)

	for i, rep := range reps {
		if i != winnerIdx {
			rep.AddPoints(-s.points.C)
		}
	}

	return Challenge3Result{Winner: winner, WinnerTeam: winnerTeam, Representatives: reps}
}
