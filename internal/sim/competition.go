package sim

import (
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"
)

// NumStages is the fixed number of rounds in one competition
const NumStages = 6

// snapshotStage is the stage after which the contender snapshot is taken
const snapshotStage = 5

// Default stability criteria used by the final report
const (
	DefaultStabilityTopN    = 3
	DefaultStabilityTargetM = 6
)

// RunLog receives the line-oriented narrative of one competition run.
// Implementations must tolerate being called from a single goroutine only.
type RunLog interface {
	Printf(format string, args ...interface{})
}

// NopRunLog discards the narrative
type NopRunLog struct{}

// Printf implements RunLog
func (NopRunLog) Printf(string, ...interface{}) {}

// Config controls a single competition run
type Config struct {
	ID            int     // run identifier, unique within the process
	Points        PointConfig
	ChallengeRand float64 // randomness weight for challenge outcomes
	RepRand       float64 // randomness weight for representative selection

	// Stability criteria reported at the end of the run. Zero values fall
	// back to the defaults (top/bottom 3 retained in top/bottom 6).
	StabilityTopN    int
	StabilityTargetM int

	// Roster template; nil means DefaultRoster
	Roster []RosterEntry
}

// Competition orchestrates six sequential stages over one fresh roster and
// exposes the post-game evaluation metrics
type Competition struct {
	cfg      Config
	roster   []*Competitor
	stage    *Stage
	resolver *Resolver
	runLog   RunLog

	// frozen deep copies taken after stage 5, sorted by points descending
	snapshot []*Competitor
}

// NewCompetition allocates a fresh zero-scored roster and wires the stage
// executor and resolver. The rng must be private to this competition. A nil
// runLog discards the narrative.
func NewCompetition(cfg Config, rng *rand.Rand, runLog RunLog) *Competition {
	if cfg.StabilityTopN == 0 {
		cfg.StabilityTopN = DefaultStabilityTopN
	}
	if cfg.StabilityTargetM == 0 {
		cfg.StabilityTargetM = DefaultStabilityTargetM
	}
	if runLog == nil {
		runLog = NopRunLog{}
	}
	return &Competition{
		cfg:      cfg,
		roster:   NewRoster(cfg.Roster),
		stage:    NewStage(cfg.Points),
		resolver: NewResolver(cfg.ChallengeRand, cfg.RepRand, rng),
		runLog:   runLog,
	}
}

// ID returns the run identifier
func (c *Competition) ID() int { return c.cfg.ID }

// Points returns the scoring-rule configuration
func (c *Competition) Points() PointConfig { return c.cfg.Points }

// Roster returns the live roster in id order
func (c *Competition) Roster() []*Competitor { return c.roster }

// Snapshot returns the frozen stage-5 leaderboard, or nil before stage 5
func (c *Competition) Snapshot() []*Competitor { return c.snapshot }

// InitialLeaderboard returns the roster ranked by initial skill descending,
// ties by ascending id
func (c *Competition) InitialLeaderboard() []*Competitor {
	return rankBySkill(c.roster)
}

// FinalLeaderboard returns the roster ranked by total points descending,
// ties by ascending id
func (c *Competition) FinalLeaderboard() []*Competitor {
	return rankByPoints(c.roster)
}

// teamsForStage forms teams from current standings via the snake draft.
// Stage 1 ranks by initial skill; later stages rank by accumulated points,
// so team membership shifts stage to stage.
func (c *Competition) teamsForStage(stageNum int) []Team {
	if stageNum == 1 {
		return SnakeDraft(c.InitialLeaderboard())
	}
	return SnakeDraft(c.FinalLeaderboard())
}

// Run drives all six stages in order, captures the stage-5 snapshot, and
// emits the final report to the run log
func (c *Competition) Run() {
	p := c.cfg.Points
	c.runLog.Printf("Starting simulation (run %d)", c.cfg.ID)
	c.runLog.Printf("Points: X=%g, Y=%g, Z=%g, C=%g", p.X, p.Y, p.Z, p.C)
	c.runLog.Printf("Randomness: Challenge=%g, Rep Selection=%g", c.cfg.ChallengeRand, c.cfg.RepRand)
	c.runLog.Printf("")

	for stageNum := 1; stageNum <= NumStages; stageNum++ {
		c.runStage(stageNum)
	}

	c.writeFinalReport()
}

func (c *Competition) runStage(stageNum int) {
	log.Debug().Int("run", c.cfg.ID).Int("stage", stageNum).Msg("simulating stage")

	teams := c.teamsForStage(stageNum)

	c.runLog.Printf("--- Simulating Stage %d ---", stageNum)
	basis := "Points"
	if stageNum == 1 {
		basis = "Skill"
	}
	c.runLog.Printf("Teams (based on %s):", basis)
	for i, t := range teams {
		c.runLog.Printf("  Team %d: [%s]", i+1, strings.Join(t.Names(), ", "))
	}

	p := c.cfg.Points

	winner1 := c.stage.RunChallenge1(teams, c.resolver)
	c.runLog.Printf("Challenge 1 Winner Team (X=%g): [%s]", p.X, strings.Join(winner1.Names(), ", "))

	winner2 := c.stage.RunChallenge2(teams, c.resolver)
	c.runLog.Printf("Challenge 2 Winner Team (Y=%g): [%s]", p.Y, strings.Join(winner2.Names(), ", "))

	res3 := c.stage.RunChallenge3(teams, c.resolver)
	repNames := make([]string, len(res3.Representatives))
	for i, rep := range res3.Representatives {
		repNames[i] = rep.Name
	}
	c.runLog.Printf("Challenge 3 Representatives: [%s]", strings.Join(repNames, ", "))
	c.runLog.Printf("Challenge 3 Winner Representative (Z=%g, C=%g): %s", p.Z, p.C, res3.Winner.Name)
	c.runLog.Printf("Challenge 3 Winner Team: [%s]", strings.Join(res3.WinnerTeam.Names(), ", "))

	c.runLog.Printf("")
	c.runLog.Printf("--- Current Leaderboard ---")
	for i, comp := range c.FinalLeaderboard() {
		c.runLog.Printf("%d. %s (Skill: %g): %.2f points", i+1, comp.Name, comp.InitialSkill, comp.TotalPoints)
	}
	c.runLog.Printf("%s", strings.Repeat("-", 30))
	c.runLog.Printf("")

	if stageNum == snapshotStage {
		c.takeSnapshot()
	}
}

// takeSnapshot freezes the standings after stage 5. The copies are fully
// independent of the live roster, so stage-6 mutation cannot leak in.
func (c *Competition) takeSnapshot() {
	ranked := c.FinalLeaderboard()
	c.snapshot = make([]*Competitor, len(ranked))
	for i, comp := range ranked {
		c.snapshot[i] = comp.Clone()
	}
}

func (c *Competition) writeFinalReport() {
	n := c.cfg.StabilityTopN
	m := c.cfg.StabilityTargetM

	c.runLog.Printf("===================================")
	c.runLog.Printf("       FINAL COMPETITION METRICS")
	c.runLog.Printf("===================================")

	score, successes, err := c.EvaluateStability(n, m)
	if err != nil {
		c.runLog.Printf("1. Stability Score: unavailable (%v)", err)
	} else {
		c.runLog.Printf("1. Stability Score (Top %d/Bottom %d in Top %d/Bottom %d):", n, n, m, m)
		c.runLog.Printf("   Score: %.2f (%d out of %d players met criteria)", score, successes, 2*n)
	}

	collision := c.EvaluateCutoffCollision()
	c.runLog.Printf("")
	c.runLog.Printf("2. Cut-off Collision (6th/7th Rank Tie):")
	c.runLog.Printf("   Collision Group Size: %d", collision)
	if collision > 0 {
		c.runLog.Printf("   --> WARNING: Tie across the Top 6 / Bottom 6 cut-off.")
	}

	contenders := c.EvaluateFinalContenders()
	c.runLog.Printf("")
	c.runLog.Printf("3. Final Stage Contenders (After Stage 5):")
	c.runLog.Printf("   Total Contenders for Top 6: %d out of %d", contenders, len(c.roster))
	c.runLog.Printf("===================================")
	c.runLog.Printf("")

	c.runLog.Printf("========== FINAL RESULTS ==========")
	for i, comp := range c.FinalLeaderboard() {
		c.runLog.Printf("%d. %s: %.2f points (Initial Skill: %g)", i+1, comp.Name, comp.TotalPoints, comp.InitialSkill)
	}
	c.runLog.Printf("===================================")
}
