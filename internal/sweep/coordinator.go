package sweep

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	xlog "github.com/raidv/pointsweep/internal/log"
	"github.com/raidv/pointsweep/internal/random"
	"github.com/raidv/pointsweep/internal/sim"
)

// Bounds is an inclusive integer range for one point parameter
type Bounds struct {
	Min int
	Max int
}

// Params is one (X, Y, Z, C) point configuration under test
type Params struct {
	X int
	Y int
	Z int
	C int
}

// Dir returns the artifact directory name for this tuple
func (p Params) Dir() string {
	return fmt.Sprintf("C%d_Z%d_X%d_Y%d", p.C, p.Z, p.X, p.Y)
}

// PointConfig converts the tuple to competition scoring rules
func (p Params) PointConfig() sim.PointConfig {
	return sim.PointConfig{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z), C: float64(p.C)}
}

// Config controls a full optimization sweep
type Config struct {
	X Bounds
	Y Bounds
	Z Bounds
	C Bounds

	ChallengeRand float64
	RepRand       float64
	NumRuns       int // competitions per tuple
	Workers       int // parallel competition runs; 0 means NumCPU

	// Seed for the root generator; 0 draws one from crypto/rand
	Seed int64

	StabilityTopN    int
	StabilityTargetM int

	// Roster template; nil means sim.DefaultRoster
	Roster []sim.RosterEntry
}

// DefaultConfig returns the standard sweep configuration
func DefaultConfig() *Config {
	return &Config{
		X:                Bounds{2, 5},
		Y:                Bounds{3, 7},
		Z:                Bounds{1, 5},
		C:                Bounds{1, 3},
		ChallengeRand:    0.4,
		RepRand:          0.3,
		NumRuns:          100,
		Workers:          runtime.NumCPU(),
		StabilityTopN:    sim.DefaultStabilityTopN,
		StabilityTargetM: sim.DefaultStabilityTargetM,
	}
}

// LeaderboardEntry is one row of a tuple's averaged final leaderboard
type LeaderboardEntry struct {
	Name         string
	AvgScore     float64
	InitialSkill float64
}

// TupleResult aggregates all runs of one parameter tuple
type TupleResult struct {
	Params                Params
	LastRunID             int // id of the tuple's last detailed log
	OptimizationScore     float64
	AvgStabilityScore     float64
	AvgStabilitySuccesses float64
	AvgCollisionSize      float64
	AvgContenders         float64
	AverageLeaderboard    []LeaderboardEntry
}

// RunLogProvider opens the narrative sink for one competition run. The
// returned close func flushes the sink; it may be nil.
type RunLogProvider interface {
	OpenRunLog(subdir string, runID int) (sim.RunLog, func() error, error)
}

// runRecord holds the metrics of a single competition run
type runRecord struct {
	stabilityScore float64
	successes      int
	collision      int
	contenders     int
	scores         map[string]float64 // final points by competitor name
}

// Coordinator enumerates valid parameter tuples, runs the configured number
// of independent competitions per tuple, and ranks tuples by optimization
// score. Run ids are allocated by the coordinator and unique within the
// process.
type Coordinator struct {
	cfg       *Config
	rng       *rand.Rand
	sessionID string
	nextRunID int

	runLogs RunLogProvider
	onTuple func(TupleResult) error
}

// NewCoordinator creates a sweep coordinator. When cfg.Seed is zero a root
// seed is drawn from crypto/rand, so separate invocations are independent.
func NewCoordinator(cfg *Config) (*Coordinator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.NumRuns < 1 {
		return nil, fmt.Errorf("sweep requires at least one run per tuple, got %d", cfg.NumRuns)
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}

	seed := cfg.Seed
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed sweep: %w", err)
		}
		seed = s
	}

	return &Coordinator{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		sessionID: uuid.NewString(),
	}, nil
}

// SessionID identifies this sweep invocation in artifacts and log fields
func (c *Coordinator) SessionID() string { return c.sessionID }

// SetRunLogProvider enables per-competition detailed log files
func (c *Coordinator) SetRunLogProvider(p RunLogProvider) { c.runLogs = p }

// SetTupleCallback registers a hook invoked as each tuple completes,
// before the next tuple starts (used for per-tuple summary reports)
func (c *Coordinator) SetTupleCallback(fn func(TupleResult) error) { c.onTuple = fn }

// EnumerateParams lists every tuple within bounds satisfying Z < X < Y.
// No constraint relates C and Z. Invalid tuples are skipped silently.
func (c *Coordinator) EnumerateParams() []Params {
	var params []Params
	for C := c.cfg.C.Min; C <= c.cfg.C.Max; C++ {
		for Z := c.cfg.Z.Min; Z <= c.cfg.Z.Max; Z++ {
			for X := c.cfg.X.Min; X <= c.cfg.X.Max; X++ {
				if Z >= X {
					continue
				}
				for Y := c.cfg.Y.Min; Y <= c.cfg.Y.Max; Y++ {
					if X >= Y {
						continue
					}
					params = append(params, Params{X: X, Y: Y, Z: Z, C: C})
				}
			}
		}
	}
	return params
}

// Run executes the full sweep and returns tuple results ranked by
// optimization score descending
func (c *Coordinator) Run(ctx context.Context) ([]TupleResult, error) {
	params := c.EnumerateParams()
	if len(params) == 0 {
		return nil, fmt.Errorf("no valid parameter tuples within bounds (Z < X < Y unsatisfiable)")
	}

	log.Info().
		Str("session", c.sessionID).
		Int("tuples", len(params)).
		Int("runs_per_tuple", c.cfg.NumRuns).
		Int("workers", c.cfg.Workers).
		Msg("starting optimization sweep")

	progress := xlog.NewProgress("sweep", len(params))
	results := make([]TupleResult, 0, len(params))

	for _, p := range params {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := c.runTuple(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("tuple %s: %w", p.Dir(), err)
		}
		if c.onTuple != nil {
			if err := c.onTuple(res); err != nil {
				return nil, fmt.Errorf("tuple %s: %w", p.Dir(), err)
			}
		}
		results = append(results, res)
		progress.Step(p.Dir())
	}
	progress.Done()

	Rank(results)
	return results, nil
}

// Rank sorts tuple results by optimization score descending in place.
// Score ties fall back to the tuple directory name for stable output.
func Rank(results []TupleResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].OptimizationScore != results[j].OptimizationScore {
			return results[i].OptimizationScore > results[j].OptimizationScore
		}
		return results[i].Params.Dir() < results[j].Params.Dir()
	})
}

// runTuple runs NumRuns independent competitions for one tuple and
// aggregates their metrics. Run ids and seeds are allocated up front so the
// sweep is reproducible regardless of worker scheduling.
func (c *Coordinator) runTuple(ctx context.Context, p Params) (TupleResult, error) {
	n := c.cfg.NumRuns
	baseID := c.nextRunID + 1
	c.nextRunID += n

	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = c.rng.Int63()
	}

	records := make([]runRecord, n)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			rec, err := c.runOne(p, baseID+i, seeds[i])
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TupleResult{}, err
	}

	return aggregate(p, records, c.rosterTemplate(), baseID+n-1)
}

// runOne executes a single competition on a fresh roster with its own
// independently seeded generator
func (c *Coordinator) runOne(p Params, runID int, seed int64) (runRecord, error) {
	var runLog sim.RunLog = sim.NopRunLog{}
	var closeLog func() error
	if c.runLogs != nil {
		rl, closer, err := c.runLogs.OpenRunLog(p.Dir(), runID)
		if err != nil {
			return runRecord{}, fmt.Errorf("open run log %d: %w", runID, err)
		}
		runLog = rl
		closeLog = closer
	}

	comp := sim.NewCompetition(sim.Config{
		ID:               runID,
		Points:           p.PointConfig(),
		ChallengeRand:    c.cfg.ChallengeRand,
		RepRand:          c.cfg.RepRand,
		StabilityTopN:    c.cfg.StabilityTopN,
		StabilityTargetM: c.cfg.StabilityTargetM,
		Roster:           c.cfg.Roster,
	}, rand.New(rand.NewSource(seed)), runLog)
	comp.Run()

	stability, successes, err := comp.EvaluateStability(c.cfg.StabilityTopN, c.cfg.StabilityTargetM)
	if err != nil {
		return runRecord{}, fmt.Errorf("stability evaluation: %w", err)
	}

	rec := runRecord{
		stabilityScore: stability,
		successes:      successes,
		collision:      comp.EvaluateCutoffCollision(),
		contenders:     comp.EvaluateFinalContenders(),
		scores:         make(map[string]float64, len(comp.Roster())),
	}
	for _, member := range comp.Roster() {
		rec.scores[member.Name] = member.TotalPoints
	}

	if closeLog != nil {
		if err := closeLog(); err != nil {
			return runRecord{}, fmt.Errorf("close run log %d: %w", runID, err)
		}
	}
	return rec, nil
}

func (c *Coordinator) rosterTemplate() []sim.RosterEntry {
	if c.cfg.Roster != nil {
		return c.cfg.Roster
	}
	return sim.DefaultRoster
}
