package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raidv/pointsweep/internal/sweep"
)

// WriteTupleSummary writes the RESULTS_* text report for one completed
// parameter tuple: point configuration, aggregated metrics, averaged
// leaderboard, and a pointer to the tuple's last detailed log.
func (w *Writer) WriteTupleSummary(res sweep.TupleResult) error {
	dir, err := w.ensureDir(resultsDir)
	if err != nil {
		return err
	}

	p := res.Params
	var b strings.Builder

	rule := strings.Repeat("=", 56)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "  DETAILED PARAMETER TEST RESULTS: %s\n", p.Dir())
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Point Configuration (C, Z, X, Y): (%d, %d, %d, %d)\n", p.C, p.Z, p.X, p.Y)
	fmt.Fprintf(&b, "Randomness: Challenge=%g, Rep Selection=%g\n", w.meta.ChallengeRand, w.meta.RepRand)
	fmt.Fprintf(&b, "Sweep Session: %s\n", w.meta.SessionID)
	fmt.Fprintf(&b, "Total Competitions Run: %d\n\n", w.meta.NumRuns)

	fmt.Fprintf(&b, "--- OPTIMIZATION METRICS ---\n")
	fmt.Fprintf(&b, "1. OPTIMIZATION SCORE: %.4f\n", res.OptimizationScore)
	fmt.Fprintf(&b, "   (Higher is better; 0.0 is minimum acceptable)\n")
	fmt.Fprintf(&b, "2. Avg. Stability Score (Target >= 4.0): %.3f / %.1f\n",
		res.AvgStabilitySuccesses, float64(2*w.meta.StabilityTopN))
	fmt.Fprintf(&b, "3. Avg. Collision Size (Target <= 3.0): %.3f\n", res.AvgCollisionSize)
	fmt.Fprintf(&b, "4. Avg. Contenders (Target >= 9.0): %.3f\n\n", res.AvgContenders)

	fmt.Fprintf(&b, "--- AVERAGE FINAL LEADERBOARD ---\n")
	for i, entry := range res.AverageLeaderboard {
		fmt.Fprintf(&b, "%2d. %-8s: %7.3f points (Skill: %g)\n",
			i+1, entry.Name, entry.AvgScore, entry.InitialSkill)
	}
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 56))

	fmt.Fprintf(&b, "Corresponding Detailed Log File: %s (Last Run ID)\n",
		filepath.Join(runLogDir, p.Dir(), LogFileName(res.LastRunID)))

	path := filepath.Join(dir, fmt.Sprintf("RESULTS_%s.txt", p.Dir()))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write tuple summary %s: %w", path, err)
	}
	return nil
}
