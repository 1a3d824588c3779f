package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/raidv/pointsweep/internal/sweep"
)

// WriteLeaderboard writes the sweep-wide ranking of all tested tuples, in a
// human-readable table and in CSV form. Results must already be ranked by
// optimization score descending.
func (w *Writer) WriteLeaderboard(results []sweep.TupleResult) error {
	if _, err := w.ensureDir(); err != nil {
		return err
	}
	if err := w.writeLeaderboardText(results); err != nil {
		return err
	}
	return w.writeLeaderboardCSV(results)
}

func (w *Writer) writeLeaderboardText(results []sweep.TupleResult) error {
	var b strings.Builder

	rule := strings.Repeat("=", 81)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "                       OPTIMIZATION SWEEP LEADERBOARD\n")
	fmt.Fprintf(&b, "Session: %s | Runs per combo: %d | Challenge Rand: %g | Rep Rand: %g\n",
		w.meta.SessionID, w.meta.NumRuns, w.meta.ChallengeRand, w.meta.RepRand)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Rank | Score  | X | Y | Z | C | Stability | Collision | Contenders\n")
	fmt.Fprintf(&b, "-----|--------|---|---|---|---|-----------|-----------|-----------\n")

	for i, res := range results {
		p := res.Params
		fmt.Fprintf(&b, "%4d | %-6.3f | %1d | %1d | %1d | %1d | %-9.3f | %-9.3f | %-10.3f\n",
			i+1, res.OptimizationScore, p.X, p.Y, p.Z, p.C,
			res.AvgStabilitySuccesses, res.AvgCollisionSize, res.AvgContenders)
	}

	path := filepath.Join(w.outputDir, leaderboardTextFile)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write sweep leaderboard %s: %w", path, err)
	}
	return nil
}

func (w *Writer) writeLeaderboardCSV(results []sweep.TupleResult) error {
	path := filepath.Join(w.outputDir, leaderboardCSVFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sweep CSV %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	header := []string{
		"Rank", "Optimization_Score", "X", "Y", "Z", "C",
		"Avg_Successful_Players", "Avg_Collision_Size", "Avg_Contender_Count",
		"Log_Subdir", "Log_File_ID",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for i, res := range results {
		p := res.Params
		row := []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.4f", res.OptimizationScore),
			strconv.Itoa(p.X), strconv.Itoa(p.Y), strconv.Itoa(p.Z), strconv.Itoa(p.C),
			fmt.Sprintf("%.4f", res.AvgStabilitySuccesses),
			fmt.Sprintf("%.4f", res.AvgCollisionSize),
			fmt.Sprintf("%.4f", res.AvgContenders),
			p.Dir(),
			LogFileName(res.LastRunID),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush sweep CSV: %w", err)
	}
	return nil
}
