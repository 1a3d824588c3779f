// Package report writes the sweep's file-based text artifacts: one narrative
// log per competition run, one summary per parameter tuple, and the
// sweep-wide ranked leaderboard in text and CSV form.
package report

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	runLogDir  = "simulation_logs"
	resultsDir = "sweep_results"

	leaderboardTextFile = "optimization_sweep_leaderboard.txt"
	leaderboardCSVFile  = "optimization_sweep_leaderboard.csv"
)

// Meta describes the sweep settings echoed in report headers
type Meta struct {
	SessionID     string
	ChallengeRand float64
	RepRand       float64
	NumRuns       int
	StabilityTopN int
}

// Writer writes all sweep artifacts under one output directory
type Writer struct {
	outputDir string
	meta      Meta
}

// NewWriter creates an artifact writer rooted at outputDir
func NewWriter(outputDir string, meta Meta) *Writer {
	return &Writer{outputDir: outputDir, meta: meta}
}

// OutputDir returns the artifact root
func (w *Writer) OutputDir() string { return w.outputDir }

// LogFileName returns the detailed log file name for a run id
func LogFileName(runID int) string {
	return fmt.Sprintf("competition_%d_log.txt", runID)
}

func (w *Writer) ensureDir(parts ...string) (string, error) {
	dir := filepath.Join(append([]string{w.outputDir}, parts...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create artifact directory %s: %w", dir, err)
	}
	return dir, nil
}
