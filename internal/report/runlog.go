package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raidv/pointsweep/internal/sim"
)

// RunLog is the line-oriented narrative file of one competition run
type RunLog struct {
	file *os.File
	buf  *bufio.Writer
}

// OpenRunLog creates the detailed log file for one run under the tuple's
// log subdirectory. The returned close func flushes and closes the file.
func (w *Writer) OpenRunLog(subdir string, runID int) (sim.RunLog, func() error, error) {
	dir, err := w.ensureDir(runLogDir, subdir)
	if err != nil {
		return nil, nil, err
	}

	path := filepath.Join(dir, LogFileName(runID))
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create run log %s: %w", path, err)
	}

	rl := &RunLog{file: file, buf: bufio.NewWriter(file)}
	return rl, rl.Close, nil
}

// Printf appends one line to the narrative
func (l *RunLog) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.buf, format+"\n", args...)
}

// Close flushes buffered lines and closes the file
func (l *RunLog) Close() error {
	if err := l.buf.Flush(); err != nil {
		l.file.Close()
		return fmt.Errorf("flush run log: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close run log: %w", err)
	}
	return nil
}
