package backup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const snapshotPattern = "activities-*.csv"

// LedgerSource provides the raw ledger text to snapshot.
type LedgerSource interface {
	Raw() (string, bool, error)
}

// Snapshotter copies the ledger into a dated file under Dir. One
// snapshot file exists per calendar month; repeated runs within a month
// overwrite it, so the file always holds the month's latest state.
type Snapshotter struct {
	dir    string
	keep   int
	source LedgerSource
	logger *slog.Logger
	now    func() time.Time
}

// NewSnapshotter creates a Snapshotter writing to dir. keep limits how
// many monthly files are retained; zero keeps everything.
func NewSnapshotter(dir string, keep int, source LedgerSource, logger *slog.Logger) *Snapshotter {
	return &Snapshotter{
		dir:    dir,
		keep:   keep,
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Run takes one snapshot and prunes old ones. A missing ledger is a
// no-op.
func (s *Snapshotter) Run() error {
	data, exists, err := s.source.Raw()
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}
	if !exists {
		s.logger.Info("no ledger to snapshot")
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("activities-%s.csv", s.now().Format("2006-01")))
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	s.logger.Info("wrote ledger snapshot", "path", path, "bytes", len(data))

	return s.prune()
}

// prune removes the oldest snapshots beyond the retention limit. The
// dated filenames sort chronologically, so lexicographic order is
// enough.
func (s *Snapshotter) prune() error {
	if s.keep <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(s.dir, snapshotPattern))
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}
	if len(matches) <= s.keep {
		return nil
	}

	sort.Strings(matches)
	for _, old := range matches[:len(matches)-s.keep] {
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("pruning snapshot %s: %w", old, err)
		}
		s.logger.Info("pruned old snapshot", "path", old)
	}
	return nil
}
