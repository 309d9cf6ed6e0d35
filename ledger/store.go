package ledger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/nomis52/timetrack/timer"
)

// FileStore reads and writes the ledger file. Writes go through a
// temporary file and a rename so a reader never observes a torn file,
// and a mutex serializes writers within this process.
//
// The tracker session and the sync listener are not arbitrated across
// processes: "at most one writer active at a time" is an operator
// assumption, not something the store can guarantee.
type FileStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store for the ledger file at path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Path returns the ledger file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the ledger file and reconstructs a tracker. A missing file
// is a valid "no history yet" state and yields an empty tracker.
func (s *FileStore) Load(opts ...timer.Option) (*timer.Tracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Info("no ledger file yet, starting empty", "path", s.path)
		return timer.NewTracker(opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}

	t, err := Deserialize(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading ledger %s: %w", s.path, err)
	}
	return t, nil
}

// Save serializes the tracker and writes the whole ledger file. The
// running instance, if any, is finalized by serialization.
func (s *FileStore) Save(t *timer.Tracker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(Serialize(t)); err != nil {
		return err
	}
	s.logger.Debug("ledger saved", "path", s.path)
	return nil
}

// Raw returns the ledger file bytes verbatim. The second return is false
// when the file does not exist.
func (s *FileStore) Raw() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading ledger file: %w", err)
	}
	return string(data), true, nil
}

// Overwrite replaces the entire ledger file content. This is the sync
// path: no diff, no merge, last caller wins.
func (s *FileStore) Overwrite(data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write([]byte(data)); err != nil {
		return err
	}
	s.logger.Info("ledger overwritten", "path", s.path, "bytes", len(data))
	return nil
}

// write performs one whole-file write via temp file and rename.
func (s *FileStore) write(data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing ledger temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}
