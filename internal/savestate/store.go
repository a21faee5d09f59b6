package savestate

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the state file created inside the protected storage directory.
const FileName = "lastStateFile.bin"

// Store persists a record list as a one-shot handoff between a pause and the next restore.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore returns a store writing FileName under dir. A nil logger uses slog.Default().
func NewStore(dir string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		path: filepath.Join(dir, FileName),
		log:  log.With("component", "savestate"),
	}
}

// Path returns the location of the state file.
func (s *Store) Path() string {
	return s.path
}

// Save encodes recs to the state file, replacing any previous one.
func (s *Store) Save(recs []Record) error {
	var buf bytes.Buffer
	buf.Grow(countSize + len(recs)*RecordSize)
	if err := Encode(&buf, recs); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	s.log.Debug("state saved", "path", s.path, "records", len(recs))
	return nil
}

// Restore reads the state file and deletes it after a successful decode.
// A missing file is the normal first-launch case and yields no records and no error.
// A file that fails to decode is left in place.
func (s *Store) Restore() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open state file: %w", err)
	}
	recs, err := Decode(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	if err := os.Remove(s.path); err != nil {
		s.log.Warn("failed to remove state file", "path", s.path, "error", err)
	}
	s.log.Debug("state restored", "path", s.path, "records", len(recs))
	return recs, nil
}

// SaveQuietly saves recs and reports failures only through the store's logger.
// It is meant for the OS pause callback, which has no way to surface an error.
func (s *Store) SaveQuietly(recs []Record) {
	if err := s.Save(recs); err != nil {
		s.log.Warn("state not saved", "path", s.path, "error", err)
	}
}

// RestoreQuietly restores records and reports failures only through the store's logger.
func (s *Store) RestoreQuietly() []Record {
	recs, err := s.Restore()
	if err != nil {
		s.log.Warn("state not restored", "path", s.path, "error", err)
		return nil
	}
	return recs
}
