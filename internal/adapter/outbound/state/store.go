// Package state persists the client session across process restarts.
//
// The session lives in a single JSON file under a fixed namespace
// (~/.sparkhub/session.json by default). Writes are atomic
// (write-tmp-fsync-rename) and guarded by both an in-process mutex and a
// cross-process flock, so two concurrent CLI invocations cannot interleave
// a partial session onto disk. A restore therefore always observes either
// the previous complete session or the new complete session, never a mix.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/sparkhub/sparkhub-cli/internal/domain/session"
)

// schemaVersion is the persisted document version.
const schemaVersion = "1"

// document is the on-disk layout wrapping the session snapshot.
type document struct {
	Version   string        `json:"version"`
	Session   session.State `json:"session"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// FileStore reads and writes the session file.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewFileStore creates a FileStore for the given file path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// DefaultPath returns the fixed namespace location for the session file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sparkhub-session.json"
	}
	return filepath.Join(home, ".sparkhub", "session.json")
}

// Load reads the persisted session. A missing file yields an empty
// (unauthenticated) session; a corrupt file is an error so callers can
// report it rather than silently discarding credentials.
func (s *FileStore) Load() (session.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("session file not found, starting unauthenticated", "path", s.path)
			return session.State{}, nil
		}
		return session.State{}, fmt.Errorf("read session file: %w", err)
	}

	// The file holds a bearer token; warn when group/other can read it.
	// Unix permission bits are meaningless on Windows.
	if runtime.GOOS != "windows" {
		if info, statErr := os.Stat(s.path); statErr == nil {
			mode := info.Mode().Perm()
			if mode&0077 != 0 {
				s.logger.Warn("session file has too-open permissions, should be 0600",
					"path", s.path, "current_mode", fmt.Sprintf("%04o", mode))
			}
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return session.State{}, fmt.Errorf("parse session file: %w", err)
	}
	return doc.Session, nil
}

// Save writes the session snapshot to disk atomically.
//
// The write sequence is:
//  1. Acquire in-process mutex
//  2. Acquire flock on path+".lock"
//  3. Marshal the document as indented JSON
//  4. Write to path+".tmp" with 0600 permissions
//  5. Fsync the temp file
//  6. Rename path+".tmp" -> path
//  7. Release flock and mutex
func (s *FileStore) Save(st session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	lockPath := s.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = lockFile.Close() }()

	if err := flockLock(lockFile.Fd()); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer flockUnlock(lockFile.Fd()) //nolint:errcheck

	now := time.Now().UTC()
	doc := document{
		Version:   schemaVersion,
		Session:   st,
		CreatedAt: s.createdAt(now),
		UpdatedAt: now,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return err
	}

	// Safety net in case the rename preserved looser temp permissions.
	if err := os.Chmod(s.path, 0600); err != nil {
		s.logger.Warn("failed to set permissions on session file", "error", err)
	}

	s.logger.Debug("session saved", "path", s.path)
	return nil
}

// createdAt preserves the original creation time across saves.
func (s *FileStore) createdAt(fallback time.Time) time.Time {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fallback
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil || doc.CreatedAt.IsZero() {
		return fallback
	}
	return doc.CreatedAt
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it over
// the target path. On any error the temp file is cleaned up.
func (s *FileStore) writeAtomic(data []byte) error {
	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to session file: %w", err)
	}
	return nil
}

// Reset deletes the persisted session. Missing file is not an error.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Exists returns true if the session file exists on disk.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the configured file path.
func (s *FileStore) Path() string {
	return s.path
}
