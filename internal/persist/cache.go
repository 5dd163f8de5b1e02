package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/intervia/intervia-backend/internal/model"
)

// FileCache persists the full list of known sessions as a single JSON
// blob. Writes are best-effort; the adapter logs and swallows
// failures. Date fields serialize as RFC3339 text and are revived into
// time values by the standard decoder on load.
type FileCache struct {
	path string
}

// NewFileCache creates a cache backed by the file at path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Save writes all sessions to the cache file atomically (temp file
// plus rename).
func (c *FileCache) Save(sessions []model.Session) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".sessions-*.json")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}

// Load reads the cached sessions. A missing file yields an empty list.
// An unparseable blob yields an empty list together with the parse
// error so the caller can log the corruption; the cache is considered
// reset either way.
func (c *FileCache) Load() ([]model.Session, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var sessions []model.Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, fmt.Errorf("corrupt session cache: %w", err)
	}
	return sessions, nil
}
