package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per match, named by the match id.
type FileStore struct {
	Dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates dir when it is missing.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(matchID string) string {
	return filepath.Join(s.Dir, matchID+".json")
}

func (s *FileStore) Get(_ context.Context, matchID string) ([]byte, error) {
	b, err := os.ReadFile(s.path(matchID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached match %s: %w", matchID, err)
	}
	return b, nil
}

// Put writes to a temporary file and renames it into place so a partially
// written record is never picked up as a cache hit.
func (s *FileStore) Put(_ context.Context, matchID string, raw []byte) error {
	tmp, err := os.CreateTemp(s.Dir, matchID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file for %s: %w", matchID, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file for %s: %w", matchID, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync cache file for %s: %w", matchID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file for %s: %w", matchID, err)
	}
	if err := os.Rename(tmp.Name(), s.path(matchID)); err != nil {
		return fmt.Errorf("failed to store cache file for %s: %w", matchID, err)
	}
	return nil
}
