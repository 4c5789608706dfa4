package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists stage results as JSON files under dir/<stage>/<key>.json.
// Useful for local runs where results should survive process restarts
// without a database.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = filepath.Join(".cache", "stages")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(stage Stage, key string) string {
	// Keys are hex hashes, but sanitize anyway.
	safe := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			return r
		}
		return '_'
	}, key)
	return filepath.Join(f.dir, string(stage), safe+".json")
}

func (f *FileStore) Get(ctx context.Context, stage Stage, key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path(stage, key))
	if err != nil {
		return nil, false, nil // Not found
	}
	return raw, true, nil
}

func (f *FileStore) Set(ctx context.Context, stage Stage, key string, value []byte) error {
	stageDir := filepath.Join(f.dir, string(stage))
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return fmt.Errorf("failed to create stage dir: %w", err)
	}
	if err := os.WriteFile(f.path(stage, key), value, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

func (f *FileStore) DropStage(ctx context.Context, stage Stage) error {
	stageDir := filepath.Join(f.dir, string(stage))
	if err := os.RemoveAll(stageDir); err != nil {
		return fmt.Errorf("failed to drop stage dir: %w", err)
	}
	return nil
}
