package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"textscan/internal/domain"
)

// LocalStore persists uploaded document bytes on the local filesystem. Each
// document is stored under a uuid-based locator so concurrent uploads never
// collide on name.
type LocalStore struct {
	dir    string
	logger *slog.Logger
}

// NewLocalStore creates the store, ensuring the directory exists.
func NewLocalStore(dir string, logger *slog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

// Save writes raw bytes and returns the assigned locator. The original
// filename only contributes its extension.
func (s *LocalStore) Save(ctx context.Context, filename string, raw []byte) (string, error) {
	locator := uuid.New().String() + filepath.Ext(filename)
	if err := os.WriteFile(filepath.Join(s.dir, locator), raw, 0o644); err != nil {
		return "", fmt.Errorf("save content: %w", err)
	}

	s.logger.Debug("content saved", "locator", locator, "bytes", len(raw))
	return locator, nil
}

// Read returns the bytes stored under locator.
func (s *LocalStore) Read(ctx context.Context, locator string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(locator)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("content %s: %w", locator, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read content: %w", err)
	}
	return raw, nil
}

// Remove deletes stored content. Used to clean up after failed ingestions;
// removing absent content is not an error.
func (s *LocalStore) Remove(ctx context.Context, locator string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(locator)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove content: %w", err)
	}
	return nil
}
