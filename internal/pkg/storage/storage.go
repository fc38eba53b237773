package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Store persists uploaded media and tells clients where to fetch it.
type Store interface {
	Save(ctx context.Context, name string, data io.Reader, size int64, contentType string) (*FileOperation, error)
	Delete(ctx context.Context, name string) error
	Backend() string
}

// FileOperation represents a file operation result
type FileOperation struct {
	Name     string        `json:"name"`
	URL      string        `json:"url"`
	Size     int64         `json:"size"`
	Duration time.Duration `json:"duration"`
}

// LocalStore writes files into a directory that is served statically under
// URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

// NewLocalStore creates dir when missing.
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *LocalStore) Backend() string {
	return "local"
}

// Save writes data to Dir/name
func (s *LocalStore) Save(ctx context.Context, name string, data io.Reader, size int64, contentType string) (*FileOperation, error) {
	startTime := time.Now()

	fullPath, err := s.path(name)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}

	bytesWritten, err := io.Copy(file, data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Clean up partial file
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	op := &FileOperation{
		Name:     name,
		URL:      path.Join(s.URLPrefix, name),
		Size:     bytesWritten,
		Duration: time.Since(startTime),
	}
	log.Debugf("[LocalStore] Saved %s (%d bytes) in %v", name, bytesWritten, op.Duration)
	return op, nil
}

// Delete removes Dir/name. A file that is already gone counts as deleted.
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	fullPath, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}

func (s *LocalStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.Dir, name), nil
}
