package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"roofbox-backend/internal/logger"
)

// LocalStorage implements ImageStore on the local filesystem. Files are
// served back by the HTTP layer under /images/{key}.
type LocalStorage struct {
	baseURL   string // Public URL prefix (e.g., "https://dachbox.example")
	imagesDir string
	maxBytes  int64
}

// NewLocalStorage creates the images directory below uploadsDir if needed.
// maxBytes <= 0 disables the size limit.
func NewLocalStorage(baseURL, uploadsDir string, maxBytes int64) (*LocalStorage, error) {
	imagesDir := filepath.Join(uploadsDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &LocalStorage{
		baseURL:   strings.TrimRight(baseURL, "/"),
		imagesDir: imagesDir,
		maxBytes:  maxBytes,
	}, nil
}

// SaveFile writes to a temp file first so a failed or oversized upload
// never replaces an existing image.
func (s *LocalStorage) SaveFile(ctx context.Context, key string, reader io.Reader) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.imagesDir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	src := reader
	if s.maxBytes > 0 {
		src = io.LimitReader(reader, s.maxBytes+1)
	}
	n, err := io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		return ErrFileTooLarge
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.imagesDir, key)); err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}
	logger.Debug("Image stored", "key", key, "bytes", n)
	return nil
}

func (s *LocalStorage) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	file, err := os.Open(filepath.Join(s.imagesDir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	err := os.Remove(filepath.Join(s.imagesDir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(key string) string {
	return s.baseURL + "/images/" + key
}
