package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidKey         = errors.New("invalid storage key")
	ErrFileNotFound       = errors.New("file not found")
	ErrFileTooLarge       = errors.New("file too large")
	ErrUnsupportedContent = errors.New("unsupported content type")
)

// ImageStore keeps uploaded product images. Keys are flat file names
// generated by NewImageKey; a cloud bucket can replace the local store
// behind the same interface.
type ImageStore interface {
	// SaveFile writes the whole reader under key, replacing any previous file.
	SaveFile(ctx context.Context, key string, reader io.Reader) error

	// ReadFile opens a stored file. The caller closes it.
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)

	DeleteFile(ctx context.Context, key string) error

	// PublicURL is the address the site uses to show the image.
	PublicURL(key string) string
}
