// Package storage keeps raw upload archives on disk so a bad import
// can be traced back to the exact file that caused it.
package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Save writes a file and returns the stored path
	Save(ctx context.Context, file io.Reader, path string) (string, error)

	// Open retrieves a stored file
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a stored file
	Delete(ctx context.Context, path string) error

	// Exists checks if a stored file exists
	Exists(ctx context.Context, path string) (bool, error)
}
