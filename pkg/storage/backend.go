package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"time"
)

// ErrIsDirectory is returned when a directory is opened for reading as a file
var ErrIsDirectory = errors.New("is a directory")

// FileInfo represents metadata about a directory entry
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
	Mode    fs.FileMode
}

// Backend defines the filesystem operations the indexer and the
// set-operation engine need. Paths are used as given; the backend does
// not resolve them against a root.
type Backend interface {
	// ReadDir returns the immediate entries of dir, sorted by name.
	// It does not recurse.
	ReadDir(ctx context.Context, dir string) ([]FileInfo, error)

	// Open opens a file for reading. Opening a directory fails with ErrIsDirectory.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes a single file
	Remove(ctx context.Context, path string) error

	// Rename moves a file, replacing the target according to the
	// underlying filesystem's rename semantics
	Rename(ctx context.Context, oldPath, newPath string) error

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Mkdir creates a single directory. The parent must exist.
	Mkdir(ctx context.Context, path string) error

	// Close releases any resources held by the backend
	Close() error
}
