package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Local is a filesystem-based storage backend. It runs on the operating
// system filesystem by default; tests swap in an in-memory afero.Fs.
type Local struct {
	fs afero.Fs
}

// NewLocal creates a backend on the operating system filesystem
func NewLocal() *Local {
	return &Local{fs: afero.NewOsFs()}
}

// NewWithFs creates a backend on the given afero filesystem
func NewWithFs(fsys afero.Fs) *Local {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Local{fs: fsys}
}

// Fs exposes the underlying filesystem
func (l *Local) Fs() afero.Fs {
	return l.fs
}

// ReadDir returns the immediate entries of dir sorted by name
func (l *Local) ReadDir(ctx context.Context, dir string) ([]FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	infos, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]FileInfo, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, toFileInfo(EntryPath(dir, info.Name()), info))
	}

	return entries, nil
}

// EntryPath appends name to dir as given. Unlike filepath.Join it does not
// clean dir, so "./A/" yields "./A/x.txt".
func EntryPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// Open opens a file for reading
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	// The OS would only fail on the first read; in-memory filesystems
	// happily read a directory as empty. Fail the same way everywhere.
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, &fs.PathError{Op: "read", Path: path, Err: ErrIsDirectory}
	}

	return file, nil
}

// Remove deletes a single file
func (l *Local) Remove(ctx context.Context, path string) error {
	if err := l.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// Rename moves a file
func (l *Local) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := l.fs.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to move: %w", err)
	}
	return nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := afero.Exists(l.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return ok, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	fi := toFileInfo(path, info)
	return &fi, nil
}

// Mkdir creates a single directory
func (l *Local) Mkdir(ctx context.Context, path string) error {
	if err := l.fs.Mkdir(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

func toFileInfo(path string, info fs.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
		Mode:    info.Mode(),
	}
}
