package index

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/sdejongh/hashmerge/pkg/digest"
	"github.com/sdejongh/hashmerge/pkg/logging"
	"github.com/sdejongh/hashmerge/pkg/models"
	"github.com/sdejongh/hashmerge/pkg/storage"
)

// Observer is notified while directories are indexed
type Observer interface {
	// ScanStarted is called once per directory with the number of entries to hash
	ScanStarted(dir string, entries int)
	// EntryHashed is called after each entry has been hashed
	EntryHashed(dir, path string, size int64)
	// Done is called once BuildPair returns, whatever the outcome
	Done()
}

// Config holds indexer settings
type Config struct {
	Exclude  []string // Base-name patterns skipped before hashing
	Parallel bool     // Build both indices of a pair concurrently
}

// Indexer builds DirectoryIndex values through a storage backend
type Indexer struct {
	backend  storage.Backend
	hasher   *digest.Hasher
	logger   logging.Logger
	config   Config
	observer Observer
}

// NewIndexer creates a new indexer
func NewIndexer(backend storage.Backend, hasher *digest.Hasher, logger logging.Logger, config Config) *Indexer {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Indexer{
		backend: backend,
		hasher:  hasher,
		logger:  logger,
		config:  config,
	}
}

// SetObserver attaches a progress observer (nil detaches)
func (ix *Indexer) SetObserver(observer Observer) {
	ix.observer = observer
}

// Build lists the immediate entries of dir and digests each of them.
// Any entry that cannot be read aborts the scan, including subdirectories.
func (ix *Indexer) Build(ctx context.Context, dir string) (DirectoryIndex, error) {
	entries, err := ix.backend.ReadDir(ctx, dir)
	if err != nil {
		return nil, wrapIO("list", dir, err)
	}

	selected := make([]storage.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if shouldExclude(entry.Name, entry.IsDir, ix.config.Exclude) {
			ix.logger.Debug(ctx, "Entry excluded", logging.Fields{"path": entry.Path})
			continue
		}
		selected = append(selected, entry)
	}

	ix.logger.Info(ctx, "Indexing directory", logging.Fields{
		"dir":       dir,
		"entries":   len(selected),
		"excluded":  len(entries) - len(selected),
		"algorithm": string(ix.hasher.Algorithm()),
	})
	if ix.observer != nil {
		ix.observer.ScanStarted(dir, len(selected))
	}

	idx := make(DirectoryIndex, len(selected))
	for _, entry := range selected {
		sum, err := ix.hasher.File(ctx, ix.backend, entry.Path)
		if err != nil {
			return nil, wrapIO("read", entry.Path, err)
		}

		if previous, ok := idx[sum]; ok {
			ix.logger.Debug(ctx, "Duplicate content in directory, keeping last", logging.Fields{
				"digest":   string(sum),
				"replaced": previous,
				"path":     entry.Path,
			})
		}
		idx[sum] = entry.Path

		if ix.observer != nil {
			ix.observer.EntryHashed(dir, entry.Path, entry.Size)
		}
	}

	ix.logger.Debug(ctx, "Directory indexed", logging.Fields{"dir": dir, "digests": len(idx)})
	return idx, nil
}

// BuildPair builds the indices of both directories. The error reported is
// always the one a sequential A-then-B run would report.
func (ix *Indexer) BuildPair(ctx context.Context, dirA, dirB string) (DirectoryIndex, DirectoryIndex, error) {
	if ix.observer != nil {
		defer ix.observer.Done()
	}

	if !ix.config.Parallel {
		a, err := ix.Build(ctx, dirA)
		if err != nil {
			return nil, nil, err
		}
		b, err := ix.Build(ctx, dirB)
		if err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}

	// Neither scan cancels the other; A's error takes precedence.
	var (
		a, b       DirectoryIndex
		errA, errB error
		g          errgroup.Group
	)
	g.Go(func() error {
		a, errA = ix.Build(ctx, dirA)
		return errA
	})
	g.Go(func() error {
		b, errB = ix.Build(ctx, dirB)
		return errB
	})
	g.Wait()

	if errA != nil {
		return nil, nil, errA
	}
	if errB != nil {
		return nil, nil, errB
	}
	return a, b, nil
}

// wrapIO classifies a backend failure as an I/O error; cancellation passes through
func wrapIO(op, path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return models.NewIOError(op, path, err)
}
