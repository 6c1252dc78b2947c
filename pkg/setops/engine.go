package setops

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sdejongh/hashmerge/pkg/index"
	"github.com/sdejongh/hashmerge/pkg/logging"
	"github.com/sdejongh/hashmerge/pkg/models"
	"github.com/sdejongh/hashmerge/pkg/output"
	"github.com/sdejongh/hashmerge/pkg/prompt"
	"github.com/sdejongh/hashmerge/pkg/storage"
)

// handler runs one action, recording what it did in the report
type handler func(e *Engine, ctx context.Context, report *models.Report) error

var handlers = map[models.Action]handler{
	models.ActionShowSame:   (*Engine).showSameFiles,
	models.ActionShowDiff:   (*Engine).showDiffFiles,
	models.ActionMergeIntoA: (*Engine).mergeIntoA,
	models.ActionMergeIntoB: (*Engine).mergeIntoB,
	models.ActionMerge:      (*Engine).merge,
}

// Engine orchestrates indexing and the action on the two directories
type Engine struct {
	indexer   *index.Indexer
	backend   storage.Backend
	formatter output.Formatter
	prompter  prompt.Prompter
	logger    logging.Logger
	run       *models.RunConfig
}

// NewEngine creates a new engine
func NewEngine(
	indexer *index.Indexer,
	backend storage.Backend,
	formatter output.Formatter,
	prompter prompt.Prompter,
	logger logging.Logger,
	run *models.RunConfig,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		indexer:   indexer,
		backend:   backend,
		formatter: formatter,
		prompter:  prompter,
		logger:    logger,
		run:       run,
	}
}

// Run executes action and returns the report. The report is returned
// even when the action fails, showing the progress made before the error.
func (e *Engine) Run(ctx context.Context, action models.Action) (*models.Report, error) {
	h, ok := handlers[action]
	if !ok {
		_, err := models.ParseAction(string(action))
		return nil, err
	}

	report := models.NewReport(e.run)
	report.Action = action

	e.logger.Info(ctx, "Action started", logging.Fields{
		"action":  string(action),
		"dir_a":   e.run.DirA,
		"dir_b":   e.run.DirB,
		"confirm": e.run.Confirm,
	})

	err := h(e, ctx, report)
	report.Finish(err)

	if err != nil {
		e.logger.Error(ctx, "Action failed", err, logging.Fields{"action": string(action)})
	} else {
		e.logger.Info(ctx, "Action completed", logging.Fields{
			"action":   string(action),
			"duration": report.Duration.String(),
		})
	}

	if ferr := e.formatter.Complete(report); ferr != nil && err == nil {
		err = fmt.Errorf("failed to write output: %w", ferr)
	}

	return report, err
}

// indexBoth builds both indices and records their sizes
func (e *Engine) indexBoth(ctx context.Context, report *models.Report) (index.DirectoryIndex, index.DirectoryIndex, error) {
	a, b, err := e.indexer.BuildPair(ctx, e.run.DirA, e.run.DirB)
	if err != nil {
		return nil, nil, err
	}
	report.FilesA = a.Len()
	report.FilesB = b.Len()
	return a, b, nil
}

func (e *Engine) showSameFiles(ctx context.Context, report *models.Report) error {
	a, b, err := e.indexBoth(ctx, report)
	if err != nil {
		return err
	}

	for _, pair := range Intersection(a, b) {
		report.Identical = append(report.Identical, pair)
		if err := e.formatter.Identical(pair); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) showDiffFiles(ctx context.Context, report *models.Report) error {
	a, b, err := e.indexBoth(ctx, report)
	if err != nil {
		return err
	}

	for _, path := range Difference(a, b) {
		report.UniqueA = append(report.UniqueA, path)
		if err := e.formatter.Unique(path, e.run.DirA, e.run.DirB); err != nil {
			return err
		}
	}
	for _, path := range Difference(b, a) {
		report.UniqueB = append(report.UniqueB, path)
		if err := e.formatter.Unique(path, e.run.DirA, e.run.DirB); err != nil {
			return err
		}
	}
	return nil
}

// mergeIntoA keeps A intact and deletes B's copies of A's content
func (e *Engine) mergeIntoA(ctx context.Context, report *models.Report) error {
	a, b, err := e.indexBoth(ctx, report)
	if err != nil {
		return err
	}

	pairs := sortByB(Intersection(a, b))
	report.Identical = pairs

	targets := make([]string, len(pairs))
	for i, pair := range pairs {
		targets[i] = pair.PathB
	}
	return e.removeAll(ctx, report, targets)
}

// mergeIntoB keeps B intact and deletes A's copies of B's content
func (e *Engine) mergeIntoB(ctx context.Context, report *models.Report) error {
	a, b, err := e.indexBoth(ctx, report)
	if err != nil {
		return err
	}

	pairs := Intersection(a, b)
	report.Identical = pairs

	targets := make([]string, len(pairs))
	for i, pair := range pairs {
		targets[i] = pair.PathA
	}
	return e.removeAll(ctx, report, targets)
}

// removeAll deletes targets in order, asking first when confirmation is
// on. The first failed deletion stops the loop.
func (e *Engine) removeAll(ctx context.Context, report *models.Report, targets []string) error {
	for _, target := range targets {
		if e.run.Confirm {
			response, err := e.prompter.Confirm(ctx, fmt.Sprintf("Remove file '%s' [y/n]", target))
			if err != nil {
				return err
			}
			if !prompt.Accepts(response) {
				e.logger.Info(ctx, "Deletion skipped", logging.Fields{"path": target})
				report.Skipped = append(report.Skipped, target)
				continue
			}
		}

		if err := e.formatter.Deleting(target); err != nil {
			return err
		}
		if err := e.backend.Remove(ctx, target); err != nil {
			return models.NewIOError("delete", target, err)
		}

		e.logger.Info(ctx, "File deleted", logging.Fields{"path": target})
		report.Deleted = append(report.Deleted, target)
	}
	return nil
}

// merge moves all of A, then the content of B that A lacks, into the
// merge directory. B's duplicates of A stay where they are.
func (e *Engine) merge(ctx context.Context, report *models.Report) error {
	dir := e.run.MergeDir
	if dir == "" {
		return &models.ValidationError{Field: "merge", Message: "you cannot merge without naming an output directory"}
	}

	if err := e.prepareMergeDir(ctx, dir); err != nil {
		return err
	}

	a, b, err := e.indexBoth(ctx, report)
	if err != nil {
		return err
	}

	for _, entry := range a.Entries() {
		if err := e.move(ctx, report, entry.Path, dir); err != nil {
			return err
		}
	}

	for _, entry := range b.Entries() {
		if a.Has(entry.Digest) {
			report.LeftBehind = append(report.LeftBehind, entry.Path)
			continue
		}
		if err := e.move(ctx, report, entry.Path, dir); err != nil {
			return err
		}
	}
	return nil
}

// prepareMergeDir creates dir, or asks before reusing an existing one
func (e *Engine) prepareMergeDir(ctx context.Context, dir string) error {
	exists, err := e.backend.Exists(ctx, dir)
	if err != nil {
		return models.NewIOError("stat", dir, err)
	}

	if !exists {
		if err := e.backend.Mkdir(ctx, dir); err != nil {
			return models.NewIOError("mkdir", dir, err)
		}
		e.logger.Info(ctx, "Merge directory created", logging.Fields{"dir": dir})
		return nil
	}

	info, err := e.backend.Stat(ctx, dir)
	if err != nil {
		return models.NewIOError("stat", dir, err)
	}
	if !info.IsDir {
		return models.NewIOError("mkdir", dir, &fs.PathError{Op: "mkdir", Path: dir, Err: fs.ErrExist})
	}

	response, err := e.prompter.Confirm(ctx, fmt.Sprintf("The directory '%s' already exists, should it be overwritten [y/n]", dir))
	if err != nil {
		return err
	}
	if prompt.Declines(response) {
		return fmt.Errorf("merge into '%s': %w", dir, models.ErrUserDeclined)
	}

	e.logger.Info(ctx, "Reusing existing merge directory", logging.Fields{"dir": dir})
	return nil
}

// move renames source to dir/<basename>
func (e *Engine) move(ctx context.Context, report *models.Report, source, dir string) error {
	dest := storage.EntryPath(dir, filepath.Base(source))

	if err := e.formatter.Moving(source, dest); err != nil {
		return err
	}
	if err := e.backend.Rename(ctx, source, dest); err != nil {
		return models.NewIOError("rename", source, err)
	}

	e.logger.Debug(ctx, "File moved", logging.Fields{"source": source, "dest": dest})
	report.Moves = append(report.Moves, models.Move{Source: source, Dest: dest})
	return nil
}
