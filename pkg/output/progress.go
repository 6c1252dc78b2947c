package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

const progressTemplate = `{{string . "prefix"}}{{counters . }} {{bar . }} {{percent . }} {{etime . }}`

// IndexProgress renders a progress bar while directories are indexed.
// The total grows as each directory announces its entry count, so a
// single bar covers both scans of a pair.
type IndexProgress struct {
	mu      sync.Mutex
	writer  io.Writer
	bar     *pb.ProgressBar
	started bool
}

// NewIndexProgress creates a progress bar writing to writer
func NewIndexProgress(writer io.Writer) *IndexProgress {
	if writer == nil {
		writer = os.Stderr
	}

	bar := pb.New64(0)
	bar.SetTemplateString(progressTemplate)
	bar.SetWriter(writer)
	bar.Set("prefix", "Indexing ")

	return &IndexProgress{writer: writer, bar: bar}
}

// ScanStarted adds the directory's entries to the total
func (p *IndexProgress) ScanStarted(dir string, entries int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bar.AddTotal(int64(entries))
	if !p.started {
		p.bar.Start()
		p.started = true
	}
}

// EntryHashed advances the bar by one entry
func (p *IndexProgress) EntryHashed(dir, path string, size int64) {
	p.bar.Increment()
}

// Done stops the bar once both directories are indexed
func (p *IndexProgress) Done() {
	p.Finish()
}

// Finish stops rendering; safe to call when nothing was started
func (p *IndexProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		p.bar.Finish()
		p.started = false
	}
}

// Current returns the number of hashed entries
func (p *IndexProgress) Current() int64 {
	return p.bar.Current()
}

// Total returns the number of announced entries
func (p *IndexProgress) Total() int64 {
	return p.bar.Total()
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
