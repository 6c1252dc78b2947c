package models

import (
	"time"
)

// Report records what a run did. Entries are appended as work happens,
// so a report returned alongside an error shows the partial progress.
type Report struct {
	// Run details
	RunID    string
	Action   Action
	DirA     string
	DirB     string
	MergeDir string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Index sizes
	FilesA int
	FilesB int

	// Findings
	Identical []FilePair
	UniqueA   []string
	UniqueB   []string

	// Side effects
	Deleted []string
	Skipped []string
	Moves   []Move

	// LeftBehind lists B files a merge did not move because A already had their content
	LeftBehind []string

	// Overall status
	Status RunStatus
	Error  string
}

// FilePair is a file from each directory with identical content
type FilePair struct {
	Digest string
	PathA  string
	PathB  string
}

// Move is a single rename performed by a merge
type Move struct {
	Source string
	Dest   string
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates the action completed
	StatusSuccess RunStatus = "success"
	// StatusFailed indicates the action stopped on an error
	StatusFailed RunStatus = "failed"
	// StatusDeclined indicates the user aborted at a prompt
	StatusDeclined RunStatus = "declined"
)

// NewReport starts a report for the given run
func NewReport(rc *RunConfig) *Report {
	return &Report{
		RunID:     rc.ID,
		Action:    rc.Action,
		DirA:      rc.DirA,
		DirB:      rc.DirB,
		MergeDir:  rc.MergeDir,
		StartTime: time.Now(),
	}
}

// Finish stamps the end time and derives the status from err
func (r *Report) Finish(err error) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	switch ExitCode(err) {
	case ExitOK:
		r.Status = StatusSuccess
	default:
		r.Status = StatusFailed
	}
	if err != nil {
		r.Error = err.Error()
		if isDeclined(err) {
			r.Status = StatusDeclined
		}
	}
}
