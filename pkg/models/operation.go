package models

import (
	"fmt"
	"path/filepath"
	"time"
)

// RunConfig describes a single invocation. It is built from the command
// line and must not change once the engine holds it.
type RunConfig struct {
	ID        string
	DirA      string
	DirB      string
	MergeDir  string
	Confirm   bool
	Action    Action
	CreatedAt time.Time
}

// Validate checks the configuration before any directory is touched
func (rc *RunConfig) Validate() error {
	if rc.DirA == "" {
		return &ValidationError{Field: "dirA", Message: "directory A is required"}
	}
	if rc.DirB == "" {
		return &ValidationError{Field: "dirB", Message: "directory B is required"}
	}
	if _, err := ParseAction(string(rc.Action)); err != nil {
		return err
	}
	if rc.Action == ActionMerge && rc.MergeDir == "" {
		return &ValidationError{
			Field:   "merge",
			Message: "you cannot merge without naming an output directory",
		}
	}

	if rc.Action.Destructive() {
		same, err := samePath(rc.DirA, rc.DirB)
		if err != nil {
			return err
		}
		if same {
			return &ValidationError{
				Field:   "dirB",
				Message: fmt.Sprintf("directories A and B cannot be the same for %s: %s", rc.Action, rc.DirA),
			}
		}
	}

	return nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, &ValidationError{Field: "dirA", Message: "failed to resolve path: " + err.Error()}
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, &ValidationError{Field: "dirB", Message: "failed to resolve path: " + err.Error()}
	}
	return absA == absB, nil
}
