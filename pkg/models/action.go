package models

import "fmt"

// Action selects what a run does with the two directory indices
type Action string

const (
	// ActionShowSame reports files present in both directories
	ActionShowSame Action = "equal"
	// ActionShowDiff reports files unique to either directory
	ActionShowDiff Action = "diff"
	// ActionMergeIntoA keeps A and deletes B's duplicates
	ActionMergeIntoA Action = "merge_into_a"
	// ActionMergeIntoB keeps B and deletes A's duplicates
	ActionMergeIntoB Action = "merge_into_b"
	// ActionMerge moves A and the unique part of B into a new directory
	ActionMerge Action = "merge"
)

// Actions lists every valid action in help-text order
var Actions = []Action{
	ActionShowDiff,
	ActionShowSame,
	ActionMergeIntoA,
	ActionMergeIntoB,
	ActionMerge,
}

// ParseAction converts a command-line action string into an Action
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", &ValidationError{
		Field:   "action",
		Message: fmt.Sprintf("action '%s' is not valid (valid: diff, equal, merge_into_a, merge_into_b, merge)", s),
	}
}

// Destructive reports whether the action deletes or moves files
func (a Action) Destructive() bool {
	switch a {
	case ActionMergeIntoA, ActionMergeIntoB, ActionMerge:
		return true
	default:
		return false
	}
}

func (a Action) String() string {
	return string(a)
}
