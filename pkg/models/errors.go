package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks bad command-line input. Nothing is scanned or modified.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUserDeclined marks a deliberate abort at an interactive prompt
	ErrUserDeclined = errors.New("declined by user")
)

// Exit codes returned by the command-line tool
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitIO      = 2
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match ErrInvalidArgument
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// IOError is a filesystem failure during indexing, deletion or moving
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError wraps err as an IOError unless it already is one
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// ExitCode maps an error returned by a run to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrUserDeclined):
		return ExitInvalid
	default:
		return ExitIO
	}
}

func isDeclined(err error) bool {
	return errors.Is(err, ErrUserDeclined)
}
