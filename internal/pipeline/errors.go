package pipeline

import (
	"errors"
)

var (
	// ErrNoValidData means none of the configured files could be loaded.
	ErrNoValidData = errors.New("No valid data files were loaded from the provided file paths.")
	// ErrNothingToJoin means the buyer or the seller aggregate came out empty.
	ErrNothingToJoin = errors.New("Unable to perform merge due to errors in analysis.")
	// ErrWriteReport wraps failures writing the report file.
	ErrWriteReport = errors.New("write report")
	// ErrPersistReport wraps failures saving the run to the report store.
	ErrPersistReport = errors.New("persist report")
)

// Process exit codes.
const (
	ExitOK = iota
	ExitFailure
	ExitNoValidData
	ExitNothingToJoin
	ExitWriteFailed
	ExitPersistFailed
)

// ExitCode maps a Run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNoValidData):
		return ExitNoValidData
	case errors.Is(err, ErrNothingToJoin):
		return ExitNothingToJoin
	case errors.Is(err, ErrWriteReport):
		return ExitWriteFailed
	case errors.Is(err, ErrPersistReport):
		return ExitPersistFailed
	default:
		return ExitFailure
	}
}
