package sox

import (
	"errors"
	"fmt"
)

// ErrSoxNotFound is returned when the sox binary is not on the PATH.
var ErrSoxNotFound = errors.New("sox binary not found")

// ProcessingError represents a failed sox invocation
type ProcessingError struct {
	Operation string // The operation that failed (e.g., "query", "transcode")
	File      string // The file being processed
	Err       error  // The underlying error
	Stderr    string // stderr output from sox
}

func (e *ProcessingError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("sox %s failed for %s: %v (stderr: %s)", e.Operation, e.File, e.Err, e.Stderr)
	}
	return fmt.Sprintf("sox %s failed for %s: %v", e.Operation, e.File, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(operation, file string, err error, stderr string) *ProcessingError {
	return &ProcessingError{
		Operation: operation,
		File:      file,
		Err:       err,
		Stderr:    stderr,
	}
}
