package catload

import (
	"errors"
)

// Sentinel errors for the failure classes of the pipeline.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	err := pipeline.Run(ctx, cfg)
//	if errors.Is(err, catload.ErrParse) {
//	    // one of the input sources is malformed
//	}
var (
	// ErrUsage indicates the command was invoked with the wrong arguments.
	ErrUsage = errors.New("usage error")

	// ErrNotFound indicates an input source path does not exist.
	ErrNotFound = errors.New("source not found")

	// ErrParse indicates an input source or its category field is malformed.
	ErrParse = errors.New("parse error")

	// ErrStorage indicates the output store could not be opened or written.
	ErrStorage = errors.New("storage error")

	// ErrInvalidConfig indicates the merged configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ExitCodeForError returns the process exit code for err.
// Returns ExitSuccess for nil and ExitFailure for everything else.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// ErrorClass returns a short label for the sentinel err wraps, for log fields.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUsage):
		return "usage"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrStorage):
		return "storage"
	case errors.Is(err, ErrInvalidConfig):
		return "config"
	}
	return "unknown"
}
