package commands

import (
	"context"
	"errors"
	"maps"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by errors returned from Handler.Execute.
const (
	CodeValidationFailed = "COMMAND_VALIDATION_FAILED"
	CodeCanceled         = "COMMAND_CONTEXT_CANCELED"
	CodeTimedOut         = "COMMAND_CONTEXT_TIMEOUT"
	CodeContextError     = "COMMAND_CONTEXT_ERROR"
	CodeExecutionFailed  = "COMMAND_EXECUTION_FAILED"
)

type failure struct {
	status   TelemetryStatus
	category goerrors.Category
	code     string
	message  string
}

var (
	validationFailure = failure{TelemetryStatusFailed, goerrors.CategoryValidation, CodeValidationFailed, "command validation failed"}
	executionFailure  = failure{TelemetryStatusFailed, goerrors.CategoryCommand, CodeExecutionFailed, "command execution failed"}
)

func contextFailure(err error) failure {
	f := failure{status: TelemetryStatusContextError, category: goerrors.CategoryCommand}
	switch {
	case errors.Is(err, context.Canceled):
		f.code, f.message = CodeCanceled, "command execution cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		f.code, f.message = CodeTimedOut, "command execution deadline exceeded"
	default:
		f.code, f.message = CodeContextError, "command context error"
	}
	return f
}

func classify(err error) failure {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return contextFailure(err)
	}
	return executionFailure
}

// wrap categorises err with meta attached. Errors already categorised by
// the wrapped function pass through unchanged.
func (f failure) wrap(err error, meta map[string]any) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	wrapped := goerrors.Wrap(err, f.category, f.message).WithTextCode(f.code)
	if len(meta) > 0 {
		wrapped = wrapped.WithMetadata(maps.Clone(meta))
	}
	return wrapped
}

// TextCode returns the go-errors text code carried by err, or "".
func TextCode(err error) string {
	var categorised *goerrors.Error
	if errors.As(err, &categorised) {
		return categorised.TextCode
	}
	return ""
}
