package documents

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("documents: document not found")
	ErrMalformedDocument  = errors.New("documents: malformed document")
	ErrProjectIDRequired  = errors.New("documents: project id required")
	ErrRepositoryRequired = errors.New("documents: repository required")
	ErrAutoSaverClosed    = errors.New("documents: autosaver closed")
)

// NotFoundError reports a missing project document.
type NotFoundError struct {
	ProjectID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("documents: no document stored for project %q", e.ProjectID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Issue describes one schema violation found while decoding a document.
type Issue struct {
	Location string
	Message  string
}

// MalformedError carries the issues that made a payload unusable.
type MalformedError struct {
	Issues []Issue
	Cause  error
}

func (e *MalformedError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", ErrMalformedDocument, e.Cause)
		}
		return ErrMalformedDocument.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", ErrMalformedDocument, strings.Join(parts, "; "))
}

func (e *MalformedError) Unwrap() error { return ErrMalformedDocument }

// Issues extracts schema issues from err, if any.
func Issues(err error) []Issue {
	var malformed *MalformedError
	if errors.As(err, &malformed) && malformed != nil {
		return malformed.Issues
	}
	return nil
}

// LoadCategory classifies a failed load.
type LoadCategory string

const (
	LoadMalformed LoadCategory = "malformed"
	LoadIO        LoadCategory = "io"
)

// LoadError is returned alongside the default document when a stored
// document could not be used.
type LoadError struct {
	ProjectID string
	Category  LoadCategory
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("documents: load project %q (%s): %v", e.ProjectID, e.Category, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed snapshot write. The in-memory document is
// unaffected.
type SaveError struct {
	ProjectID string
	Err       error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("documents: save project %q: %v", e.ProjectID, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
