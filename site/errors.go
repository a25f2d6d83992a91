package site

import (
	"errors"
	"fmt"
)

var (
	ErrPageNotFound          = errors.New("site: page not found")
	ErrBlockNotFound         = errors.New("site: block not found")
	ErrElementNotFound       = errors.New("site: element not found")
	ErrLastPage              = errors.New("site: cannot remove the last page")
	ErrMoveOutOfBounds       = errors.New("site: block cannot move past the page boundary")
	ErrElementTypeImmutable  = errors.New("site: element type cannot change")
	ErrDuplicateID           = errors.New("site: duplicate id")
	ErrInvalidBlockType      = errors.New("site: invalid block type")
	ErrInvalidChromeTemplate = errors.New("site: invalid chrome template")
	ErrNoPages               = errors.New("site: document has no pages")
)

// NotFoundError reports a missing page, block or element by id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("site: %s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Kind {
	case "page":
		return ErrPageNotFound
	case "block":
		return ErrBlockNotFound
	case "element":
		return ErrElementNotFound
	}
	return nil
}

// PageNotFound builds the not-found error for a page id.
func PageNotFound(id string) error { return &NotFoundError{Kind: "page", ID: id} }

// BlockNotFound builds the not-found error for a block id.
func BlockNotFound(id string) error { return &NotFoundError{Kind: "block", ID: id} }

// ElementNotFound builds the not-found error for an element id.
func ElementNotFound(id string) error { return &NotFoundError{Kind: "element", ID: id} }

// IsNotFound reports whether err signals a missing page, block or element.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPageNotFound) ||
		errors.Is(err, ErrBlockNotFound) ||
		errors.Is(err, ErrElementNotFound)
}

// UnknownElementTypeError is returned when decoding or creating content for a
// type outside the closed set.
type UnknownElementTypeError struct {
	Type string
}

func (e *UnknownElementTypeError) Error() string {
	return fmt.Sprintf("site: unknown element type %q", e.Type)
}
