// Package nsserr defines the error taxonomy shared by every nss component.
//
// Low-level I/O and parsing errors are always wrapped with %w so callers can
// still errors.Is/errors.As through to the sentinel below; nss never retries
// and never swallows an error.
package nsserr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the no-payload kinds in the taxonomy.
var (
	ErrNotFoundRepository = errors.New("not a nss repository (or any of the parent directories)")
	ErrNotFoundPath       = errors.New("path does not exist")
	ErrNotFoundObject     = errors.New("object not found")
	ErrLessObjectHash     = errors.New("hash prefix must be at least 6 hex characters")
	ErrDetachedHead       = errors.New("HEAD is detached but a bookmark is required")
	ErrBookmarkMismatch   = errors.New("bookmark file does not contain a valid commit hash")
	ErrMalformedIndex     = errors.New("malformed index")
	ErrMalformedObject    = errors.New("malformed object")
)

// TypeMismatchError reports that an object was found but is not the kind
// the caller asked for (e.g. read_commit on a hash that names a tree).
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// NewTypeMismatch builds a TypeMismatchError.
func NewTypeMismatch(expected, got string) error {
	return &TypeMismatchError{Expected: expected, Got: got}
}

// AmbiguousHashError reports that a hash prefix matched more than one
// stored object.
type AmbiguousHashError struct {
	Prefix     string
	Candidates []string
}

func (e *AmbiguousHashError) Error() string {
	return fmt.Sprintf("ambiguous hash prefix %q: matches %d objects", e.Prefix, len(e.Candidates))
}

// NewAmbiguousHash builds an AmbiguousHashError.
func NewAmbiguousHash(prefix string, candidates []string) error {
	return &AmbiguousHashError{Prefix: prefix, Candidates: candidates}
}

// Is is errors.Is, re-exported so callers outside this package don't need
// a second import just to match a sentinel from the taxonomy.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsAmbiguousHash reports whether err (or something it wraps) is an
// AmbiguousHashError.
func IsAmbiguousHash(err error) bool {
	var a *AmbiguousHashError
	return errors.As(err, &a)
}

// IsTypeMismatch reports whether err (or something it wraps) is a
// TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var t *TypeMismatchError
	return errors.As(err, &t)
}

// Wrap attaches context to err while keeping it matchable with errors.Is/As.
func Wrap(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
