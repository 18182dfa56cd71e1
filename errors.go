package semtag

import (
	"errors"
	"fmt"
)

// Sentinel errors, checked with errors.Is.

// ErrRepositoryNotFound is returned when a path does not resolve to a git repository.
var ErrRepositoryNotFound = errors.New("repository not found")

// ErrInvalidIdentifier is returned when a pre-release or build label
// is not valid SemVer identifier syntax.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// ErrTagExists is returned when the computed tag is already present.
var ErrTagExists = errors.New("tag already exists")

// ErrHeadUnavailable is returned when HEAD cannot be peeled to a commit.
var ErrHeadUnavailable = errors.New("HEAD is not available")

// ErrConflictingOptions is returned when more than one bump is requested at once.
var ErrConflictingOptions = errors.New("conflicting options")

// ErrNoBump is returned by Next when called with BumpNone.
var ErrNoBump = errors.New("no bump requested")

// wrapError adds context to err while keeping it matchable with errors.Is.
func wrapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", msg, err)
}

// wrapErrorf is wrapError with a format string.
func wrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf(format+": %w", append(args, err)...)
}
