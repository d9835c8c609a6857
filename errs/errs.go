// Package errs contains the sentinel errors shared by services, store adapters
// and the HTTP layer. Callers classify failures with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyMember indicates the user already belongs to the group.
	ErrAlreadyMember = errors.New("already a member")

	// ErrTooManyGroups indicates the user reached the joined-group ceiling.
	ErrTooManyGroups = errors.New("too many groups")

	// ErrGroupFull indicates the group reached maxMembers.
	ErrGroupFull = errors.New("group is full")

	// ErrPermissionDenied indicates a non-owner attempted an owner-only action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation indicates a malformed request payload.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates concurrent modification exceeded the retry budget.
	ErrConflict = errors.New("conflict")

	// ErrUpstreamUnavailable indicates an AI or scraping provider failure.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

var (
	ErrGroupNotFound    = fmt.Errorf("group %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrNoGroupSpecified = fmt.Errorf("%w: no group specified", ErrValidation)
)

// Validation wraps a message as an ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
