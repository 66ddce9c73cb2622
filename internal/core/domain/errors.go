package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors represent business logic failures.
// Typed errors below unwrap to these so callers can use errors.Is.
var (
	// ErrNotFound indicates a requested page does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the remote rejected an update because the
	// submitted version was stale.
	ErrConflict = errors.New("version conflict")

	// ErrMalformedContent indicates a body failed local markup validation.
	ErrMalformedContent = errors.New("malformed content")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown content unit kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDecisionRequired indicates the AskCaller policy was chosen
	// without a decision function to ask.
	ErrDecisionRequired = errors.New("overwrite decision function required")

	// ErrNotConfigured indicates a required setting is missing.
	ErrNotConfigured = errors.New("not configured")
)

// TransportError wraps a network or timeout failure talking to the remote API.
// The underlying error is surfaced unmodified through Unwrap.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError represents a non-success HTTP status from the remote API.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string

	// RetryAfter is populated from the Retry-After header when the remote
	// throttled the request. Zero otherwise.
	RetryAfter time.Duration
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: remote returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: remote returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// NotFoundError reports a missing page, either by id or by title lookup.
type NotFoundError struct {
	// ID is the page id or "space/title" key that was not found.
	ID string

	// Remote is the originating HTTP error, nil for an empty search result.
	Remote *RemoteError
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("page %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	if e.Remote == nil {
		return nil
	}
	return e.Remote
}

// ConflictError reports that an update lost a race with a concurrent writer.
// The caller is responsible for re-fetching and retrying if desired.
type ConflictError struct {
	ID string

	// Version is the version number the update was based on.
	Version int

	Remote *RemoteError
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("page %q: update based on version %d was rejected", e.ID, e.Version)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	if e.Remote == nil {
		return nil
	}
	return e.Remote
}

// MalformedContentError reports a body that does not parse as markup.
// It is raised before any network call.
type MalformedContentError struct {
	Line   int
	Reason string
}

func (e *MalformedContentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed content at line %d: %s", e.Line, e.Reason)
	}
	return "malformed content: " + e.Reason
}

func (e *MalformedContentError) Is(target error) bool {
	return target == ErrMalformedContent
}

// IsNotFound checks if the error indicates a page was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error indicates a version conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsTransport checks if the error is a network-level failure.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// StatusCode extracts the HTTP status from a remote error chain.
// Returns 0 when the error did not come from an HTTP response.
func StatusCode(err error) int {
	var rErr *RemoteError
	if errors.As(err, &rErr) {
		return rErr.StatusCode
	}
	return 0
}
