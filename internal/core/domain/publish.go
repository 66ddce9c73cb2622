package domain

import (
	"context"
	"time"
)

// OverwritePolicy decides what happens when a page with the requested
// title already exists in the target space.
type OverwritePolicy string

// Overwrite policies.
const (
	// AlwaysOverwrite updates the existing page without asking.
	AlwaysOverwrite OverwritePolicy = "always"

	// NeverOverwrite leaves the existing page untouched.
	NeverOverwrite OverwritePolicy = "never"

	// AskCaller delegates the decision to a DecisionFunc.
	AskCaller OverwritePolicy = "ask"
)

// IsValid returns true if the policy is recognised.
func (p OverwritePolicy) IsValid() bool {
	switch p {
	case AlwaysOverwrite, NeverOverwrite, AskCaller:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p OverwritePolicy) String() string {
	return string(p)
}

// ParseOverwritePolicy converts a flag value into a policy.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	p := OverwritePolicy(s)
	if !p.IsValid() {
		return "", ErrInvalidInput
	}
	return p, nil
}

// DecisionFunc is asked whether an existing page may be overwritten.
// Returning false leaves the page untouched.
type DecisionFunc func(ctx context.Context, existing *RemotePage) (bool, error)

// UpdateMode selects how new content is combined with an existing body.
type UpdateMode string

// Update modes.
const (
	// ModeReplace discards the existing body.
	ModeReplace UpdateMode = "replace"

	// ModeAppend keeps the existing body and adds the new content after it.
	ModeAppend UpdateMode = "append"
)

// IsValid returns true if the mode is recognised.
func (m UpdateMode) IsValid() bool {
	return m == ModeReplace || m == ModeAppend
}

// String returns the string representation.
func (m UpdateMode) String() string {
	return string(m)
}

// ParseUpdateMode converts a flag value into a mode.
func ParseUpdateMode(s string) (UpdateMode, error) {
	m := UpdateMode(s)
	if !m.IsValid() {
		return "", ErrInvalidInput
	}
	return m, nil
}

// Combine applies the mode to an existing body and new content.
// Append performs plain concatenation with no separator.
func (m UpdateMode) Combine(existing, content string) string {
	if m == ModeAppend {
		return existing + content
	}
	return content
}

// Outcome is what a publish workflow did.
type Outcome string

// Publish outcomes.
const (
	OutcomeCreated     Outcome = "created"
	OutcomeUpdated     Outcome = "updated"
	OutcomeNotModified Outcome = "not_modified"
)

// String returns the string representation.
func (o Outcome) String() string {
	return string(o)
}

// PublishResult is the structured result of a publish or update.
type PublishResult struct {
	Outcome Outcome

	// Page is the page as returned by the remote after the write, or the
	// existing page for OutcomeNotModified.
	Page *RemotePage
}

// PublishRecord is one entry in the local publish history.
type PublishRecord struct {
	ID          string
	PageID      string
	SpaceKey    string
	Title       string
	Version     int
	Outcome     Outcome
	PublishedAt time.Time
}
