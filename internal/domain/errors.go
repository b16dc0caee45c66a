package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRegistered: the member has no profile, or no interests to match on.
	ErrNotRegistered = errors.New("member is not registered")

	ErrMemberNotFound = errors.New("member not found")

	// ErrNoPendingCandidate: the candidate was presented once but is not the
	// viewer's open presentation any more. It was already acted on, replaced
	// by a newer presentation or expired.
	ErrNoPendingCandidate = errors.New("candidate is no longer pending for action")

	ErrCandidateNotShown = errors.New("candidate was not presented to this member")

	ErrUnknownAction = errors.New("unknown action")

	// ErrDeliveryFailed marks a lost match notification. It is never retried.
	ErrDeliveryFailed = errors.New("match notification delivery failed")
)

// ValidationError describes a single rejected profile field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
