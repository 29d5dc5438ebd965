package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousIdentity is wrapped by PreconditionError.
	ErrAmbiguousIdentity = errors.New("ambiguous item identity")

	// ErrDesync is wrapped by DesyncError.
	ErrDesync = errors.New("list surface out of sync with edit script")

	// ErrConcurrentDispatch is raised when two scripts are dispatched to the
	// same surface at the same time.
	ErrConcurrentDispatch = errors.New("concurrent dispatch to the same list surface")
)

// PreconditionError describes input that violates the identity contract.
// Compute panics with it when strict identity checking is enabled.
type PreconditionError struct {
	Reason   string
	OldIndex int
	NewIndex int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s (old=%d new=%d)", ErrAmbiguousIdentity, e.Reason, e.OldIndex, e.NewIndex)
}

func (e *PreconditionError) Unwrap() error {
	return ErrAmbiguousIdentity
}

// DesyncError reports an edit whose position does not exist in the target,
// meaning the target's prior state did not equal the old sequence.
type DesyncError struct {
	Index int
	Edit  Op
	Pos   int
	Len   int
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("%s: edit %d (%s) position %d out of range for length %d", ErrDesync, e.Index, e.Edit, e.Pos, e.Len)
}

func (e *DesyncError) Unwrap() error {
	return ErrDesync
}
