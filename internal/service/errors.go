package service

import (
	"errors"
	"fmt"
)

// Errors produced by the service layer before any store mutation is
// attempted. Handlers translate these into stable API error codes.
var (
	// ErrValidation marks a request whose payload is malformed (empty name,
	// unknown permission value). Retrying without changing the request is
	// pointless.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidMove marks a move rejected by tree integrity checks. The
	// concrete *InvalidMoveError carries the reason code.
	ErrInvalidMove = errors.New("invalid move")

	// ErrParentStillTrashed is returned when restoring a node whose direct
	// parent folder is still in the trash.
	ErrParentStillTrashed = errors.New("parent folder is still trashed")

	// ErrNotInTrash is returned when permanently deleting a node that has
	// not been trashed first.
	ErrNotInTrash = errors.New("item is not in the trash")

	// ErrGranteeNotFound is returned when a share target email does not
	// resolve to a known user.
	ErrGranteeNotFound = errors.New("grantee not found")

	// ErrGrantNotFound is returned when updating a share grant that does
	// not exist.
	ErrGrantNotFound = errors.New("share grant not found")

	// ErrCycleDetected is a defensive error: it fires if an ancestor chain
	// revisits a node, which the move validation should make impossible.
	ErrCycleDetected = errors.New("cycle detected in folder hierarchy")
)

// MoveReason is the stable reason code carried by a rejected move.
type MoveReason string

const (
	// MoveReasonSelf: the destination is the node itself.
	MoveReasonSelf MoveReason = "self"
	// MoveReasonDescendant: the destination lies inside the moved folder's
	// own subtree.
	MoveReasonDescendant MoveReason = "descendant"
	// MoveReasonDestination: the destination does not resolve to an
	// existing, non-trashed folder of the same owner.
	MoveReasonDestination MoveReason = "destination_unavailable"
)

// InvalidMoveError is the concrete error for a rejected move. It unwraps to
// ErrInvalidMove so callers can match with errors.Is.
type InvalidMoveError struct {
	Reason MoveReason
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move: %s", e.Reason)
}

func (e *InvalidMoveError) Unwrap() error {
	return ErrInvalidMove
}

// validationError wraps ErrValidation with a human-readable message.
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
