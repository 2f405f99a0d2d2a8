package workflow

import (
	"errors"
	"fmt"
)

// The error taxonomy every mutating operation maps onto. Validation,
// permission, state and conflict errors surface to the requester;
// dispatch errors stay inside the notification workers.

// ValidationError reports malformed or incomplete input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// PermissionError reports a failed role or ownership guard.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string {
	return e.Msg
}

// StateError reports an illegal lifecycle transition, e.g. approving an
// already-published article.
type StateError struct {
	Entity string
	From   string
	To     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: illegal transition %s -> %s", e.Entity, e.From, e.To)
}

// Conflict reasons
const (
	ConflictDuplicate            = "duplicate"
	ConflictExclusivity          = "exclusivity-conflict"
	ConflictDuplicateJoinRequest = "duplicate-join-request"
)

// ConflictError reports a uniqueness violation such as a duplicate
// subscription or a second pending join request.
type ConflictError struct {
	Reason string
	Msg    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Msg)
}

// DispatchError wraps a failed outbound notification. It is logged by
// the queue workers and never rolls back a committed transition.
type DispatchError struct {
	Channel string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch via %s failed: %v", e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsPermission(err error) bool {
	var e *PermissionError
	return errors.As(err, &e)
}

func IsState(err error) bool {
	var e *StateError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// ConflictReason returns the reason of a ConflictError, or "".
func ConflictReason(err error) string {
	var e *ConflictError
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
