package leave

import (
	"errors"
	"fmt"
	"strings"

	"leavectl/internal/auth"
)

// Workflow errors. These fire before any network call; the backend
// re-validates everything independently.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrCommentRequired   = errors.New("a comment is required when rejecting")
	ErrNoChanges         = errors.New("no changes to save")
)

// Actor is the user attempting a workflow action.
type Actor struct {
	ID   string
	Role auth.Role
}

// CanEdit reports whether the actor may still edit the request. Client-side
// convenience only; not a security boundary.
func CanEdit(r *Request, actorID string) bool {
	return r.UserID == actorID && r.Status == StatusPending
}

// CanRetract reports whether the actor may retract the request.
func CanRetract(r *Request, actorID string) bool {
	return r.UserID == actorID && r.Status == StatusPending
}

// ValidateRetract checks the PENDING -> CANCELLED transition: only the
// requester may retract, and only while the request is pending.
func ValidateRetract(r *Request, actor Actor) error {
	if actor.ID != r.UserID {
		return fmt.Errorf("%w: only the requester can retract", ErrForbidden)
	}
	if r.Status != StatusPending {
		return fmt.Errorf("%w: request is %s", ErrInvalidTransition, r.Status.Label())
	}
	return nil
}

// ValidateDecision checks the PENDING -> APPROVED/REJECTED transition:
// the actor must be a decision-maker, a rejection must carry a non-blank
// comment, and the request must still be pending.
func ValidateDecision(r *Request, actor Actor, d Decision) error {
	if !actor.Role.CanManageLeaves() {
		return fmt.Errorf("%w: %s cannot decide leave requests", ErrForbidden, actor.Role.Label())
	}
	switch d.Status {
	case StatusApproved:
	case StatusRejected:
		if strings.TrimSpace(d.ManagerComment) == "" {
			return ErrCommentRequired
		}
	default:
		return fmt.Errorf("%w: a decision must approve or reject", ErrInvalidTransition)
	}
	if r.Status != StatusPending {
		return fmt.Errorf("%w: request is %s", ErrInvalidTransition, r.Status.Label())
	}
	return nil
}

// ValidateEdit checks the edit of a pending request: requester only, still
// pending, and at least one field actually changes.
func ValidateEdit(r *Request, actor Actor, upd Update) error {
	if actor.ID != r.UserID {
		return fmt.Errorf("%w: only the requester can edit", ErrForbidden)
	}
	if r.Status != StatusPending {
		return fmt.Errorf("%w: request is %s", ErrInvalidTransition, r.Status.Label())
	}
	if !upd.Changes(r) {
		return ErrNoChanges
	}
	return nil
}
