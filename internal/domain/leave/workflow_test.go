package leave

import (
	"errors"
	"testing"

	"leavectl/internal/auth"
)

func pendingRequest() *Request {
	return &Request{
		ID:        "lr-1",
		UserID:    "emp-1",
		LeaveType: TypeAnnual,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
		Days:      5,
		Reason:    "Family trip",
		Status:    StatusPending,
	}
}

func TestValidateRetract(t *testing.T) {
	r := pendingRequest()

	if err := ValidateRetract(r, Actor{ID: "emp-1", Role: auth.RoleEmployee}); err != nil {
		t.Fatalf("requester should retract pending request: %v", err)
	}

	if err := ValidateRetract(r, Actor{ID: "emp-2", Role: auth.RoleEmployee}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-requester, got %v", err)
	}

	r.Status = StatusApproved
	if err := ValidateRetract(r, Actor{ID: "emp-1", Role: auth.RoleEmployee}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for approved request, got %v", err)
	}
}

func TestValidateDecision(t *testing.T) {
	manager := Actor{ID: "mgr-1", Role: auth.RoleManager}

	r := pendingRequest()
	if err := ValidateDecision(r, manager, Decision{Status: StatusApproved}); err != nil {
		t.Fatalf("approval without comment should pass: %v", err)
	}
	if err := ValidateDecision(r, manager, Decision{Status: StatusApproved, ManagerComment: "enjoy"}); err != nil {
		t.Fatalf("approval with comment should pass: %v", err)
	}

	if err := ValidateDecision(r, Actor{ID: "emp-2", Role: auth.RoleEmployee}, Decision{Status: StatusApproved}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employee, got %v", err)
	}
}

func TestValidateDecisionRejectRequiresComment(t *testing.T) {
	manager := Actor{ID: "mgr-1", Role: auth.RoleHR}
	r := pendingRequest()

	for _, comment := range []string{"", "   ", "\t\n"} {
		err := ValidateDecision(r, manager, Decision{Status: StatusRejected, ManagerComment: comment})
		if !errors.Is(err, ErrCommentRequired) {
			t.Fatalf("comment %q: expected ErrCommentRequired, got %v", comment, err)
		}
	}

	if err := ValidateDecision(r, manager, Decision{Status: StatusRejected, ManagerComment: "overlaps release"}); err != nil {
		t.Fatalf("rejection with comment should pass: %v", err)
	}
}

func TestValidateDecisionNonPending(t *testing.T) {
	manager := Actor{ID: "mgr-1", Role: auth.RoleAdmin}

	for _, status := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		r := pendingRequest()
		r.Status = status
		err := ValidateDecision(r, manager, Decision{Status: StatusApproved})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("status %s: expected ErrInvalidTransition, got %v", status, err)
		}
	}

	if err := ValidateDecision(pendingRequest(), manager, Decision{Status: StatusCancelled}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatal("expected ErrInvalidTransition for a cancel decision")
	}
}

func TestValidateEdit(t *testing.T) {
	requester := Actor{ID: "emp-1", Role: auth.RoleEmployee}
	newReason := "Changed plans"

	r := pendingRequest()
	if err := ValidateEdit(r, requester, Update{Reason: &newReason}); err != nil {
		t.Fatalf("edit with change should pass: %v", err)
	}

	sameReason := r.Reason
	if err := ValidateEdit(r, requester, Update{Reason: &sameReason}); !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges for identical values, got %v", err)
	}
	if err := ValidateEdit(r, requester, Update{}); !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges for empty update, got %v", err)
	}

	if err := ValidateEdit(r, Actor{ID: "emp-2", Role: auth.RoleEmployee}, Update{Reason: &newReason}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-requester, got %v", err)
	}

	r.Status = StatusRejected
	if err := ValidateEdit(r, requester, Update{Reason: &newReason}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for rejected request, got %v", err)
	}
}

func TestCanEditCanRetract(t *testing.T) {
	r := pendingRequest()
	if !CanEdit(r, "emp-1") || !CanRetract(r, "emp-1") {
		t.Fatal("requester should be able to edit and retract a pending request")
	}
	if CanEdit(r, "emp-2") || CanRetract(r, "emp-2") {
		t.Fatal("non-requester must not edit or retract")
	}

	r.Status = StatusCancelled
	if CanEdit(r, "emp-1") || CanRetract(r, "emp-1") {
		t.Fatal("terminal request must not be editable")
	}
}
