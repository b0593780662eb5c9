package auth

import "testing"

type stubSession struct {
	authenticated bool
	user          *User
}

func (s stubSession) IsAuthenticated() bool { return s.authenticated }
func (s stubSession) CurrentUser() *User    { return s.user }

func TestAuthorizeUnauthenticated(t *testing.T) {
	d := Authorize([]Role{RoleManager}, stubSession{}, "/manager/approvals")
	if d.Allowed {
		t.Fatal("expected denial for unauthenticated session")
	}
	if d.RedirectTo != PathLogin {
		t.Fatalf("expected redirect to login, got %q", d.RedirectTo)
	}
	if d.ReturnTo != "/manager/approvals" {
		t.Fatalf("expected return url preserved, got %q", d.ReturnTo)
	}
}

func TestAuthorizeRoleMismatch(t *testing.T) {
	session := stubSession{authenticated: true, user: &User{Role: RoleEmployee}}
	d := Authorize([]Role{RoleManager, RoleHR, RoleAdmin}, session, "/manager")
	if d.Allowed {
		t.Fatal("expected denial for employee on manager area")
	}
	if d.RedirectTo != PathEmployee {
		t.Fatalf("expected redirect to employee area, got %q", d.RedirectTo)
	}
}

func TestAuthorizeAllowed(t *testing.T) {
	session := stubSession{authenticated: true, user: &User{Role: RoleHR}}
	d := Authorize([]Role{RoleManager, RoleHR, RoleAdmin}, session, "/manager")
	if !d.Allowed {
		t.Fatalf("expected HR allowed, got %+v", d)
	}
}

func TestAuthorizeAuthenticatedWithoutUser(t *testing.T) {
	// token present but user cache lost: deny and send to login
	d := Authorize([]Role{RoleEmployee}, stubSession{authenticated: true}, "/employee")
	if d.Allowed {
		t.Fatal("expected denial without a user")
	}
	if d.RedirectTo != PathLogin {
		t.Fatalf("expected login redirect, got %q", d.RedirectTo)
	}
}
