package auth

import "testing"

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"manager", RoleManager, true},
		{"MANAGER", RoleManager, true},
		{" Manager ", RoleManager, true},
		{"employee", RoleEmployee, true},
		{"hr", RoleHR, true},
		{"human_resources", RoleHR, true},
		{"admin", RoleAdmin, true},
		{"ADMINISTRATOR", RoleAdmin, true},
		{"system_admin", RoleAdmin, true},
		{"intern", RoleEmployee, false},
		{"", RoleEmployee, false},
	}
	for _, tc := range cases {
		got, ok := NormalizeRole(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("NormalizeRole(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNormalizeRoles(t *testing.T) {
	role, ok := NormalizeRoles([]string{"offline_access", "HR"})
	if !ok || role != RoleHR {
		t.Fatalf("expected HR, got %v ok=%v", role, ok)
	}

	role, ok = NormalizeRoles([]string{"offline_access"})
	if ok || role != RoleEmployee {
		t.Fatalf("expected EMPLOYEE fallback, got %v ok=%v", role, ok)
	}

	role, ok = NormalizeRoles(nil)
	if ok || role != RoleEmployee {
		t.Fatalf("expected EMPLOYEE fallback for empty labels, got %v ok=%v", role, ok)
	}
}

func TestCanManageLeaves(t *testing.T) {
	if RoleEmployee.CanManageLeaves() {
		t.Fatal("employee must not manage leaves")
	}
	for _, role := range []Role{RoleManager, RoleHR, RoleAdmin} {
		if !role.CanManageLeaves() {
			t.Fatalf("%s should manage leaves", role)
		}
	}
	if RoleManager.CanManageHolidays() {
		t.Fatal("manager must not manage holidays")
	}
	if !RoleHR.CanManageHolidays() || !RoleAdmin.CanManageHolidays() {
		t.Fatal("hr and admin should manage holidays")
	}
}

func TestRedirectPath(t *testing.T) {
	if got := RedirectPath(nil); got != PathLogin {
		t.Fatalf("expected login path, got %q", got)
	}
	if got := RedirectPath(&User{Role: RoleEmployee}); got != PathEmployee {
		t.Fatalf("expected employee path, got %q", got)
	}
	for _, role := range []Role{RoleManager, RoleHR, RoleAdmin} {
		if got := RedirectPath(&User{Role: role}); got != PathManager {
			t.Fatalf("%s: expected manager path, got %q", role, got)
		}
	}
}
