package auth

import "strings"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "ADMIN"
)

var roleLabels = map[Role]string{
	RoleEmployee: "Employee",
	RoleManager:  "Manager",
	RoleHR:       "HR",
	RoleAdmin:    "Admin",
}

func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// CanManageLeaves reports whether the role may approve or reject leave
// requests.
func (r Role) CanManageLeaves() bool {
	return r == RoleManager || r == RoleHR || r == RoleAdmin
}

// CanManageHolidays reports whether the role may create, update or delete
// public holidays.
func (r Role) CanManageHolidays() bool {
	return r == RoleHR || r == RoleAdmin
}

// NormalizeRole maps an issuer's role label onto one of the four client
// roles. Matching is case-insensitive and whitespace-tolerant. Unknown
// labels fall back to EMPLOYEE with ok=false so the caller can log the
// downgrade.
func NormalizeRole(label string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "EMPLOYEE", "STAFF", "USER":
		return RoleEmployee, true
	case "MANAGER", "LINE_MANAGER", "LINEMANAGER":
		return RoleManager, true
	case "HR", "HUMAN_RESOURCES", "HUMANRESOURCES":
		return RoleHR, true
	case "ADMIN", "ADMINISTRATOR", "SYSTEM_ADMIN", "SYSTEMADMIN":
		return RoleAdmin, true
	}
	return RoleEmployee, false
}

// NormalizeRoles returns the first recognized role among the labels.
func NormalizeRoles(labels []string) (Role, bool) {
	for _, label := range labels {
		if role, ok := NormalizeRole(label); ok {
			return role, true
		}
	}
	return RoleEmployee, false
}

type User struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	ManagerID  string `json:"managerId,omitempty"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Navigation targets per role. HR and admins share the manager area.
const (
	PathLogin    = "/login"
	PathEmployee = "/employee"
	PathManager  = "/manager"
)

// RedirectPath returns the default area for the user, or the login area
// when there is no user.
func RedirectPath(u *User) string {
	if u == nil {
		return PathLogin
	}
	switch u.Role {
	case RoleEmployee:
		return PathEmployee
	case RoleManager, RoleHR, RoleAdmin:
		return PathManager
	}
	return PathLogin
}
