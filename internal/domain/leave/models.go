package leave

import (
	"encoding/json"
	"strings"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

type Type string

const (
	TypeAnnual               Type = "ANNUAL"
	TypeSick                 Type = "SICK"
	TypeMaternity            Type = "MATERNITY"
	TypePaternity            Type = "PATERNITY"
	TypeStudy                Type = "STUDY"
	TypeFamilyResponsibility Type = "FAMILY_RESPONSIBILITY"
	TypeUnpaid               Type = "UNPAID"
)

var statusLabels = map[Status]string{
	StatusPending:   "Pending",
	StatusApproved:  "Approved",
	StatusRejected:  "Rejected",
	StatusCancelled: "Cancelled",
}

var typeLabels = map[Type]string{
	TypeAnnual:               "Annual Leave",
	TypeSick:                 "Sick Leave",
	TypeMaternity:            "Maternity Leave",
	TypePaternity:            "Paternity Leave",
	TypeStudy:                "Study Leave",
	TypeFamilyResponsibility: "Family Responsibility",
	TypeUnpaid:               "Unpaid Leave",
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// CoerceStatus tolerates the mixed status encodings seen from backends:
// enum strings or the numeric ordinals 0..3. Anything unrecognized is
// PENDING.
func CoerceStatus(v string) Status {
	switch Status(v) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return Status(v)
	}
	return StatusPending
}

func statusFromNumber(n int) Status {
	switch n {
	case 1:
		return StatusApproved
	case 2:
		return StatusRejected
	case 3:
		return StatusCancelled
	}
	return StatusPending
}

// CoerceType defaults unrecognized values to ANNUAL.
func CoerceType(v string) Type {
	switch Type(v) {
	case TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeStudy, TypeFamilyResponsibility, TypeUnpaid:
		return Type(v)
	}
	return TypeAnnual
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = statusFromNumber(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = CoerceStatus(raw)
	return nil
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = CoerceType(raw)
	return nil
}

// Requester is the summary the backend embeds on requests listed for
// decision-makers.
type Requester struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

type Request struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	User           *Requester `json:"user,omitempty"`
	LeaveType      Type       `json:"leaveType"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	Days           float64    `json:"days"`
	Reason         string     `json:"reason"`
	Status         Status     `json:"status"`
	SubmittedAt    string     `json:"submittedAt,omitempty"`
	DecidedBy      string     `json:"decidedBy,omitempty"`
	DecidedAt      string     `json:"decidedAt,omitempty"`
	ManagerComment string     `json:"managerComment,omitempty"`
}

func (r *Request) RequesterName() string {
	if r.User == nil {
		return r.UserID
	}
	if name := strings.TrimSpace(r.User.FirstName + " " + r.User.LastName); name != "" {
		return name
	}
	return r.User.Email
}

type Create struct {
	LeaveType Type   `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// Update carries only the fields the requester wants to change.
type Update struct {
	LeaveType *Type   `json:"leaveType,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// Changes reports whether applying the update would modify the request.
func (u Update) Changes(r *Request) bool {
	if u.LeaveType != nil && *u.LeaveType != r.LeaveType {
		return true
	}
	if u.StartDate != nil && *u.StartDate != r.StartDate {
		return true
	}
	if u.EndDate != nil && *u.EndDate != r.EndDate {
		return true
	}
	if u.Reason != nil && *u.Reason != r.Reason {
		return true
	}
	return false
}

// Decision is a manager's verdict on a pending request. Status must be
// APPROVED or REJECTED.
type Decision struct {
	Status         Status `json:"status"`
	ManagerComment string `json:"managerComment,omitempty"`
}
