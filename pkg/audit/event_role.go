package audit

import "fmt"

// RoleChangeEvent represents an administrator changing a user's role.
type RoleChangeEvent struct {
	Username     string
	ClientIP     string
	TargetUser   string
	NewRole      string
	Success      bool
	ErrorMessage string
}

func (e RoleChangeEvent) MessageID() string {
	return "role"
}

func (e RoleChangeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s changed role of %s to %s", e.Username, e.TargetUser, e.NewRole)
	}
	msg := fmt.Sprintf("%s tried to change role of %s to %s", e.Username, e.TargetUser, e.NewRole)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RoleChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RoleChangeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RoleChangeEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDSubject: {
			"user": e.TargetUser,
			"role": e.NewRole,
		},
		SDIDAction: {
			"operation": "role",
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
