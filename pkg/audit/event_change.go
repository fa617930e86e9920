package audit

import "fmt"

// ChangeEvent represents a write to a catalog record: a create, update,
// delete or link operation against books, authors, libraries or posts.
type ChangeEvent struct {
	Username     string
	ClientIP     string
	Operation    string
	Subject      string
	Success      bool
	ErrorMessage string
}

func (e ChangeEvent) MessageID() string {
	return e.Operation
}

func (e ChangeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on %s", e.Username, e.Operation, e.Subject)
	}
	msg := fmt.Sprintf("%s tried to %s %s", e.Username, e.Operation, e.Subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ChangeEvent) Facility() int {
	return FacilityAuth
}

func (e ChangeEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDSubject: {
			"resource": e.Subject,
		},
		SDIDAction: {
			"operation": e.Operation,
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
