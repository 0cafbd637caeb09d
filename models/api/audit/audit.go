package auditapimodels

import (
	"time"

	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"
)

type AuditEntryView struct {
	ID         string    `json:"id"`
	PersonID   string    `json:"person_id,omitempty"`
	PersonName string    `json:"person_name,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

func AuditEntryConvert(rec dbmodels.AuditEntry) AuditEntryView {
	view := AuditEntryView{
		ID:        rec.ID,
		Action:    rec.Action,
		Timestamp: rec.CreatedAt,
	}
	if rec.PersonID != nil {
		view.PersonID = *rec.PersonID
	} else {
		view.PersonName = models.SystemUser
	}
	if rec.Person != nil {
		view.PersonName = rec.Person.GetFullName()
	}
	if rec.RequestID != nil {
		view.RequestID = *rec.RequestID
	}
	return view
}
