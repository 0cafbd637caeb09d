package audithandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"request-tools-backend/db"
	auditstore "request-tools-backend/lib/audit/store"
	auditapimodels "request-tools-backend/models/api/audit"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Log(personID, requestID *string, action string)
	List(limit, offset int) ([]auditapimodels.AuditEntryView, error)
	ListByRequest(requestID string) ([]auditapimodels.AuditEntryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: auditstore.NewInstance(db.DB),
	}
}

// NewHandlerWithTx журнал в рамках транзакции вызывающей операции
func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: auditstore.NewInstance(tx),
	}
}

type impl struct {
	store auditstore.Provider
}

// Log пишет запись журнала. Ошибка записи не валит операцию,
// только логируется.
func (i impl) Log(personID, requestID *string, action string) {
	rec := dbmodels.AuditEntry{
		PersonID:  personID,
		RequestID: requestID,
		Action:    action,
	}
	_, err := i.store.Create(rec)
	if err != nil {
		logger := log.WithField("action", action)
		if personID != nil {
			logger = logger.WithField("person_id", *personID)
		}
		if requestID != nil {
			logger = logger.WithField("request_id", *requestID)
		}
		logger.WithError(err).Error("ошибка записи в журнал действий")
	}
}

func (i impl) List(limit, offset int) ([]auditapimodels.AuditEntryView, error) {
	list, err := i.store.List(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]auditapimodels.AuditEntryView, 0, len(list))
	for _, rec := range list {
		result = append(result, auditapimodels.AuditEntryConvert(rec))
	}
	return result, nil
}

func (i impl) ListByRequest(requestID string) ([]auditapimodels.AuditEntryView, error) {
	list, err := i.store.ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	result := make([]auditapimodels.AuditEntryView, 0, len(list))
	for _, rec := range list {
		result = append(result, auditapimodels.AuditEntryConvert(rec))
	}
	return result, nil
}
