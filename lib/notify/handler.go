package notifyhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"request-tools-backend/db"
	personstore "request-tools-backend/lib/person/store"
	"request-tools-backend/lib/smtp"
)

type Provider interface {
	RequestPendingApproval(requestID, title, authorName, departmentID string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		personStore: personstore.NewInstance(db.DB),
	}
}

type impl struct {
	personStore personstore.Provider
}

// RequestPendingApproval сообщает руководству отдела автора о заявке,
// ожидающей согласования. Ошибки отправки не прерывают вызывающий код.
func (i impl) RequestPendingApproval(requestID, title, authorName, departmentID string) {
	logger := log.WithField("request_id", requestID)
	if smtp.Instance == nil || !smtp.Instance.IsConfigured() {
		return
	}
	persons, err := i.personStore.ListByDepartment(departmentID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения руководителей отдела для уведомления")
		return
	}
	subject := "Новая заявка на согласование"
	message := fmt.Sprintf("Сотрудник %v подал заявку \"%v\". Заявка ожидает вашего согласования.", authorName, title)
	for _, person := range persons {
		if !person.IsActive || !person.Rank.IsManager() || person.Email == "" {
			continue
		}
		if err = smtp.Instance.SendEMail(person.Email, message, subject); err != nil {
			logger.WithError(err).
				WithField("recipient", person.Email).
				Error("ошибка отправки уведомления о заявке")
		}
	}
}
