package auditapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"
)

func TestAuditEntryConvert(t *testing.T) {
	t.Run("действие сотрудника", func(t *testing.T) {
		personID := "person-1"
		view := AuditEntryConvert(dbmodels.AuditEntry{
			PersonID: &personID,
			Person:   &dbmodels.Person{FullName: "Иванов Иван"},
			Action:   "Вход в систему",
		})
		require.Equal(t, "person-1", view.PersonID)
		require.Equal(t, "Иванов Иван", view.PersonName)
	})

	t.Run("системное действие", func(t *testing.T) {
		requestID := "req-1"
		view := AuditEntryConvert(dbmodels.AuditEntry{
			RequestID: &requestID,
			Action:    "Заявка завершена",
		})
		require.Empty(t, view.PersonID)
		require.Equal(t, models.SystemUser, view.PersonName)
		require.Equal(t, "req-1", view.RequestID)
	})
}
