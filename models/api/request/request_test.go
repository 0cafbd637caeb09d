package requestapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"
)

func TestApproveDataValidate(t *testing.T) {
	t.Run("без целевого статуса", func(t *testing.T) {
		require.NoError(t, ApproveData{}.Validate())
	})

	t.Run("допустимые целевые статусы", func(t *testing.T) {
		for _, target := range models.RStatusPendingApproval.ApproveTargets() {
			target := target
			require.NoError(t, ApproveData{TargetStatus: &target}.Validate())
		}
	})

	t.Run("терминальный целевой статус", func(t *testing.T) {
		target := models.RStatusCompleted
		err := ApproveData{TargetStatus: &target}.Validate()
		require.Error(t, err)
	})

	t.Run("недопустимый приоритет", func(t *testing.T) {
		err := ApproveData{Priority: "Срочный"}.Validate()
		require.Error(t, err)
	})
}

func TestTaskConvertLead(t *testing.T) {
	rec := dbmodels.DepartmentTask{
		BaseModel: dbmodels.BaseModel{ID: "task-1"},
		Status:    models.TStatusInProgress,
		Executors: []dbmodels.TaskExecutor{
			{PersonID: "person-1", Person: &dbmodels.Person{FullName: "Петров Петр"}},
			{PersonID: "person-2", IsLead: true, Person: &dbmodels.Person{FullName: "Иванов Иван"}},
		},
	}
	view := TaskConvert(rec)
	require.Equal(t, "Иванов Иван", view.LeadName)
	require.Len(t, view.Executors, 2)

	rec.Executors = nil
	require.Empty(t, TaskConvert(rec).LeadName)
}
