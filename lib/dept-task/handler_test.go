package depttaskhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	depttaskstore "request-tools-backend/lib/dept-task/store"
	requeststore "request-tools-backend/lib/request/store"
	"request-tools-backend/models"
	auditapimodels "request-tools-backend/models/api/audit"
	dbmodels "request-tools-backend/models/db"
)

type fakeRequestStore struct {
	requeststore.Provider
	updates []map[string]interface{}
}

func (f *fakeRequestStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

type fakeTaskStore struct {
	depttaskstore.Provider
	tasks            []dbmodels.DepartmentTask
	updates          []map[string]interface{}
	executorsCleared []string
}

func (f *fakeTaskStore) ListByRequest(requestID string) ([]dbmodels.DepartmentTask, error) {
	return f.tasks, nil
}

func (f *fakeTaskStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

func (f *fakeTaskStore) DeleteExecutors(taskID string) error {
	f.executorsCleared = append(f.executorsCleared, taskID)
	return nil
}

type fakeAudit struct {
	entries []string
}

func (f *fakeAudit) Log(personID, requestID *string, action string) {
	f.entries = append(f.entries, action)
}

func (f *fakeAudit) List(limit, offset int) ([]auditapimodels.AuditEntryView, error) {
	return nil, nil
}

func (f *fakeAudit) ListByRequest(requestID string) ([]auditapimodels.AuditEntryView, error) {
	return nil, nil
}

func TestCloseIfAllDone(t *testing.T) {
	request := dbmodels.Request{
		BaseModel: dbmodels.BaseModel{ID: "req-1"},
		Title:     "Закупка мониторов",
		Status:    models.RStatusInProgress,
	}

	t.Run("все задачи выполнены", func(t *testing.T) {
		requestStore := &fakeRequestStore{}
		taskStore := &fakeTaskStore{tasks: []dbmodels.DepartmentTask{
			{Status: models.TStatusDone},
			{Status: models.TStatusDone},
		}}
		audit := &fakeAudit{}
		err := CloseIfAllDone(requestStore, taskStore, audit, request)
		require.NoError(t, err)
		require.Len(t, requestStore.updates, 1)
		require.Equal(t, models.RStatusCompleted, requestStore.updates[0]["status"])
		require.NotNil(t, requestStore.updates[0]["completed_at"])
		require.Len(t, audit.entries, 1)
	})

	t.Run("есть невыполненная задача", func(t *testing.T) {
		requestStore := &fakeRequestStore{}
		taskStore := &fakeTaskStore{tasks: []dbmodels.DepartmentTask{
			{Status: models.TStatusDone},
			{Status: models.TStatusInProgress},
		}}
		audit := &fakeAudit{}
		err := CloseIfAllDone(requestStore, taskStore, audit, request)
		require.NoError(t, err)
		require.Empty(t, requestStore.updates)
		require.Empty(t, audit.entries)
	})

	t.Run("без задач не закрывается", func(t *testing.T) {
		requestStore := &fakeRequestStore{}
		taskStore := &fakeTaskStore{}
		audit := &fakeAudit{}
		err := CloseIfAllDone(requestStore, taskStore, audit, request)
		require.NoError(t, err)
		require.Empty(t, requestStore.updates)
	})

	t.Run("заявка уже в конечном статусе", func(t *testing.T) {
		completed := request
		completed.Status = models.RStatusCompleted
		requestStore := &fakeRequestStore{}
		taskStore := &fakeTaskStore{tasks: []dbmodels.DepartmentTask{
			{Status: models.TStatusDone},
		}}
		audit := &fakeAudit{}
		err := CloseIfAllDone(requestStore, taskStore, audit, completed)
		require.NoError(t, err)
		require.Empty(t, requestStore.updates)
		require.Empty(t, audit.entries)
	})
}

func TestForwardToDepartment(t *testing.T) {
	request := dbmodels.Request{
		BaseModel: dbmodels.BaseModel{ID: "req-1"},
		Title:     "Закупка мониторов",
		Status:    models.RStatusInProgress,
	}
	task := dbmodels.DepartmentTask{
		BaseModel:    dbmodels.BaseModel{ID: "task-1"},
		RequestID:    request.ID,
		DepartmentID: "dep-old",
		Department:   &dbmodels.Department{BaseModel: dbmodels.BaseModel{ID: "dep-old"}, Name: "Отдел закупок"},
		Status:       models.TStatusInProgress,
		Executors: []dbmodels.TaskExecutor{
			{
				DepartmentTaskID: "task-1",
				PersonID:         "person-1",
				IsLead:           true,
				Person:           &dbmodels.Person{FullName: "Иванов Иван"},
			},
		},
	}
	newDept := dbmodels.Department{BaseModel: dbmodels.BaseModel{ID: "dep-new"}, Name: "Хозяйственный отдел"}

	t.Run("исполнители сняты, статус сброшен", func(t *testing.T) {
		taskStore := &fakeTaskStore{}
		audit := &fakeAudit{}
		err := ForwardToDepartment(taskStore, audit, "actor-1", task, request, newDept)
		require.NoError(t, err)
		require.Equal(t, []string{"task-1"}, taskStore.executorsCleared)
		require.Len(t, taskStore.updates, 1)
		updMap := taskStore.updates[0]
		require.Equal(t, "dep-new", updMap["department_id"])
		require.Equal(t, models.TStatusNew, updMap["status"])
		require.Nil(t, updMap["assigned_at"])
		require.Nil(t, updMap["completed_at"])
		require.Contains(t, updMap, "assigned_at")
		require.Contains(t, updMap, "completed_at")
	})

	t.Run("прежние исполнители в журнале", func(t *testing.T) {
		taskStore := &fakeTaskStore{}
		audit := &fakeAudit{}
		err := ForwardToDepartment(taskStore, audit, "actor-1", task, request, newDept)
		require.NoError(t, err)
		require.Len(t, audit.entries, 1)
		require.Contains(t, audit.entries[0], "Хозяйственный отдел")
		require.Contains(t, audit.entries[0], "Иванов Иван")
	})

	t.Run("без исполнителей журнал без списка снятых", func(t *testing.T) {
		bare := task
		bare.Executors = nil
		taskStore := &fakeTaskStore{}
		audit := &fakeAudit{}
		err := ForwardToDepartment(taskStore, audit, "actor-1", bare, request, newDept)
		require.NoError(t, err)
		require.Len(t, audit.entries, 1)
		require.NotContains(t, audit.entries[0], "сняты исполнители")
	})
}
