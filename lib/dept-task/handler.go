package depttaskhandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"request-tools-backend/db"
	audithandler "request-tools-backend/lib/audit"
	depttaskstore "request-tools-backend/lib/dept-task/store"
	departmentstore "request-tools-backend/lib/dicts/department/store"
	personstore "request-tools-backend/lib/person/store"
	requeststore "request-tools-backend/lib/request/store"
	serviceerrors "request-tools-backend/lib/service-errors"
	"request-tools-backend/lib/utils/lock"
	"request-tools-backend/models"
	requestapimodels "request-tools-backend/models/api/request"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	AssignExecutor(taskID, actorID string, data requestapimodels.AssignExecutorData) error
	Pause(taskID, actorID string) error
	Resume(taskID, actorID string) error
	Complete(ctx context.Context, taskID, actorID string) error
	Forward(taskID, actorID string, data requestapimodels.ForwardData) error
	GetByID(taskID string) (requestapimodels.TaskView, error)
	ListIncoming(departmentID string) ([]requestapimodels.TaskView, error)
	ListByExecutor(personID string) ([]requestapimodels.TaskView, error)
	ListByRequest(requestID string) ([]requestapimodels.TaskView, error)
}

var Instance Provider

const completeLockTimeout = 10 * time.Second

func NewHandler() {
	Instance = impl{
		store:           depttaskstore.NewInstance(db.DB),
		requestStore:    requeststore.NewInstance(db.DB),
		personStore:     personstore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           depttaskstore.Provider
	requestStore    requeststore.Provider
	personStore     personstore.Provider
	departmentStore departmentstore.Provider
}

func (i impl) GetLogger(taskID string) *log.Entry {
	return log.WithField("task_id", taskID)
}

func isExecutor(task dbmodels.DepartmentTask, personID string) bool {
	for _, executor := range task.Executors {
		if executor.PersonID == personID {
			return true
		}
	}
	return false
}

// checkManager руководство отдела задачи, дирекция или админ
func checkManager(store personstore.Provider, task dbmodels.DepartmentTask, actorID string) (*dbmodels.Person, error) {
	actor, err := store.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, serviceerrors.New(serviceerrors.NotFound, "сотрудник не найден")
	}
	if !actor.CanManageTask(task.DepartmentID) {
		return nil, serviceerrors.New(serviceerrors.AuthorizationDenied, "операция доступна руководству отдела")
	}
	return actor, nil
}

// checkActor руководство отдела или назначенный исполнитель
func checkActor(store personstore.Provider, task dbmodels.DepartmentTask, actorID string) error {
	if isExecutor(task, actorID) {
		return nil
	}
	_, err := checkManager(store, task, actorID)
	return err
}

func requestIsWorkable(rec dbmodels.Request) error {
	switch rec.Status {
	case models.RStatusNew, models.RStatusInProgress:
		return nil
	case models.RStatusPendingApproval, models.RStatusClarification:
		return serviceerrors.New(serviceerrors.InvalidState, "заявка еще не согласована")
	default:
		return serviceerrors.Errorf(serviceerrors.InvalidState, "заявка в статусе \"%v\" не допускает работу с задачами", rec.Status)
	}
}

func (i impl) AssignExecutor(taskID, actorID string, data requestapimodels.AssignExecutorData) error {
	logger := i.GetLogger(taskID)
	if err := data.Validate(); err != nil {
		return err
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		taskStore := depttaskstore.NewInstance(tx)
		task, err := taskStore.GetByID(taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return serviceerrors.New(serviceerrors.NotFound, "задача не найдена")
		}
		requestStore := requeststore.NewInstance(tx)
		request, err := requestStore.GetByIDForUpdate(task.RequestID)
		if err != nil {
			return err
		}
		if request == nil {
			return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
		}
		if err = requestIsWorkable(*request); err != nil {
			return err
		}
		personStore := personstore.NewInstance(tx)
		if _, err = checkManager(personStore, *task, actorID); err != nil {
			return err
		}
		if !task.Status.AllowAssign() {
			return serviceerrors.Errorf(serviceerrors.InvalidState, "задаче в статусе \"%v\" нельзя назначить исполнителя", task.Status)
		}
		executor, err := personStore.GetByID(data.PersonID)
		if err != nil {
			return err
		}
		if executor == nil || !executor.IsActive {
			return serviceerrors.New(serviceerrors.NotFound, "исполнитель не найден")
		}
		if executor.DepartmentID != task.DepartmentID {
			return serviceerrors.New(serviceerrors.ValidationError, "исполнитель из другого отдела")
		}
		// ответственный в задаче один, переназначение заменяет его
		if err = taskStore.DeleteExecutors(taskID); err != nil {
			return err
		}
		now := time.Now()
		err = taskStore.AddExecutor(dbmodels.TaskExecutor{
			DepartmentTaskID: taskID,
			PersonID:         data.PersonID,
			IsLead:           true,
			AssignedAt:       now,
		})
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status": models.TStatusInProgress,
		}
		if task.AssignedAt == nil {
			updMap["assigned_at"] = now
		}
		if err = taskStore.Update(taskID, updMap); err != nil {
			return err
		}
		// первое назначение вводит заявку в работу
		if request.Status == models.RStatusNew {
			if err = requestStore.Update(request.ID, map[string]interface{}{"status": models.RStatusInProgress}); err != nil {
				return err
			}
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, &task.RequestID,
			fmt.Sprintf("По заявке \"%v\" назначен исполнитель %v", request.Title, executor.GetFullName()))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка назначения исполнителя")
		return err
	}
	logger.Info("назначен исполнитель задачи")
	return nil
}

func (i impl) Pause(taskID, actorID string) error {
	return i.toggle(taskID, actorID, true)
}

func (i impl) Resume(taskID, actorID string) error {
	return i.toggle(taskID, actorID, false)
}

func (i impl) toggle(taskID, actorID string, pause bool) error {
	logger := i.GetLogger(taskID)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		taskStore := depttaskstore.NewInstance(tx)
		task, err := taskStore.GetByID(taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return serviceerrors.New(serviceerrors.NotFound, "задача не найдена")
		}
		if err = checkActor(personstore.NewInstance(tx), *task, actorID); err != nil {
			return err
		}
		var target models.TaskStatus
		var action string
		if pause {
			if !task.Status.AllowPause() {
				return serviceerrors.Errorf(serviceerrors.InvalidState, "задачу в статусе \"%v\" нельзя поставить на паузу", task.Status)
			}
			target = models.TStatusPaused
			action = "поставлена на паузу"
		} else {
			if !task.Status.AllowResume() {
				return serviceerrors.Errorf(serviceerrors.InvalidState, "задачу в статусе \"%v\" нельзя возобновить", task.Status)
			}
			target = models.TStatusInProgress
			action = "возобновлена"
		}
		if err = taskStore.Update(taskID, map[string]interface{}{"status": target}); err != nil {
			return err
		}
		title := ""
		if task.Request != nil {
			title = task.Request.Title
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, &task.RequestID,
			fmt.Sprintf("Задача по заявке \"%v\" %v", title, action))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка смены статуса задачи")
		return err
	}
	logger.Info("статус задачи изменен")
	return nil
}

// Complete выполняет задачу и закрывает заявку, когда не осталось
// невыполненных задач. Завершения по одной заявке сериализуются
// блокировкой по ее идентификатору.
func (i impl) Complete(ctx context.Context, taskID, actorID string) error {
	logger := i.GetLogger(taskID)
	task, err := i.store.GetByID(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return serviceerrors.New(serviceerrors.NotFound, "задача не найдена")
	}
	requestID := task.RequestID
	ok, err := lock.WithDelay(ctx, "request-complete-"+requestID, completeLockTimeout, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			requestStore := requeststore.NewInstance(tx)
			request, err := requestStore.GetByIDForUpdate(requestID)
			if err != nil {
				return err
			}
			if request == nil {
				return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
			}
			taskStore := depttaskstore.NewInstance(tx)
			task, err := taskStore.GetByID(taskID)
			if err != nil {
				return err
			}
			if task == nil {
				return serviceerrors.New(serviceerrors.NotFound, "задача не найдена")
			}
			if err = checkActor(personstore.NewInstance(tx), *task, actorID); err != nil {
				return err
			}
			if !task.Status.AllowComplete() {
				return serviceerrors.Errorf(serviceerrors.InvalidState, "задачу в статусе \"%v\" нельзя выполнить", task.Status)
			}
			now := time.Now()
			updMap := map[string]interface{}{
				"status":       models.TStatusDone,
				"completed_at": now,
			}
			if err = taskStore.Update(taskID, updMap); err != nil {
				return err
			}
			auditHandler := audithandler.NewHandlerWithTx(tx)
			auditHandler.Log(&actorID, &requestID,
				fmt.Sprintf("Выполнена задача отдела по заявке \"%v\"", request.Title))
			return CloseIfAllDone(requestStore, taskStore, auditHandler, *request)
		})
	})
	if err != nil {
		logger.WithError(err).Error("ошибка выполнения задачи")
		return err
	}
	if !ok {
		return serviceerrors.New(serviceerrors.InvalidState, "заявка занята другой операцией, повторите позже")
	}
	logger.Info("задача выполнена")
	return nil
}

// CloseIfAllDone завершает заявку, когда выполнены все ее задачи.
// Повторный вызов по уже завершенной заявке ничего не делает.
func CloseIfAllDone(requestStore requeststore.Provider, taskStore depttaskstore.Provider, auditHandler audithandler.Provider, request dbmodels.Request) error {
	if request.Status.IsTerminal() {
		return nil
	}
	tasks, err := taskStore.ListByRequest(request.ID)
	if err != nil {
		return err
	}
	request.Tasks = tasks
	if !request.AllTasksDone() {
		return nil
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"status":       models.RStatusCompleted,
		"completed_at": now,
	}
	if err = requestStore.Update(request.ID, updMap); err != nil {
		return err
	}
	auditHandler.Log(nil, &request.ID,
		fmt.Sprintf("Заявка \"%v\" завершена, все задачи выполнены", request.Title))
	return nil
}

// Forward передает задачу другому отделу. Живые исполнители снимаются,
// их состав фиксируется в журнале.
func (i impl) Forward(taskID, actorID string, data requestapimodels.ForwardData) error {
	logger := i.GetLogger(taskID)
	if err := data.Validate(); err != nil {
		return err
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		taskStore := depttaskstore.NewInstance(tx)
		task, err := taskStore.GetByID(taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return serviceerrors.New(serviceerrors.NotFound, "задача не найдена")
		}
		if _, err = checkManager(personstore.NewInstance(tx), *task, actorID); err != nil {
			return err
		}
		if task.Status == models.TStatusDone {
			return serviceerrors.New(serviceerrors.InvalidState, "выполненную задачу нельзя передать")
		}
		if data.DepartmentID == task.DepartmentID {
			return serviceerrors.New(serviceerrors.ValidationError, "задача уже в этом отделе")
		}
		newDept, err := departmentstore.NewInstance(tx).GetByID(data.DepartmentID)
		if err != nil {
			return err
		}
		if newDept == nil {
			return serviceerrors.New(serviceerrors.NotFound, "отдел не найден")
		}
		request, err := requeststore.NewInstance(tx).GetByIDForUpdate(task.RequestID)
		if err != nil {
			return err
		}
		if request == nil {
			return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
		}
		if request.Status.IsTerminal() {
			return serviceerrors.Errorf(serviceerrors.InvalidState, "заявка в статусе \"%v\" не допускает передачу задач", request.Status)
		}
		return ForwardToDepartment(taskStore, audithandler.NewHandlerWithTx(tx), actorID, *task, *request, *newDept)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка передачи задачи")
		return err
	}
	logger.Info("задача передана другому отделу")
	return nil
}

// ForwardToDepartment переводит задачу в новый отдел: исполнители
// снимаются, локальный статус сбрасывается на "Новая", прежний состав
// фиксируется в журнале.
func ForwardToDepartment(taskStore depttaskstore.Provider, auditHandler audithandler.Provider, actorID string, task dbmodels.DepartmentTask, request dbmodels.Request, newDept dbmodels.Department) error {
	priorExecutors := make([]string, 0, len(task.Executors))
	for _, executor := range task.Executors {
		if executor.Person != nil {
			priorExecutors = append(priorExecutors, executor.Person.GetFullName())
		}
	}
	if err := taskStore.DeleteExecutors(task.ID); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"department_id": newDept.ID,
		"status":        models.TStatusNew,
		"assigned_at":   nil,
		"completed_at":  nil,
	}
	if err := taskStore.Update(task.ID, updMap); err != nil {
		return err
	}
	oldName := ""
	if task.Department != nil {
		oldName = task.Department.Name
	}
	action := fmt.Sprintf("Задача по заявке \"%v\" передана из отдела \"%v\" в отдел \"%v\"", request.Title, oldName, newDept.Name)
	if len(priorExecutors) != 0 {
		action += fmt.Sprintf(", сняты исполнители: %v", strings.Join(priorExecutors, ", "))
	}
	auditHandler.Log(&actorID, &task.RequestID, action)
	return nil
}

func (i impl) GetByID(taskID string) (requestapimodels.TaskView, error) {
	task, err := i.store.GetByID(taskID)
	if err != nil {
		i.GetLogger(taskID).WithError(err).Error("ошибка поиска задачи")
		return requestapimodels.TaskView{}, err
	}
	if task == nil {
		return requestapimodels.TaskView{}, serviceerrors.New(serviceerrors.NotFound, "задача не найдена")
	}
	return requestapimodels.TaskConvert(*task), nil
}

func (i impl) ListIncoming(departmentID string) ([]requestapimodels.TaskView, error) {
	list, err := i.store.ListIncoming(departmentID)
	if err != nil {
		log.WithField("department_id", departmentID).
			WithError(err).
			Error("ошибка получения входящих задач отдела")
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) ListByExecutor(personID string) ([]requestapimodels.TaskView, error) {
	list, err := i.store.ListByExecutor(personID)
	if err != nil {
		log.WithField("person_id", personID).
			WithError(err).
			Error("ошибка получения задач исполнителя")
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) ListByRequest(requestID string) ([]requestapimodels.TaskView, error) {
	list, err := i.store.ListByRequest(requestID)
	if err != nil {
		log.WithField("request_id", requestID).
			WithError(err).
			Error("ошибка получения задач заявки")
		return nil, err
	}
	return convertList(list), nil
}

func convertList(list []dbmodels.DepartmentTask) []requestapimodels.TaskView {
	result := make([]requestapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.TaskConvert(rec))
	}
	return result
}
