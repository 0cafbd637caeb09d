package depttaskstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DepartmentTask) (id string, err error)
	GetByID(id string) (rec *dbmodels.DepartmentTask, err error)
	Update(id string, updMap map[string]interface{}) error
	ListByRequest(requestID string) (list []dbmodels.DepartmentTask, err error)
	ListByExecutor(personID string) (list []dbmodels.DepartmentTask, err error)
	ListIncoming(departmentID string) (list []dbmodels.DepartmentTask, err error)
	AddExecutor(rec dbmodels.TaskExecutor) error
	DeleteExecutors(taskID string) error
	ExistExecutorByPerson(personID string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DepartmentTask) (id string, err error) {
	err = i.db.
		Omit("Request", "Department").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.DepartmentTask, error) {
	rec := dbmodels.DepartmentTask{}
	err := i.db.
		Where("id = ?", id).
		Preload("Request").
		Preload("Department").
		Preload("Executors").
		Preload("Executors.Person").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.DepartmentTask{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.DepartmentTask, err error) {
	list = []dbmodels.DepartmentTask{}
	err = i.db.
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Preload("Department").
		Preload("Executors").
		Preload("Executors.Person").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// ListByExecutor задачи исполнителя, без задач отмененных и отклоненных заявок
func (i impl) ListByExecutor(personID string) (list []dbmodels.DepartmentTask, err error) {
	list = []dbmodels.DepartmentTask{}
	err = i.db.
		Where("id IN (?)", i.db.
			Model(&dbmodels.TaskExecutor{}).
			Select("department_task_id").
			Where("person_id = ?", personID)).
		Where("request_id IN (?)", i.db.
			Model(&dbmodels.Request{}).
			Select("id").
			Where("status NOT IN ?", []models.RequestStatus{models.RStatusCanceled, models.RStatusRejected})).
		Order("assigned_at DESC NULLS LAST").
		Preload("Request").
		Preload("Department").
		Preload("Executors").
		Preload("Executors.Person").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// ListIncoming входящие задачи отдела: не выполненные, по заявкам,
// которые уже видны отделам (не на согласовании и не закрыты отказом)
func (i impl) ListIncoming(departmentID string) (list []dbmodels.DepartmentTask, err error) {
	list = []dbmodels.DepartmentTask{}
	err = i.db.
		Where("department_id = ?", departmentID).
		Where("status <> ?", models.TStatusDone).
		Where("request_id IN (?)", i.db.
			Model(&dbmodels.Request{}).
			Select("id").
			Where("status NOT IN ?", []models.RequestStatus{
				models.RStatusPendingApproval, models.RStatusCanceled, models.RStatusRejected,
			})).
		Order("assigned_at DESC NULLS LAST").
		Preload("Request").
		Preload("Request.Author").
		Preload("Executors").
		Preload("Executors.Person").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) AddExecutor(rec dbmodels.TaskExecutor) error {
	return i.db.
		Omit("Person").
		Create(&rec).
		Error
}

func (i impl) DeleteExecutors(taskID string) error {
	return i.db.
		Where("department_task_id = ?", taskID).
		Delete(&dbmodels.TaskExecutor{}).
		Error
}

func (i impl) ExistExecutorByPerson(personID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.TaskExecutor{}).
		Where("person_id = ?", personID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
