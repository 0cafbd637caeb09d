package departmenthandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"request-tools-backend/db"
	audithandler "request-tools-backend/lib/audit"
	departmentstore "request-tools-backend/lib/dicts/department/store"
	personstore "request-tools-backend/lib/person/store"
	serviceerrors "request-tools-backend/lib/service-errors"
	dictapimodels "request-tools-backend/models/api/dict"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(actorID string, data dictapimodels.DepartmentData) (id string, err error)
	Update(id, actorID string, data dictapimodels.DepartmentData) error
	Delete(id, actorID string) error
	GetByID(id string) (dictapimodels.DepartmentView, error)
	List() ([]dictapimodels.DepartmentView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: departmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store departmentstore.Provider
}

func (i impl) Create(actorID string, data dictapimodels.DepartmentData) (id string, err error) {
	rec := dbmodels.Department{
		Name: data.Name,
	}
	if err = rec.Validate(); err != nil {
		return "", err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		id, err = departmentstore.NewInstance(tx).Create(rec)
		if err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Создан отдел %v", rec.Name))
		return nil
	})
	if err != nil {
		log.WithError(err).Error("ошибка создания отдела")
		return "", err
	}
	return id, nil
}

func (i impl) Update(id, actorID string, data dictapimodels.DepartmentData) error {
	rec := dbmodels.Department{Name: data.Name}
	if err := rec.Validate(); err != nil {
		return err
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := departmentstore.NewInstance(tx)
		existed, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if existed == nil {
			return serviceerrors.New(serviceerrors.NotFound, "отдел не найден")
		}
		if err = store.Update(id, map[string]interface{}{"name": data.Name}); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil,
			fmt.Sprintf("Отдел %v переименован в %v", existed.Name, data.Name))
		return nil
	})
	if err != nil {
		log.WithField("department_id", id).WithError(err).Error("ошибка обновления отдела")
		return err
	}
	return nil
}

// Delete отдел с действующими сотрудниками удалить нельзя
func (i impl) Delete(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := departmentstore.NewInstance(tx)
		existed, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if existed == nil {
			return serviceerrors.New(serviceerrors.NotFound, "отдел не найден")
		}
		exist, err := personstore.NewInstance(tx).ExistActiveByDepartment(id)
		if err != nil {
			return err
		}
		if exist {
			return serviceerrors.New(serviceerrors.InvalidState, "в отделе есть действующие сотрудники")
		}
		if err = store.Delete(id); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Удален отдел %v", existed.Name))
		return nil
	})
	if err != nil {
		log.WithField("department_id", id).WithError(err).Error("ошибка удаления отдела")
		return err
	}
	return nil
}

func (i impl) GetByID(id string) (dictapimodels.DepartmentView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("department_id", id).WithError(err).Error("ошибка поиска отдела")
		return dictapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, serviceerrors.New(serviceerrors.NotFound, "отдел не найден")
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) List() ([]dictapimodels.DepartmentView, error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка отделов")
		return nil, err
	}
	result := make([]dictapimodels.DepartmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.DepartmentConvert(rec))
	}
	return result, nil
}
