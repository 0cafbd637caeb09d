package personhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"request-tools-backend/db"
	audithandler "request-tools-backend/lib/audit"
	auditstore "request-tools-backend/lib/audit/store"
	depttaskstore "request-tools-backend/lib/dept-task/store"
	departmentstore "request-tools-backend/lib/dicts/department/store"
	personstore "request-tools-backend/lib/person/store"
	requeststore "request-tools-backend/lib/request/store"
	serviceerrors "request-tools-backend/lib/service-errors"
	authutils "request-tools-backend/lib/utils/auth-utils"
	"request-tools-backend/models"
	personapimodels "request-tools-backend/models/api/person"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(actorID string, data personapimodels.CreatePersonData) (id string, err error)
	Update(id, actorID string, data personapimodels.UpdatePersonData) error
	Deactivate(id, actorID string) error
	Delete(id, actorID string) error
	GetByID(id string) (personapimodels.PersonView, error)
	List(page, limit int) ([]personapimodels.PersonView, error)
	ListByDepartment(departmentID string) ([]personapimodels.PersonView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           personstore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           personstore.Provider
	departmentStore departmentstore.Provider
}

func (i impl) GetLogger(id string) *log.Entry {
	return log.WithField("person_id", id)
}

// validateCreation у рядового сотрудника в отделе должен быть
// действующий руководитель
func (i impl) validateCreation(store personstore.Provider, rec dbmodels.Person) error {
	if rec.Rank != models.RankEmployee || rec.IsSystemAdmin {
		return nil
	}
	count, err := store.CountActiveDepartmentManagers(rec.DepartmentID, "")
	if err != nil {
		return err
	}
	if count == 0 {
		return serviceerrors.New(serviceerrors.HierarchyViolation, "в отделе нет действующего руководителя для нового сотрудника")
	}
	return nil
}

// validateDeactivation запрещает оставить организацию без дирекции,
// а отдел без руководства
func (i impl) validateDeactivation(store personstore.Provider, rec dbmodels.Person) error {
	switch {
	case rec.Rank.IsDirectorate():
		count, err := store.CountActiveDirectorate(rec.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return serviceerrors.New(serviceerrors.HierarchyViolation, "организация останется без действующего директора или заместителя")
		}
	case rec.Rank.IsDepartmentManager():
		count, err := store.CountActiveDepartmentManagers(rec.DepartmentID, rec.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return serviceerrors.New(serviceerrors.HierarchyViolation, "отдел останется без действующего руководителя")
		}
	}
	return nil
}

func (i impl) Create(actorID string, data personapimodels.CreatePersonData) (id string, err error) {
	dept, err := i.departmentStore.GetByID(data.DepartmentID)
	if err != nil {
		return "", err
	}
	if dept == nil {
		return "", serviceerrors.New(serviceerrors.NotFound, "отдел не найден")
	}
	rec := dbmodels.Person{
		UserName:      data.UserName,
		Password:      authutils.GetMD5Hash(data.Password),
		FullName:      data.FullName,
		Email:         data.Email,
		PhoneNumber:   data.PhoneNumber,
		IsSystemAdmin: data.IsSystemAdmin,
		IsActive:      true,
		DepartmentID:  data.DepartmentID,
		Rank:          data.Rank,
	}
	if err = rec.Validate(); err != nil {
		return "", err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := personstore.NewInstance(tx)
		existed, err := store.GetByUserName(data.UserName)
		if err != nil {
			return err
		}
		if existed != nil {
			return serviceerrors.New(serviceerrors.DuplicateConstraint, "сотрудник с таким логином уже существует")
		}
		exist, err := store.ExistByEmail(data.Email)
		if err != nil {
			return err
		}
		if exist {
			return serviceerrors.New(serviceerrors.DuplicateConstraint, "сотрудник с такой почтой уже существует")
		}
		if err = i.validateCreation(store, rec); err != nil {
			return err
		}
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Создан сотрудник %v (%v)", rec.FullName, rec.UserName))
		return nil
	})
	if err != nil {
		i.GetLogger(id).WithError(err).Error("ошибка создания сотрудника")
		return "", err
	}
	i.GetLogger(id).Info("создан сотрудник")
	return id, nil
}

func (i impl) Update(id, actorID string, data personapimodels.UpdatePersonData) error {
	logger := i.GetLogger(id)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := personstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "сотрудник не найден")
		}
		updMap := map[string]interface{}{
			"full_name":     data.FullName,
			"email":         data.Email,
			"phone_number":  data.PhoneNumber,
			"department_id": data.DepartmentID,
			"rank":          data.Rank,
		}
		if data.Password != nil {
			updMap["password"] = authutils.GetMD5Hash(*data.Password)
		}
		if data.IsActive != nil {
			// снятие активности равносильно деактивации, проверка
			// оргструктуры в той же транзакции
			if rec.IsActive && !*data.IsActive {
				if err = i.validateDeactivation(store, *rec); err != nil {
					return err
				}
				audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Деактивирован сотрудник %v", rec.FullName))
			}
			updMap["is_active"] = *data.IsActive
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Изменена карточка сотрудника %v", rec.FullName))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления сотрудника")
		return err
	}
	logger.Info("обновлена карточка сотрудника")
	return nil
}

func (i impl) Deactivate(id, actorID string) error {
	logger := i.GetLogger(id)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := personstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "сотрудник не найден")
		}
		if !rec.IsActive {
			return serviceerrors.New(serviceerrors.InvalidState, "сотрудник уже деактивирован")
		}
		if err = i.validateDeactivation(store, *rec); err != nil {
			return err
		}
		if err = store.Update(id, map[string]interface{}{"is_active": false}); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Деактивирован сотрудник %v", rec.FullName))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка деактивации сотрудника")
		return err
	}
	logger.Info("сотрудник деактивирован")
	return nil
}

// Delete удаляет учетку физически, только если за сотрудником нет
// истории. Автора заявок или исполнителя лишь деактивируем, ссылки
// истории остаются ведущими на неактивную учетку.
func (i impl) Delete(id, actorID string) error {
	logger := i.GetLogger(id)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := personstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "сотрудник не найден")
		}
		if rec.IsActive {
			if err = i.validateDeactivation(store, *rec); err != nil {
				return err
			}
		}
		referenced, err := i.hasHistory(tx, id)
		if err != nil {
			return err
		}
		if referenced {
			if err = store.Update(id, map[string]interface{}{"is_active": false}); err != nil {
				return err
			}
			audithandler.NewHandlerWithTx(tx).Log(&actorID, nil,
				fmt.Sprintf("Сотрудник %v деактивирован вместо удаления, за ним числится история", rec.FullName))
			return nil
		}
		if err = store.Delete(id); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Удален сотрудник %v (%v)", rec.FullName, rec.UserName))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления сотрудника")
		return err
	}
	logger.Info("сотрудник удален")
	return nil
}

func (i impl) hasHistory(tx *gorm.DB, personID string) (bool, error) {
	count, err := requeststore.NewInstance(tx).CountByAuthor(personID)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	exist, err := depttaskstore.NewInstance(tx).ExistExecutorByPerson(personID)
	if err != nil {
		return false, err
	}
	if exist {
		return true, nil
	}
	return auditstore.NewInstance(tx).ExistByPerson(personID)
}

func (i impl) GetByID(id string) (personapimodels.PersonView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.GetLogger(id).WithError(err).Error("ошибка поиска сотрудника")
		return personapimodels.PersonView{}, err
	}
	if rec == nil {
		return personapimodels.PersonView{}, serviceerrors.New(serviceerrors.NotFound, "сотрудник не найден")
	}
	return personapimodels.PersonConvert(*rec), nil
}

func (i impl) List(page, limit int) ([]personapimodels.PersonView, error) {
	list, err := i.store.List(page, limit)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка сотрудников")
		return nil, err
	}
	result := make([]personapimodels.PersonView, 0, len(list))
	for _, rec := range list {
		result = append(result, personapimodels.PersonConvert(rec))
	}
	return result, nil
}

func (i impl) ListByDepartment(departmentID string) ([]personapimodels.PersonView, error) {
	list, err := i.store.ListByDepartment(departmentID)
	if err != nil {
		log.WithField("department_id", departmentID).
			WithError(err).
			Error("ошибка получения сотрудников отдела")
		return nil, err
	}
	result := make([]personapimodels.PersonView, 0, len(list))
	for _, rec := range list {
		result = append(result, personapimodels.PersonConvert(rec))
	}
	return result, nil
}
