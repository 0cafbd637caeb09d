package categoryhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"request-tools-backend/db"
	audithandler "request-tools-backend/lib/audit"
	categorystore "request-tools-backend/lib/dicts/category/store"
	serviceerrors "request-tools-backend/lib/service-errors"
	dictapimodels "request-tools-backend/models/api/dict"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(actorID string, data dictapimodels.CategoryData) (id string, err error)
	Delete(id, actorID string) error
	List() ([]dictapimodels.CategoryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: categorystore.NewInstance(db.DB),
	}
}

type impl struct {
	store categorystore.Provider
}

func (i impl) Create(actorID string, data dictapimodels.CategoryData) (id string, err error) {
	rec := dbmodels.RequestCategory{
		Name: data.Name,
	}
	if err = rec.Validate(); err != nil {
		return "", err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		id, err = categorystore.NewInstance(tx).Create(rec)
		if err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Создана категория заявок %v", rec.Name))
		return nil
	})
	if err != nil {
		log.WithError(err).Error("ошибка создания категории")
		return "", err
	}
	return id, nil
}

func (i impl) Delete(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := categorystore.NewInstance(tx)
		existed, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if existed == nil {
			return serviceerrors.New(serviceerrors.NotFound, "категория не найдена")
		}
		if err = store.Delete(id); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil, fmt.Sprintf("Удалена категория заявок %v", existed.Name))
		return nil
	})
	if err != nil {
		log.WithField("category_id", id).WithError(err).Error("ошибка удаления категории")
		return err
	}
	return nil
}

func (i impl) List() ([]dictapimodels.CategoryView, error) {
	list, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка категорий")
		return nil, err
	}
	result := make([]dictapimodels.CategoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.CategoryConvert(rec))
	}
	return result, nil
}
