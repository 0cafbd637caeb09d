package categorystore

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	serviceerrors "request-tools-backend/lib/service-errors"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RequestCategory) (id string, err error)
	GetByID(id string) (rec *dbmodels.RequestCategory, err error)
	Delete(id string) error
	List() (list []dbmodels.RequestCategory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const uniqueViolationCode = "23505"

func (i impl) Create(rec dbmodels.RequestCategory) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return "", serviceerrors.New(serviceerrors.DuplicateConstraint, "категория с таким названием уже существует")
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.RequestCategory, error) {
	rec := dbmodels.RequestCategory{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) Delete(id string) error {
	rec := dbmodels.RequestCategory{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List() (list []dbmodels.RequestCategory, err error) {
	list = []dbmodels.RequestCategory{}
	err = i.db.
		Order("name ASC").
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
