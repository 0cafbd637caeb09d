package auditstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AuditEntry) (id string, err error)
	List(limit, offset int) (list []dbmodels.AuditEntry, err error)
	ListByRequest(requestID string) (list []dbmodels.AuditEntry, err error)
	ExistByPerson(personID string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AuditEntry) (id string, err error) {
	err = i.db.
		Omit("Person").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(limit, offset int) (list []dbmodels.AuditEntry, err error) {
	list = []dbmodels.AuditEntry{}
	err = i.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Person").
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

func (i impl) ListByRequest(requestID string) (list []dbmodels.AuditEntry, err error) {
	list = []dbmodels.AuditEntry{}
	err = i.db.
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Preload("Person").
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

func (i impl) ExistByPerson(personID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.AuditEntry{}).
		Where("person_id = ?", personID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
