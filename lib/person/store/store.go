package personstore

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	serviceerrors "request-tools-backend/lib/service-errors"
	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Person) (id string, err error)
	GetByID(id string) (rec *dbmodels.Person, err error)
	GetByUserName(userName string) (rec *dbmodels.Person, err error)
	ExistByEmail(email string) (bool, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(page, limit int) (list []dbmodels.Person, err error)
	ListByDepartment(departmentID string) (list []dbmodels.Person, err error)
	CountActiveDirectorate(excludeID string) (int64, error)
	CountActiveDepartmentManagers(departmentID, excludeID string) (int64, error)
	ExistActiveByDepartment(departmentID string) (bool, error)
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

func (i impl) Create(rec dbmodels.Person) (id string, err error) {
	err = i.db.
		Omit("Department").
		Create(&rec).
		Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return "", serviceerrors.New(serviceerrors.DuplicateConstraint, "сотрудник с таким логином уже существует")
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Person, error) {
	rec := dbmodels.Person{}
	err := i.db.
		Where("id = ?", id).
		Preload("Department").
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

func (i impl) GetByUserName(userName string) (*dbmodels.Person, error) {
	rec := dbmodels.Person{}
	err := i.db.
		Where("user_name = ?", userName).
		Preload("Department").
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

func (i impl) ExistByEmail(email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	err := i.db.
		Model(&dbmodels.Person{}).
		Where("email = ?", email).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Person{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return serviceerrors.New(serviceerrors.DuplicateConstraint, "сотрудник с таким логином уже существует")
		}
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Person{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List(page, limit int) (list []dbmodels.Person, err error) {
	list = []dbmodels.Person{}
	offset := (page - 1) * limit
	err = i.db.
		Order("full_name ASC").
		Limit(limit).
		Offset(offset).
		Preload("Department").
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

func (i impl) ListByDepartment(departmentID string) (list []dbmodels.Person, err error) {
	list = []dbmodels.Person{}
	err = i.db.
		Where("department_id = ?", departmentID).
		Order("full_name ASC").
		Preload("Department").
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

// CountActiveDirectorate кол-во активных сотрудников дирекции, кроме excludeID
func (i impl) CountActiveDirectorate(excludeID string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Person{}).
		Where("is_active = true").
		Where("rank IN ?", []models.Rank{models.RankDirector, models.RankDeputyDirector}).
		Where("id <> ?", excludeID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveDepartmentManagers кол-во активных руководителей отдела, кроме excludeID
func (i impl) CountActiveDepartmentManagers(departmentID, excludeID string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Person{}).
		Where("is_active = true").
		Where("department_id = ?", departmentID).
		Where("rank IN ?", []models.Rank{models.RankHead, models.RankDeputyHead}).
		Where("id <> ?", excludeID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ExistActiveByDepartment(departmentID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Person{}).
		Where("is_active = true").
		Where("department_id = ?", departmentID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
