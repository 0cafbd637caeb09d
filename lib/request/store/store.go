package requeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"request-tools-backend/models"
	requestapimodels "request-tools-backend/models/api/request"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Request) (id string, err error)
	GetByID(id string) (rec *dbmodels.Request, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.Request, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(filter requestapimodels.RequestFilter) (list []dbmodels.Request, err error)
	ListAll(filter requestapimodels.RequestFilter) (list []dbmodels.Request, err error)
	ListCount(filter requestapimodels.RequestFilter) (int64, error)
	ListPendingForDepartment(departmentID string) (list []dbmodels.Request, err error)
	ListByStatus(status models.RequestStatus) (list []dbmodels.Request, err error)
	CountByAuthor(authorID string) (int64, error)
	StatsByStatus() ([]requestapimodels.StatsView, error)
	CreateComment(rec dbmodels.RequestComment) error
	CreateAttachment(rec dbmodels.RequestAttachment) (id string, err error)
	GetAttachment(id string) (*dbmodels.RequestAttachment, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Request) (id string, err error) {
	err = i.db.
		Omit("Author", "Category").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Request, error) {
	rec := dbmodels.Request{}
	err := i.db.
		Where("id = ?", id).
		Preload("Author").
		Preload("Category").
		Preload("Tasks").
		Preload("Tasks.Department").
		Preload("Tasks.Executors").
		Preload("Tasks.Executors.Person").
		Preload("Comments").
		Preload("Comments.Author").
		Preload("Attachments").
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

// GetByIDForUpdate строка заявки под SELECT FOR UPDATE,
// для каскада закрытия и проверок статуса внутри транзакции
func (i impl) GetByIDForUpdate(id string) (*dbmodels.Request, error) {
	rec := dbmodels.Request{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Request{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

// Delete удаляет заявку вместе с задачами, исполнителями и комментариями.
// Журнал действий не трогаем, записи переживают заявку.
func (i impl) Delete(id string) error {
	taskIDs := i.db.
		Model(&dbmodels.DepartmentTask{}).
		Select("id").
		Where("request_id = ?", id)
	if err := i.db.
		Where("department_task_id IN (?)", taskIDs).
		Delete(&dbmodels.TaskExecutor{}).
		Error; err != nil {
		return err
	}
	if err := i.db.
		Where("request_id = ?", id).
		Delete(&dbmodels.DepartmentTask{}).
		Error; err != nil {
		return err
	}
	if err := i.db.
		Where("request_id = ?", id).
		Delete(&dbmodels.RequestComment{}).
		Error; err != nil {
		return err
	}
	if err := i.db.
		Where("request_id = ?", id).
		Delete(&dbmodels.RequestAttachment{}).
		Error; err != nil {
		return err
	}
	return i.db.
		Delete(&dbmodels.Request{BaseModel: dbmodels.BaseModel{ID: id}}).
		Error
}

func (i impl) listQuery(filter requestapimodels.RequestFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.Request{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if filter.DepartmentID != "" {
		tx = tx.Where("id IN (?)", i.db.
			Model(&dbmodels.DepartmentTask{}).
			Select("request_id").
			Where("department_id = ?", filter.DepartmentID))
	}
	if filter.Search != "" {
		tx = tx.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	return tx
}

func (i impl) List(filter requestapimodels.RequestFilter) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = i.listQuery(filter).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Author").
		Preload("Category").
		Preload("Tasks").
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

// ListAll полный список под выгрузку, без пагинации
func (i impl) ListAll(filter requestapimodels.RequestFilter) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	err = i.listQuery(filter).
		Order("created_at DESC").
		Preload("Author").
		Preload("Category").
		Preload("Tasks").
		Preload("Tasks.Department").
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

func (i impl) ListCount(filter requestapimodels.RequestFilter) (int64, error) {
	var count int64
	err := i.listQuery(filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListPendingForDepartment заявки на согласование от сотрудников отдела
func (i impl) ListPendingForDepartment(departmentID string) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	err = i.db.
		Where("status = ?", models.RStatusPendingApproval).
		Where("author_id IN (?)", i.db.
			Model(&dbmodels.Person{}).
			Select("id").
			Where("department_id = ?", departmentID)).
		Order("created_at DESC").
		Preload("Author").
		Preload("Category").
		Preload("Tasks").
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

func (i impl) ListByStatus(status models.RequestStatus) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	err = i.db.
		Where("status = ?", status).
		Order("created_at DESC").
		Preload("Author").
		Preload("Category").
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

func (i impl) CountByAuthor(authorID string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Request{}).
		Where("author_id = ?", authorID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) StatsByStatus() ([]requestapimodels.StatsView, error) {
	result := []requestapimodels.StatsView{}
	err := i.db.
		Model(&dbmodels.Request{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&result).
		Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i impl) CreateComment(rec dbmodels.RequestComment) error {
	return i.db.
		Omit("Author").
		Create(&rec).
		Error
}

func (i impl) CreateAttachment(rec dbmodels.RequestAttachment) (id string, err error) {
	err = i.db.
		Omit("UploadedBy").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetAttachment(id string) (*dbmodels.RequestAttachment, error) {
	rec := dbmodels.RequestAttachment{}
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
