package dbmodels

import (
	"time"

	"request-tools-backend/models"

	serviceerrors "request-tools-backend/lib/service-errors"
)

type Request struct {
	BaseModel
	Title       string `gorm:"type:varchar(200)"`
	Description string
	Deadline    *time.Time
	CompletedAt *time.Time
	IsStrategic bool
	Status      models.RequestStatus `gorm:"type:varchar(100);index"`
	Priority    models.Priority      `gorm:"type:varchar(100)"`
	CategoryID  string               `gorm:"type:varchar(36)"`
	Category    *RequestCategory
	AuthorID    string `gorm:"type:varchar(36);index"`
	Author      *Person
	Tasks       []DepartmentTask    `gorm:"foreignKey:RequestID"`
	Comments    []RequestComment    `gorm:"foreignKey:RequestID"`
	Attachments []RequestAttachment `gorm:"foreignKey:RequestID"`
}

// HasDepartment есть ли уже задача на отдел (фан-аут не дублирует отделы)
func (r Request) HasDepartment(departmentID string) bool {
	for _, task := range r.Tasks {
		if task.DepartmentID == departmentID {
			return true
		}
	}
	return false
}

// AllTasksDone условие автозакрытия заявки
func (r Request) AllTasksDone() bool {
	if len(r.Tasks) == 0 {
		return false
	}
	for _, task := range r.Tasks {
		if task.Status != models.TStatusDone {
			return false
		}
	}
	return true
}

func (r *Request) Validate() error {
	if r.Title == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указана тема заявки")
	}
	if len(r.Title) > 200 {
		return serviceerrors.New(serviceerrors.ValidationError, "тема заявки длиннее 200 символов")
	}
	if r.CategoryID == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указана категория")
	}
	if !r.Priority.IsValid() {
		return serviceerrors.New(serviceerrors.ValidationError, "недопустимый приоритет")
	}
	return nil
}

type RequestComment struct {
	BaseModel
	RequestID string `gorm:"type:varchar(36);index"`
	AuthorID  *string
	Author    *Person `gorm:"foreignKey:AuthorID"`
	Comment   string
	IsSystem  bool
}

type RequestAttachment struct {
	BaseModel
	RequestID    string `gorm:"type:varchar(36);index"`
	FileName     string `gorm:"type:varchar(255)"`
	FileKey      string `gorm:"type:varchar(100)"`
	FileSize     int64
	UploadedByID string `gorm:"type:varchar(36)"`
	UploadedBy   *Person `gorm:"foreignKey:UploadedByID"`
}
