package dbmodels

import (
	"fmt"
	"request-tools-backend/models"

	serviceerrors "request-tools-backend/lib/service-errors"
)

type Person struct {
	BaseModel
	UserName      string `gorm:"type:varchar(50);uniqueIndex"`
	Password      string `gorm:"type:varchar(128)"`
	FullName      string `gorm:"type:varchar(150)"`
	Email         string `gorm:"type:varchar(255)"`
	PhoneNumber   string `gorm:"type:varchar(15)"`
	IsSystemAdmin bool
	IsActive      bool
	DepartmentID  string `gorm:"type:varchar(36);index"`
	Department    *Department
	Rank          models.Rank `gorm:"type:varchar(100)"`
}

func (p Person) GetFullName() string {
	return p.FullName
}

// IsAutoApproved заявки руководителей и админов не требуют согласования
func (p Person) IsAutoApproved() bool {
	return p.IsSystemAdmin || p.Rank.IsManager()
}

// CanManageTask право распоряжаться задачей отдела: руководство отдела
// задачи, дирекция или админ
func (p Person) CanManageTask(departmentID string) bool {
	if p.IsSystemAdmin || p.Rank.IsDirectorate() {
		return true
	}
	return p.Rank.IsDepartmentManager() && p.DepartmentID == departmentID
}

func (p *Person) Validate() error {
	if p.UserName == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан логин")
	}
	if p.FullName == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указано ФИО")
	}
	if p.DepartmentID == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан отдел")
	}
	if !p.Rank.IsValid() {
		return serviceerrors.New(serviceerrors.ValidationError, fmt.Sprintf("недопустимая должность: %v", p.Rank))
	}
	return nil
}
