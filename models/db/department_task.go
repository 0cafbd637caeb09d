package dbmodels

import (
	"time"

	"request-tools-backend/models"
)

type DepartmentTask struct {
	BaseModel
	RequestID    string `gorm:"type:varchar(36);index"`
	Request      *Request
	DepartmentID string `gorm:"type:varchar(36);index"`
	Department   *Department
	Status       models.TaskStatus `gorm:"type:varchar(100);index"`
	AssignedAt   *time.Time
	CompletedAt  *time.Time
	Executors    []TaskExecutor `gorm:"foreignKey:DepartmentTaskID"`
}

func (t DepartmentTask) GetLead() *TaskExecutor {
	for idx := range t.Executors {
		if t.Executors[idx].IsLead {
			return &t.Executors[idx]
		}
	}
	return nil
}

type TaskExecutor struct {
	BaseModel
	DepartmentTaskID string `gorm:"type:varchar(36);index"`
	PersonID         string `gorm:"type:varchar(36);index"`
	Person           *Person
	IsLead           bool
	AssignedAt       time.Time
}
