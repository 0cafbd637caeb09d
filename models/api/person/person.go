package personapimodels

import (
	serviceerrors "request-tools-backend/lib/service-errors"
	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"
)

type PersonData struct {
	FullName     string      `json:"full_name"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phone_number"`
	DepartmentID string      `json:"department_id"`
	Rank         models.Rank `json:"rank"`
}

type CreatePersonData struct {
	PersonData
	UserName      string `json:"user_name"`
	Password      string `json:"password"`
	IsSystemAdmin bool   `json:"is_system_admin"`
}

func (r CreatePersonData) Validate() error {
	if r.UserName == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан логин")
	}
	if r.Password == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан пароль")
	}
	if r.FullName == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указано ФИО")
	}
	if r.DepartmentID == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан отдел")
	}
	if !r.Rank.IsValid() {
		return serviceerrors.New(serviceerrors.ValidationError, "недопустимая должность")
	}
	return nil
}

type UpdatePersonData struct {
	PersonData
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r UpdatePersonData) Validate() error {
	if r.FullName == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указано ФИО")
	}
	if r.DepartmentID == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан отдел")
	}
	if !r.Rank.IsValid() {
		return serviceerrors.New(serviceerrors.ValidationError, "недопустимая должность")
	}
	return nil
}

type PersonView struct {
	ID             string      `json:"id"`
	UserName       string      `json:"user_name"`
	FullName       string      `json:"full_name"`
	Email          string      `json:"email"`
	PhoneNumber    string      `json:"phone_number"`
	IsSystemAdmin  bool        `json:"is_system_admin"`
	IsActive       bool        `json:"is_active"`
	DepartmentID   string      `json:"department_id"`
	DepartmentName string      `json:"department_name,omitempty"`
	Rank           models.Rank `json:"rank"`
}

func PersonConvert(rec dbmodels.Person) PersonView {
	view := PersonView{
		ID:            rec.ID,
		UserName:      rec.UserName,
		FullName:      rec.FullName,
		Email:         rec.Email,
		PhoneNumber:   rec.PhoneNumber,
		IsSystemAdmin: rec.IsSystemAdmin,
		IsActive:      rec.IsActive,
		DepartmentID:  rec.DepartmentID,
		Rank:          rec.Rank,
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	return view
}
