package dictapimodels

import (
	serviceerrors "request-tools-backend/lib/service-errors"
	dbmodels "request-tools-backend/models/db"
)

type DepartmentData struct {
	Name string `json:"name"`
}

func (r DepartmentData) Validate() error {
	if r.Name == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указано название отдела")
	}
	return nil
}

type DepartmentView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		ID:   rec.ID,
		Name: rec.Name,
	}
}

type CategoryData struct {
	Name string `json:"name"`
}

func (r CategoryData) Validate() error {
	if r.Name == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указано название категории")
	}
	return nil
}

type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func CategoryConvert(rec dbmodels.RequestCategory) CategoryView {
	return CategoryView{
		ID:   rec.ID,
		Name: rec.Name,
	}
}
