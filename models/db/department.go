package dbmodels

import (
	serviceerrors "request-tools-backend/lib/service-errors"
)

type Department struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);uniqueIndex"`
	Persons []Person
}

func (d *Department) Validate() error {
	if d.Name == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указано название отдела")
	}
	return nil
}

type RequestCategory struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex"`
}

func (c *RequestCategory) Validate() error {
	if c.Name == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указано название категории")
	}
	return nil
}
