package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "request-tools-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.Person{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Person")
	}
	if err := DB.AutoMigrate(&dbmodels.RequestCategory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RequestCategory")
	}
	if err := DB.AutoMigrate(&dbmodels.Request{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Request")
	}
	if err := DB.AutoMigrate(&dbmodels.DepartmentTask{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DepartmentTask")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskExecutor{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskExecutor")
	}
	if err := DB.AutoMigrate(&dbmodels.RequestComment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RequestComment")
	}
	if err := DB.AutoMigrate(&dbmodels.RequestAttachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RequestAttachment")
	}
	if err := DB.AutoMigrate(&dbmodels.AuditEntry{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AuditEntry")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
