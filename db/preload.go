package db

import (
	"request-tools-backend/config"
	authutils "request-tools-backend/lib/utils/auth-utils"
	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func InitPreload() {
	fillCategories()
	addSystemAdmin()
}

var defaultCategories = []string{
	"Хозяйственные работы",
	"ИТ и оборудование",
	"Документооборот",
	"Закупки",
	"Прочее",
}

func fillCategories() {
	for _, name := range defaultCategories {
		rec := dbmodels.RequestCategory{}
		err := DB.Where("name = ?", name).First(&rec).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithError(err).Error("ошибка заполнения справочника категорий")
			return
		}
		rec.Name = name
		if err := DB.Create(&rec).Error; err != nil {
			log.WithError(err).Error("ошибка заполнения справочника категорий")
			return
		}
	}
}

// addSystemAdmin служебная учетка и отдел для нее, логин из конфига
func addSystemAdmin() {
	if config.Conf.Admin.UserName == "" {
		log.Warn("системный администратор не добавлен, отсутствует настройка ADMIN_USER_NAME")
		return
	}
	existed := dbmodels.Person{}
	err := DB.Where("user_name = ?", config.Conf.Admin.UserName).First(&existed).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Error("ошибка добавления системного администратора")
		return
	}

	dept := dbmodels.Department{}
	err = DB.Where("name = ?", "Администрация").First(&dept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		dept.Name = "Администрация"
		err = DB.Create(&dept).Error
	}
	if err != nil {
		log.WithError(err).Error("ошибка добавления системного администратора")
		return
	}

	rec := dbmodels.Person{
		UserName:      config.Conf.Admin.UserName,
		Password:      authutils.GetMD5Hash(config.Conf.Admin.Password),
		FullName:      config.Conf.Admin.FullName,
		Email:         config.Conf.Admin.Email,
		IsSystemAdmin: true,
		IsActive:      true,
		DepartmentID:  dept.ID,
		Rank:          models.RankDirector,
	}
	if err := DB.Create(&rec).Error; err != nil {
		log.WithError(err).Error("ошибка добавления системного администратора")
	}
}
