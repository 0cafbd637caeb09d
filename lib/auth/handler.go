package authhandler

import (
	log "github.com/sirupsen/logrus"

	"request-tools-backend/db"
	audithandler "request-tools-backend/lib/audit"
	personstore "request-tools-backend/lib/person/store"
	serviceerrors "request-tools-backend/lib/service-errors"
	authutils "request-tools-backend/lib/utils/auth-utils"
	authapimodels "request-tools-backend/models/api/auth"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Login(data authapimodels.LoginData) (authapimodels.TokenView, error)
	Refresh(refreshToken string) (authapimodels.TokenView, error)
	ChangePassword(personID string, data authapimodels.ChangePasswordData) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: personstore.NewInstance(db.DB),
	}
}

type impl struct {
	store personstore.Provider
}

func (i impl) Login(data authapimodels.LoginData) (authapimodels.TokenView, error) {
	logger := log.WithField("user_name", data.UserName)
	if err := data.Validate(); err != nil {
		return authapimodels.TokenView{}, err
	}
	person, err := i.store.GetByUserName(data.UserName)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска учетной записи")
		return authapimodels.TokenView{}, err
	}
	if person == nil || !person.IsActive || person.Password != authutils.GetMD5Hash(data.Password) {
		return authapimodels.TokenView{}, serviceerrors.New(serviceerrors.AuthorizationDenied, "неверный логин или пароль")
	}
	view, err := i.issueTokens(*person)
	if err != nil {
		logger.WithError(err).Error("ошибка выпуска токена")
		return authapimodels.TokenView{}, err
	}
	audithandler.Instance.Log(&person.ID, nil, "Вход в систему")
	logger.Info("вход в систему")
	return view, nil
}

func (i impl) Refresh(refreshToken string) (authapimodels.TokenView, error) {
	personID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.TokenView{}, serviceerrors.New(serviceerrors.AuthorizationDenied, "недействительный токен")
	}
	person, err := i.store.GetByID(personID)
	if err != nil {
		return authapimodels.TokenView{}, err
	}
	if person == nil || !person.IsActive {
		return authapimodels.TokenView{}, serviceerrors.New(serviceerrors.AuthorizationDenied, "учетная запись недоступна")
	}
	return i.issueTokens(*person)
}

func (i impl) issueTokens(person dbmodels.Person) (authapimodels.TokenView, error) {
	accessToken, err := authutils.GetToken(person.ID, person.GetFullName(), person.DepartmentID, person.IsSystemAdmin, person.Rank)
	if err != nil {
		return authapimodels.TokenView{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(person.ID, person.GetFullName())
	if err != nil {
		return authapimodels.TokenView{}, err
	}
	return authapimodels.TokenView{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (i impl) ChangePassword(personID string, data authapimodels.ChangePasswordData) error {
	logger := log.WithField("person_id", personID)
	if err := data.Validate(); err != nil {
		return err
	}
	person, err := i.store.GetByID(personID)
	if err != nil {
		return err
	}
	if person == nil || !person.IsActive {
		return serviceerrors.New(serviceerrors.NotFound, "учетная запись недоступна")
	}
	if person.Password != authutils.GetMD5Hash(data.OldPassword) {
		return serviceerrors.New(serviceerrors.AuthorizationDenied, "неверный текущий пароль")
	}
	err = i.store.Update(personID, map[string]interface{}{"password": authutils.GetMD5Hash(data.NewPassword)})
	if err != nil {
		logger.WithError(err).Error("ошибка смены пароля")
		return err
	}
	audithandler.Instance.Log(&personID, nil, "Изменен пароль учетной записи")
	logger.Info("пароль изменен")
	return nil
}
