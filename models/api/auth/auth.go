package authapimodels

import (
	serviceerrors "request-tools-backend/lib/service-errors"
)

type LoginData struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

func (r LoginData) Validate() error {
	if r.UserName == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан логин")
	}
	if r.Password == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан пароль")
	}
	return nil
}

type TokenView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshData struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshData) Validate() error {
	if r.RefreshToken == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан токен")
	}
	return nil
}

type ChangePasswordData struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordData) Validate() error {
	if r.OldPassword == "" || r.NewPassword == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан пароль")
	}
	return nil
}
