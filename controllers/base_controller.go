package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	serviceerrors "request-tools-backend/lib/service-errors"
	apimodels "request-tools-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError статус ответа по классу отказа
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch serviceerrors.KindOf(err) {
	case serviceerrors.NotFound:
		status = fiber.StatusNotFound
	case serviceerrors.InvalidState, serviceerrors.HierarchyViolation, serviceerrors.DuplicateConstraint:
		status = fiber.StatusConflict
	case serviceerrors.AuthorizationDenied:
		status = fiber.StatusForbidden
	case serviceerrors.ValidationError:
		status = fiber.StatusBadRequest
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

func (c *BaseAPIController) SendBadRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(message))
}
