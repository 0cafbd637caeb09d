package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"request-tools-backend/controllers"
	personhandler "request-tools-backend/lib/person"
	"request-tools-backend/middleware"
	apimodels "request-tools-backend/models/api"
	personapimodels "request-tools-backend/models/api/person"
)

type personApiController struct {
	controllers.BaseAPIController
}

func InitPersonApiRouters(app *fiber.App) {
	controller := personApiController{}
	app.Route("persons", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("by-department/:id", controller.listByDepartment)
		router.Get(":id", controller.get)
		router.Use(middleware.SystemAdminRequired()).Post("", controller.create)
		router.Use(middleware.SystemAdminRequired()).Put(":id", controller.update)
		router.Use(middleware.SystemAdminRequired()).Post(":id/deactivate", controller.deactivate)
		router.Use(middleware.SystemAdminRequired()).Delete(":id", controller.delete)
	})
}

// @Summary Список сотрудников
// @Tags Сотрудники
// @Description Список сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page				query		int		false	"Страница"
// @Param   limit				query		int		false	"Записей на странице"
// @Success 200 {object} apimodels.Response{data=[]personapimodels.PersonView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/persons [get]
func (c *personApiController) list(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)
	resp, err := personhandler.Instance.List(page, limit)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Сотрудники отдела
// @Tags Сотрудники
// @Description Сотрудники отдела
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID отдела"
// @Success 200 {object} apimodels.Response{data=[]personapimodels.PersonView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/persons/by-department/{id} [get]
func (c *personApiController) listByDepartment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := personhandler.Instance.ListByDepartment(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Карточка сотрудника
// @Tags Сотрудники
// @Description Карточка сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Success 200 {object} apimodels.Response{data=personapimodels.PersonView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/persons/{id} [get]
func (c *personApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := personhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создать сотрудника
// @Tags Сотрудники
// @Description Создать сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		personapimodels.CreatePersonData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/persons [post]
func (c *personApiController) create(ctx *fiber.Ctx) error {
	var payload personapimodels.CreatePersonData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	id, err := personhandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Изменить сотрудника
// @Tags Сотрудники
// @Description Изменить сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Param	body				body		personapimodels.UpdatePersonData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/persons/{id} [put]
func (c *personApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload personapimodels.UpdatePersonData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	if err := personhandler.Instance.Update(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Деактивировать сотрудника
// @Tags Сотрудники
// @Description Деактивировать сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/persons/{id}/deactivate [post]
func (c *personApiController) deactivate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := personhandler.Instance.Deactivate(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить сотрудника
// @Tags Сотрудники
// @Description Удалить сотрудника. Учетка с историей деактивируется, а не удаляется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID сотрудника"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/persons/{id} [delete]
func (c *personApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := personhandler.Instance.Delete(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
