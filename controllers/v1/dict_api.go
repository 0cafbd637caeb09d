package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"request-tools-backend/controllers"
	categoryhandler "request-tools-backend/lib/dicts/category"
	departmenthandler "request-tools-backend/lib/dicts/department"
	"request-tools-backend/middleware"
	apimodels "request-tools-backend/models/api"
	dictapimodels "request-tools-backend/models/api/dict"
)

type dictApiController struct {
	controllers.BaseAPIController
}

func InitDictApiRouters(app *fiber.App) {
	controller := dictApiController{}
	app.Route("departments", func(router fiber.Router) {
		router.Get("", controller.listDepartments)
		router.Get(":id", controller.getDepartment)
		router.Use(middleware.SystemAdminRequired()).Post("", controller.createDepartment)
		router.Use(middleware.SystemAdminRequired()).Put(":id", controller.updateDepartment)
		router.Use(middleware.SystemAdminRequired()).Delete(":id", controller.deleteDepartment)
	})
	app.Route("categories", func(router fiber.Router) {
		router.Get("", controller.listCategories)
		router.Use(middleware.SystemAdminRequired()).Post("", controller.createCategory)
		router.Use(middleware.SystemAdminRequired()).Delete(":id", controller.deleteCategory)
	})
}

// @Summary Список отделов
// @Tags Справочники
// @Description Список отделов
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/departments [get]
func (c *dictApiController) listDepartments(ctx *fiber.Ctx) error {
	resp, err := departmenthandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Карточка отдела
// @Tags Справочники
// @Description Карточка отдела
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID отдела"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DepartmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/departments/{id} [get]
func (c *dictApiController) getDepartment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := departmenthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создать отдел
// @Tags Справочники
// @Description Создать отдел
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		dictapimodels.DepartmentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/departments [post]
func (c *dictApiController) createDepartment(ctx *fiber.Ctx) error {
	var payload dictapimodels.DepartmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	id, err := departmenthandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Переименовать отдел
// @Tags Справочники
// @Description Переименовать отдел
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID отдела"
// @Param	body				body		dictapimodels.DepartmentData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/departments/{id} [put]
func (c *dictApiController) updateDepartment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload dictapimodels.DepartmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := departmenthandler.Instance.Update(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить отдел
// @Tags Справочники
// @Description Удалить отдел без действующих сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID отдела"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/departments/{id} [delete]
func (c *dictApiController) deleteDepartment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := departmenthandler.Instance.Delete(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список категорий заявок
// @Tags Справочники
// @Description Список категорий заявок
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categories [get]
func (c *dictApiController) listCategories(ctx *fiber.Ctx) error {
	resp, err := categoryhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создать категорию заявок
// @Tags Справочники
// @Description Создать категорию заявок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		dictapimodels.CategoryData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categories [post]
func (c *dictApiController) createCategory(ctx *fiber.Ctx) error {
	var payload dictapimodels.CategoryData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	id, err := categoryhandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Удалить категорию заявок
// @Tags Справочники
// @Description Удалить категорию заявок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID категории"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categories/{id} [delete]
func (c *dictApiController) deleteCategory(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := categoryhandler.Instance.Delete(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
