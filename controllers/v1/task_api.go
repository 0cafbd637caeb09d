package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"request-tools-backend/controllers"
	depttaskhandler "request-tools-backend/lib/dept-task"
	"request-tools-backend/middleware"
	apimodels "request-tools-backend/models/api"
	requestapimodels "request-tools-backend/models/api/request"
)

type taskApiController struct {
	controllers.BaseAPIController
}

func InitTaskApiRouters(app *fiber.App) {
	controller := taskApiController{}
	app.Route("tasks", func(router fiber.Router) {
		router.Get("my", controller.my)
		router.Get("incoming/:id", controller.incoming)
		router.Get("by-request/:id", controller.byRequest)
		router.Get(":id", controller.get)
		router.Post(":id/pause", controller.pause)
		router.Post(":id/resume", controller.resume)
		router.Post(":id/complete", controller.complete)
		router.Use(middleware.ManagerRequired()).Post(":id/assign", controller.assign)
		router.Use(middleware.ManagerRequired()).Post(":id/forward", controller.forward)
	})
}

// @Summary Мои задачи
// @Tags Задачи
// @Description Задачи, где текущий пользователь исполнитель
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/my [get]
func (c *taskApiController) my(ctx *fiber.Ctx) error {
	resp, err := depttaskhandler.Instance.ListByExecutor(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Входящие задачи отдела
// @Tags Задачи
// @Description Невыполненные задачи отдела по активным заявкам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID отдела"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/incoming/{id} [get]
func (c *taskApiController) incoming(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := depttaskhandler.Instance.ListIncoming(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Задачи заявки
// @Tags Задачи
// @Description Все задачи заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/by-request/{id} [get]
func (c *taskApiController) byRequest(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := depttaskhandler.Instance.ListByRequest(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Карточка задачи
// @Tags Задачи
// @Description Карточка задачи с исполнителями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response{data=requestapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/{id} [get]
func (c *taskApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := depttaskhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Назначить исполнителя
// @Tags Задачи
// @Description Назначить ответственного исполнителя задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Param	body				body		requestapimodels.AssignExecutorData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/{id}/assign [post]
func (c *taskApiController) assign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload requestapimodels.AssignExecutorData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := depttaskhandler.Instance.AssignExecutor(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Поставить задачу на паузу
// @Tags Задачи
// @Description Поставить задачу на паузу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/{id}/pause [post]
func (c *taskApiController) pause(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := depttaskhandler.Instance.Pause(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Возобновить задачу
// @Tags Задачи
// @Description Возобновить задачу с паузы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/{id}/resume [post]
func (c *taskApiController) resume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := depttaskhandler.Instance.Resume(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выполнить задачу
// @Tags Задачи
// @Description Выполнить задачу. Заявка закрывается, когда выполнены все ее задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/{id}/complete [post]
func (c *taskApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := depttaskhandler.Instance.Complete(ctx.Context(), id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Передать задачу другому отделу
// @Tags Задачи
// @Description Передать задачу другому отделу, исполнители снимаются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID задачи"
// @Param	body				body		requestapimodels.ForwardData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tasks/{id}/forward [post]
func (c *taskApiController) forward(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload requestapimodels.ForwardData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := depttaskhandler.Instance.Forward(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
