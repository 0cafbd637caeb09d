package apiv1

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"request-tools-backend/controllers"
	requesthandler "request-tools-backend/lib/request"
	"request-tools-backend/middleware"
	apimodels "request-tools-backend/models/api"
	requestapimodels "request-tools-backend/models/api/request"
)

type requestApiController struct {
	controllers.BaseAPIController
}

func InitRequestApiRouters(app *fiber.App) {
	controller := requestApiController{}
	app.Route("requests", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get("my", controller.my)
		router.Get("discussion", controller.discussion)
		router.Get("stats", controller.stats)
		router.Post("export", controller.export)
		router.Get("pending/:id", controller.pending)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Post(":id/cancel", controller.cancel)
		router.Delete(":id", controller.delete)
		router.Post(":id/comment", controller.comment)
		router.Post(":id/attachment", controller.uploadAttachment)
		router.Get(":id/attachment/:attachment_id", controller.downloadAttachment)
		router.Use(middleware.ManagerRequired()).Post(":id/approve", controller.approve)
		router.Use(middleware.ManagerRequired()).Post(":id/reject", controller.reject)
		router.Use(middleware.ManagerRequired()).Post(":id/to-discussion", controller.toDiscussion)
	})
}

// @Summary Создать заявку
// @Tags Заявки
// @Description Создать заявку с задачами для отделов-исполнителей
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests [post]
func (c *requestApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	id, err := requesthandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список заявок
// @Tags Заявки
// @Description Список заявок с фильтром и пагинацией
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/list [post]
func (c *requestApiController) list(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, rowCount, err := requesthandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(resp, rowCount))
}

// @Summary Мои заявки
// @Tags Заявки
// @Description Заявки текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page				query		int		false	"Страница"
// @Param   limit				query		int		false	"Записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/my [get]
func (c *requestApiController) my(ctx *fiber.Ctx) error {
	filter := requestapimodels.RequestFilter{
		AuthorID: middleware.GetUserID(ctx),
	}
	filter.Page = ctx.QueryInt("page", 1)
	filter.Limit = ctx.QueryInt("limit", 10)
	resp, rowCount, err := requesthandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(resp, rowCount))
}

// @Summary Заявки на уточнении
// @Tags Заявки
// @Description Заявки, отправленные на уточнение
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/discussion [get]
func (c *requestApiController) discussion(ctx *fiber.Ctx) error {
	resp, err := requesthandler.Instance.ListInDiscussion()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Статистика по заявкам
// @Tags Заявки
// @Description Количество заявок в каждом статусе
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.StatsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/stats [get]
func (c *requestApiController) stats(ctx *fiber.Ctx) error {
	resp, err := requesthandler.Instance.Stats()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка реестра заявок
// @Tags Заявки
// @Description Выгрузка реестра заявок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/export [post]
func (c *requestApiController) export(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	buf, err := requesthandler.Instance.Export(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="requests.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Заявки на согласование
// @Tags Заявки
// @Description Заявки сотрудников отдела, ожидающие согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID отдела"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/pending/{id} [get]
func (c *requestApiController) pending(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := requesthandler.Instance.ListPendingForDepartment(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Карточка заявки
// @Tags Заявки
// @Description Карточка заявки с задачами, комментариями и вложениями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id} [get]
func (c *requestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := requesthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменить заявку
// @Tags Заявки
// @Description Изменить заявку с учетом статуса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Param	body				body		requestapimodels.RequestEditData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id} [put]
func (c *requestApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload requestapimodels.RequestEditData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := requesthandler.Instance.Update(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать заявку
// @Tags Заявки
// @Description Согласовать заявку, при необходимости с правками
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Param	body				body		requestapimodels.ApproveData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/approve [post]
func (c *requestApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload requestapimodels.ApproveData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := requesthandler.Instance.Approve(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить заявку
// @Tags Заявки
// @Description Отклонить заявку с указанием причины
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Param	body				body		requestapimodels.ReasonData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/reject [post]
func (c *requestApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload requestapimodels.ReasonData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := requesthandler.Instance.Reject(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправить заявку на уточнение
// @Tags Заявки
// @Description Отправить заявку на уточнение с указанием причины
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Param	body				body		requestapimodels.ReasonData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/to-discussion [post]
func (c *requestApiController) toDiscussion(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload requestapimodels.ReasonData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := requesthandler.Instance.ToDiscussion(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отменить заявку
// @Tags Заявки
// @Description Отменить свою заявку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/cancel [post]
func (c *requestApiController) cancel(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := requesthandler.Instance.Cancel(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить заявку
// @Tags Заявки
// @Description Удалить свою несогласованную заявку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id} [delete]
func (c *requestApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := requesthandler.Instance.Delete(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Добавить комментарий
// @Tags Заявки
// @Description Добавить комментарий к заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Param	body				body		requestapimodels.CommentData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/comment [post]
func (c *requestApiController) comment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	var payload requestapimodels.CommentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	if err := requesthandler.Instance.AddComment(id, middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Приложить файл
// @Tags Заявки
// @Description Приложить файл к заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Param	file				formData	file	true	"файл"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/attachment [post]
func (c *requestApiController) uploadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.SendBadRequest(ctx, "не удалось получить файл из запроса")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendBadRequest(ctx, "не удалось открыть файл")
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return c.SendBadRequest(ctx, "не удалось прочитать файл")
	}
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	attachmentID, err := requesthandler.Instance.AddAttachment(ctx.Context(), id, middleware.GetUserID(ctx), fileHeader.Filename, contentType, body)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(attachmentID))
}

// @Summary Скачать вложение
// @Tags Заявки
// @Description Скачать вложение заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Param	attachment_id		path		string	true	"ID вложения"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/attachment/{attachment_id} [get]
func (c *requestApiController) downloadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	attachmentID := ctx.Params("attachment_id")
	if attachmentID == "" {
		return c.SendBadRequest(ctx, "не указан идентификатор вложения")
	}
	rec, body, err := requesthandler.Instance.GetAttachment(ctx.Context(), id, attachmentID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%v"`, rec.FileName))
	return ctx.Status(fiber.StatusOK).Send(body)
}
