package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"request-tools-backend/controllers"
	audithandler "request-tools-backend/lib/audit"
	apimodels "request-tools-backend/models/api"
)

type auditApiController struct {
	controllers.BaseAPIController
}

func InitAuditApiRouters(app *fiber.App) {
	controller := auditApiController{}
	app.Route("audit", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("by-request/:id", controller.listByRequest)
	})
}

// @Summary Журнал действий
// @Tags Журнал
// @Description Журнал действий, свежие записи первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   limit				query		int		false	"Записей"
// @Param   offset				query		int		false	"Смещение"
// @Success 200 {object} apimodels.Response{data=[]auditapimodels.AuditEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/audit [get]
func (c *auditApiController) list(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)
	resp, err := audithandler.Instance.List(limit, offset)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Журнал действий по заявке
// @Tags Журнал
// @Description Журнал действий по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=[]auditapimodels.AuditEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/audit/by-request/{id} [get]
func (c *auditApiController) listByRequest(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err.Error())
	}
	resp, err := audithandler.Instance.ListByRequest(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
