package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "request-tools-backend/lib/utils/auth-utils"
	"request-tools-backend/models"
	apimodels "request-tools-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	id, _ := claims["sub"].(string)
	return id
}

func GetUserDepartment(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	departmentID, _ := claims["dept"].(string)
	return departmentID
}

func GetUserRank(ctx *fiber.Ctx) models.Rank {
	claims := authutils.GetClaims(ctx)
	rank, _ := claims["rank"].(string)
	return models.Rank(rank)
}

func IsSystemAdmin(ctx *fiber.Ctx) bool {
	claims := authutils.GetClaims(ctx)
	isAdmin, _ := claims["admin"].(bool)
	return isAdmin
}

func SystemAdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !IsSystemAdmin(ctx) {
			return ctx.Status(fiber.StatusForbidden).
				JSON(apimodels.NewError("операция доступна только администратору"))
		}
		return ctx.Next()
	}
}

func ManagerRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !IsSystemAdmin(ctx) && !GetUserRank(ctx).IsManager() {
			return ctx.Status(fiber.StatusForbidden).
				JSON(apimodels.NewError("операция доступна только руководству"))
		}
		return ctx.Next()
	}
}
