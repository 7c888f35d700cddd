package controllers

import (
	"warehouse-app/apperr"

	"github.com/gofiber/fiber/v2"
)

// serviceError renders an engine error with its stable kind and the HTTP
// status it maps to.
func serviceError(ctx *fiber.Ctx, err error) error {
	resp := fiber.Map{
		"success": false,
		"message": err.Error(),
	}
	if kind := apperr.KindOf(err); kind != "" {
		resp["kind"] = kind
	}
	return ctx.Status(apperr.HTTPStatus(err)).JSON(resp)
}

func actorID(ctx *fiber.Ctx) int {
	if v, ok := ctx.Locals("userID").(float64); ok {
		return int(v)
	}
	return 0
}
