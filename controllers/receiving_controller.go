package controllers

import (
	"warehouse-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

type ReceivingController struct {
	Service *services.ReceivingService
}

func NewReceivingController(service *services.ReceivingService) *ReceivingController {
	return &ReceivingController{Service: service}
}

func (c *ReceivingController) CreateReceiving(ctx *fiber.Ctx) error {
	var payload services.CreateReceivingInput
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	receiving, err := c.Service.Create(payload, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Receiving created successfully",
		"data":    receiving,
	})
}

func (c *ReceivingController) GetReceivingList(ctx *fiber.Ctx) error {
	receivings, err := c.Service.List(ctx.QueryBool("include_deleted", false))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    receivings,
	})
}

func (c *ReceivingController) GetReceivingByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid receiving ID"})
	}

	receiving, err := c.Service.Get(uint(id), ctx.QueryBool("include_deleted", false))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    receiving,
	})
}

func (c *ReceivingController) UpdateReceivingStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid receiving ID"})
	}

	var payload statusPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	receiving, err := c.Service.TransitionStatus(uint(id), payload.Status, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Receiving status updated successfully",
		"data":    receiving,
	})
}

func (c *ReceivingController) DeleteReceiving(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid receiving ID"})
	}

	if err := c.Service.Delete(uint(id), actorID(ctx)); err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Receiving deleted successfully",
	})
}
