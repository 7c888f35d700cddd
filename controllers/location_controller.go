package controllers

import (
	"fmt"

	"warehouse-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type LocationController struct {
	Service *services.LocationService
}

func NewLocationController(service *services.LocationService) *LocationController {
	return &LocationController{Service: service}
}

func (c *LocationController) CreateLocation(ctx *fiber.Ctx) error {
	var payload services.LocationInput
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

	location, err := c.Service.Create(payload, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Location created successfully",
		"data":    location,
	})
}

func (c *LocationController) GetAllLocations(ctx *fiber.Ctx) error {
	locations, err := c.Service.List(ctx.QueryBool("include_deleted", false))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    locations,
	})
}

func (c *LocationController) GetLocationByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	location, err := c.Service.Get(uint(id))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    location,
	})
}

type capacityPayload struct {
	Capacity *int `json:"capacity"`
}

func (c *LocationController) UpdateCapacity(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	var payload capacityPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	location, err := c.Service.UpdateCapacity(uint(id), payload.Capacity, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Location capacity updated successfully",
		"data":    location,
	})
}

type assignPayload struct {
	ProductID uint `json:"product_id" validate:"required"`
}

func (c *LocationController) AssignProduct(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	var payload assignPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := c.Service.AssignProduct(uint(id), payload.ProductID, actorID(ctx)); err != nil {
		return serviceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Product assigned to location successfully",
	})
}

func (c *LocationController) RecalculateOccupancy(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	occupancy, err := c.Service.Recalculate(uint(id))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Occupancy recalculated successfully",
		"data": fiber.Map{
			"location_id": id,
			"occupancy":   occupancy,
		},
	})
}

// ImportExcel bulk-creates locations from an uploaded xlsx with columns
// zone, rack, shelf, bin, capacity.
func (c *LocationController) ImportExcel(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	excelFile, err := excelize.OpenReader(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Excel file"})
	}

	rows, err := excelFile.GetRows("Sheet1")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := actorID(ctx)
	created := 0
	var failed []string

	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue // header or short row
		}

		input := services.LocationInput{
			Zone:  row[0],
			Rack:  row[1],
			Shelf: row[2],
			Bin:   row[3],
		}
		if len(row) >= 5 && row[4] != "" {
			var capacity int
			if _, err := fmt.Sscanf(row[4], "%d", &capacity); err == nil {
				input.Capacity = &capacity
			}
		}

		if _, err := c.Service.Create(input, userID); err != nil {
			failed = append(failed, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		created++
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Location import finished",
		"data": fiber.Map{
			"created": created,
			"failed":  failed,
		},
	})
}
