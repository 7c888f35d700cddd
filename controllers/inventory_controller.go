package controllers

import (
	"fmt"
	"net/http"

	"warehouse-app/repositories"
	"warehouse-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB      *gorm.DB
	Service *services.InventoryService
}

func NewInventoryController(DB *gorm.DB, service *services.InventoryService) *InventoryController {
	return &InventoryController{DB: DB, Service: service}
}

type adjustPayload struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=ADD REMOVE"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Note      string `json:"note"`
}

func (c *InventoryController) AdjustStock(ctx *fiber.Ctx) error {
	var payload adjustPayload
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

	product, err := c.Service.Adjust(payload.ProductID, payload.Action, payload.Quantity, actorID(ctx), payload.Note)
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Stock adjusted successfully",
		"data":    product,
	})
}

func (c *InventoryController) GetStockList(ctx *fiber.Ctx) error {
	inventoryRepo := repositories.NewInventoryRepository(c.DB)
	rows, err := inventoryRepo.GetStockList()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

func (c *InventoryController) GetLowStockList(ctx *fiber.Ctx) error {
	inventoryRepo := repositories.NewInventoryRepository(c.DB)
	rows, err := inventoryRepo.GetLowStockList()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

func (c *InventoryController) GetProductLogs(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	inventoryRepo := repositories.NewInventoryRepository(c.DB)
	logs, err := inventoryRepo.GetProductLogs(uint(id), ctx.QueryInt("limit", 100))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    logs,
	})
}

// ExportExcel streams the current stock position as an xlsx report.
func (c *InventoryController) ExportExcel(ctx *fiber.Ctx) error {
	inventoryRepo := repositories.NewInventoryRepository(c.DB)
	rows, err := inventoryRepo.GetStockList()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "SKU")
	f.SetCellValue(sheet, "B1", "Name")
	f.SetCellValue(sheet, "C1", "Quantity")
	f.SetCellValue(sheet, "D1", "Minimum Stock Level")
	f.SetCellValue(sheet, "E1", "Unit Price")
	f.SetCellValue(sheet, "F1", "Location")

	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.MinimumStockLevel)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), row.UnitPrice)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), row.LocationCode)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock_report.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
