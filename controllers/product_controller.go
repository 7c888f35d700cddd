package controllers

import (
	"errors"

	"warehouse-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(DB *gorm.DB) *ProductController {
	return &ProductController{DB: DB}
}

type productPayload struct {
	SKU               string  `json:"sku" validate:"required"`
	Name              string  `json:"name" validate:"required"`
	Description       string  `json:"description"`
	MinimumStockLevel int     `json:"minimum_stock_level" validate:"min=0"`
	UnitPrice         float64 `json:"unit_price" validate:"min=0"`
	CategoryID        *uint   `json:"category_id"`
	SupplierID        *uint   `json:"supplier_id"`
	Remarks           string  `json:"remarks"`
}

func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var payload productPayload
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

	var existing models.Product
	if err := c.DB.Unscoped().Where("sku = ?", payload.SKU).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "SKU already exists",
		})
	}

	userID := actorID(ctx)
	product := models.Product{
		SKU:               payload.SKU,
		Name:              payload.Name,
		Description:       payload.Description,
		MinimumStockLevel: payload.MinimumStockLevel,
		UnitPrice:         payload.UnitPrice,
		CategoryID:        payload.CategoryID,
		SupplierID:        payload.SupplierID,
		Remarks:           payload.Remarks,
		CreatedBy:         userID,
		UpdatedBy:         userID,
	}

	if err := c.DB.Create(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

func (c *ProductController) GetAllProducts(ctx *fiber.Ctx) error {
	db := c.DB
	if ctx.QueryBool("include_deleted", false) {
		db = db.Unscoped()
	}

	var products []models.Product
	if err := db.Order("sku").Find(&products).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

func (c *ProductController) GetProductByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	db := c.DB
	if ctx.QueryBool("include_deleted", false) {
		db = db.Unscoped()
	}

	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

func (c *ProductController) UpdateProduct(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product models.Product
	if err := c.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var payload productPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	// Quantity is deliberately not updatable here: stock only moves
	// through the ledger and the order/receiving workflows.
	product.Name = payload.Name
	product.Description = payload.Description
	product.MinimumStockLevel = payload.MinimumStockLevel
	product.UnitPrice = payload.UnitPrice
	product.CategoryID = payload.CategoryID
	product.SupplierID = payload.SupplierID
	product.Remarks = payload.Remarks
	product.UpdatedBy = actorID(ctx)

	if err := c.DB.Save(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

func (c *ProductController) DeleteProduct(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product models.Product
	if err := c.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&product).Update("deleted_by", actorID(ctx)).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Delete(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
