package controllers

import (
	"warehouse-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(DB *gorm.DB) *DashboardController {
	return &DashboardController{DB: DB}
}

// GetSummary returns the headline counts shown on the dashboard landing page.
func (c *DashboardController) GetSummary(ctx *fiber.Ctx) error {
	var (
		totalProducts   int64
		lowStock        int64
		pendingOrders   int64
		openTasks       int64
		pendingReceipts int64
	)

	if err := c.DB.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Model(&models.Product{}).
		Where("quantity <= minimum_stock_level").
		Count(&lowStock).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.OrderStatusDelivered, models.OrderStatusCancelled}).
		Count(&pendingOrders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Model(&models.Task{}).
		Where("status IN ?", []string{models.TaskStatusPending, models.TaskStatusInProgress}).
		Count(&openTasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Model(&models.Receiving{}).
		Where("status = ?", models.ReceivingStatusPending).
		Count(&pendingReceipts).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_products":     totalProducts,
			"low_stock_products": lowStock,
			"open_orders":        pendingOrders,
			"open_tasks":         openTasks,
			"pending_receivings": pendingReceipts,
		},
	})
}

// GetRecentActivity returns the most recent audit trail entries.
func (c *DashboardController) GetRecentActivity(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var logs []models.ActivityLog
	if err := c.DB.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    logs,
	})
}
