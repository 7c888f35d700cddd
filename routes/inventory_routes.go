package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupInventoryRoutes(app *fiber.App, inventoryController *controllers.InventoryController) {
	api := app.Group(config.MAIN_ROUTES+"/inventory", middleware.AuthMiddleware)
	api.Get("/stock", inventoryController.GetStockList)
	api.Get("/stock/low", inventoryController.GetLowStockList)
	api.Get("/stock/export", inventoryController.ExportExcel)
	api.Post("/adjust", inventoryController.AdjustStock)
	api.Get("/logs/:id", inventoryController.GetProductLogs)
}
