package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(app *fiber.App, orderController *controllers.OrderController) {
	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware)
	api.Post("/", orderController.CreateOrder)
	api.Get("/", orderController.GetOrderList)
	api.Get("/:id", orderController.GetOrderByID)
	api.Put("/:id/status", orderController.UpdateOrderStatus)
	api.Delete("/:id", orderController.DeleteOrder)
}
