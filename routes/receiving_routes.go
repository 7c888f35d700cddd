package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReceivingRoutes(app *fiber.App, receivingController *controllers.ReceivingController) {
	api := app.Group(config.MAIN_ROUTES+"/receivings", middleware.AuthMiddleware)
	api.Post("/", receivingController.CreateReceiving)
	api.Get("/", receivingController.GetReceivingList)
	api.Get("/:id", receivingController.GetReceivingByID)
	api.Put("/:id/status", receivingController.UpdateReceivingStatus)
	api.Delete("/:id", receivingController.DeleteReceiving)
}
