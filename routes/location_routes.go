package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupLocationRoutes(app *fiber.App, locationController *controllers.LocationController) {
	api := app.Group(config.MAIN_ROUTES+"/locations", middleware.AuthMiddleware)
	api.Post("/", locationController.CreateLocation)
	api.Get("/", locationController.GetAllLocations)
	api.Post("/import", locationController.ImportExcel)
	api.Get("/:id", locationController.GetLocationByID)
	api.Put("/:id/capacity", locationController.UpdateCapacity)
	api.Post("/:id/recalculate", locationController.RecalculateOccupancy)
	api.Post("/:id/assign", locationController.AssignProduct)
}
