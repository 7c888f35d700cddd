package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App, categoryController *controllers.CategoryController) {
	api := app.Group(config.MAIN_ROUTES+"/categories", middleware.AuthMiddleware)
	api.Post("/", categoryController.CreateCategory)
	api.Get("/", categoryController.GetAllCategories)
	api.Put("/:id", categoryController.UpdateCategory)
	api.Delete("/:id", categoryController.DeleteCategory)
}
