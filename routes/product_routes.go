package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App, productController *controllers.ProductController) {
	api := app.Group(config.MAIN_ROUTES+"/products", middleware.AuthMiddleware)
	api.Post("/", productController.CreateProduct)
	api.Get("/", productController.GetAllProducts)
	api.Get("/:id", productController.GetProductByID)
	api.Put("/:id", productController.UpdateProduct)
	api.Delete("/:id", productController.DeleteProduct)
}
