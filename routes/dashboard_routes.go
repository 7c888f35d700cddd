package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, dashboardController *controllers.DashboardController) {
	api := app.Group(config.MAIN_ROUTES+"/dashboard", middleware.AuthMiddleware)
	api.Get("/summary", dashboardController.GetSummary)
	api.Get("/activity", dashboardController.GetRecentActivity)
}
