package routes

import (
	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(app *fiber.App, taskController *controllers.TaskController) {
	api := app.Group(config.MAIN_ROUTES+"/tasks", middleware.AuthMiddleware)
	api.Post("/", taskController.CreateTask)
	api.Get("/", taskController.GetTaskList)
	api.Get("/:id", taskController.GetTaskByID)
	api.Put("/:id/status", taskController.UpdateTaskStatus)
	api.Put("/:id/assignee", taskController.ReassignTask)
}
