package main

import (
	"fmt"
	"log"
	"time"

	"warehouse-app/config"
	"warehouse-app/controllers"
	"warehouse-app/database"
	"warehouse-app/events"
	"warehouse-app/idgen"
	"warehouse-app/routes"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}
	database.RunSeeders(db)

	idgen.Init()

	hub := events.NewHub()
	limiter := events.NewRateLimiter(config.SocketEventLimit, time.Duration(config.SocketEventWindow)*time.Second)
	publisher := events.NewPublisher(hub, limiter, logger)
	mailer := events.NewMailer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword, config.AlertEmails, logger)

	inventoryService := services.NewInventoryService(db, logger, publisher, mailer)
	locationService := services.NewLocationService(db, logger, publisher)
	orderService := services.NewOrderService(db, logger, publisher)
	receivingService := services.NewReceivingService(db, logger, publisher)
	taskService := services.NewTaskService(db, logger, publisher)

	app := fiber.New()
	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupProductRoutes(app, controllers.NewProductController(db))
	routes.SetupCategoryRoutes(app, controllers.NewCategoryController(db))
	routes.SetupSupplierRoutes(app, controllers.NewSupplierController(db))
	routes.SetupCustomerRoutes(app, controllers.NewCustomerController(db))
	routes.SetupInventoryRoutes(app, controllers.NewInventoryController(db, inventoryService))
	routes.SetupLocationRoutes(app, controllers.NewLocationController(locationService))
	routes.SetupOrderRoutes(app, controllers.NewOrderController(orderService))
	routes.SetupReceivingRoutes(app, controllers.NewReceivingController(receivingService))
	routes.SetupTaskRoutes(app, controllers.NewTaskController(taskService))
	routes.SetupUserRoutes(app, controllers.NewUserController(db))
	routes.SetupDashboardRoutes(app, controllers.NewDashboardController(db))
	routes.SetupSocketRoutes(app, hub, logger)

	addr := fmt.Sprintf(":%s", config.APP_PORT)
	logger.Info("Server listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
